package utils

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T integer](min T, value T, max T) bool {
	return min <= value && value <= max
}

// IsBitSet reports whether bit i of v is set.
func IsBitSet[T integer](v T, i int) bool {
	return v>>i&1 == 1
}
