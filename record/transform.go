package record

import (
	"cube-generator/option"
	"cube-generator/utils"
)

// Transform expands one record value into its variants. It panics when
// applied to a value of another type than the FieldList it was built from.
type Transform func(rec any) []Variant

// BuildCuber returns the transformation producing all 2^N presence
// combinations of fl's fields.
//
// Variants come in nested-loop order with the first field as the outermost
// loop and Some before None at every level, so for (gender, age):
//
//	(Some(F), Some(30)), (Some(F), None), (None, Some(30)), (None, None)
func BuildCuber(fl FieldList) Transform {
	n := fl.Arity()
	total := 1 << n

	return func(rec any) []Variant {
		vals := fl.values(rec)

		backing := make([]option.Option[any], total*n)
		out := make([]Variant, total)
		for k := range total {
			opts := backing[k*n : (k+1)*n : (k+1)*n]
			// Bit n-1-i of k selects None for field i.
			for i := range n {
				if !utils.IsBitSet(k, n-1-i) {
					opts[i] = option.Some(vals[i])
				}
			}
			out[k] = Variant{fields: fl, values: opts}
		}

		return out
	}
}

// BuildRoller returns the transformation producing the N+1 prefix variants of
// fl's fields: variant k has fields [0, k) present and the rest absent.
// The prefixes are built directly, not filtered out of the cube.
func BuildRoller(fl FieldList) Transform {
	n := fl.Arity()

	return func(rec any) []Variant {
		vals := fl.values(rec)

		backing := make([]option.Option[any], (n+1)*n)
		out := make([]Variant, n+1)
		for k := 0; k <= n; k++ {
			opts := backing[k*n : (k+1)*n : (k+1)*n]
			for i := range k {
				opts[i] = option.Some(vals[i])
			}
			out[k] = Variant{fields: fl, values: opts}
		}

		return out
	}
}
