package record

import (
	"reflect"
	"strings"

	"cube-generator/option"
)

// Variant is one expansion of a record: the record's fields in order, each
// present or absent. Variants are only produced by transformations.
type Variant struct {
	fields FieldList
	values []option.Option[any]
}

// Fields returns the field list the variant was produced for.
func (v Variant) Fields() FieldList { return v.fields }

// Len returns the number of fields.
func (v Variant) Len() int { return len(v.values) }

// At returns the i-th field value.
func (v Variant) At(i int) option.Option[any] { return v.values[i] }

// Get returns the value of the named field; ok is false for unknown names.
func (v Variant) Get(name string) (value option.Option[any], ok bool) {
	i := v.fields.position(name)
	if i < 0 {
		return option.None[any](), false
	}
	return v.values[i], true
}

// Values returns a copy of all field values.
func (v Variant) Values() []option.Option[any] {
	return append([]option.Option[any](nil), v.values...)
}

// Mask returns the presence bit set: bit i is set when field i is present.
func (v Variant) Mask() uint64 {
	var mask uint64
	for i, o := range v.values {
		if o.IsSome() {
			mask |= 1 << i
		}
	}
	return mask
}

// Equal reports whether both variants have the same presence pattern and
// equal present values.
func (v Variant) Equal(other Variant) bool {
	if len(v.values) != len(other.values) {
		return false
	}

	for i := range v.values {
		a, aok := v.values[i].Get()
		b, bok := other.values[i].Get()
		if aok != bok {
			return false
		}
		if aok && !reflect.DeepEqual(a, b) {
			return false
		}
	}

	return true
}

// String renders the variant as (Some(F), None).
func (v Variant) String() string {
	var sb strings.Builder

	sb.WriteString("(")
	for i, o := range v.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(o.String())
	}
	sb.WriteString(")")

	return sb.String()
}
