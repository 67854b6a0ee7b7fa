package record

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"cube-generator/utils"
)

const (
	// DefaultMaxArity is the largest field count accepted unless overridden.
	DefaultMaxArity = 22
	// MaxSupportedArity bounds WithMaxArity; keeps 1<<N within int on every
	// platform.
	MaxSupportedArity = 30
)

var (
	ErrNotARecordType = errors.New("not a record type")
	ErrEmptyRecord    = errors.New("record has no fields")
	ErrArityTooLarge  = errors.New("record arity exceeds maximum")
	ErrInvalidArity   = errors.New("invalid maximum arity")
)

// Options controls introspection.
type Options struct {
	MaxArity int
}

// WithMaxArity overrides DefaultMaxArity.
func WithMaxArity(n int) func(*Options) {
	return func(o *Options) {
		o.MaxArity = n
	}
}

func newOptions(opts []func(*Options)) (Options, error) {
	o := Options{MaxArity: DefaultMaxArity}
	for _, setOpt := range opts {
		setOpt(&o)
	}

	if !utils.IsInRange(1, o.MaxArity, MaxSupportedArity) {
		return o, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidArity, o.MaxArity, MaxSupportedArity)
	}

	return o, nil
}

// Field describes one record field.
type Field struct {
	Index int          // Struct field index
	Name  string       // Go field name
	Type  reflect.Type // Field value type
}

// FieldList is the ordered field set of a record type.
type FieldList struct {
	typ    reflect.Type
	fields []Field
}

// Type returns the record type the list was derived from.
func (l FieldList) Type() reflect.Type { return l.typ }

// Arity returns the number of fields.
func (l FieldList) Arity() int { return len(l.fields) }

// Field returns the i-th field.
func (l FieldList) Field(i int) Field { return l.fields[i] }

// Fields returns a copy of all fields.
func (l FieldList) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Names returns the field names in order.
func (l FieldList) Names() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup finds a field by name.
func (l FieldList) Lookup(name string) (Field, bool) {
	if i := l.position(name); i >= 0 {
		return l.fields[i], true
	}
	return Field{}, false
}

// position returns the place of the named field in the list, or -1.
func (l FieldList) position(name string) int {
	for i, f := range l.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Introspect derives the ordered field list of a struct type.
//
// Every named field takes part, exported or not; embedded fields appear under
// their type name. Blank (_) fields are padding and are skipped, so Field.Index
// may differ from the position in the list. Pointers to structs are not records.
func Introspect(t reflect.Type, opts ...func(*Options)) (FieldList, error) {
	o, err := newOptions(opts)
	if err != nil {
		return FieldList{}, err
	}

	if t == nil {
		return FieldList{}, fmt.Errorf("%w: <nil>", ErrNotARecordType)
	}
	if t.Kind() != reflect.Struct {
		return FieldList{}, fmt.Errorf("%w: %s is a %s", ErrNotARecordType, t, t.Kind())
	}

	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		fields = append(fields, Field{
			Index: i,
			Name:  sf.Name,
			Type:  sf.Type,
		})
	}

	n := len(fields)
	if n == 0 {
		return FieldList{}, fmt.Errorf("%w: %s", ErrEmptyRecord, t)
	}
	if n > o.MaxArity {
		return FieldList{}, fmt.Errorf("%w: %s has %d fields, maximum is %d", ErrArityTooLarge, t, n, o.MaxArity)
	}

	return FieldList{typ: t, fields: fields}, nil
}

// IntrospectFor is Introspect for a type parameter.
func IntrospectFor[T any](opts ...func(*Options)) (FieldList, error) {
	return Introspect(reflect.TypeFor[T](), opts...)
}

// values extracts field values of rec in field order. A value of any other
// type than the one the list was built for is a programming error.
func (l FieldList) values(rec any) []any {
	v := reflect.ValueOf(rec)
	if !v.IsValid() || v.Type() != l.typ {
		panic(fmt.Sprintf("record: transformation for %s applied to %T", l.typ, rec))
	}

	// An addressable copy lets unexported fields be read through NewAt.
	c := reflect.New(l.typ).Elem()
	c.Set(v)

	out := make([]any, len(l.fields))
	for i, f := range l.fields {
		fv := c.Field(f.Index)
		if !fv.CanInterface() {
			fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}
		out[i] = fv.Interface()
	}

	return out
}
