package record_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-generator/record"
)

type person struct {
	Gender string
	Age    int
}

type triple struct {
	A, B, C int
}

type empty struct{}

type hidden struct {
	name  string
	Score float64
}

type Base struct {
	ID int
}

type withEmbedded struct {
	Base
	Label string
}

type padded struct {
	_      struct{}
	Region string
	_      [4]byte
	Age    int
}

type onlyBlank struct {
	_ int
}

// structOfArity builds a struct type with n int fields F0..Fn-1.
func structOfArity(n int) reflect.Type {
	fields := make([]reflect.StructField, n)
	for i := range n {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("F%d", i),
			Type: reflect.TypeFor[int](),
		}
	}
	return reflect.StructOf(fields)
}

// valueOfArity returns an instance of structOfArity(n) with Fi = i+1.
func valueOfArity(t reflect.Type) any {
	v := reflect.New(t).Elem()
	for i := range t.NumField() {
		v.Field(i).SetInt(int64(i + 1))
	}
	return v.Interface()
}

func TestIntrospect_FieldOrder(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[person]()
	require.NoError(t, err)

	assert.Equal(t, 2, fl.Arity())
	assert.Equal(t, []string{"Gender", "Age"}, fl.Names())
	assert.Equal(t, reflect.TypeFor[person](), fl.Type())

	gender := fl.Field(0)
	assert.Equal(t, 0, gender.Index)
	assert.Equal(t, reflect.TypeFor[string](), gender.Type)

	age, ok := fl.Lookup("Age")
	require.True(t, ok)
	assert.Equal(t, 1, age.Index)
	assert.Equal(t, reflect.TypeFor[int](), age.Type)

	_, ok = fl.Lookup("Missing")
	assert.False(t, ok)
}

func TestIntrospect_FieldsIsACopy(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[triple]()
	require.NoError(t, err)

	fields := fl.Fields()
	fields[0].Name = "changed"
	assert.Equal(t, "A", fl.Field(0).Name)
}

func TestIntrospect_UnexportedAndEmbedded(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[hidden]()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "Score"}, fl.Names())

	fl, err = record.IntrospectFor[withEmbedded]()
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Label"}, fl.Names())
	assert.Equal(t, reflect.TypeFor[Base](), fl.Field(0).Type)
}

func TestIntrospect_BlankFieldsSkipped(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[padded]()
	require.NoError(t, err)

	assert.Equal(t, 2, fl.Arity())
	assert.Equal(t, []string{"Region", "Age"}, fl.Names())
	assert.Equal(t, 1, fl.Field(0).Index)
	assert.Equal(t, 3, fl.Field(1).Index)

	_, ok := fl.Lookup("_")
	assert.False(t, ok)

	_, err = record.IntrospectFor[onlyBlank]()
	require.ErrorIs(t, err, record.ErrEmptyRecord)
}

func TestIntrospect_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     reflect.Type
		opts    []func(*record.Options)
		wantErr error
	}{
		{name: "nil type", typ: nil, wantErr: record.ErrNotARecordType},
		{name: "basic", typ: reflect.TypeFor[int](), wantErr: record.ErrNotARecordType},
		{name: "map", typ: reflect.TypeFor[map[string]int](), wantErr: record.ErrNotARecordType},
		{name: "slice", typ: reflect.TypeFor[[]person](), wantErr: record.ErrNotARecordType},
		{name: "pointer to struct", typ: reflect.TypeFor[*person](), wantErr: record.ErrNotARecordType},
		{name: "interface", typ: reflect.TypeFor[fmt.Stringer](), wantErr: record.ErrNotARecordType},
		{name: "empty struct", typ: reflect.TypeFor[empty](), wantErr: record.ErrEmptyRecord},
		{name: "default max plus one", typ: structOfArity(record.DefaultMaxArity + 1), wantErr: record.ErrArityTooLarge},
		{
			name:    "custom max",
			typ:     reflect.TypeFor[triple](),
			opts:    []func(*record.Options){record.WithMaxArity(2)},
			wantErr: record.ErrArityTooLarge,
		},
		{
			name:    "zero max",
			typ:     reflect.TypeFor[person](),
			opts:    []func(*record.Options){record.WithMaxArity(0)},
			wantErr: record.ErrInvalidArity,
		},
		{
			name:    "max above supported",
			typ:     reflect.TypeFor[person](),
			opts:    []func(*record.Options){record.WithMaxArity(record.MaxSupportedArity + 1)},
			wantErr: record.ErrInvalidArity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := record.Introspect(tt.typ, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIntrospect_ArityBounds(t *testing.T) {
	t.Parallel()

	fl, err := record.Introspect(structOfArity(record.DefaultMaxArity))
	require.NoError(t, err)
	assert.Equal(t, record.DefaultMaxArity, fl.Arity())

	fl, err = record.Introspect(structOfArity(record.DefaultMaxArity+1), record.WithMaxArity(record.DefaultMaxArity+1))
	require.NoError(t, err)
	assert.Equal(t, record.DefaultMaxArity+1, fl.Arity())

	fl, err = record.Introspect(structOfArity(1))
	require.NoError(t, err)
	assert.Equal(t, 1, fl.Arity())
}
