package diagnostic

import (
	"errors"
	"fmt"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-generator/internal/analyze"
	"cube-generator/record"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("%w: x", record.ErrNotARecordType), CodeNotARecord},
		{fmt.Errorf("%w: x", record.ErrEmptyRecord), CodeEmptyRecord},
		{fmt.Errorf("%w: x", record.ErrArityTooLarge), CodeArityTooLarge},
		{fmt.Errorf("%w: 0", record.ErrInvalidArity), CodeInvalidArity},
		{fmt.Errorf("%w: x", analyze.ErrTypeNotFound), CodeTypeNotFound},
		{fmt.Errorf("%w: x", analyze.ErrAmbiguousType), CodeAmbiguousType},
		{errors.New("boom"), CodeOther},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, Classify(tt.err))
		})
	}
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddError("census.Empty", fmt.Errorf("%w: census.Empty", record.ErrEmptyRecord))
	d.AddError("census.Wide", fmt.Errorf("%w: census.Wide", record.ErrArityTooLarge))

	require.True(t, d.HasErrors())
	err := d.Error()
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrEmptyRecord)
	assert.ErrorIs(t, err, record.ErrArityTooLarge)
	assert.NotErrorIs(t, err, record.ErrNotARecordType)

	assert.Equal(t, CodeEmptyRecord, d.Errors[0].Code)
	assert.Equal(t, "[census.Empty]: [empty_record] record has no fields: census.Empty", d.Errors[0].String())
}

func TestDiagnostics_CheckRecord(t *testing.T) {
	rec := &analyze.Record{
		ID: analyze.TypeID{PkgPath: "example/census", Name: "Sale"},
		Fields: []analyze.FieldInfo{
			{Name: "Region", Exported: true, Type: &analyze.TypeInfo{
				Kind: analyze.TypeKindBasic, GoType: types.Typ[types.String],
			}},
			{Name: "Tags", Exported: true, Type: &analyze.TypeInfo{
				Kind: analyze.TypeKindSlice, GoType: types.NewSlice(types.Typ[types.String]),
			}},
		},
	}

	var d Diagnostics
	d.CheckRecord(rec)

	assert.False(t, d.HasErrors())
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, CodeNotComparable, d.Warnings[0].Code)
	assert.Equal(t, "Tags", d.Warnings[0].FieldName)
	assert.Equal(t, "warning", d.Warnings[0].Severity.String())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddWarning(CodeNotComparable, "w", "T", "F")
	b.AddError("U", fmt.Errorf("%w: U", analyze.ErrTypeNotFound))

	a.Merge(b)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
	assert.ErrorIs(t, a.Error(), analyze.ErrTypeNotFound)
}
