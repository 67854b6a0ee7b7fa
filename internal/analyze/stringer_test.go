package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	str := &TypeInfo{ID: TypeID{Name: "string"}, Kind: TypeKindBasic, GoType: types.Typ[types.String]}
	month := &TypeInfo{ID: TypeID{PkgPath: "time", Name: "Month"}, Kind: TypeKindExternal}

	tests := []struct {
		name string
		typ  *TypeInfo
		want string
	}{
		{"nil", nil, "<nil>"},
		{"basic", str, "string"},
		{"external", month, "time.Month"},
		{"pointer", &TypeInfo{Kind: TypeKindPointer, ElemType: month}, "*time.Month"},
		{"slice", &TypeInfo{Kind: TypeKindSlice, ElemType: str}, "[]string"},
		{"array", &TypeInfo{Kind: TypeKindArray, Len: 2, ElemType: str}, "[2]string"},
		{"map", &TypeInfo{Kind: TypeKindMap, KeyType: str, ElemType: month}, "map[string]time.Month"},
		{"unknown", &TypeInfo{Kind: TypeKindUnknown, GoType: types.Universe.Lookup("any").Type()}, "any"},
		{"unknown without type", &TypeInfo{Kind: TypeKindUnknown}, "<unknown>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeString(tt.typ))
		})
	}
}
