package analyze

import (
	"fmt"
	"go/types"
)

// TypeString returns a readable representation of t for reports: named types
// are package qualified, composite types are spelled out.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.ID.Name

	case TypeKindStruct, TypeKindAlias, TypeKindExternal:
		if t.IsNamed() && !t.Generic {
			return t.ID.String()
		}

	case TypeKindPointer:
		return "*" + TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + TypeString(t.ElemType)

	case TypeKindArray:
		return fmt.Sprintf("[%d]%s", t.Len, TypeString(t.ElemType))

	case TypeKindMap:
		return "map[" + TypeString(t.KeyType) + "]" + TypeString(t.ElemType)

	case TypeKindUnknown:
	}

	if t.GoType == nil {
		return "<unknown>"
	}

	return types.TypeString(t.GoType, nil)
}
