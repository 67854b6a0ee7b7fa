package gen

import (
	"fmt"
	"go/types"
	"sort"

	"cube-generator/internal/analyze"
	"cube-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns each imported package a unique local name.
type importSet struct {
	byPath map[string]importSpec
	names  map[string]string // local name -> path
}

func newImportSet(reserved ...string) *importSet {
	s := &importSet{
		byPath: make(map[string]importSpec),
		names:  make(map[string]string),
	}

	for _, name := range reserved {
		s.names[name] = ""
	}

	return s
}

// add registers pkgPath under its package name, or under name2, name3... when
// that name is taken, and returns the local name to qualify with.
func (s *importSet) add(pkgPath, name string) string {
	if spec, ok := s.byPath[pkgPath]; ok {
		return spec.localName()
	}

	local := name
	for i := 2; ; i++ {
		if _, taken := s.names[local]; !taken {
			break
		}

		local = fmt.Sprintf("%s%d", name, i)
	}

	spec := importSpec{Path: pkgPath}
	if local != common.PkgAlias(pkgPath) {
		spec.Alias = local
	}

	s.byPath[pkgPath] = spec
	s.names[local] = pkgPath

	return local
}

func (i importSpec) localName() string {
	if i.Alias != "" {
		return i.Alias
	}

	return common.PkgAlias(i.Path)
}

// sorted returns the imports ordered by path.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// typeRefString returns the string representation of a type for use in
// generated code living in g.contextPkgPath.
func (g *Generator) typeRefString(t *analyze.TypeInfo, imports *importSet) string {
	if t == nil {
		return common.AnyTypeStr
	}

	// Instantiated generics and anonymous structs are spelled by go/types.
	if t.Generic || (t.Kind == analyze.TypeKindStruct && !t.IsNamed()) {
		return g.goTypeString(t, imports)
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return t.ID.Name

	case analyze.TypeKindPointer:
		return "*" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindSlice:
		return "[]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindArray:
		return fmt.Sprintf("[%d]%s", t.Len, g.typeRefString(t.ElemType, imports))

	case analyze.TypeKindMap:
		return "map[" + g.typeRefString(t.KeyType, imports) + "]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindStruct, analyze.TypeKindExternal, analyze.TypeKindAlias:
		if t.ID.PkgPath == "" || t.ID.PkgPath == g.contextPkgPath {
			return t.ID.Name
		}

		return imports.add(t.ID.PkgPath, pkgName(t)) + "." + t.ID.Name

	default:
		return g.goTypeString(t, imports)
	}
}

// goTypeString spells t through go/types, registering imports on the way.
func (g *Generator) goTypeString(t *analyze.TypeInfo, imports *importSet) string {
	if t.GoType == nil {
		return common.AnyTypeStr
	}

	return types.TypeString(t.GoType, func(p *types.Package) string {
		if p.Path() == g.contextPkgPath {
			return ""
		}

		return imports.add(p.Path(), p.Name())
	})
}

// pkgName returns the declared package name of a named type, falling back to
// the last import path element.
func pkgName(t *analyze.TypeInfo) string {
	if named, ok := t.GoType.(*types.Named); ok && named.Obj().Pkg() != nil {
		return named.Obj().Pkg().Name()
	}

	return common.PkgAlias(t.ID.PkgPath)
}
