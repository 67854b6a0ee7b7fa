package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"cube-generator/internal/match"
	"cube-generator/record"
	"cube-generator/utils"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	ErrTypeNotFound  = errors.New("type not found")
	ErrAmbiguousType = errors.New("ambiguous type name")
)

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/census", "cube-generator/examples/census").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// Register every root package first so that named types from any of them
	// are not mistaken for external ones.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  packageDir(pkg),
		}
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

// processPackage extracts types from a loaded package. Unexported types are
// included: generated code lives next to them.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := a.graph.Packages[pkg.PkgPath]

	scope := pkg.Types.Scope()
	pkgInfo.Scope = scope.Names()

	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		// Aliases share the TypeInfo of their target, keep its identity.
		typeInfo := a.analyzeType(typeName.Type())
		if !typeInfo.IsNamed() {
			typeInfo.ID = typeID
		}

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: tt.Name()}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())
		info.Len = tt.Len()

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, functions, type parameters: rendered from GoType.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	// Predeclared named types (error, comparable) have no package.
	if obj.Pkg() == nil {
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: obj.Name()}

		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}
	info.Generic = named.TypeParams().Len() > 0 || named.TypeArgs().Len() > 0

	if a.isExternalPackage(obj.Pkg().Path()) {
		info.Kind = TypeKindExternal

		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else in our packages
		// (e.g., type Region string)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type, in declaration order.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// ResolveType finds a type among the loaded packages. Name is either a bare
// type name or "pkgpath.Name".
func (a *Analyzer) ResolveType(name string) (TypeID, error) {
	if dot := strings.LastIndex(name, "."); dot > 0 {
		id := TypeID{PkgPath: name[:dot], Name: name[dot+1:]}
		if a.graph.GetType(id) == nil {
			return TypeID{}, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
		}

		return id, nil
	}

	var (
		found []TypeID
		known []string
	)

	for _, pkg := range a.graph.Packages {
		for _, id := range pkg.Types {
			if id.Name == name {
				found = append(found, id)
			}

			known = append(known, id.Name)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil

	case 0:
		if suggestions := match.Suggest(name, known, maxSuggestions); len(suggestions) > 0 {
			return TypeID{}, fmt.Errorf("%w: %s (did you mean %s?)",
				ErrTypeNotFound, name, strings.Join(suggestions, ", "))
		}

		return TypeID{}, fmt.Errorf("%w: %s", ErrTypeNotFound, name)

	default:
		paths := make([]string, len(found))
		for i, id := range found {
			paths[i] = id.String()
		}

		sort.Strings(paths)

		return TypeID{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousType, name, strings.Join(paths, ", "))
	}
}

const maxSuggestions = 3

// Record validates that id names a struct usable for cube/roll generation and
// returns its field list.
func (a *Analyzer) Record(id TypeID, maxArity int) (*Record, error) {
	if !utils.IsInRange(1, maxArity, record.MaxSupportedArity) {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)",
			record.ErrInvalidArity, maxArity, record.MaxSupportedArity)
	}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	if info.Generic {
		return nil, fmt.Errorf("%w: %s is generic", record.ErrNotARecordType, id)
	}

	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("%w: %s is %s", record.ErrNotARecordType, id, info.Kind)
	}

	fields := make([]FieldInfo, 0, len(info.Fields))
	for _, f := range info.Fields {
		if f.Name != "_" {
			fields = append(fields, f)
		}
	}

	switch n := len(fields); {
	case n == 0:
		return nil, fmt.Errorf("%w: %s", record.ErrEmptyRecord, id)
	case n > maxArity:
		return nil, fmt.Errorf("%w: %s has %d fields, maximum is %d", record.ErrArityTooLarge, id, n, maxArity)
	}

	pkg := a.graph.Packages[id.PkgPath]

	return &Record{
		ID:       id,
		PkgName:  pkg.Name,
		Dir:      pkg.Dir,
		Type:     info,
		Fields:   fields,
		Reserved: append([]string(nil), pkg.Scope...),
	}, nil
}
