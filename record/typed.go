package record

import (
	"fmt"
	"reflect"
	"sync"
)

// Transformation is a Transform bound to its record type.
type Transformation[T any] func(rec T) []Variant

type buildKind int

const (
	buildCube buildKind = iota
	buildRoll
)

type cacheKey struct {
	typ      reflect.Type
	maxArity int
	kind     buildKind
}

// built transformations, keyed by cacheKey. Concurrent first use may build
// twice; LoadOrStore keeps the first and the other is discarded.
var cache sync.Map

func lookup(t reflect.Type, kind buildKind, opts []func(*Options)) (Transform, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	key := cacheKey{typ: t, maxArity: o.MaxArity, kind: kind}
	if tr, ok := cache.Load(key); ok {
		return tr.(Transform), nil
	}

	fl, err := Introspect(t, opts...)
	if err != nil {
		return nil, err
	}

	var tr Transform
	switch kind {
	case buildCube:
		tr = BuildCuber(fl)
	case buildRoll:
		tr = BuildRoller(fl)
	}

	actual, _ := cache.LoadOrStore(key, tr)
	return actual.(Transform), nil
}

func typed[T any](kind buildKind, opts []func(*Options)) (Transformation[T], error) {
	tr, err := lookup(reflect.TypeFor[T](), kind, opts)
	if err != nil {
		return nil, err
	}

	return func(rec T) []Variant { return tr(rec) }, nil
}

// Cuber returns the cached cube transformation for T.
func Cuber[T any](opts ...func(*Options)) (Transformation[T], error) {
	return typed[T](buildCube, opts)
}

// Roller returns the cached roll transformation for T.
func Roller[T any](opts ...func(*Options)) (Transformation[T], error) {
	return typed[T](buildRoll, opts)
}

// MustCuber is like Cuber but panics when T is not a valid record.
func MustCuber[T any](opts ...func(*Options)) Transformation[T] {
	tr, err := Cuber[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("record: cuber for %s: %v", reflect.TypeFor[T](), err))
	}
	return tr
}

// MustRoller is like Roller but panics when T is not a valid record.
func MustRoller[T any](opts ...func(*Options)) Transformation[T] {
	tr, err := Roller[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("record: roller for %s: %v", reflect.TypeFor[T](), err))
	}
	return tr
}
