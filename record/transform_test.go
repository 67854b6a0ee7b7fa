package record_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-generator/option"
	"cube-generator/record"
)

func render(vs []record.Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestBuildCuber_Person(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[person]()
	require.NoError(t, err)

	got := record.BuildCuber(fl)(person{Gender: "F", Age: 30})
	assert.Equal(t, []string{
		"(Some(F), Some(30))",
		"(Some(F), None)",
		"(None, Some(30))",
		"(None, None)",
	}, render(got))
}

func TestBuildRoller_Person(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[person]()
	require.NoError(t, err)

	got := record.BuildRoller(fl)(person{Gender: "F", Age: 30})
	assert.Equal(t, []string{
		"(None, None)",
		"(Some(F), None)",
		"(Some(F), Some(30))",
	}, render(got))
}

func TestBuildRoller_Triple(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[triple]()
	require.NoError(t, err)

	got := record.BuildRoller(fl)(triple{A: 1, B: 2, C: 3})
	require.Len(t, got, 4)
	assert.Equal(t, []string{
		"(None, None, None)",
		"(Some(1), None, None)",
		"(Some(1), Some(2), None)",
		"(Some(1), Some(2), Some(3))",
	}, render(got))

	v, ok := got[2].Get("B")
	require.True(t, ok)
	assert.Equal(t, option.Some[any](2), v)

	v, ok = got[2].Get("C")
	require.True(t, ok)
	assert.True(t, v.IsNone())
}

func TestBuildCuber_UnexportedField(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[hidden]()
	require.NoError(t, err)

	got := record.BuildCuber(fl)(hidden{name: "x", Score: 1.5})
	assert.Equal(t, []string{
		"(Some(x), Some(1.5))",
		"(Some(x), None)",
		"(None, Some(1.5))",
		"(None, None)",
	}, render(got))
}

func TestBuildCuber_BlankFields(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[padded]()
	require.NoError(t, err)

	in := padded{Region: "North", Age: 42}

	cube := record.BuildCuber(fl)(in)
	require.Len(t, cube, 4)
	assert.Equal(t, "(Some(North), None)", cube[1].String())

	roll := record.BuildRoller(fl)(in)
	require.Len(t, roll, 3)
	age, ok := roll[2].Get("Age")
	require.True(t, ok)
	assert.Equal(t, option.Some[any](42), age)
}

func TestTransform_WrongTypePanics(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[person]()
	require.NoError(t, err)

	cube := record.BuildCuber(fl)
	assert.Panics(t, func() { cube(triple{}) })
	assert.Panics(t, func() { cube(&person{}) })
	assert.Panics(t, func() { cube(nil) })
}

func TestCubeAndRoll_Properties(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 10; n++ {
		t.Run(fmt.Sprintf("arity %d", n), func(t *testing.T) {
			t.Parallel()

			typ := structOfArity(n)
			fl, err := record.Introspect(typ)
			require.NoError(t, err)

			rec := valueOfArity(typ)
			cube := record.BuildCuber(fl)(rec)
			roll := record.BuildRoller(fl)(rec)

			require.Len(t, cube, 1<<n)
			require.Len(t, roll, n+1)

			// Nested-loop order: variant k is absent exactly where k has bits set,
			// reading the first field from the most significant bit.
			masks := make(map[uint64]bool, len(cube))
			for k, v := range cube {
				require.Equal(t, n, v.Len())
				for i := range n {
					wantPresent := k>>(n-1-i)&1 == 0
					got := v.At(i)
					if !assert.Equal(t, wantPresent, got.IsSome(), "cube[%d] field %d", k, i) {
						t.Log(spew.Sdump(v.Values()))
					}
					if wantPresent {
						assert.Equal(t, option.Some[any](i+1), got)
					}
				}
				masks[v.Mask()] = true
			}
			assert.Len(t, masks, 1<<n, "cube variants must be pairwise distinct")

			for k, v := range roll {
				for i := range n {
					if i < k {
						assert.Equal(t, option.Some[any](i+1), v.At(i), "roll[%d] field %d", k, i)
					} else {
						assert.True(t, v.At(i).IsNone(), "roll[%d] field %d", k, i)
					}
				}
			}

			for _, r := range roll {
				found := false
				for _, c := range cube {
					if r.Equal(c) {
						found = true
						break
					}
				}
				assert.True(t, found, "roll variant %s missing from cube", r)
			}
		})
	}
}

func TestTransform_Deterministic(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[triple]()
	require.NoError(t, err)

	cube := record.BuildCuber(fl)
	roll := record.BuildRoller(fl)
	rec := triple{A: 7, B: 8, C: 9}

	assert.Equal(t, render(cube(rec)), render(cube(rec)))
	assert.Equal(t, render(roll(rec)), render(roll(rec)))
}

func TestBuildRoller_MaxArity(t *testing.T) {
	t.Parallel()

	typ := structOfArity(record.DefaultMaxArity)
	fl, err := record.Introspect(typ)
	require.NoError(t, err)

	roll := record.BuildRoller(fl)(valueOfArity(typ))
	require.Len(t, roll, record.DefaultMaxArity+1)
	assert.Equal(t, uint64(0), roll[0].Mask())
	assert.Equal(t, uint64(1)<<record.DefaultMaxArity-1, roll[record.DefaultMaxArity].Mask())
}

func TestVariant_Accessors(t *testing.T) {
	t.Parallel()

	fl, err := record.IntrospectFor[person]()
	require.NoError(t, err)

	cube := record.BuildCuber(fl)(person{Gender: "M", Age: 41})
	v := cube[2] // (None, Some(41))

	assert.Equal(t, fl.Names(), v.Fields().Names())
	assert.Equal(t, uint64(0b10), v.Mask())

	_, ok := v.Get("Unknown")
	assert.False(t, ok)

	values := v.Values()
	values[1] = option.None[any]()
	assert.True(t, v.At(1).IsSome(), "Values must return a copy")

	assert.True(t, v.Equal(cube[2]))
	assert.False(t, v.Equal(cube[1]))
}

func TestVariant_EqualDeep(t *testing.T) {
	t.Parallel()

	type tagged struct {
		Tags []string
		N    int
	}

	fl, err := record.IntrospectFor[tagged]()
	require.NoError(t, err)

	cube := record.BuildCuber(fl)
	a := cube(tagged{Tags: []string{"x"}, N: 1})
	b := cube(tagged{Tags: []string{"x"}, N: 1})
	c := cube(tagged{Tags: []string{"y"}, N: 1})

	assert.True(t, a[0].Equal(b[0]))
	assert.False(t, a[0].Equal(c[0]))
	// Tags absent on both sides.
	assert.True(t, a[2].Equal(c[2]))
}

func TestCuber_Typed(t *testing.T) {
	t.Parallel()

	cube, err := record.Cuber[person]()
	require.NoError(t, err)

	roll, err := record.Roller[person]()
	require.NoError(t, err)

	rec := person{Gender: "F", Age: 30}
	assert.Len(t, cube(rec), 4)
	assert.Equal(t, []string{"(None, None)", "(Some(F), None)", "(Some(F), Some(30))"}, render(roll(rec)))
}

func TestCuber_TypedErrors(t *testing.T) {
	t.Parallel()

	_, err := record.Cuber[empty]()
	require.ErrorIs(t, err, record.ErrEmptyRecord)

	_, err = record.Roller[map[string]int]()
	require.ErrorIs(t, err, record.ErrNotARecordType)

	_, err = record.Roller[triple](record.WithMaxArity(2))
	require.ErrorIs(t, err, record.ErrArityTooLarge)

	// A different max arity is a different cache entry.
	_, err = record.Roller[triple](record.WithMaxArity(3))
	require.NoError(t, err)

	assert.Panics(t, func() { record.MustCuber[empty]() })
	assert.Panics(t, func() { record.MustRoller[*person]() })
	assert.NotPanics(t, func() { record.MustRoller[person]() })
}

func TestCuber_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()

	type probe struct {
		Region  string
		Product string
		Year    int
	}

	const workers = 16

	var wg sync.WaitGroup
	results := make([][]string, workers)
	errs := make([]error, workers)

	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cube, err := record.Cuber[probe]()
			if err != nil {
				errs[w] = err
				return
			}
			results[w] = render(cube(probe{Region: "EU", Product: "tea", Year: 2024}))
		}()
	}
	wg.Wait()

	for w := range workers {
		require.NoError(t, errs[w])
		require.Len(t, results[w], 8)
		assert.Equal(t, results[0], results[w])
	}
}
