package option_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-generator/option"
)

func TestOption_ZeroValueIsNone(t *testing.T) {
	t.Parallel()

	var o option.Option[int]
	assert.True(t, o.IsNone())
	assert.False(t, o.IsSome())
	assert.Equal(t, option.None[int](), o)
}

func TestOption_Get(t *testing.T) {
	t.Parallel()

	v, ok := option.Some("F").Get()
	assert.True(t, ok)
	assert.Equal(t, "F", v)

	v, ok = option.None[string]().Get()
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestOption_OrElse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30, option.Some(30).OrElse(-1))
	assert.Equal(t, -1, option.None[int]().OrElse(-1))
}

func TestOption_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Some(F)", option.Some("F").String())
	assert.Equal(t, "Some(30)", option.Some(30).String())
	assert.Equal(t, "None", option.None[float64]().String())
}

func TestOption_Comparable(t *testing.T) {
	t.Parallel()

	// Some(0) and None must not collapse into the same key.
	counts := map[option.Option[int]]int{}
	counts[option.Some(0)]++
	counts[option.None[int]()]++
	counts[option.Some(0)]++

	assert.Len(t, counts, 2)
	assert.Equal(t, 2, counts[option.Some(0)])
	assert.Equal(t, 1, counts[option.None[int]()])
}

func TestOption_JSON(t *testing.T) {
	t.Parallel()

	type row struct {
		Gender option.Option[string] `json:"gender"`
		Age    option.Option[int]    `json:"age"`
	}

	data, err := json.Marshal(row{Gender: option.Some("F")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"gender":"F","age":null}`, string(data))

	var back row
	require.NoError(t, json.Unmarshal([]byte(`{"gender":null,"age":30}`), &back))
	assert.Equal(t, option.None[string](), back.Gender)
	assert.Equal(t, option.Some(30), back.Age)
}

func TestOption_UnmarshalJSON_BadValue(t *testing.T) {
	t.Parallel()

	var o option.Option[int]
	err := json.Unmarshal([]byte(`"thirty"`), &o)
	require.Error(t, err)
}
