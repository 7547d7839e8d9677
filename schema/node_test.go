package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeMapString(t *testing.T) {
	node := NodeMap{
		"format":     "date_optional_time",
		"null_value": 1420070400000,
		"boost":      2.5,
		"strict":     true,
		"explicit":   nil,
	}

	s, ok := node.String("format")
	assert.True(t, ok)
	assert.Equal(t, "date_optional_time", s)

	s, ok = node.String("null_value")
	assert.True(t, ok)
	assert.Equal(t, "1420070400000", s)

	s, ok = node.String("boost")
	assert.True(t, ok)
	assert.Equal(t, "2.5", s)

	s, ok = node.String("strict")
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = node.String("explicit")
	assert.False(t, ok)

	_, ok = node.String("missing")
	assert.False(t, ok)
}

func TestNodeMapNumbers(t *testing.T) {
	node := NodeMap{
		"step_int":    8,
		"step_float":  8.0,
		"step_string": "8",
		"factor":      2.5,
		"bad":         "nope",
	}

	for _, key := range []string{"step_int", "step_float", "step_string"} {
		i, ok := node.Int(key)
		assert.True(t, ok, key)
		assert.Equal(t, 8, i, key)
	}

	f, ok := node.Float("factor")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	f, ok = node.Float("step_int")
	assert.True(t, ok)
	assert.Equal(t, 8.0, f)

	_, ok = node.Int("bad")
	assert.False(t, ok)
	_, ok = node.Float("bad")
	assert.False(t, ok)
}

func TestNodeMapBool(t *testing.T) {
	node := NodeMap{"a": true, "b": "false", "c": 1}

	b, ok := node.Bool("a")
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = node.Bool("b")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = node.Bool("c")
	assert.False(t, ok)
}

func TestNodeMapNullness(t *testing.T) {
	node := NodeMap{"present": "x", "null": nil}

	assert.True(t, node.Has("present"))
	assert.True(t, node.Has("null"))
	assert.False(t, node.Has("absent"))

	assert.False(t, node.IsNull("present"))
	assert.True(t, node.IsNull("null"))
	assert.False(t, node.IsNull("absent"))
}
