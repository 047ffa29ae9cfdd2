package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnyInt(t *testing.T) {
	t.Run("Should parse native and string integers", func(t *testing.T) {
		for _, input := range []any{42, int64(42), float64(42), json.Number("42"), "42"} {
			v, ok := ParseAnyInt(input)
			assert.True(t, ok, "input %#v", input)
			assert.Equal(t, int64(42), v)
		}
	})
	t.Run("Should reject fractional and empty inputs", func(t *testing.T) {
		_, ok := ParseAnyInt(3.5)
		assert.False(t, ok)
		_, ok = ParseAnyInt("")
		assert.False(t, ok)
		_, ok = ParseAnyInt(nil)
		assert.False(t, ok)
	})
}

func TestParseAnyFloat(t *testing.T) {
	t.Run("Should parse numbers in common forms", func(t *testing.T) {
		v, ok := ParseAnyFloat(json.Number("1e2"))
		assert.True(t, ok)
		assert.Equal(t, 100.0, v)
		v, ok = ParseAnyFloat("2.5")
		assert.True(t, ok)
		assert.Equal(t, 2.5, v)
	})
	t.Run("Should reject non-numeric strings", func(t *testing.T) {
		_, ok := ParseAnyFloat("abc")
		assert.False(t, ok)
	})
}

func TestParseAnyBool(t *testing.T) {
	t.Run("Should parse booleans and their string forms", func(t *testing.T) {
		v, ok := ParseAnyBool(true)
		assert.True(t, ok)
		assert.True(t, v)
		v, ok = ParseAnyBool(" false ")
		assert.True(t, ok)
		assert.False(t, v)
	})
	t.Run("Should reject anything else", func(t *testing.T) {
		_, ok := ParseAnyBool("yes")
		assert.False(t, ok)
		_, ok = ParseAnyBool(1)
		assert.False(t, ok)
	})
}
