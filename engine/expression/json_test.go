package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logicdraft/logicdraft/engine/token"
)

func TestToJSONText(t *testing.T) {
	t.Run("Should reserialize valid literal JSON in compact form", func(t *testing.T) {
		got := ToJSONText([]token.Segment{token.Literal(`{ "Key" :  "Value" }`)})
		assert.Equal(t, `{"Key":"Value"}`, got)
	})
	t.Run("Should return malformed literal JSON unchanged", func(t *testing.T) {
		in := `{"Invalid json}`
		got := ToJSONText([]token.Segment{token.Literal(in)})
		assert.Equal(t, in, got)
	})
	t.Run("Should interpolate a token used as a JSON string value", func(t *testing.T) {
		segments := []token.Segment{
			token.Literal(`{"name": "`),
			stringToken("triggerBody()['name']"),
			token.Literal(`"}`),
		}
		got := ToJSONText(segments)
		assert.Equal(t, `{"name":"@{triggerBody()['name']}"}`, got)
	})
	t.Run("Should escape double quotes of tokens inside open string literals", func(t *testing.T) {
		segments := []token.Segment{
			token.Literal(`{"name": "`),
			stringToken(`body('A')["x"]`),
			token.Literal(`"}`),
		}
		got := ToJSONText(segments)
		assert.Equal(t, `{"name":"@{body('A')[\"x\"]}"}`, got)
	})
	t.Run("Should keep a sole token bare and fall back to raw text", func(t *testing.T) {
		got := ToJSONText([]token.Segment{stringToken("body('A1')")})
		assert.Equal(t, "@body('A1')", got)
	})
	t.Run("Should pass through mixed structural text that is not valid JSON", func(t *testing.T) {
		segments := []token.Segment{
			token.Literal(`{"rows": `),
			stringToken("triggerBody()['rows']"),
			token.Literal(`}`),
		}
		got := ToJSONText(segments)
		// The interpolated token is not a JSON value, so assembly falls back
		// to the concatenated text verbatim.
		assert.Equal(t, `{"rows": @{triggerBody()['rows']}}`, got)
	})
	t.Run("Should preserve number text through reserialization", func(t *testing.T) {
		got := ToJSONText([]token.Segment{token.Literal(`{"n": 1e2}`)})
		assert.Equal(t, `{"n":1e2}`, got)
	})
}

func TestToJSONValue(t *testing.T) {
	t.Run("Should parse valid JSON text", func(t *testing.T) {
		value := ToJSONValue(`{"a": [1, 2]}`)
		m, ok := value.(map[string]any)
		assert.True(t, ok)
		assert.Contains(t, m, "a")
	})
	t.Run("Should return non-JSON text unchanged", func(t *testing.T) {
		value := ToJSONValue("@body('A1')")
		assert.Equal(t, "@body('A1')", value)
	})
	t.Run("Should reject trailing garbage as JSON", func(t *testing.T) {
		value := ToJSONValue(`{"a":1} trailing`)
		assert.Equal(t, `{"a":1} trailing`, value)
	})
}
