package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepCopyValue(t *testing.T) {
	t.Run("Should not alias nested containers", func(t *testing.T) {
		src := map[string]any{"a": []any{map[string]any{"b": 1}}}
		dst := DeepCopyValue(src).(map[string]any)
		dst["a"].([]any)[0].(map[string]any)["b"] = 2
		assert.Equal(t, 1, src["a"].([]any)[0].(map[string]any)["b"])
	})
	t.Run("Should pass nil through", func(t *testing.T) {
		assert.Nil(t, DeepCopyValue(nil))
	})
}

func TestDeepCopyMap(t *testing.T) {
	t.Run("Should copy maps recursively", func(t *testing.T) {
		src := map[string]any{"outer": map[string]any{"inner": "x"}}
		dst, err := DeepCopyMap(src)
		require.NoError(t, err)
		dst["outer"].(map[string]any)["inner"] = "y"
		assert.Equal(t, "x", src["outer"].(map[string]any)["inner"])
	})
	t.Run("Should return nil for a nil map", func(t *testing.T) {
		dst, err := DeepCopyMap(nil)
		require.NoError(t, err)
		assert.Nil(t, dst)
	})
}
