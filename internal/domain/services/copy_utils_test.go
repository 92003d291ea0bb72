package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CopyFields_Deep(t *testing.T) {
	t.Parallel()

	src := map[string]any{
		"env":   map[string]any{"A": "1"},
		"paths": []any{"a", map[string]any{"b": "c"}},
		"n":     1.0,
	}

	dst := CopyFields(src)
	assert.Equal(t, src, dst)

	dst["env"].(map[string]any)["A"] = "2"
	dst["paths"].([]any)[1].(map[string]any)["b"] = "d"

	assert.Equal(t, "1", src["env"].(map[string]any)["A"])
	assert.Equal(t, "c", src["paths"].([]any)[1].(map[string]any)["b"])
}

func Test_CopyFields_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CopyFields(nil))
}
