package mapsafe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"int":      3,
		"float":    2.5,
		"str":      "value",
		"bool":     true,
		"duration": "1500ms",
		"seconds":  2,
		"list":     []any{"a", "b"},
		"mixed":    []any{"a", 1},
		"nested":   map[string]any{"k": "v"},
	}

	assert.Equal(t, 3, Get(m, "int", 0))
	assert.Equal(t, 2, Get(m, "float", 0))
	assert.Equal(t, 3.0, Get(m, "int", 0.0))
	assert.Equal(t, "value", Get(m, "str", ""))
	assert.Equal(t, true, Get(m, "bool", false))
	assert.Equal(t, 1500*time.Millisecond, Get(m, "duration", time.Second))
	assert.Equal(t, 2*time.Second, Get(m, "seconds", time.Second))
	assert.Equal(t, []string{"a", "b"}, Get(m, "list", []string(nil)))
	assert.Equal(t, []string{"x"}, Get(m, "mixed", []string{"x"}))
	assert.Equal(t, map[string]any{"k": "v"}, Get(m, "nested", map[string]any(nil)))

	// Missing keys and mismatched types fall back.
	assert.Equal(t, "fallback", Get(m, "missing", "fallback"))
	assert.Equal(t, "fallback", Get(m, "int", "fallback"))
	assert.Equal(t, time.Minute, Get(m, "str", time.Minute))
	assert.Equal(t, 7, Get[int](nil, "int", 7))
}
