package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	list := Builtin()
	require.Len(t, list, 3)

	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"punctuation", "nikud", "sources"}, ids)

	for _, p := range list {
		assert.NoError(t, p.validate(), "built-in %s should be valid", p.ID)
		assert.Equal(t, DefaultModel, p.Model)
	}

	punct := list[0]
	assert.Equal(t, "פיסוק מלא", punct.Name)
	assert.Equal(t, 4000, punct.MaxTokens)
	assert.InDelta(t, 0.1, punct.Temperature, 1e-9)
	assert.Contains(t, punct.SystemPrompt, "פיסוק מלא")
}

func TestRegistry_GetAndList(t *testing.T) {
	r := New(Builtin()...)

	assert.Equal(t, 3, r.Len())

	p, ok := r.Get("nikud")
	require.True(t, ok)
	assert.Equal(t, "הוספת ניקוד", p.Name)

	_, ok = r.Get("unknown_id")
	assert.False(t, ok)

	_, ok = r.Get("")
	assert.False(t, ok)

	listed := r.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "punctuation", listed[0].ID)
	assert.Equal(t, "sources", listed[2].ID)
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := New(Builtin()...)

	listed := r.List()
	listed[0].Name = "mutated"

	p, _ := r.Get("punctuation")
	assert.Equal(t, "פיסוק מלא", p.Name)
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := New(
		Profile{ID: "a", Name: "A"},
		Profile{ID: "b", Name: "B"},
		Profile{ID: "a", Name: "A2"},
	)

	require.Equal(t, 2, r.Len())
	listed := r.List()
	assert.Equal(t, "A2", listed[0].Name)
	assert.Equal(t, "b", listed[1].ID)
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.List())
	_, ok := r.Get("punctuation")
	assert.False(t, ok)
}

const overlayYAML = `
functions:
  - id: translation_aramaic
    name: תרגום לארמית
    description: תרגום טקסט עברי לארמית
    icon: "🔤"
    model: claude-sonnet-4-20250514
    maxTokens: 3000
    temperature: 0.3
    systemPrompt: "תרגם את הטקסט העברי הבא לארמית תלמודית:"
  - id: nikud
    name: ניקוד חלקי
    model: claude-3-5-sonnet-20241022
    maxTokens: 1500
    temperature: 0
    systemPrompt: "נקד רק מילים דו-משמעיות:"
`

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlayYAML), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 4, r.Len())
	listed := r.List()
	assert.Equal(t, "punctuation", listed[0].ID)
	assert.Equal(t, "nikud", listed[1].ID, "replaced built-in keeps its position")
	assert.Equal(t, "translation_aramaic", listed[3].ID, "new ids are appended")

	nikud, _ := r.Get("nikud")
	assert.Equal(t, "ניקוד חלקי", nikud.Name)
	assert.Equal(t, 1500, nikud.MaxTokens)
	assert.Zero(t, nikud.Temperature)
}

func TestLoad_NoPath(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Builtin()), r.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profiles file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed yaml", "functions: [", "parse profiles"},
		{"missing id", "functions:\n  - name: x\n    model: m\n    maxTokens: 1\n    systemPrompt: p\n", "id is required"},
		{"zero tokens", "functions:\n  - id: x\n    name: x\n    model: m\n    maxTokens: 0\n    systemPrompt: p\n", "maxTokens must be positive"},
		{"temperature too high", "functions:\n  - id: x\n    name: x\n    model: m\n    maxTokens: 10\n    temperature: 1.5\n    systemPrompt: p\n", "temperature must be within 0-1"},
		{"missing prompt", "functions:\n  - id: x\n    name: x\n    model: m\n    maxTokens: 10\n", "systemPrompt is required"},
		{"duplicate", "functions:\n  - id: x\n    name: x\n    model: m\n    maxTokens: 10\n    systemPrompt: p\n  - id: x\n    name: y\n    model: m\n    maxTokens: 10\n    systemPrompt: p\n", "duplicate id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
