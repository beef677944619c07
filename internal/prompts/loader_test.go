package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKeys(t *testing.T) {
	for _, key := range []string{"system", "task_structured", "task_plain", "strict_note", "correction"} {
		tmpl, err := Get("enhance.json", key)
		require.NoError(t, err, "key %s", key)
		assert.NotEmpty(t, tmpl)
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("enhance.json", "nope")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("enhance.json", "nope")
	})
}

func TestFormat(t *testing.T) {
	out := Format("target {{.TargetWords}} words, tone {{.Tone}}", map[string]string{
		"TargetWords": "40",
		"Tone":        "friendly",
	})
	assert.Equal(t, "target 40 words, tone friendly", out)
}

func TestFormat_UnmatchedPlaceholderKept(t *testing.T) {
	out := Format("hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "hello {{.Name}}", out)
}

func TestSystemPromptStatesCountingRule(t *testing.T) {
	system := MustGet("enhance.json", "system")
	assert.Contains(t, system, "ONE word")
	assert.Contains(t, system, "don't")
	assert.Contains(t, system, "NASA")
}
