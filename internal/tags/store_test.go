package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")
	require.NoError(t, os.WriteFile(path, []byte("OpenAI\n\n# comment\nAnthropic\nOpenAI\n"), 0o644))

	tags, err := LoadTags(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"OpenAI", "Anthropic"}, tags)
}

func TestSaveTagsSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.txt")

	require.NoError(t, SaveTags(path, []string{"Zeta", "Alpha"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alpha\nZeta\n", string(data))
}

func TestMerge(t *testing.T) {
	got := Merge([]string{"OpenAI", "Mistral"}, []string{"Anthropic", "OpenAI", "Cohere"})

	assert.Equal(t, []string{"OpenAI", "Mistral", "Anthropic", "Cohere"}, got)
}

func TestDetectTrailing(t *testing.T) {
	got := DetectTrailing([]string{"OpenAI", "Anthropic,", "x.ai", "Scale AI."})

	assert.Equal(t, []string{"Anthropic,", "Scale AI."}, got)
}
