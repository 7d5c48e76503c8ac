package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMatchingWholeWords(t *testing.T) {
	m := NewMatcher([]string{"OpenAI", "Scale"}, false, false)

	found := m.FindMatching("OpenAI announced a deal; Scaleway was not involved.")

	// "Scale" must not match inside "Scaleway".
	assert.Equal(t, []string{"OpenAI"}, found)
}

func TestFindMatchingCyrillic(t *testing.T) {
	m := NewMatcher([]string{"Яндекс", "Сбер", "OpenAI"}, false, false)

	found := m.FindMatching("Сегодня Яндекс и OpenAI объявили о Сбербанке.")

	// "Сбер" must not match inside "Сбербанке".
	assert.Equal(t, []string{"Яндекс", "OpenAI"}, found)
}

func TestFindMatchingCaseInsensitiveByDefault(t *testing.T) {
	m := NewMatcher([]string{"DeepMind"}, false, false)

	assert.Equal(t, []string{"DeepMind"}, m.FindMatching("a deepmind paper"))

	strict := NewMatcher([]string{"DeepMind"}, true, false)
	assert.Empty(t, strict.FindMatching("a deepmind paper"))
}

func TestFindMatchingTrailingPunctuation(t *testing.T) {
	// The tag list entry carries a stray comma.
	m := NewMatcher([]string{"Anthropic,"}, false, false)

	found := m.FindMatching("Anthropic released a model.")

	// Reported under its original spelling.
	assert.Equal(t, []string{"Anthropic,"}, found)

	keep := NewMatcher([]string{"Anthropic,"}, false, true)
	assert.Empty(t, keep.FindMatching("Anthropic released a model."))
}

func TestFindMatchingPreservesTagOrder(t *testing.T) {
	m := NewMatcher([]string{"Zebra", "Alpha"}, false, false)

	assert.Equal(t, []string{"Zebra", "Alpha"}, m.FindMatching("Alpha met Zebra"))
}

func TestFirstParagraph(t *testing.T) {
	body := "# Heading\n\n![img](https://e.com/a.png)\n\nThe actual opening paragraph.\n\nSecond."

	assert.Equal(t, "The actual opening paragraph.", FirstParagraph(body))
	assert.Empty(t, FirstParagraph(""))
}
