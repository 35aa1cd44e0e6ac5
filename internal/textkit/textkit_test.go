package textkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixGrammarReplacesTriggerWords(t *testing.T) {
	out := FixGrammar("i dont wonna go")

	require.True(t, strings.HasPrefix(out, polishedNotice))
	assert.Equal(t, "I don't want to go", strings.TrimPrefix(out, polishedNotice))
}

func TestFixGrammarCaseInsensitive(t *testing.T) {
	out := FixGrammar("DONT do that, Im sure")

	body := strings.TrimPrefix(out, polishedNotice)
	assert.Equal(t, "don't do that, I'm sure", body)
}

func TestFixGrammarWordBoundaries(t *testing.T) {
	// "im" inside "him" and "important" must not fire.
	out := FixGrammar("tell him this is important")
	require.True(t, strings.HasPrefix(out, noErrorsNotice))
	assert.Equal(t, "tell him this is important", strings.TrimPrefix(out, noErrorsNotice))
}

func TestFixGrammarNoTriggers(t *testing.T) {
	input := "This sentence is already fine."
	out := FixGrammar(input)
	require.True(t, strings.HasPrefix(out, noErrorsNotice))
	assert.Equal(t, input, strings.TrimPrefix(out, noErrorsNotice))
}

func TestFixGrammarDeterministic(t *testing.T) {
	assert.Equal(t, FixGrammar("i gonna win"), FixGrammar("i gonna win"))
}

func TestDraftDeterministic(t *testing.T) {
	a := Draft("growing a vegetable garden")
	b := Draft("growing a vegetable garden")
	assert.Equal(t, a, b)
}

func TestDraftContainsTopicAndTitle(t *testing.T) {
	out := Draft("launching a successful online store in record time")
	assert.Contains(t, out, "Title: launching a successful online store...")
	assert.Contains(t, out, "launching a successful online store in record time")
}
