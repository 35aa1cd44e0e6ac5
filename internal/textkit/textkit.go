// Package textkit implements the local text tools: a table-driven grammar
// fixer and a deterministic draft writer. Both are pure functions; the grammar
// fixer is a known-naive find/replace heuristic, not a grammar engine.
package textkit

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

const (
	polishedNotice = "We've polished your text for better grammar and flow:\n\n"
	noErrorsNotice = "No errors detected! Your text looks great. \n\n"
)

// correction is one whole-word, case-insensitive find/replace pair. The table
// is applied in order over the whole input.
type correction struct {
	pattern *regexp.Regexp
	replace string
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

var corrections = []correction{
	{wordPattern("i"), "I"},
	{wordPattern("dont"), "don't"},
	{wordPattern("cant"), "can't"},
	{wordPattern("wonna"), "want to"},
	{wordPattern("gonna"), "going to"},
	{wordPattern("im"), "I'm"},
	{wordPattern("thanks"), "Thank you,"},
}

// FixGrammar applies the correction table to text. The result is prefixed
// with a polished notice when anything changed, or a no-errors notice when
// the text came back untouched.
func FixGrammar(text string) string {
	fixed := text
	for _, c := range corrections {
		fixed = c.pattern.ReplaceAllString(fixed, c.replace)
	}
	if fixed == text {
		return noErrorsNotice + text
	}
	return polishedNotice + fixed
}

var draftIntros = []string{
	"Sure! Here is a professionally written draft for you:\n\n",
	"I've generated this content based on your request:\n\n",
	"Great topic! Here's a creative take on it:\n\n",
}

// Draft expands a topic into a structured piece of copy. The intro is chosen
// by hashing the topic so identical requests produce identical drafts.
func Draft(topic string) string {
	h := fnv.New32a()
	h.Write([]byte(topic))
	intro := draftIntros[int(h.Sum32())%len(draftIntros)]

	words := strings.Fields(topic)
	if len(words) > 5 {
		words = words[:5]
	}
	title := strings.Join(words, " ")

	return intro + fmt.Sprintf(
		"Title: %s...\n\nIn today's fast-paced digital landscape, %s has become an increasingly significant subject. "+
			"From a professional standpoint, addressing the nuances of this topic is essential for achieving long-term success. \n\n"+
			"Key areas to consider:\n1. Strategic Implementation\n2. User Engagement Optimization\n3. Scalability and Efficiency\n\n"+
			"In conclusion, mastering %s requires a blend of innovation and consistent effort. "+
			"We hope this draft helps you articulate your vision clearly.",
		title, topic, topic)
}
