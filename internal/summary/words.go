package summary

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`\S+`)
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// EnforceWordLimit truncates text to at most limit whitespace-delimited
// tokens. The check is purely lexical, so it behaves the same regardless of
// language or punctuation, and it is idempotent.
func EnforceWordLimit(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	words := wordRe.FindAllString(s, -1)
	if len(words) > limit {
		words = words[:limit]
	}
	return strings.Join(words, " ")
}

// CountWords counts whitespace-delimited tokens.
func CountWords(s string) int {
	return len(wordRe.FindAllString(s, -1))
}

// FirstSentence returns the first sentence of text, or the trimmed text
// itself when no sentence boundary is found.
func FirstSentence(text string) string {
	if m := sentenceRe.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(text)
}
