package pdftext

import (
	"regexp"
	"strings"
)

var (
	runsOfBlanks   = regexp.MustCompile(`[ \t]+`)
	runsOfNewlines = regexp.MustCompile(`\n{3,}`)
)

// CleanSpaces collapses horizontal whitespace runs to a single space and
// caps consecutive blank lines at one, trimming the result.
func CleanSpaces(s string) string {
	s = runsOfBlanks.ReplaceAllString(s, " ")
	s = runsOfNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
