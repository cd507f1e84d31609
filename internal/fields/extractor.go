package fields

import (
	"regexp"
	"strings"

	"wellrag/internal/domain"
)

// Parse applies the report rule table to raw text and returns a complete
// record: every field of the table is present, with "" or false when its
// patterns did not match. Parse is total; it never fails, not even on empty
// input.
func Parse(text string) domain.Record {
	rec := make(domain.Record, len(reportRules))
	for _, rule := range reportRules {
		switch rule.Kind {
		case LabeledLine:
			rec[rule.Field] = firstGroup(rule.Patterns, text)
		case KeywordFlag:
			rec[rule.Field] = anyMatch(rule.Patterns, text)
		case LiteralOnMatch:
			if anyMatch(rule.Patterns, text) {
				rec[rule.Field] = rule.Literal
			} else {
				rec[rule.Field] = ""
			}
		}
	}
	return rec
}

func firstGroup(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
