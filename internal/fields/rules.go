package fields

import "regexp"

// Kind selects how a rule interprets its patterns.
type Kind int

const (
	// LabeledLine captures the first group of the first matching pattern,
	// typically the remainder of a line after a known label.
	LabeledLine Kind = iota
	// KeywordFlag yields true when the pattern matches anywhere.
	KeywordFlag
	// LiteralOnMatch yields a fixed literal value when the pattern matches,
	// "" otherwise.
	LiteralOnMatch
)

// Rule is one entry in the extraction table. Rules are independent of each
// other; later patterns within a rule act as fallbacks for earlier ones.
type Rule struct {
	Field    string
	Kind     Kind
	Patterns []*regexp.Regexp
	Literal  string
}

func rx(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// reportRules is the fixed, ordered rule table for completion/workover
// reports. The order must not change: it fixes both output reproducibility
// and the fallback relationships between near-duplicate patterns.
var reportRules = []Rule{
	{Field: "well_name", Kind: LabeledLine, Patterns: rx(`(?i)Well Name\s+([^\n]+)`)},
	{Field: "operation", Kind: LabeledLine, Patterns: rx(`(?i)Operation\s+([^\n]+)`)},
	{Field: "start_of_operation", Kind: LabeledLine, Patterns: rx(`(?i)Start of Operation\s+([^\n]+)`)},
	{Field: "duration", Kind: LabeledLine, Patterns: rx(`(?i)Duration\s+([^\n]+)`)},
	{Field: "total_depth", Kind: LabeledLine, Patterns: rx(`(?i)Well Total Depth\s+([^\n]+)`)},
	{Field: "packer_set_depth_m", Kind: LabeledLine, Patterns: rx(
		`(?i)Set\s+9\s*5/8[”"]?\s+.*?at\s+([0-9\.]+\s*m\s*AHGL)`,
		`(?i)Set\s+9\s*5/8[”"]?\s+NOV liner hanger.*?at\s+([0-9\.]+\s*m\s*AHGL)`,
	)},
	{Field: "pbr_bottom_m", Kind: LabeledLine, Patterns: rx(
		`(?i)mule shoe at\s+([0-9\.]+\s*m)\s*AHB?GL`,
		`(?i)bottom of (?:the )?PBR.*?([0-9\.]+\s*m\s*AHGL)`,
	)},
	{Field: "hand_over", Kind: LabeledLine, Patterns: rx(`(?i)handed.*?to Operations on\s+([^\n]+)`)},
	{Field: "hse_incidents", Kind: LiteralOnMatch, Patterns: rx(`(?i)No incidents`), Literal: "None"},
	{Field: "esp_installed", Kind: KeywordFlag, Patterns: rx(`\bESP\b`)},
	{Field: "gre_string", Kind: KeywordFlag, Patterns: rx(`\bGRE\b`)},
	{Field: "mti_logged", Kind: KeywordFlag, Patterns: rx(`\bMTI\b`)},
	{Field: "press_test_annulus", Kind: LiteralOnMatch, Patterns: rx(`(?i)Pressure tested annulus to 10 bar`), Literal: "10 bar"},
	{Field: "reservoir_fluid", Kind: LiteralOnMatch, Patterns: rx(`(?i)Well Bore Fluids:\s*o\s*Brine`), Literal: "Brine"},
	{Field: "reservoir_bottomhole_temp_c", Kind: LabeledLine, Patterns: rx(`(?i)Bottom Hole temperature[:\s]*([0-9]+)\s*°C`)},
}

// FieldNames returns the field names of the rule table in evaluation order.
func FieldNames() []string {
	names := make([]string, len(reportRules))
	for i, r := range reportRules {
		names[i] = r.Field
	}
	return names
}
