package fields

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"wellrag/internal/domain"
)

var depthRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*m`)

// depthFields are the depth-carrying fields checked for plausibility, in
// reporting order.
var depthFields = []string{"packer_set_depth_m", "pbr_bottom_m"}

// ParseDepthM parses a leading decimal number followed by a length unit,
// returning NaN when no depth can be read. Decimal commas are accepted.
func ParseDepthM(val string) float64 {
	if val == "" {
		return math.NaN()
	}
	m := depthRe.FindStringSubmatch(strings.ReplaceAll(val, ",", "."))
	if m == nil {
		return math.NaN()
	}
	d, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.NaN()
	}
	return d
}

// Validate checks the extracted record for missing or implausible values
// and returns human-readable advisory issues. An empty result means no
// issues were found. Validate never fails and never blocks the pipeline.
func Validate(rec domain.Record) []string {
	var issues []string
	for _, k := range depthFields {
		v := rec.String(k)
		d := ParseDepthM(v)
		switch {
		case math.IsNaN(d):
			issues = append(issues, fmt.Sprintf("Missing or unparsable depth for %s.", k))
		case !(d > 0 && d < 5000):
			// Plausible onshore/offshore completion depths in meters
			issues = append(issues, fmt.Sprintf("Unusual depth for %s: %s", k, v))
		}
	}

	if rec.String("start_of_operation") == "" {
		issues = append(issues, "Start of Operation date not found.")
	}
	if rec.String("hand_over") == "" {
		issues = append(issues, "Hand-over to Operations date not found.")
	}
	return issues
}
