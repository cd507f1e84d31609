package summary

import (
	"fmt"
	"strconv"
	"strings"

	"wellrag/internal/domain"
	"wellrag/internal/nodal"
	"wellrag/internal/retriever"
)

// supportQueries are the fixed topical probes used to pull supporting
// sentences out of the report when a retriever is available.
var supportQueries = []string{
	"Executive summary objectives outcomes",
	"Daily operations key events",
	"HSE performance incidents drills",
	"Logging MTI annulus pressure test",
	"Well data casing GRE PBR ESP depths",
}

// highlight is one conditionally-included summary sentence sourced from an
// extracted field.
type highlight struct {
	field  string
	render func(rec domain.Record) string
}

// highlights is evaluated in order; each entry contributes only when its
// source field is non-empty (or true for flags).
var highlights = []highlight{
	{"well_name", func(r domain.Record) string { return "Well: " + r.String("well_name") + "." }},
	{"operation", func(r domain.Record) string { return "Operation: " + r.String("operation") + "." }},
	{"start_of_operation", func(r domain.Record) string { return "Start: " + r.String("start_of_operation") + "." }},
	{"duration", func(r domain.Record) string { return "Duration: " + r.String("duration") + "." }},
	{"hand_over", func(r domain.Record) string { return "Handover: " + r.String("hand_over") + "." }},
	{"packer_set_depth_m", func(r domain.Record) string {
		return "Liner hanger/packer set at " + r.String("packer_set_depth_m") + "."
	}},
	{"pbr_bottom_m", func(r domain.Record) string { return "PBR reference near " + r.String("pbr_bottom_m") + "." }},
	{"esp_installed", func(r domain.Record) string { return "ESP installed." }},
	{"mti_logged", func(r domain.Record) string {
		return "MTI logging completed; annulus pressure test to 10 bar passed."
	}},
	{"hse_incidents", func(r domain.Record) string {
		return "HSE: No incidents reported; drills/toolboxes conducted."
	}},
	{"reservoir_fluid", func(r domain.Record) string { return "Reservoir fluid: " + r.String("reservoir_fluid") + "." }},
	{"reservoir_bottomhole_temp_c", func(r domain.Record) string {
		return "Bottomhole temperature: " + r.String("reservoir_bottomhole_temp_c") + " °C."
	}},
}

func includeHighlight(rec domain.Record, h highlight) bool {
	switch v := rec[h.field].(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		return false
	}
}

// Generate assembles the offline narrative: field highlights in fixed
// order, then the first sentence of the top-ranked chunk for each support
// query, truncated to wordLimit tokens. A nil retriever simply skips the
// supporting sentences.
func Generate(rec domain.Record, rt *retriever.Retriever, wordLimit int) string {
	var parts []string
	for _, h := range highlights {
		if includeHighlight(rec, h) {
			parts = append(parts, h.render(rec))
		}
	}

	if rt != nil {
		for _, q := range supportQueries {
			hits, err := rt.Query(q, 1)
			if err != nil || len(hits) == 0 {
				continue
			}
			if s := FirstSentence(hits[0].Chunk.Text); s != "" {
				parts = append(parts, s)
			}
		}
	}

	return EnforceWordLimit(strings.Join(parts, " "), wordLimit)
}

// AppendOperatingPoint adds the nodal stub's echoed operating point to the
// summary and re-applies the word limit. Summaries without an ok nodal
// result pass through unchanged.
func AppendOperatingPoint(text string, res nodal.Result, wordLimit int) string {
	if res.Status != nodal.StatusOK || res.Results == nil {
		return text
	}
	line := fmt.Sprintf(" Nodal operating point (stub): q ≈ %s m³/h at WHP ≈ %s bar (Tubing ID %s in).",
		trimFloat(res.Results.QM3H), trimFloat(res.Results.WHPBar), trimFloat(res.Results.TubingIDIn))
	return EnforceWordLimit(text+line, wordLimit)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
