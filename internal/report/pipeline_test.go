package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wellrag/internal/nodal"
)

const sampleText = `Well Name ACME-12
Operation Workover - ESP replacement
Start of Operation 01 Feb 2024
Duration 14 days
Well Total Depth 2950 m AHGL
Set 9 5/8" NOV liner hanger packer at 2612.0 m AHGL
Ran completion tailpipe with mule shoe at 2588.5 m AHGL
Handed the well over to Operations on 15 Feb 2024
No incidents occurred during the campaign.
Pressure tested annulus to 10 bar with no pressure drop.
Well Bore Fluids: o Brine
Bottom Hole temperature: 104 °C
MTI logged the completion. GRE string run in hole.
`

func TestRunTextFullPipeline(t *testing.T) {
	out, err := RunText(sampleText, Options{PDFPath: "reports/report.pdf", WordLimit: 250})
	if err != nil {
		t.Fatal(err)
	}

	if got := out.DataExtracted.String("well_name"); got != "ACME-12" {
		t.Errorf("well_name = %q", got)
	}
	if len(out.ValidationIssues) != 0 {
		t.Errorf("unexpected validation issues: %v", out.ValidationIssues)
	}
	if out.NodalStatus.Status != nodal.StatusPending {
		t.Errorf("nodal status = %q", out.NodalStatus.Status)
	}
	// Temperature comes from the report; the other five stay open.
	if len(out.NodalStatus.MissingInputs) != 5 {
		t.Errorf("missing inputs = %v", out.NodalStatus.MissingInputs)
	}
	if len(out.QuestionsForUser) != 5 {
		t.Fatalf("questions = %v", out.QuestionsForUser)
	}
	if out.QuestionsForUser[0] != "Please provide **Wellhead pressure bar**." {
		t.Errorf("first question = %q", out.QuestionsForUser[0])
	}
	if !strings.Contains(out.Summary, "Well: ACME-12.") {
		t.Errorf("summary missing well highlight: %q", out.Summary)
	}
	if out.SummaryWords > 250 {
		t.Errorf("summary has %d words", out.SummaryWords)
	}
	if out.Timestamp == "" || out.Inputs.PDF != "report.pdf" || out.Inputs.WordLimit != 250 {
		t.Errorf("run metadata incomplete: %+v", out.Inputs)
	}
}

func TestRunTextWithNodalInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodal.json")
	body := `{
		"wellhead_pressure_bar": 12.0,
		"flow_rate_m3_h": 85.5,
		"tubing_inner_diameter_in": 3.958,
		"fluid_density_kg_m3": 1020,
		"fluid_viscosity_cP": 1.2
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := RunText(sampleText, Options{PDFPath: "report.pdf", WordLimit: 250, NodalJSON: path})
	if err != nil {
		t.Fatal(err)
	}
	if out.NodalStatus.Status != nodal.StatusOK {
		t.Fatalf("nodal status = %q, missing %v", out.NodalStatus.Status, out.NodalStatus.MissingInputs)
	}
	if len(out.QuestionsForUser) != 0 {
		t.Fatalf("questions = %v", out.QuestionsForUser)
	}
	if !strings.Contains(out.Summary, "Nodal operating point (stub)") {
		t.Fatalf("summary missing operating point: %q", out.Summary)
	}
}

func TestRunMissingPDFIsFatal(t *testing.T) {
	_, err := Run(Options{PDFPath: filepath.Join(t.TempDir(), "absent.pdf"), OutDir: t.TempDir(), WordLimit: 100})
	if err == nil {
		t.Fatal("expected error for nonexistent PDF path")
	}
}

func TestRunTextMissingNodalFileKeepsDefaults(t *testing.T) {
	out, err := RunText(sampleText, Options{PDFPath: "r.pdf", WordLimit: 100, NodalJSON: filepath.Join(t.TempDir(), "absent.json")})
	if err != nil {
		t.Fatalf("missing nodal file must not fail the run: %v", err)
	}
	if out.NodalStatus.Status != nodal.StatusPending {
		t.Fatalf("nodal status = %q", out.NodalStatus.Status)
	}
	// The extracted temperature default survives; the rest stay open.
	if len(out.NodalStatus.MissingInputs) != 5 {
		t.Fatalf("missing inputs = %v", out.NodalStatus.MissingInputs)
	}
}

func TestRunTextMalformedNodalFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := RunText(sampleText, Options{PDFPath: "r.pdf", WordLimit: 100, NodalJSON: path})
	if err == nil {
		t.Fatal("expected error for malformed nodal inputs file")
	}
}

func TestRunTextEmptyExtraction(t *testing.T) {
	out, err := RunText("", Options{PDFPath: "empty.pdf", WordLimit: 250})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.ValidationIssues) != 4 {
		t.Errorf("validation issues = %v", out.ValidationIssues)
	}
	if len(out.NodalStatus.MissingInputs) != len(nodal.InputKeys) {
		t.Errorf("missing inputs = %v", out.NodalStatus.MissingInputs)
	}
}

func TestOutputJSONShape(t *testing.T) {
	out, err := RunText(sampleText, Options{PDFPath: "report.pdf", WordLimit: 250})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"timestamp", "inputs", "data_extracted", "validation_issues",
		"nodal_inputs_required", "nodal_status", "questions_for_user",
		"summary_words", "summary",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("output JSON missing key %q", key)
		}
	}
}

func TestQuestionLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"wellhead_pressure_bar", "Wellhead pressure bar"},
		{"fluid_viscosity_cP", "Fluid viscosity cp"},
		{"reservoir_temperature_c", "Reservoir temperature c"},
	}
	for _, tc := range tests {
		if got := questionLabel(tc.in); got != tc.want {
			t.Errorf("questionLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
