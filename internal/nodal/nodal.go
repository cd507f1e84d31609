package nodal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"wellrag/internal/domain"
)

// InputKeys is the canonical six-key parameter set, in reporting order.
// Missing-input lists always follow this order.
var InputKeys = []string{
	"wellhead_pressure_bar",
	"flow_rate_m3_h",
	"tubing_inner_diameter_in",
	"fluid_density_kg_m3",
	"fluid_viscosity_cP",
	"reservoir_temperature_c",
}

// Inputs maps each parameter to its value; nil means not provided.
type Inputs map[string]*float64

// StatusPending and StatusOK are the only two nodal result states.
const (
	StatusPending = "pending_inputs"
	StatusOK      = "ok"
)

// OperatingPoint echoes the subset of inputs a real nodal solver would
// report its operating point in.
type OperatingPoint struct {
	QM3H       float64 `json:"q_m3_h"`
	WHPBar     float64 `json:"whp_bar"`
	TubingIDIn float64 `json:"tubing_id_in"`
}

// Result is the outcome of the nodal stub: either pending_inputs with the
// exact list of missing keys, or ok with an echoed operating point.
type Result struct {
	Status        string          `json:"status"`
	MissingInputs []string        `json:"missing_inputs"`
	Message       string          `json:"message"`
	Results       *OperatingPoint `json:"results"`
}

// DefaultInputs builds the six-key input set with every value unset except
// the reservoir temperature, which is pre-populated from the extracted
// bottomhole temperature when one was found.
func DefaultInputs(rec domain.Record) Inputs {
	in := make(Inputs, len(InputKeys))
	for _, k := range InputKeys {
		in[k] = nil
	}
	if t := rec.String("reservoir_bottomhole_temp_c"); t != "" {
		if d, err := strconv.ParseFloat(t, 64); err == nil {
			in["reservoir_temperature_c"] = &d
		}
	}
	return in
}

// MergeJSONFile overlays values from a flat JSON object onto the inputs.
// Only the six known keys are read; unknown keys are ignored, absent keys
// keep their defaults. A nonexistent file also keeps the defaults; only a
// malformed file is the caller's error to surface.
func (in Inputs) MergeJSONFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read nodal inputs: %w", err)
	}
	var provided map[string]*float64
	if err := json.Unmarshal(raw, &provided); err != nil {
		return fmt.Errorf("parse nodal inputs: %w", err)
	}
	for _, k := range InputKeys {
		if v, ok := provided[k]; ok {
			in[k] = v
		}
	}
	return nil
}

// Run is a placeholder for nodal analysis. It does not compute anything:
// with all six inputs present it echoes flow rate, wellhead pressure and
// tubing inner diameter back as the "operating point"; otherwise it reports
// which inputs are still missing. Consumers must not treat the results as a
// solved system curve.
func Run(in Inputs) Result {
	var missing []string
	for _, k := range InputKeys {
		v := in[k]
		if v == nil || math.IsNaN(*v) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Result{
			Status:        StatusPending,
			MissingInputs: missing,
			Message:       "Provide missing nodal inputs to compute system curve and operating point.",
		}
	}
	return Result{
		Status:        StatusOK,
		MissingInputs: []string{},
		Message:       "Computed operating point (placeholder).",
		Results: &OperatingPoint{
			QM3H:       *in["flow_rate_m3_h"],
			WHPBar:     *in["wellhead_pressure_bar"],
			TubingIDIn: *in["tubing_inner_diameter_in"],
		},
	}
}

// MarshalJSON renders the inputs with the canonical key order preserved.
func (in Inputs) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range InputKeys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, _ := json.Marshal(k)
		buf = append(buf, kb...)
		buf = append(buf, ':')
		if v := in[k]; v == nil || math.IsNaN(*v) {
			buf = append(buf, []byte("null")...)
		} else {
			vb, _ := json.Marshal(*v)
			buf = append(buf, vb...)
		}
	}
	return append(buf, '}'), nil
}
