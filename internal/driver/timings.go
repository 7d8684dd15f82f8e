package driver

import (
	"encoding/json"
	"fmt"

	"flint/internal/diag"
	"flint/internal/observ"
	"flint/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic records pipeline timings as an info diagnostic so
// every output format that renders the bag carries them.
func appendTimingDiagnostic(bag *diag.Bag, path string, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{
		Kind:    "pipeline",
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}

	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
	}
	if data, err := json.Marshal(payload); err == nil {
		entry.Notes = []diag.Note{{Span: source.Span{}, Msg: string(data)}}
	}
	bag.Add(entry)
}
