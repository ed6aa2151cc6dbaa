package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Codes shared between the decoder, the resolver and the preview server.
const (
	EventSkipped = "EVENT.SKIPPED"
	ChartLoaded  = "CHART.LOADED"
	ChartFailed  = "CHART.FAILED"
	ControlBad   = "CONTROL.UNKNOWN"
	PlaybackEnd  = "PLAYBACK.END"
)

// Skipped reports a chart action that could not be decoded.
func Skipped(index int, eventType string, err error) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     EventSkipped,
		Summary:  fmt.Sprintf("action %d skipped", index),
		Detail:   err.Error(),
		LikelyCauses: []string{
			"eventType not supported",
			"field has the wrong JSON type or an unknown value",
		},
		Evidence: map[string]any{"index": index, "eventType": eventType},
	}
}

// Count returns how many diagnostics have severity s.
func Count(ds []Diagnostic, s Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == s {
			n++
		}
	}
	return n
}
