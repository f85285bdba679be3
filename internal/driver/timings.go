package driver

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"stellar/internal/observ"
)

// TimingReport is the machine-readable form of --timings.
type TimingReport struct {
	Session string               `json:"session" yaml:"session"`
	Command string               `json:"command" yaml:"command"`
	Path    string               `json:"path,omitempty" yaml:"path,omitempty"`
	TotalMS float64              `json:"total_ms" yaml:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases" yaml:"phases"`
}

func (s *Session) Timings(command, path string) TimingReport {
	r := s.Timer.Report()
	return TimingReport{
		Session: s.ID.String(),
		Command: command,
		Path:    path,
		TotalMS: r.TotalMS,
		Phases:  r.Phases,
	}
}

// WriteTimings prints the report in the requested format: "json", "yaml",
// anything else gives the text summary.
func (s *Session) WriteTimings(w io.Writer, format, command, path string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Timings(command, path))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.Timings(command, path)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return s.Timer.WriteSummary(w)
	}
}
