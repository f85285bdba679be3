package diagfmt

import (
	"encoding/json"
	"io"

	"stellar/internal/diag"
	"stellar/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

// SarifRunMeta describes the tool run a SARIF log belongs to.
type SarifRunMeta struct {
	ToolName    string
	ToolVersion string
	// RunID is stamped into automationDetails.id, e.g. the session UUID.
	RunID    string
	PathMode PathMode
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool        `json:"tool"`
	Automation *sarifAutomation `json:"automationDetails,omitempty"`
	Results    []sarifResult    `json:"results"`
}

type sarifAutomation struct {
	ID string `json:"id"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
	FullDescription  sarifMessage `json:"fullDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	ID       int           `json:"id,omitempty"`
	Physical sarifPhysical `json:"physicalLocation"`
	Message  *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

func sarifLoc(fs *source.FileSet, sp source.Span, mode PathMode) sarifLocation {
	start, end := fs.Resolve(sp)
	return sarifLocation{Physical: sarifPhysical{
		Artifact: sarifArtifact{URI: formatPath(fs, sp.File, mode)},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
			ByteOffset:  sp.Start,
			ByteLength:  sp.Len(),
		},
	}}
}

// Sarif writes the bag as a SARIF 2.1.0 log with one run. Every known
// code is listed as a rule; the primary label is the result location and
// secondary labels become related locations.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	codes := diag.Codes()
	rules := make([]sarifRule, 0, len(codes))
	for _, c := range codes {
		rules = append(rules, sarifRule{
			ID:               c.ID(),
			Name:             c.Title(),
			ShortDescription: sarifMessage{Text: c.Title()},
			FullDescription:  sarifMessage{Text: c.Explain()},
		})
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}
	if meta.RunID != "" {
		run.Automation = &sarifAutomation{ID: meta.ToolName + "/" + meta.RunID}
	}

	for _, d := range bag.Items() {
		msg := d.Message
		for _, n := range d.Notes {
			msg += "\n" + n
		}
		res := sarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: int(d.Code),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: msg},
			Locations: []sarifLocation{sarifLoc(fs, d.Span(), meta.PathMode)},
		}
		for _, l := range d.Labels {
			if l.Role != diag.RoleSecondary {
				continue
			}
			loc := sarifLoc(fs, l.Span, meta.PathMode)
			loc.ID = len(res.RelatedLocations) + 1
			if l.Text != "" {
				loc.Message = &sarifMessage{Text: l.Text}
			}
			res.RelatedLocations = append(res.RelatedLocations, loc)
		}
		run.Results = append(run.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
