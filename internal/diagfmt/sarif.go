package diagfmt

import (
	"encoding/json"
	"io"

	"purets/internal/diag"
	"purets/internal/source"
)

// sarifLog is a reduced SARIF v2.1.0 document: one run, one tool, one
// result per diagnostic. It omits rule metadata objects and multi-run
// support, which purets has no use for.
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string   `json:"name"`
	Version        string   `json:"version,omitempty"`
	InformationURI string   `json:"informationUri,omitempty"`
	Rules          []string `json:"-"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif renders diagnostics as a SARIF-lite document (v2.1.0 schema, single
// run, no embedded rule catalog). It does not model fix suggestions as
// SARIF fix objects; Diagnostic.Suggestion is folded into the message text.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		text := d.Message
		if d.Suggestion != "" {
			text += " (suggestion: " + d.Suggestion + ")"
		}
		results = append(results, sarifResult{
			RuleID: string(d.RuleID),
			Level:  sarifLevel(d.Severity),
			Message: sarifMessage{
				Text: text,
			},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI: f.FormatPath("relative", fs.BaseDir()),
						},
						Region: sarifRegion{
							StartLine:   start.Line,
							StartColumn: start.Col,
							EndLine:     end.Line,
							EndColumn:   end.Col,
						},
					},
				},
			},
		})
	}

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    meta.ToolName,
						Version: meta.ToolVersion,
					},
				},
				Results: results,
			},
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
