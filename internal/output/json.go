package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/railsmonk/svnlens/svn"
)

// JSONHistoryWriter writes revision history as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for revision history.
type JSONHistoryReport struct {
	URL            string         `json:"url"`
	Latest         int            `json:"headRevision"`
	GeneratedAt    string         `json:"generatedAt"`
	TotalRevisions int            `json:"totalRevisions"`
	Revisions      []JSONRevision `json:"revisions"`
}

// JSONRevision is the JSON output structure for a single revision.
type JSONRevision struct {
	Revision int          `json:"revision"`
	Author   string       `json:"author"`
	Date     string       `json:"date,omitempty"`
	Message  string       `json:"message"`
	Changes  []JSONChange `json:"changes"`
}

// JSONChange is the JSON output structure for a single path change.
type JSONChange struct {
	Path         string `json:"path"`
	Kind         string `json:"kind"`
	NodeKind     string `json:"nodeKind"`
	CopyFromPath string `json:"copyFromPath,omitempty"`
	CopyFromRev  *int   `json:"copyFromRev,omitempty"`
}

// Write outputs the revision history report as JSON.
func (w *JSONHistoryWriter) Write(report *HistoryReport, options Options) error {
	revisions := limitRevisions(report.Revisions, options.Max)

	jsonRevisions := make([]JSONRevision, len(revisions))
	for i, rec := range revisions {
		jsonRevisions[i] = makeJSONRevision(rec)
	}

	jsonReport := JSONHistoryReport{
		URL:            report.URL,
		Latest:         report.Latest,
		GeneratedAt:    report.GeneratedAt.Format(time.RFC3339),
		TotalRevisions: len(report.Revisions),
		Revisions:      jsonRevisions,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func makeJSONRevision(rec svn.RevisionRecord) JSONRevision {
	jsonChanges := make([]JSONChange, len(rec.Changes))
	for i, ch := range rec.Changes {
		jsonChange := JSONChange{
			Path:     ch.Path,
			Kind:     ch.Kind.String(),
			NodeKind: ch.NodeKind.String(),
		}
		if ch.CopyFrom != nil {
			rev := ch.CopyFrom.Revision
			jsonChange.CopyFromPath = ch.CopyFrom.Path
			jsonChange.CopyFromRev = &rev
		}
		jsonChanges[i] = jsonChange
	}

	date := ""
	if !rec.Date.IsZero() {
		date = rec.Date.Format(time.RFC3339)
	}
	return JSONRevision{
		Revision: rec.Revision,
		Author:   rec.Author,
		Date:     date,
		Message:  rec.Message,
		Changes:  jsonChanges,
	}
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
