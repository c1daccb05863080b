package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/railsmonk/svnlens/svn"
)

// CIHistoryWriter writes revision history as NDJSON (one JSON object per line) for CI pipelines.
type CIHistoryWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type           string `json:"type"`
	URL            string `json:"url"`
	Latest         int    `json:"headRevision"`
	TotalRevisions int    `json:"totalRevisions"`
	TotalChanges   int    `json:"totalChanges"`
	AddCount       int    `json:"addCount"`
	EditCount      int    `json:"editCount"`
	DeleteCount    int    `json:"deleteCount"`
}

// CIRevisionEntry represents a single revision entry in CI output.
type CIRevisionEntry struct {
	Type string `json:"type"`
	JSONRevision
}

// Write outputs the revision history report as NDJSON.
func (w *CIHistoryWriter) Write(report *HistoryReport, options Options) error {
	revisions := limitRevisions(report.Revisions, options.Max)

	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Count changes by kind
	var total, adds, edits, deletes int
	for _, rec := range revisions {
		total += len(rec.Changes)
		for _, ch := range rec.Changes {
			switch ch.Kind {
			case svn.ChangeKindAdd, svn.ChangeKindCopy:
				adds++
			case svn.ChangeKindEdit:
				edits++
			case svn.ChangeKindDelete:
				deletes++
			}
		}
	}

	// Write summary line
	summary := CISummary{
		Type:           "summary",
		URL:            report.URL,
		Latest:         report.Latest,
		TotalRevisions: len(revisions),
		TotalChanges:   total,
		AddCount:       adds,
		EditCount:      edits,
		DeleteCount:    deletes,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write revision entries
	for _, rec := range revisions {
		entry := CIRevisionEntry{
			Type:         "revision",
			JSONRevision: makeJSONRevision(rec),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
