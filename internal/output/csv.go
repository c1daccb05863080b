package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVHistoryWriter writes revision history as CSV, one row per path change.
type CSVHistoryWriter struct{}

// Write outputs the revision history report as CSV.
func (w *CSVHistoryWriter) Write(report *HistoryReport, options Options) error {
	revisions := limitRevisions(report.Revisions, options.Max)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	headers := []string{"Revision", "Date", "Author", "Message",
		"Path", "Change", "NodeKind", "CopyFromPath", "CopyFromRev"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, rec := range revisions {
		if len(rec.Changes) == 0 {
			row := []string{
				fmt.Sprintf("%d", rec.Revision),
				formatDate(rec.Date, reportDateTimeLayout),
				rec.Author,
				rec.Message,
				"", "", "", "", "",
			}
			if err := writer.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, ch := range rec.Changes {
			copyPath, copyRev := "", ""
			if ch.CopyFrom != nil {
				copyPath = ch.CopyFrom.Path
				copyRev = fmt.Sprintf("%d", ch.CopyFrom.Revision)
			}
			row := []string{
				fmt.Sprintf("%d", rec.Revision),
				formatDate(rec.Date, reportDateTimeLayout),
				rec.Author,
				rec.Message,
				ch.Path,
				ch.Kind.String(),
				ch.NodeKind.String(),
				copyPath,
				copyRev,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
