package output

import (
	"fmt"
	"time"

	"github.com/railsmonk/svnlens/svn"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// HistoryWriter implementations
	_ HistoryWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryWriter = (*JSONHistoryWriter)(nil)
	_ HistoryWriter = (*CSVHistoryWriter)(nil)
	_ HistoryWriter = (*MarkdownHistoryWriter)(nil)
	_ HistoryWriter = (*CIHistoryWriter)(nil)
)

// Format represents the output format type.
type Format string

const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatCI       Format = "ci"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatCI:
		return Format(s), nil
	case "":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options controls output behavior.
type Options struct {
	Format     Format
	Max        int // maximum revisions to render (0 = all)
	OutputPath string
	Verbose    bool // render per-path changes in summary-oriented formats
}

// HistoryReport holds a normalized revision history for rendering.
type HistoryReport struct {
	URL         string
	Latest      int
	GeneratedAt time.Time
	Revisions   []svn.RevisionRecord
}

// HistoryWriter writes revision history reports.
type HistoryWriter interface {
	Write(report *HistoryReport, options Options) error
}

// NewHistoryWriter creates a history writer for the specified format.
func NewHistoryWriter(format Format) HistoryWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	case FormatCSV:
		return &CSVHistoryWriter{}
	case FormatMarkdown:
		return &MarkdownHistoryWriter{}
	case FormatCI:
		return &CIHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}
