package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/railsmonk/svnlens/svn"
)

// MarkdownHistoryWriter writes revision history as Markdown.
type MarkdownHistoryWriter struct{}

// Write outputs the revision history report as Markdown.
func (w *MarkdownHistoryWriter) Write(report *HistoryReport, options Options) error {
	revisions := limitRevisions(report.Revisions, options.Max)

	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Revision History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.URL)
	fmt.Fprintf(out, "**Head revision:** r%d\n\n", report.Latest)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "**Revisions shown:** %d\n\n", len(revisions))

	// Summary table
	fmt.Fprintln(out, "| Revision | Date | Author | Changes | Message |")
	fmt.Fprintln(out, "|----------|------|--------|---------|---------|")
	for _, rec := range revisions {
		msg := escapeMarkdown(truncateMessage(rec.Message, 60))
		fmt.Fprintf(out, "| r%d | %s | %s | %d | %s |\n",
			rec.Revision, formatDate(rec.Date, reportDateLayout),
			escapeMarkdown(rec.Author), len(rec.Changes), msg)
	}

	if !options.Verbose {
		return nil
	}

	// Per-revision change tables
	for _, rec := range revisions {
		if len(rec.Changes) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "## r%d\n", rec.Revision)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Change | Kind | Path | Copied From |")
		fmt.Fprintln(out, "|--------|------|------|-------------|")
		for _, ch := range rec.Changes {
			fmt.Fprintf(out, "| %s | %s | `%s` | %s |\n",
				ch.Kind, ch.NodeKind, ch.Path, copyCell(ch))
		}
	}

	return nil
}

func copyCell(ch svn.PathChange) string {
	if ch.CopyFrom == nil {
		return ""
	}
	return fmt.Sprintf("`%s`", copyLabel(ch))
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
