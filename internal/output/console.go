package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/railsmonk/svnlens/svn"
)

// ConsoleHistoryWriter writes revision history to the console.
type ConsoleHistoryWriter struct{}

// Write outputs the revision history to the console.
func (w *ConsoleHistoryWriter) Write(report *HistoryReport, options Options) error {
	revisions := limitRevisions(report.Revisions, options.Max)

	color.Green("Revision History")
	fmt.Printf("Repository: %s\n", report.URL)
	fmt.Printf("Head revision: r%d\n", report.Latest)
	fmt.Printf("Revisions shown: %d\n\n", len(revisions))

	if options.Verbose {
		w.writeVerbose(revisions)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rev\tDate\tAuthor\tChanges\tMessage")
	for _, rec := range revisions {
		fmt.Fprintf(tw, "r%d\t%s\t%s\t%d\t%s\n",
			rec.Revision,
			formatDate(rec.Date, reportDateLayout),
			rec.Author,
			len(rec.Changes),
			truncateMessage(rec.Message, 60),
		)
	}
	tw.Flush()

	return nil
}

// writeVerbose prints one block per revision with its changed paths.
func (w *ConsoleHistoryWriter) writeVerbose(revisions []svn.RevisionRecord) {
	for _, rec := range revisions {
		fmt.Printf("%s  %s  %s\n",
			color.CyanString("r%d", rec.Revision),
			formatDate(rec.Date, reportDateLayout),
			rec.Author,
		)
		if rec.Message != "" {
			fmt.Printf("    %s\n", truncateMessage(rec.Message, 100))
		}
		for _, ch := range rec.Changes {
			letter := kindColor(ch.Kind)(changeLetter(ch.Kind))
			if ch.CopyFrom != nil {
				fmt.Printf("    %s %-4s %s (from %s)\n", letter, ch.NodeKind, ch.Path, copyLabel(ch))
			} else {
				fmt.Printf("    %s %-4s %s\n", letter, ch.NodeKind, ch.Path)
			}
		}
		fmt.Println()
	}
}

func truncateMessage(msg string, maxLen int) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func kindColor(kind svn.ChangeKind) func(string, ...interface{}) string {
	switch kind {
	case svn.ChangeKindAdd, svn.ChangeKindCopy:
		return color.GreenString
	case svn.ChangeKindDelete:
		return color.RedString
	case svn.ChangeKindReplace:
		return color.MagentaString
	default:
		return color.YellowString
	}
}
