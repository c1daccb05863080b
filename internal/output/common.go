package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/railsmonk/svnlens/svn"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

func limitRevisions(revisions []svn.RevisionRecord, max int) []svn.RevisionRecord {
	if max <= 0 || max >= len(revisions) {
		return revisions
	}
	return revisions[:max]
}

// changeLetter is the single-letter display code for a change kind.
func changeLetter(kind svn.ChangeKind) string {
	switch kind {
	case svn.ChangeKindAdd:
		return "A"
	case svn.ChangeKindEdit:
		return "M"
	case svn.ChangeKindDelete:
		return "D"
	case svn.ChangeKindReplace:
		return "R"
	case svn.ChangeKindCopy:
		return "C"
	default:
		return "?"
	}
}

// copyLabel renders a change's copy source, empty for plain changes.
func copyLabel(ch svn.PathChange) string {
	if ch.CopyFrom == nil {
		return ""
	}
	return fmt.Sprintf("%s@%d", ch.CopyFrom.Path, ch.CopyFrom.Revision)
}

// formatDate renders a revision date, blank when the repository reported none.
func formatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(layout)
}

func createWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
