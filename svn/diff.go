package svn

import (
	"bytes"
	"context"
	"sort"
	"strings"
)

// DiffAction labels a content section of a revision diff.
type DiffAction int

const (
	DiffModified DiffAction = iota
	DiffAdded
	DiffDeleted
	DiffCopied
)

// String returns a string representation of the diff action.
func (a DiffAction) String() string {
	switch a {
	case DiffModified:
		return "modified"
	case DiffAdded:
		return "added"
	case DiffDeleted:
		return "deleted"
	case DiffCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// DiffGenerator receives the per-path sections of a revision's diff.
// Paths are normalized to the leading-slash form log entries use.
type DiffGenerator interface {
	// FileDiff is called once per content section.
	FileDiff(path string, action DiffAction, data []byte) error
	// PropDiff is called once per property-change section.
	PropDiff(path string, data []byte) error
}

// DiffSet is one revision's diff split by path. Files holds the content
// sections of paths that exist after the revision; deleted paths have no
// post-change content and only appear in the raw stream.
type DiffSet struct {
	Files      map[string][]byte
	Properties map[string][]byte
}

// Paths returns the sorted union of file and property paths.
func (d *DiffSet) Paths() []string {
	seen := make(map[string]struct{}, len(d.Files)+len(d.Properties))
	for path := range d.Files {
		seen[path] = struct{}{}
	}
	for path := range d.Properties {
		seen[path] = struct{}{}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// RawDiff returns the combined content and property diff introduced by the
// selected revision, including the full text of added and deleted files.
// Remote sessions fail with ErrNotLocal.
func RawDiff(ctx context.Context, s Session, rev Revspec) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.GenerateDiff(ctx, rev, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RawDiffWith feeds the revision's diff through gen, one callback per path
// section.
func RawDiffWith(ctx context.Context, s Session, rev Revspec, gen DiffGenerator) error {
	raw, err := RawDiff(ctx, s, rev)
	if err != nil {
		return err
	}
	return splitDiff(raw, gen)
}

// StructuredDiff returns the revision's diff split into per-file and
// per-property sections.
func StructuredDiff(ctx context.Context, s Session, rev Revspec) (*DiffSet, error) {
	set := &DiffSet{
		Files:      make(map[string][]byte),
		Properties: make(map[string][]byte),
	}
	if err := RawDiffWith(ctx, s, rev, collectDiff{set}); err != nil {
		return nil, err
	}
	return set, nil
}

// collectDiff accumulates generator callbacks into a DiffSet.
type collectDiff struct {
	set *DiffSet
}

func (c collectDiff) FileDiff(path string, action DiffAction, data []byte) error {
	if action == DiffDeleted {
		return nil
	}
	c.set.Files[path] = data
	return nil
}

func (c collectDiff) PropDiff(path string, data []byte) error {
	c.set.Properties[path] = data
	return nil
}

var _ DiffGenerator = collectDiff{}

// splitDiff walks the diff output and dispatches each section to gen.
//
// Content sections open with "Modified:"/"Added:"/"Deleted:"/"Copied:"
// header lines underlined with '=', property sections with
// "Property changes on:" underlined with '_'. The underline check matters:
// property bodies reuse the "Added: name"/"Modified: name" shape for the
// properties themselves.
func splitDiff(raw []byte, gen DiffGenerator) error {
	lines := bytes.SplitAfter(raw, []byte{'\n'})

	type section struct {
		prop   bool
		action DiffAction
		path   string
		start  int
	}
	var cur *section

	flush := func(end int) error {
		if cur == nil {
			return nil
		}
		data := bytes.Join(lines[cur.start:end], nil)
		if cur.prop {
			return gen.PropDiff(cur.path, data)
		}
		return gen.FileDiff(cur.path, cur.action, data)
	}

	for i, line := range lines {
		if i+1 >= len(lines) || !isRuleLine(lines[i+1]) {
			continue
		}

		text := strings.TrimRight(string(line), "\r\n")
		if path, action, ok := fileHeader(text); ok && lines[i+1][0] == '=' {
			if err := flush(i); err != nil {
				return err
			}
			cur = &section{action: action, path: normalizeDiffPath(path), start: i}
			continue
		}
		if rest, ok := strings.CutPrefix(text, "Property changes on: "); ok && lines[i+1][0] == '_' {
			if err := flush(i); err != nil {
				return err
			}
			cur = &section{prop: true, path: normalizeDiffPath(rest), start: i}
		}
	}

	return flush(len(lines))
}

var fileHeaderActions = []struct {
	prefix string
	action DiffAction
}{
	{"Modified: ", DiffModified},
	{"Added: ", DiffAdded},
	{"Deleted: ", DiffDeleted},
	{"Copied: ", DiffCopied},
}

// fileHeader extracts the path and action from a content section header.
func fileHeader(line string) (string, DiffAction, bool) {
	for _, h := range fileHeaderActions {
		rest, ok := strings.CutPrefix(line, h.prefix)
		if !ok {
			continue
		}
		// Copy headers carry the source: "Copied: new (from rev 5, old)".
		if idx := strings.Index(rest, " (from rev "); idx != -1 {
			rest = rest[:idx]
		}
		return rest, h.action, true
	}
	return "", 0, false
}

// isRuleLine reports whether the line is a section underline, a run of '='
// or '_' characters.
func isRuleLine(line []byte) bool {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) < 4 {
		return false
	}
	for _, b := range line {
		if b != line[0] {
			return false
		}
	}
	return line[0] == '=' || line[0] == '_'
}

// normalizeDiffPath puts section paths into the leading-slash form log
// entries use.
func normalizeDiffPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
