package svn

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// HistoryReader turns raw session log entries into normalized revision
// records.
type HistoryReader struct {
	sess Session
	opts HistoryOptions
}

// NewHistoryReader creates a reader over the given session.
func NewHistoryReader(sess Session, opts HistoryOptions) *HistoryReader {
	return &HistoryReader{sess: sess, opts: opts}
}

// AllRevisions returns normalized records for revision 1 through the
// repository's latest revision, in ascending order. Without path filters
// the sequence has no gaps; with filters, revisions whose changes are all
// filtered out are dropped.
func (r *HistoryReader) AllRevisions(ctx context.Context) ([]RevisionRecord, error) {
	latest, err := r.sess.LatestRevision(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest revision: %w", err)
	}
	if latest < 1 {
		return []RevisionRecord{}, nil
	}

	entries, err := r.sess.Log(ctx, Rev(1), Rev(latest))
	if err != nil {
		return nil, fmt.Errorf("log r1:r%d: %w", latest, err)
	}

	records := make([]RevisionRecord, 0, len(entries))
	for _, entry := range entries {
		rec, err := r.normalize(ctx, entry)
		if err != nil {
			return nil, err
		}
		if r.filtersActive() && len(rec.Changes) == 0 {
			continue
		}
		records = append(records, rec)
		if r.opts.Limit > 0 && len(records) >= r.opts.Limit {
			break
		}
	}
	return records, nil
}

// OneRevision returns the normalized record for a single revision.
// Revision 0 is valid and always carries an empty change list.
func (r *HistoryReader) OneRevision(ctx context.Context, rev int) (RevisionRecord, error) {
	if rev < 0 {
		return RevisionRecord{}, fmt.Errorf("r%d: %w", rev, ErrInvalidRevision)
	}

	latest, err := r.sess.LatestRevision(ctx)
	if err != nil {
		return RevisionRecord{}, fmt.Errorf("latest revision: %w", err)
	}
	if rev > latest {
		return RevisionRecord{}, fmt.Errorf("r%d beyond head r%d: %w", rev, latest, ErrRevisionNotFound)
	}

	entries, err := r.sess.Log(ctx, Rev(rev), Rev(rev))
	if err != nil {
		return RevisionRecord{}, fmt.Errorf("log r%d: %w", rev, err)
	}
	if len(entries) == 0 {
		return RevisionRecord{}, fmt.Errorf("r%d missing from log: %w", rev, ErrRevisionNotFound)
	}

	return r.normalize(ctx, entries[0])
}

// normalize builds one revision record: trim the message, classify and
// resolve every changed path, sort changes by path.
func (r *HistoryReader) normalize(ctx context.Context, entry RawLogEntry) (RevisionRecord, error) {
	rec := RevisionRecord{
		Revision: entry.Revision,
		Author:   entry.Author,
		Date:     entry.Date,
		Message:  strings.TrimSpace(entry.Message),
		Changes:  []PathChange{},
	}

	// Revision 0 is the empty root; anything a server reports for it is noise.
	if entry.Revision == 0 {
		return rec, nil
	}

	paths := make([]string, 0, len(entry.Changes))
	for path := range entry.Changes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		matches, err := r.matchesFilters(path)
		if err != nil {
			return RevisionRecord{}, err
		}
		if !matches {
			continue
		}

		raw := entry.Changes[path]
		kind, err := Classify(raw)
		if err != nil {
			return RevisionRecord{}, fmt.Errorf("r%d %s: %w", entry.Revision, path, err)
		}

		nodeKind, err := ResolveNodeKind(ctx, r.sess, path, entry.Revision)
		if err != nil {
			return RevisionRecord{}, err
		}

		change := PathChange{Path: path, NodeKind: nodeKind, Kind: kind}
		if kind == ChangeKindCopy && raw.CopyFrom != nil {
			src := *raw.CopyFrom
			change.CopyFrom = &src
		}
		rec.Changes = append(rec.Changes, change)
	}

	return rec, nil
}

func (r *HistoryReader) filtersActive() bool {
	return len(r.opts.Include) > 0 || len(r.opts.Exclude) > 0
}

// matchesFilters checks if a path matches the include/exclude filters.
// Patterns match against the path without its leading slash.
func (r *HistoryReader) matchesFilters(path string) (bool, error) {
	path = strings.TrimPrefix(path, "/")

	for _, pattern := range r.opts.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	if len(r.opts.Include) == 0 {
		return true, nil
	}

	for _, pattern := range r.opts.Include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}

// AllRevisions is a convenience wrapper reading the full history with
// default options.
func AllRevisions(ctx context.Context, s Session) ([]RevisionRecord, error) {
	return NewHistoryReader(s, HistoryOptions{}).AllRevisions(ctx)
}

// OneRevision is a convenience wrapper reading a single revision with
// default options.
func OneRevision(ctx context.Context, s Session, rev int) (RevisionRecord, error) {
	return NewHistoryReader(s, HistoryOptions{}).OneRevision(ctx, rev)
}
