package svn

import (
	"context"
	"fmt"
	"io"
)

// PathAt keys the mock's kind, content and listing tables by path and
// revision.
type PathAt struct {
	Path string
	Rev  int
}

// MockSession is a canned-data Session for tests. Unset table lookups
// return zero values (PathKindNone, no entries); Err, when set, fails every
// query.
type MockSession struct {
	Latest  int
	Entries []RawLogEntry
	Kinds   map[PathAt]PathKind
	Files   map[PathAt][]byte
	Listing map[PathAt][]Dirent
	Diff    []byte
	Local   bool
	Repos   ReposInfo
	Err     error

	// KindQueries records every CheckPathKind call in order.
	KindQueries []PathAt
}

// Log returns the canned entries falling inside the range.
func (m *MockSession) Log(_ context.Context, from, to Revspec) ([]RawLogEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	lo, hi := 0, m.Latest
	if !from.IsHead() {
		lo = from.Number()
	}
	if !to.IsHead() {
		hi = to.Number()
	}

	out := make([]RawLogEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.Revision >= lo && e.Revision <= hi {
			out = append(out, e)
		}
	}
	return out, nil
}

// LatestRevision returns the canned head revision.
func (m *MockSession) LatestRevision(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Latest, nil
}

// CheckPathKind looks up the canned kind table and records the query.
func (m *MockSession) CheckPathKind(_ context.Context, path string, rev int) (PathKind, error) {
	if m.Err != nil {
		return PathKindNone, m.Err
	}
	at := PathAt{Path: path, Rev: rev}
	m.KindQueries = append(m.KindQueries, at)
	return m.Kinds[at], nil
}

// GenerateDiff writes the canned diff bytes, or ErrNotLocal when the mock
// poses as a remote session.
func (m *MockSession) GenerateDiff(_ context.Context, _ Revspec, sink io.Writer) error {
	if m.Err != nil {
		return m.Err
	}
	if !m.Local {
		return ErrNotLocal
	}
	_, err := sink.Write(m.Diff)
	return err
}

// Cat returns the canned contents for path at rev.
func (m *MockSession) Cat(_ context.Context, path string, rev int) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.Files[PathAt{Path: path, Rev: rev}]
	if !ok {
		return nil, &AccessError{Op: "cat", Path: path, Revision: rev, Err: fmt.Errorf("no canned contents")}
	}
	return data, nil
}

// List returns the canned listing for path at rev.
func (m *MockSession) List(_ context.Context, path string, rev int, _ bool) ([]Dirent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Listing[PathAt{Path: path, Rev: rev}], nil
}

// Info returns the canned repository identity with the head filled in.
func (m *MockSession) Info(_ context.Context) (ReposInfo, error) {
	if m.Err != nil {
		return ReposInfo{}, m.Err
	}
	info := m.Repos
	if info.Latest == 0 {
		info.Latest = m.Latest
	}
	return info, nil
}
