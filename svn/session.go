package svn

import (
	"context"
	"io"
	"strconv"
)

// Session defines the transport boundary: everything the introspection
// pipeline needs from a Subversion repository, local or remote.
// Implementations must be safe for concurrent use.
type Session interface {
	// Log returns the raw log entries for the inclusive revision range,
	// in ascending revision order.
	Log(ctx context.Context, from, to Revspec) ([]RawLogEntry, error)

	// LatestRevision returns the repository's current head revision number.
	LatestRevision(ctx context.Context) (int, error)

	// CheckPathKind reports whether path is a file, a directory, or absent
	// at the given revision.
	CheckPathKind(ctx context.Context, path string, rev int) (PathKind, error)

	// GenerateDiff writes the combined content and property diff introduced
	// by the selected revision to sink, including the full text of added and
	// deleted files. Sessions without a local repository directory return
	// ErrNotLocal.
	GenerateDiff(ctx context.Context, rev Revspec, sink io.Writer) error

	// Cat returns the contents of a file at the given revision.
	Cat(ctx context.Context, path string, rev int) ([]byte, error)

	// List returns the entries below a directory at the given revision.
	List(ctx context.Context, path string, rev int, recursive bool) ([]Dirent, error)

	// Info returns repository identity and the head revision.
	Info(ctx context.Context) (ReposInfo, error)
}

// Revspec selects a revision for session queries: either a concrete
// revision number or the repository head. Both the history reader and the
// diff pipeline go through it, so revision selection renders identically
// everywhere.
type Revspec struct {
	number int
	head   bool
}

// Rev selects a concrete revision number.
func Rev(n int) Revspec {
	return Revspec{number: n}
}

// Head selects the repository's latest revision.
func Head() Revspec {
	return Revspec{head: true}
}

// IsHead reports whether the selector refers to the repository head.
func (r Revspec) IsHead() bool {
	return r.head
}

// Number returns the concrete revision number. It is meaningful only when
// IsHead reports false.
func (r Revspec) Number() int {
	return r.number
}

// String renders the selector the way the client expects a revision argument.
func (r Revspec) String() string {
	if r.head {
		return "HEAD"
	}
	return strconv.Itoa(r.number)
}

// Credentials is the username/password pair for authenticated access.
type Credentials struct {
	Username string
	Password string
}

// Compile-time interface conformance checks.
var (
	_ Session = (*ClientSession)(nil)
	_ Session = (*MockSession)(nil)
)
