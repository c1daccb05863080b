package svn

import (
	"errors"
	"fmt"
)

var (
	// ErrRevisionNotFound marks a revision number beyond the repository's
	// latest revision.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrInvalidRevision marks a revision number that can never exist.
	ErrInvalidRevision = errors.New("invalid revision")

	// ErrNotLocal marks an operation that requires a session backed by a
	// local on-disk repository.
	ErrNotLocal = errors.New("session is not backed by a local repository")
)

// AccessError is a failed repository query, carrying the operation and the
// revision/path it was issued for. Revision is -1 when the query had no
// single revision.
type AccessError struct {
	Op       string
	Path     string
	Revision int
	Err      error
}

// Error returns the formatted query target and the underlying cause.
func (e *AccessError) Error() string {
	target := "svn " + e.Op
	if e.Path != "" {
		target += " " + e.Path
	}
	if e.Revision >= 0 {
		target = fmt.Sprintf("%s r%d", target, e.Revision)
	}
	return target + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *AccessError) Unwrap() error {
	return e.Err
}

// UnknownCodeError is a change letter outside the documented set.
type UnknownCodeError struct {
	Code byte
}

// Error returns the offending code.
func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown change code %q", e.Code)
}
