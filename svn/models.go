package svn

import (
	"time"
)

// RevisionRecord is one normalized revision of a repository's history.
type RevisionRecord struct {
	Revision int
	Author   string
	Date     time.Time
	Message  string // trimmed; empty when the revision has no log message
	Changes  []PathChange
}

// PathChange is a single changed path within a revision.
type PathChange struct {
	Path     string
	NodeKind NodeKind
	Kind     ChangeKind
	CopyFrom *CopySource // nil unless Kind == ChangeKindCopy
}

// IsCopy reports whether the change carries a copy source.
func (c PathChange) IsCopy() bool {
	return c.CopyFrom != nil
}

// CopySource identifies the path and revision a copied node came from.
type CopySource struct {
	Path     string
	Revision int
}

// ChangeKind represents how a path changed within a revision.
type ChangeKind int

const (
	ChangeKindAdd ChangeKind = iota
	ChangeKindEdit
	ChangeKindDelete
	ChangeKindReplace
	ChangeKindCopy
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdd:
		return "add"
	case ChangeKindEdit:
		return "edit"
	case ChangeKindDelete:
		return "delete"
	case ChangeKindReplace:
		return "replace"
	case ChangeKindCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// NodeKind represents whether a changed path is a file or a directory.
type NodeKind int

const (
	NodeKindFile NodeKind = iota
	NodeKindDir
)

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeKindFile:
		return "file"
	case NodeKindDir:
		return "dir"
	default:
		return "unknown"
	}
}

// PathKind is the raw existence answer for a path at a revision.
type PathKind int

const (
	PathKindNone PathKind = iota
	PathKindFile
	PathKindDir
)

// String returns a string representation of the path kind.
func (k PathKind) String() string {
	switch k {
	case PathKindFile:
		return "file"
	case PathKindDir:
		return "dir"
	default:
		return "none"
	}
}

// RawLogEntry is one revision exactly as the repository reports it: the
// change records keyed by path, unordered and unclassified.
type RawLogEntry struct {
	Revision int
	Author   string
	Date     time.Time
	Message  string // empty when the revision has no svn:log property
	Changes  map[string]RawPathChange
}

// RawPathChange is the untyped change record for one path.
type RawPathChange struct {
	Code     byte        // single-letter change code (A, M, D, R)
	CopyFrom *CopySource // nil when the record carries no copy source
}

// ReposInfo describes repository identity.
type ReposInfo struct {
	URL    string
	Root   string
	UUID   string
	Latest int
}

// Dirent is one entry of a directory listing. Path is relative to the
// listed directory.
type Dirent struct {
	Path string
	Kind NodeKind
	Size int64
}

// HistoryOptions configures history retrieval.
type HistoryOptions struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
	Limit   int      // Maximum number of records to return (0 = unlimited)
}
