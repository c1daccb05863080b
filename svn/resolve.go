package svn

import (
	"context"
	"fmt"
	"strings"
)

// ResolveNodeKind decides whether a changed path is a file or a directory.
//
// A final path segment containing a period is treated as a file without
// consulting the repository. Extensionless files therefore go through the
// kind query like directories do; the imprecision is known and accepted.
func ResolveNodeKind(ctx context.Context, s Session, path string, rev int) (NodeKind, error) {
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx != -1 {
		base = path[idx+1:]
	}
	if strings.ContainsRune(base, '.') {
		return NodeKindFile, nil
	}

	kind, err := s.CheckPathKind(ctx, path, rev)
	if err != nil {
		return 0, fmt.Errorf("resolve kind of %s at r%d: %w", path, rev, err)
	}
	if kind == PathKindNone {
		// Deleted paths no longer exist at their own revision; their kind
		// lives at the predecessor.
		kind, err = s.CheckPathKind(ctx, path, rev-1)
		if err != nil {
			return 0, fmt.Errorf("resolve kind of %s at r%d: %w", path, rev-1, err)
		}
	}

	if kind == PathKindFile {
		return NodeKindFile, nil
	}
	return NodeKindDir, nil
}
