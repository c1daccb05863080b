package svn

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// FileDiff computes the unified diff of one file between rev-1 and rev from
// two content fetches. Unlike RawDiff it works against remote sessions. A
// file first added at rev diffs against empty content, as does a file
// deleted at rev on the other side.
func FileDiff(ctx context.Context, s Session, path string, rev int) (string, error) {
	if rev < 0 {
		return "", fmt.Errorf("r%d: %w", rev, ErrInvalidRevision)
	}

	var before []byte
	if rev > 0 {
		data, err := catIfFile(ctx, s, path, rev-1)
		if err != nil {
			return "", err
		}
		before = data
	}

	after, err := catIfFile(ctx, s, path, rev)
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fmt.Sprintf("%s@r%d", path, rev-1),
		ToFile:   fmt.Sprintf("%s@r%d", path, rev),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s at r%d: %w", path, rev, err)
	}
	return text, nil
}

// catIfFile returns the file's contents, or nothing when the path is not a
// file at that revision.
func catIfFile(ctx context.Context, s Session, path string, rev int) ([]byte, error) {
	kind, err := s.CheckPathKind(ctx, path, rev)
	if err != nil {
		return nil, err
	}
	if kind != PathKindFile {
		return nil, nil
	}
	return s.Cat(ctx, path, rev)
}
