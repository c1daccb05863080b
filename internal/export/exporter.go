// Package export replays Subversion revision history into a local Git
// repository, one commit per revision.
package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/railsmonk/svnlens/svn"
)

// DefaultAuthorDomain is the email domain used for synthesized commit
// authors when none is configured.
const DefaultAuthorDomain = "svn.invalid"

// Options configures an export run.
type Options struct {
	Dest         string        // destination directory for the new git repository
	AuthorDomain string        // email domain for synthesized author addresses
	Limit        int           // maximum revisions to export (0 = all)
	OnRevision   func(rev int) // called after each committed revision, may be nil
}

// Exporter replays a session's history into a git repository.
type Exporter struct {
	sess svn.Session
	opts Options
}

// New creates an exporter over the given session.
func New(sess svn.Session, opts Options) *Exporter {
	if opts.AuthorDomain == "" {
		opts.AuthorDomain = DefaultAuthorDomain
	}
	return &Exporter{sess: sess, opts: opts}
}

// Run exports the history and returns the number of commits created.
// Revisions whose content is unchanged on disk (property-only revisions)
// become empty commits, so revision numbers and commit positions stay 1:1.
func (e *Exporter) Run(ctx context.Context) (int, error) {
	reader := svn.NewHistoryReader(e.sess, svn.HistoryOptions{Limit: e.opts.Limit})
	records, err := reader.AllRevisions(ctx)
	if err != nil {
		return 0, err
	}

	repo, err := git.PlainInit(e.opts.Dest, false)
	if err != nil {
		return 0, fmt.Errorf("init git repository at %s: %w", e.opts.Dest, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("open worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	committed := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return committed, err
		}

		if err := e.applyChanges(ctx, root, rec); err != nil {
			return committed, err
		}
		if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
			return committed, fmt.Errorf("stage r%d: %w", rec.Revision, err)
		}
		if _, err := wt.Commit(commitMessage(rec), commitOptions(rec, e.opts.AuthorDomain)); err != nil {
			return committed, fmt.Errorf("commit r%d: %w", rec.Revision, err)
		}

		committed++
		if e.opts.OnRevision != nil {
			e.opts.OnRevision(rec.Revision)
		}
	}

	return committed, nil
}

// applyChanges materializes one revision's changes in the worktree.
// Changes arrive sorted by path, so parent directories land before their
// children.
func (e *Exporter) applyChanges(ctx context.Context, root string, rec svn.RevisionRecord) error {
	for _, ch := range rec.Changes {
		dest := destPath(root, ch.Path)

		switch {
		case ch.Kind == svn.ChangeKindDelete:
			if err := os.RemoveAll(dest); err != nil {
				return fmt.Errorf("delete %s at r%d: %w", ch.Path, rec.Revision, err)
			}
		case ch.NodeKind == svn.NodeKindDir:
			if ch.Kind == svn.ChangeKindReplace {
				if err := os.RemoveAll(dest); err != nil {
					return fmt.Errorf("replace %s at r%d: %w", ch.Path, rec.Revision, err)
				}
			}
			if err := e.materializeDir(ctx, dest, ch, rec.Revision); err != nil {
				return fmt.Errorf("materialize %s at r%d: %w", ch.Path, rec.Revision, err)
			}
		default:
			if err := e.writeFile(ctx, dest, ch.Path, rec.Revision); err != nil {
				return fmt.Errorf("materialize %s at r%d: %w", ch.Path, rec.Revision, err)
			}
		}
	}
	return nil
}

// materializeDir creates a directory and, for copies, fills in the copied
// tree. Copied children do not appear as separate change records, so the
// whole subtree is listed and fetched at the target revision.
func (e *Exporter) materializeDir(ctx context.Context, dest string, ch svn.PathChange, rev int) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	if !ch.IsCopy() {
		return nil
	}

	entries, err := e.sess.List(ctx, ch.Path, rev, true)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		sub := filepath.Join(dest, filepath.FromSlash(ent.Path))
		if ent.Kind == svn.NodeKindDir {
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := e.writeFile(ctx, sub, path.Join(ch.Path, ent.Path), rev); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeFile(ctx context.Context, dest, repoPath string, rev int) error {
	data, err := e.sess.Cat(ctx, repoPath, rev)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func destPath(root, repoPath string) string {
	rel := strings.TrimPrefix(repoPath, "/")
	return filepath.Join(root, filepath.FromSlash(rel))
}

func commitMessage(rec svn.RevisionRecord) string {
	if rec.Message == "" {
		return fmt.Sprintf("r%d", rec.Revision)
	}
	return rec.Message
}

func commitOptions(rec svn.RevisionRecord, domain string) *git.CommitOptions {
	name := rec.Author
	if name == "" {
		name = "unknown"
	}
	return &git.CommitOptions{
		Author: &object.Signature{
			Name:  name,
			Email: name + "@" + domain,
			When:  rec.Date,
		},
		AllowEmptyCommits: true,
	}
}
