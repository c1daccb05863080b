package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/railsmonk/svnlens/svn"
)

// exportSession cans a four-revision history: an import, an edit, a
// property-only revision, and a branch copy plus delete.
func exportSession() *svn.MockSession {
	return &svn.MockSession{
		Latest: 4,
		Entries: []svn.RawLogEntry{
			{
				Revision: 1,
				Author:   "alice",
				Date:     time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
				Message:  "Initial import",
				Changes: map[string]svn.RawPathChange{
					"/trunk":           {Code: 'A'},
					"/trunk/hello.txt": {Code: 'A'},
				},
			},
			{
				Revision: 2,
				Author:   "bob",
				Date:     time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC),
				Message:  "Fix greeting",
				Changes: map[string]svn.RawPathChange{
					"/trunk/hello.txt": {Code: 'M'},
				},
			},
			{
				Revision: 3,
				Date:     time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
				Changes: map[string]svn.RawPathChange{
					"/trunk/hello.txt": {Code: 'M'},
				},
			},
			{
				Revision: 4,
				Author:   "carol",
				Date:     time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC),
				Message:  "Branch for stable",
				Changes: map[string]svn.RawPathChange{
					"/branches/stable": {Code: 'A', CopyFrom: &svn.CopySource{Path: "/trunk", Revision: 3}},
					"/trunk/hello.txt": {Code: 'D'},
				},
			},
		},
		Kinds: map[svn.PathAt]svn.PathKind{
			{Path: "/trunk", Rev: 1}:           svn.PathKindDir,
			{Path: "/branches/stable", Rev: 4}: svn.PathKindDir,
		},
		Files: map[svn.PathAt][]byte{
			{Path: "/trunk/hello.txt", Rev: 1}:           []byte("hello\n"),
			{Path: "/trunk/hello.txt", Rev: 2}:           []byte("hello world\n"),
			{Path: "/trunk/hello.txt", Rev: 3}:           []byte("hello world\n"),
			{Path: "/branches/stable/hello.txt", Rev: 4}: []byte("hello world\n"),
		},
		Listing: map[svn.PathAt][]svn.Dirent{
			{Path: "/branches/stable", Rev: 4}: {
				{Path: "hello.txt", Kind: svn.NodeKindFile, Size: 12},
			},
		},
	}
}

func TestExporter_Run(t *testing.T) {
	sess := exportSession()
	dest := filepath.Join(t.TempDir(), "mirror")

	var seen []int
	exporter := New(sess, Options{
		Dest:         dest,
		AuthorDomain: "git.test",
		OnRevision:   func(rev int) { seen = append(seen, rev) },
	})

	committed, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if committed != 4 {
		t.Fatalf("Run committed %d revisions, want 4", committed)
	}
	if len(seen) != 4 || seen[0] != 1 || seen[3] != 4 {
		t.Errorf("OnRevision calls = %v, want [1 2 3 4]", seen)
	}

	// Final worktree state: the branch copy exists, the deleted file is gone.
	branched, err := os.ReadFile(filepath.Join(dest, "branches", "stable", "hello.txt"))
	if err != nil {
		t.Fatalf("branched file missing: %v", err)
	}
	if string(branched) != "hello world\n" {
		t.Errorf("branched contents = %q, want %q", branched, "hello world\n")
	}
	if _, err := os.Stat(filepath.Join(dest, "trunk", "hello.txt")); !os.IsNotExist(err) {
		t.Errorf("deleted file still present (stat err = %v)", err)
	}

	// One commit per revision, newest first, with synthesized identities.
	commits := readCommits(t, dest)
	if len(commits) != 4 {
		t.Fatalf("git log has %d commits, want 4", len(commits))
	}

	wantMessages := []string{"Branch for stable", "r3", "Fix greeting", "Initial import"}
	wantAuthors := []string{"carol", "unknown", "bob", "alice"}
	for i, c := range commits {
		if c.Message != wantMessages[i] {
			t.Errorf("commit[%d].Message = %q, want %q", i, c.Message, wantMessages[i])
		}
		if c.Author.Name != wantAuthors[i] {
			t.Errorf("commit[%d].Author.Name = %q, want %q", i, c.Author.Name, wantAuthors[i])
		}
		wantEmail := wantAuthors[i] + "@git.test"
		if c.Author.Email != wantEmail {
			t.Errorf("commit[%d].Author.Email = %q, want %q", i, c.Author.Email, wantEmail)
		}
	}

	// Commit dates preserve revision dates.
	if got := commits[3].Author.When.UTC(); !got.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("initial commit date = %v, want r1 date", got)
	}
}

func TestExporter_Limit(t *testing.T) {
	sess := exportSession()
	dest := filepath.Join(t.TempDir(), "mirror")

	exporter := New(sess, Options{Dest: dest, Limit: 2})
	committed, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if committed != 2 {
		t.Fatalf("Run committed %d revisions, want 2", committed)
	}

	commits := readCommits(t, dest)
	if len(commits) != 2 {
		t.Fatalf("git log has %d commits, want 2", len(commits))
	}
	if commits[0].Message != "Fix greeting" {
		t.Errorf("newest commit = %q, want %q", commits[0].Message, "Fix greeting")
	}

	// Default author domain applies when none is configured.
	if commits[0].Author.Email != "bob@"+DefaultAuthorDomain {
		t.Errorf("author email = %q, want %q", commits[0].Author.Email, "bob@"+DefaultAuthorDomain)
	}
}

func TestExporter_DestAlreadyInitialized(t *testing.T) {
	dest := t.TempDir()
	if _, err := git.PlainInit(dest, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	exporter := New(exportSession(), Options{Dest: dest})
	if _, err := exporter.Run(context.Background()); err == nil {
		t.Fatal("Run succeeded into an existing repository, expected error")
	}
}

// readCommits returns the exported commits, newest first.
func readCommits(t *testing.T, dest string) []*object.Commit {
	t.Helper()

	repo, err := git.PlainOpen(dest)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	ref, err := repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	return commits
}
