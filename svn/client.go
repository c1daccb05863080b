package svn

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ClientSession talks to a repository through the Subversion command-line
// client. It is safe for concurrent use: every query runs as an independent
// subprocess and the session holds no mutable state after Open.
type ClientSession struct {
	url     string
	repoDir string // repository directory for file:// URLs, empty otherwise
	creds   *Credentials
	run     runnerFunc
}

// runnerFunc executes one client invocation and returns its stdout.
// Failures carry the trimmed stderr text.
type runnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

var (
	svnOnce sync.Once
	svnErr  error
)

// ensureClient locates the svn binary once per process.
func ensureClient() error {
	svnOnce.Do(func() {
		if _, err := exec.LookPath("svn"); err != nil {
			svnErr = fmt.Errorf("svn client not found: %w", err)
		}
	})
	return svnErr
}

// Open validates the repository URL and returns a session bound to it.
// creds may be nil for anonymous access. URLs with a file scheme get local
// diff support through the repository directory.
func Open(ctx context.Context, url string, creds *Credentials) (*ClientSession, error) {
	if err := ensureClient(); err != nil {
		return nil, err
	}

	s := newClientSession(url, creds, runCommand)

	// Reachability check; also surfaces bad credentials early.
	if _, err := s.Info(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func newClientSession(url string, creds *Credentials, run runnerFunc) *ClientSession {
	s := &ClientSession{
		url:   strings.TrimRight(url, "/"),
		creds: creds,
		run:   run,
	}
	if dir, ok := strings.CutPrefix(s.url, "file://"); ok {
		s.repoDir = dir
	}
	return s
}

// URL returns the repository URL the session is bound to.
func (s *ClientSession) URL() string {
	return s.url
}

// Local reports whether the session can generate local diffs.
func (s *ClientSession) Local() bool {
	return s.repoDir != ""
}

// Log returns the raw log entries for the inclusive revision range.
func (s *ClientSession) Log(ctx context.Context, from, to Revspec) ([]RawLogEntry, error) {
	out, err := s.run(ctx, "svn", s.svnArgs(
		"log", "--xml", "--verbose",
		"-r", from.String()+":"+to.String(),
		s.url,
	)...)
	if err != nil {
		return nil, &AccessError{Op: "log", Revision: errRev(from), Err: err}
	}
	return parseLogXML(out)
}

// LatestRevision returns the repository's head revision. Each call issues a
// fresh query; the head moves underneath long-lived sessions.
func (s *ClientSession) LatestRevision(ctx context.Context) (int, error) {
	info, err := s.Info(ctx)
	if err != nil {
		return 0, err
	}
	return info.Latest, nil
}

// CheckPathKind reports whether path is a file, a directory, or absent at
// the given revision. A path missing at the revision is an answer, not an
// error.
func (s *ClientSession) CheckPathKind(ctx context.Context, path string, rev int) (PathKind, error) {
	out, err := s.run(ctx, "svn", s.svnArgs(
		"info", "--xml",
		"-r", strconv.Itoa(rev),
		s.target(path, rev),
	)...)
	if err != nil {
		if isMissingPath(err) {
			return PathKindNone, nil
		}
		return PathKindNone, &AccessError{Op: "info", Path: path, Revision: rev, Err: err}
	}

	var doc infoXML
	if err := xml.Unmarshal(out, &doc); err != nil {
		return PathKindNone, fmt.Errorf("parse svn info xml: %w", err)
	}
	switch doc.Entry.Kind {
	case "file":
		return PathKindFile, nil
	case "dir":
		return PathKindDir, nil
	default:
		return PathKindNone, nil
	}
}

// GenerateDiff writes the revision's combined content and property diff to
// sink. Only file scheme sessions have the repository directory svnlook
// needs; all others return ErrNotLocal.
func (s *ClientSession) GenerateDiff(ctx context.Context, rev Revspec, sink io.Writer) error {
	if s.repoDir == "" {
		return fmt.Errorf("diff of %s: %w", s.url, ErrNotLocal)
	}

	args := []string{"diff", s.repoDir, "--diff-copy-from"}
	if !rev.IsHead() {
		// svnlook takes no symbolic revisions; omitting -r means youngest.
		args = append(args, "-r", rev.String())
	}

	out, err := s.run(ctx, "svnlook", args...)
	if err != nil {
		return &AccessError{Op: "diff", Revision: errRev(rev), Err: err}
	}
	_, err = sink.Write(out)
	return err
}

// Cat returns the contents of a file at the given revision.
func (s *ClientSession) Cat(ctx context.Context, path string, rev int) ([]byte, error) {
	out, err := s.run(ctx, "svn", s.svnArgs(
		"cat",
		"-r", strconv.Itoa(rev),
		s.target(path, rev),
	)...)
	if err != nil {
		return nil, &AccessError{Op: "cat", Path: path, Revision: rev, Err: err}
	}
	return out, nil
}

// List returns the entries below a directory at the given revision.
func (s *ClientSession) List(ctx context.Context, path string, rev int, recursive bool) ([]Dirent, error) {
	args := []string{"list", "--xml", "-r", strconv.Itoa(rev)}
	if recursive {
		args = append(args, "--recursive")
	}
	args = append(args, s.target(path, rev))

	out, err := s.run(ctx, "svn", s.svnArgs(args...)...)
	if err != nil {
		return nil, &AccessError{Op: "list", Path: path, Revision: rev, Err: err}
	}
	return parseListXML(out)
}

// Info returns repository identity and the head revision.
func (s *ClientSession) Info(ctx context.Context) (ReposInfo, error) {
	out, err := s.run(ctx, "svn", s.svnArgs("info", "--xml", s.url)...)
	if err != nil {
		return ReposInfo{}, &AccessError{Op: "info", Revision: -1, Err: err}
	}

	var doc infoXML
	if err := xml.Unmarshal(out, &doc); err != nil {
		return ReposInfo{}, fmt.Errorf("parse svn info xml: %w", err)
	}
	return ReposInfo{
		URL:    doc.Entry.URL,
		Root:   doc.Entry.Repository.Root,
		UUID:   doc.Entry.Repository.UUID,
		Latest: doc.Entry.Revision,
	}, nil
}

// svnArgs prepends the session-wide client arguments.
func (s *ClientSession) svnArgs(args ...string) []string {
	full := make([]string, 0, len(args)+5)
	full = append(full, "--non-interactive")
	if s.creds != nil {
		full = append(full, "--username", s.creds.Username, "--password", s.creds.Password)
	}
	return append(full, args...)
}

// target renders URL/path@rev. Pinning the peg revision keeps lookups of
// since-deleted paths working and guards against '@' in path names.
func (s *ClientSession) target(path string, rev int) string {
	u := s.url
	if p := strings.TrimPrefix(path, "/"); p != "" {
		u += "/" + p
	}
	return u + "@" + strconv.Itoa(rev)
}

// errRev is the revision an AccessError reports for a selector, -1 for head.
func errRev(r Revspec) int {
	if r.IsHead() {
		return -1
	}
	return r.Number()
}

// Codes the client emits for paths that do not exist at the requested
// revision. W160013/E160013 come from the repository layer, E200009 is the
// client-side summary.
var missingPathCodes = []string{"E200009", "E160013", "W160013"}

func isMissingPath(err error) bool {
	msg := err.Error()
	for _, code := range missingPathCodes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// runCommand executes one client invocation, keeping stdout clean for the
// XML parsers and folding trimmed stderr into the error.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", err, msg)
	}
	return stdout.Bytes(), nil
}

type logXML struct {
	Entries []logEntryXML `xml:"logentry"`
}

type logEntryXML struct {
	Revision int          `xml:"revision,attr"`
	Author   string       `xml:"author"`
	Date     string       `xml:"date"`
	Msg      string       `xml:"msg"`
	Paths    []logPathXML `xml:"paths>path"`
}

type logPathXML struct {
	Action       string `xml:"action,attr"`
	CopyFromPath string `xml:"copyfrom-path,attr"`
	CopyFromRev  *int   `xml:"copyfrom-rev,attr"`
	Path         string `xml:",chardata"`
}

func parseLogXML(out []byte) ([]RawLogEntry, error) {
	var doc logXML
	if err := xml.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("parse svn log xml: %w", err)
	}

	entries := make([]RawLogEntry, 0, len(doc.Entries))
	for _, le := range doc.Entries {
		date, err := parseDate(le.Date)
		if err != nil {
			return nil, fmt.Errorf("r%d: %w", le.Revision, err)
		}

		entry := RawLogEntry{
			Revision: le.Revision,
			Author:   le.Author,
			Date:     date,
			Message:  le.Msg,
			Changes:  make(map[string]RawPathChange, len(le.Paths)),
		}

		for _, p := range le.Paths {
			rc := RawPathChange{}
			if p.Action != "" {
				rc.Code = p.Action[0]
			}
			if p.CopyFromPath != "" && p.CopyFromRev != nil {
				rc.CopyFrom = &CopySource{Path: p.CopyFromPath, Revision: *p.CopyFromRev}
			}
			entry.Changes[p.Path] = rc
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseDate parses the client's ISO 8601 timestamps. Revision 0 of some
// repositories carries no date at all.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse revision date %q: %w", s, err)
	}
	return t, nil
}

type infoXML struct {
	Entry struct {
		Kind       string `xml:"kind,attr"`
		Revision   int    `xml:"revision,attr"`
		URL        string `xml:"url"`
		Repository struct {
			Root string `xml:"root"`
			UUID string `xml:"uuid"`
		} `xml:"repository"`
	} `xml:"entry"`
}

type listXML struct {
	Entries []listEntryXML `xml:"list>entry"`
}

type listEntryXML struct {
	Kind string `xml:"kind,attr"`
	Name string `xml:"name"`
	Size int64  `xml:"size"`
}

func parseListXML(out []byte) ([]Dirent, error) {
	var doc listXML
	if err := xml.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("parse svn list xml: %w", err)
	}

	dirents := make([]Dirent, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		kind := NodeKindDir
		if e.Kind == "file" {
			kind = NodeKindFile
		}
		dirents = append(dirents, Dirent{Path: e.Name, Kind: kind, Size: e.Size})
	}
	return dirents, nil
}
