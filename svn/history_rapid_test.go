package svn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

func genRawPath() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		if rapid.Bool().Draw(t, "hasExt") {
			return fmt.Sprintf("/src/file%d.go", rapid.IntRange(0, 50).Draw(t, "id"))
		}
		return fmt.Sprintf("/dir%d", rapid.IntRange(0, 50).Draw(t, "id"))
	})
}

func genRawChange() *rapid.Generator[RawPathChange] {
	return rapid.Custom(func(t *rapid.T) RawPathChange {
		rc := RawPathChange{
			Code: rapid.SampledFrom([]byte{'A', 'M', 'D', 'R'}).Draw(t, "code"),
		}
		if rapid.Bool().Draw(t, "isCopy") {
			rc.CopyFrom = &CopySource{
				Path:     fmt.Sprintf("/old%d", rapid.IntRange(0, 20).Draw(t, "srcId")),
				Revision: rapid.IntRange(0, 100).Draw(t, "srcRev"),
			}
		}
		return rc
	})
}

func genRawChanges(minLen int) *rapid.Generator[map[string]RawPathChange] {
	return rapid.MapOfN(genRawPath(), genRawChange(), minLen, 20)
}

// --- Property Tests ---

func TestRapidNormalize_SortedAndComplete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		changes := genRawChanges(0).Draw(t, "changes")
		sess := &MockSession{
			Latest:  3,
			Entries: []RawLogEntry{{Revision: 2, Author: "any", Changes: changes}},
		}

		rec, err := OneRevision(context.Background(), sess, 2)
		if err != nil {
			t.Fatalf("OneRevision failed: %v", err)
		}

		if len(rec.Changes) != len(changes) {
			t.Fatalf("got %d changes, expected %d", len(rec.Changes), len(changes))
		}
		for i, ch := range rec.Changes {
			if i > 0 && rec.Changes[i-1].Path >= ch.Path {
				t.Fatalf("changes not sorted: %q before %q", rec.Changes[i-1].Path, ch.Path)
			}
			raw, ok := changes[ch.Path]
			if !ok {
				t.Fatalf("change for unknown path %q", ch.Path)
			}
			if raw.CopyFrom != nil && ch.Kind != ChangeKindCopy {
				t.Fatalf("change with copy source classified as %v", ch.Kind)
			}
			if raw.CopyFrom == nil && ch.CopyFrom != nil {
				t.Fatalf("change without copy source gained one: %+v", ch.CopyFrom)
			}
		}
	})
}

func TestRapidNormalize_RevisionZeroEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		changes := genRawChanges(1).Draw(t, "changes")
		sess := &MockSession{
			Latest:  0,
			Entries: []RawLogEntry{{Revision: 0, Author: "system", Changes: changes}},
		}

		rec, err := OneRevision(context.Background(), sess, 0)
		if err != nil {
			t.Fatalf("OneRevision failed: %v", err)
		}
		if len(rec.Changes) != 0 {
			t.Fatalf("revision 0 kept %d changes, expected none", len(rec.Changes))
		}
	})
}

func TestRapidClassify_CopySourceWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rc := RawPathChange{
			Code: rapid.SampledFrom([]byte{'A', 'M', 'D', 'R'}).Draw(t, "code"),
			CopyFrom: &CopySource{
				Path:     "/old",
				Revision: rapid.IntRange(0, 10000).Draw(t, "srcRev"),
			},
		}

		kind, err := Classify(rc)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if kind != ChangeKindCopy {
			t.Fatalf("Classify(%q with copy source) = %v, expected copy", rc.Code, kind)
		}
	})
}

func TestRapidClassify_UnknownCodesRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := byte(rapid.IntRange(0, 255).Draw(t, "code"))
		switch code {
		case 'A', 'M', 'D', 'R':
			return // valid letters classify cleanly
		}

		_, err := Classify(RawPathChange{Code: code})
		var unknownErr *UnknownCodeError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("Classify(%q) error = %v, expected an unknown-code error", code, err)
		}
		if unknownErr.Code != code {
			t.Fatalf("error carries code %q, expected %q", unknownErr.Code, code)
		}
	})
}
