package svn

import "testing"

func TestChangeKind_String(t *testing.T) {
	tests := []struct {
		name     string
		kind     ChangeKind
		expected string
	}{
		{name: "Add", kind: ChangeKindAdd, expected: "add"},
		{name: "Edit", kind: ChangeKindEdit, expected: "edit"},
		{name: "Delete", kind: ChangeKindDelete, expected: "delete"},
		{name: "Replace", kind: ChangeKindReplace, expected: "replace"},
		{name: "Copy", kind: ChangeKindCopy, expected: "copy"},
		{name: "Unknown", kind: ChangeKind(99), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.kind.String()
			if result != tt.expected {
				t.Errorf("String() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestNodeKind_String(t *testing.T) {
	tests := []struct {
		name     string
		kind     NodeKind
		expected string
	}{
		{name: "File", kind: NodeKindFile, expected: "file"},
		{name: "Dir", kind: NodeKindDir, expected: "dir"},
		{name: "Unknown", kind: NodeKind(99), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.kind.String()
			if result != tt.expected {
				t.Errorf("String() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestPathKind_String(t *testing.T) {
	tests := []struct {
		kind     PathKind
		expected string
	}{
		{kind: PathKindNone, expected: "none"},
		{kind: PathKindFile, expected: "file"},
		{kind: PathKindDir, expected: "dir"},
	}

	for _, tt := range tests {
		if result := tt.kind.String(); result != tt.expected {
			t.Errorf("String() = %q, expected %q", result, tt.expected)
		}
	}
}

func TestPathChange_IsCopy(t *testing.T) {
	plain := PathChange{Path: "/trunk/readme.txt", Kind: ChangeKindEdit}
	if plain.IsCopy() {
		t.Error("IsCopy() = true for a plain edit")
	}

	copied := PathChange{
		Path:     "/trunk/new-dir",
		Kind:     ChangeKindCopy,
		CopyFrom: &CopySource{Path: "/trunk/old-dir", Revision: 5},
	}
	if !copied.IsCopy() {
		t.Error("IsCopy() = false for a change with a copy source")
	}
}

func TestRevspec_String(t *testing.T) {
	tests := []struct {
		name     string
		rev      Revspec
		expected string
	}{
		{name: "Concrete", rev: Rev(42), expected: "42"},
		{name: "Zero", rev: Rev(0), expected: "0"},
		{name: "Head", rev: Head(), expected: "HEAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.rev.String()
			if result != tt.expected {
				t.Errorf("String() = %q, expected %q", result, tt.expected)
			}
		})
	}

	if Head().Number() != 0 || !Head().IsHead() {
		t.Error("Head() selector misreports itself")
	}
	if Rev(7).IsHead() {
		t.Error("Rev(7).IsHead() = true")
	}
}
