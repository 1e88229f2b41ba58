package util

import (
	"errors"
	"strings"
	"testing"
)

func TestObjectKeyHidesOwnerAndIsUnique(t *testing.T) {
	a, err := ObjectKey("guest:7f3c", "Cover Letter - Acme.txt")
	if err != nil {
		t.Fatalf("ObjectKey: %v", err)
	}
	b, _ := ObjectKey("guest:7f3c", "Cover Letter - Acme.txt")
	if a == b {
		t.Fatalf("expected distinct keys, got %s twice", a)
	}
	if strings.Contains(a, "guest") {
		t.Fatalf("owner id leaked into key %s", a)
	}
	dirA, nameA, _ := strings.Cut(a, "/")
	dirB, _, _ := strings.Cut(b, "/")
	if dirA != dirB || len(dirA) != 64 {
		t.Fatalf("expected a stable 64-char owner dir, got %q and %q", dirA, dirB)
	}
	if !strings.HasSuffix(nameA, "_Cover_Letter_-_Acme.txt") {
		t.Fatalf("unexpected name segment %q", nameA)
	}
}

func TestObjectKeyRejectsBadInput(t *testing.T) {
	for _, name := range []string{"", "  ", "../etc/passwd"} {
		if _, err := ObjectKey("user-1", name); !errors.Is(err, ErrInvalidFileName) {
			t.Fatalf("name %q: expected ErrInvalidFileName, got %v", name, err)
		}
	}
	if _, err := ObjectKey("", "a.txt"); err == nil {
		t.Fatalf("expected error for empty owner")
	}
}

func TestObjectKeyTruncatesKeepingExtension(t *testing.T) {
	key, err := ObjectKey("user-1", strings.Repeat("x", 300)+".pdf")
	if err != nil {
		t.Fatalf("ObjectKey: %v", err)
	}
	_, name, _ := strings.Cut(key, "/")
	_, stored, _ := strings.Cut(name, "_")
	if len(stored) != maxStoredNameLen || !strings.HasSuffix(stored, ".pdf") {
		t.Fatalf("unexpected stored name %q (%d)", stored, len(stored))
	}
}
