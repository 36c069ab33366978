package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenExists(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Save(ctx, "data/s1_questions.txt", "text/plain", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 5 {
		t.Errorf("bytes written = %d, want 5", n)
	}

	ok, err := store.Exists(ctx, "data/s1_questions.txt")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	rc, err := store.Open(ctx, "data/s1_questions.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Save(ctx, "k", "text/plain", strings.NewReader("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(ctx, "k", "text/plain", strings.NewReader("second")); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	rc, err := store.Open(ctx, "k")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "second" {
		t.Errorf("content = %q, want overwritten value", data)
	}
}

func TestExistsMissing(t *testing.T) {
	store := New(t.TempDir())

	ok, err := store.Exists(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../outside", "/abs/path", "data/../../outside"} {
		if _, err := store.Save(ctx, key, "text/plain", strings.NewReader("x")); err == nil {
			t.Errorf("Save(%q): expected error", key)
		}
		if _, err := store.Open(ctx, key); err == nil {
			t.Errorf("Open(%q): expected error", key)
		}
	}
}
