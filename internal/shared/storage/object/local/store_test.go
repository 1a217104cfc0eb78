package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"application-backend/internal/shared/storage/object"
)

func TestPutAndOpenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.Put(ctx, "submissions/2026-01-01/abc/1_Main.pdf", "application/pdf", strings.NewReader("%PDF-1.3 body"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != int64(len("%PDF-1.3 body")) {
		t.Fatalf("unexpected size %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "submissions", "2026-01-01", "abc", "1_Main.pdf")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	rc, err := store.Open(ctx, "submissions/2026-01-01/abc/1_Main.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.3 body" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Put(context.Background(), "../outside.pdf", "application/pdf", strings.NewReader("x"))
	if !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestPutHonorsCanceledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, "a.pdf", "application/pdf", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
