package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	key, size, err := s.Save(ctx, "safety manual.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if size != int64(len("content")) {
		t.Errorf("got size %d, want %d", size, len("content"))
	}
	if !strings.HasPrefix(key, "safety_manual-") || !strings.HasSuffix(key, ".pdf") {
		t.Errorf("unexpected key %q", key)
	}

	rc, err := s.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("got content %q, want %q", data, "content")
	}

	// Same name saves to a distinct key.
	key2, _, err := s.Save(ctx, "safety manual.pdf", strings.NewReader("other"))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if key2 == key {
		t.Error("expected distinct keys for same file name")
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Open(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFilesystemStore(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	testStore(t, s)
}

func TestFilesystemStore_RejectsTraversal(t *testing.T) {
	s, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	if _, err := s.Open(context.Background(), "../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for traversal key, got %v", err)
	}
}

func TestNewKey_SanitizesName(t *testing.T) {
	key, err := newKey("../../sübõr tæst!!.jpg")
	if err != nil {
		t.Fatalf("newKey failed: %v", err)
	}
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		t.Errorf("key %q not sanitized", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q lost extension", key)
	}
}
