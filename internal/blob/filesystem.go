package blob

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemStore keeps blobs as flat files under a root directory.
type FilesystemStore struct {
	root string
}

// NewFilesystem returns a filesystem-backed store rooted at path, creating
// the directory if needed.
func NewFilesystem(root string) (*FilesystemStore, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStore{root: root}, nil
}

func (s *FilesystemStore) Save(ctx context.Context, name string, r io.Reader) (string, int64, error) {
	key, err := newKey(name)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(s.root, key)

	// Stream to a temp file first so a failed upload leaves nothing behind.
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		return "", 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, err
	}
	return key, size, nil
}

func (s *FilesystemStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if filepath.Base(key) != key {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.root, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	if filepath.Base(key) != key {
		return ErrNotFound
	}
	err := os.Remove(filepath.Join(s.root, key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
