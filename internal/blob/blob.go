// Package blob stores uploaded files (documents, incident photos) behind a
// small driver interface with filesystem and in-memory backends.
package blob

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the requested key does not exist.
var ErrNotFound = errors.New("blob not found")

// Store persists opaque file content under generated keys.
type Store interface {
	// Save writes the content and returns the generated key and byte count.
	// The name only influences the key's readable prefix and extension.
	Save(ctx context.Context, name string, r io.Reader) (key string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// newKey derives a storage key from the original file name: the sanitized
// base name plus a random hex suffix, keeping the extension. Uploads with the
// same name never collide.
func newKey(name string) (string, error) {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, stem)
	if clean == "" || clean == "." {
		clean = "file"
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return clean + "-" + hex.EncodeToString(suffix) + ext, nil
}
