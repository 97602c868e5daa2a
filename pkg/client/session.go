package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the persisted login state: the bearer token plus the vessel
// scope and role it was minted for.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId,omitempty"`
	Role     string `json:"role,omitempty"`
	VesselID string `json:"vesselId,omitempty"`
}

// Elevated reports whether the session's role sees the whole fleet.
func (s Session) Elevated() bool {
	return s.Role == "SYSTEM_ADMIN" || s.Role == "DPA_OFFICE"
}

// SessionStore persists a session between CLI invocations.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON file, by default under the
// user's config directory.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a store at the given path. An empty path
// defaults to gdys/session.json under the user config dir.
func NewFileSessionStore(path string) (*FileSessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "gdys", "session.json")
	}
	return &FileSessionStore{path: path}, nil
}

// Load reads the persisted session. A missing file yields (nil, nil).
func (f *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the session, creating the parent directory if needed.
func (f *FileSessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySessionStore holds the session in process memory. Used by tests.
type MemorySessionStore struct {
	s *Session
}

func (m *MemorySessionStore) Load() (*Session, error) { return m.s, nil }

func (m *MemorySessionStore) Save(s *Session) error {
	m.s = s
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.s = nil
	return nil
}
