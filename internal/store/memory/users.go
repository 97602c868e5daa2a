package memory

import (
	"context"
	"strings"

	"gdys/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, u *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users.all() {
		if existing.Email == email {
			return store.ErrDuplicate
		}
	}

	if u.ID == "" {
		u.ID = newID()
	}
	u.Email = email
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users.insert(u.ID, *u)
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, store.NotFound("user")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users.all() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.NotFound("user")
}

func (s *Store) ListUsers(ctx context.Context) ([]store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.all(), nil
}
