package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateVessel(ctx context.Context, v *store.Vessel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = newID()
	}
	if v.Status == "" {
		v.Status = "ACTIVE"
	}
	v.CreatedAt = s.now()
	v.UpdatedAt = v.CreatedAt
	s.vessels.insert(v.ID, *v)
	return nil
}

func (s *Store) GetVessel(ctx context.Context, id string) (*store.Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vessels.get(id)
	if !ok {
		return nil, store.NotFound("vessel")
	}
	return &v, nil
}

func (s *Store) ListVessels(ctx context.Context) ([]store.Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vessels.all(), nil
}

func (s *Store) UpdateVessel(ctx context.Context, v *store.Vessel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.vessels.get(v.ID)
	if !ok {
		return store.NotFound("vessel")
	}
	v.CreatedAt = prev.CreatedAt
	v.UpdatedAt = s.now()
	s.vessels.replace(v.ID, *v)
	return nil
}

func (s *Store) DeleteVessel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vessels.remove(id) {
		return store.NotFound("vessel")
	}
	return nil
}
