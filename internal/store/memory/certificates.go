package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateCertificate(ctx context.Context, c *store.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(c.VesselID) {
		return store.NotFound("vessel")
	}
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	c.Status = certStatus(c.ExpiryDate, c.CreatedAt)
	s.certificates.insert(c.ID, *c)
	return nil
}

func (s *Store) GetCertificate(ctx context.Context, id string) (*store.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.certificates.get(id)
	if !ok {
		return nil, store.NotFound("certificate")
	}
	c.Status = certStatus(c.ExpiryDate, s.now())
	return &c, nil
}

func (s *Store) ListCertificates(ctx context.Context, f store.CertFilter) ([]store.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []store.Certificate{}
	for _, c := range s.certificates.all() {
		if f.VesselID != "" && c.VesselID != f.VesselID {
			continue
		}
		if !expiryWindow(f, c.ExpiryDate, now) {
			continue
		}
		c.Status = certStatus(c.ExpiryDate, now)
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpdateCertificate(ctx context.Context, c *store.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.certificates.get(c.ID)
	if !ok {
		return store.NotFound("certificate")
	}
	c.VesselID = prev.VesselID
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = s.now()
	c.Status = certStatus(c.ExpiryDate, c.UpdatedAt)
	s.certificates.replace(c.ID, *c)
	return nil
}

func (s *Store) DeleteCertificate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.certificates.remove(id) {
		return store.NotFound("certificate")
	}
	return nil
}
