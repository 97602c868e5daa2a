package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateDocument(ctx context.Context, d *store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.VesselID != "" && !s.vesselExists(d.VesselID) {
		return store.NotFound("vessel")
	}
	if d.CategoryID != "" {
		if _, ok := s.categories.get(d.CategoryID); !ok {
			return store.NotFound("category")
		}
	}
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Status == "" {
		d.Status = store.DocumentDraft
	}
	d.CreatedAt = s.now()
	d.UpdatedAt = d.CreatedAt
	s.documents.insert(d.ID, *d)
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents.get(id)
	if !ok {
		return nil, store.NotFound("document")
	}
	return &d, nil
}

func (s *Store) ListDocuments(ctx context.Context, f store.ListFilter) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Document{}
	for _, d := range s.documents.all() {
		if f.VesselID != "" && d.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && string(d.Status) != f.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) UpdateDocument(ctx context.Context, d *store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.documents.get(d.ID)
	if !ok {
		return store.NotFound("document")
	}
	if d.CategoryID != "" && d.CategoryID != prev.CategoryID {
		if _, catOK := s.categories.get(d.CategoryID); !catOK {
			return store.NotFound("category")
		}
	}
	d.VesselID = prev.VesselID
	d.CreatedAt = prev.CreatedAt
	d.UpdatedAt = s.now()
	s.documents.replace(d.ID, *d)
	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.documents.remove(id) {
		return store.NotFound("document")
	}
	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c *store.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.categories.insert(c.ID, *c)
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*store.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories.get(id)
	if !ok {
		return nil, store.NotFound("category")
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]store.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.all(), nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *store.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.categories.get(c.ID)
	if !ok {
		return store.NotFound("category")
	}
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = s.now()
	s.categories.replace(c.ID, *c)
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categories.remove(id) {
		return store.NotFound("category")
	}
	return nil
}
