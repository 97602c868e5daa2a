package memory

import (
	"context"

	"gdys/internal/store"
)

// vesselExists must be called with the lock held.
func (s *Store) vesselExists(id string) bool {
	_, ok := s.vessels.get(id)
	return ok
}

// embedCrewRelations fills the member's certificates, trainings and rotations.
// Must be called with the lock held. Slices come back non-nil so the JSON
// encoding is always an array.
func (s *Store) embedCrewRelations(m *store.CrewMember) {
	now := s.now()
	m.Certificates = []store.CrewCertificate{}
	for _, c := range s.crewCerts.all() {
		if c.CrewMemberID == m.ID {
			c.Status = certStatus(c.ExpiryDate, now)
			m.Certificates = append(m.Certificates, c)
		}
	}
	m.Trainings = []store.Training{}
	for _, t := range s.trainings.all() {
		if t.CrewMemberID == m.ID {
			m.Trainings = append(m.Trainings, t)
		}
	}
	m.Rotations = []store.Rotation{}
	for _, r := range s.rotations.all() {
		if r.CrewMemberID == m.ID {
			m.Rotations = append(m.Rotations, r)
		}
	}
}

func (s *Store) CreateCrewMember(ctx context.Context, m *store.CrewMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.VesselID != "" && !s.vesselExists(m.VesselID) {
		return store.NotFound("vessel")
	}
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Status == "" {
		m.Status = "ACTIVE"
	}
	m.CreatedAt = s.now()
	m.UpdatedAt = m.CreatedAt

	stored := *m
	// Relations are stored in their own collections, never on the member.
	stored.Certificates, stored.Trainings, stored.Rotations = nil, nil, nil
	s.crew.insert(m.ID, stored)

	m.Certificates = []store.CrewCertificate{}
	m.Trainings = []store.Training{}
	m.Rotations = []store.Rotation{}
	return nil
}

func (s *Store) GetCrewMember(ctx context.Context, id string) (*store.CrewMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.crew.get(id)
	if !ok {
		return nil, store.NotFound("crew member")
	}
	s.embedCrewRelations(&m)
	return &m, nil
}

func (s *Store) ListCrewMembers(ctx context.Context, f store.ListFilter) ([]store.CrewMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.CrewMember{}
	for _, m := range s.crew.all() {
		if f.VesselID != "" && m.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		s.embedCrewRelations(&m)
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) UpdateCrewMember(ctx context.Context, m *store.CrewMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.crew.get(m.ID)
	if !ok {
		return store.NotFound("crew member")
	}
	if m.VesselID != "" && !s.vesselExists(m.VesselID) {
		return store.NotFound("vessel")
	}
	m.CreatedAt = prev.CreatedAt
	m.UpdatedAt = s.now()

	stored := *m
	stored.Certificates, stored.Trainings, stored.Rotations = nil, nil, nil
	s.crew.replace(m.ID, stored)
	return nil
}

func (s *Store) DeleteCrewMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.crew.remove(id) {
		return store.NotFound("crew member")
	}
	return nil
}

func (s *Store) CreateCrewCertificate(ctx context.Context, c *store.CrewCertificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.crew.get(c.CrewMemberID); !ok {
		return store.NotFound("crew member")
	}
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	c.Status = certStatus(c.ExpiryDate, c.CreatedAt)
	s.crewCerts.insert(c.ID, *c)
	return nil
}

func (s *Store) GetCrewCertificate(ctx context.Context, id string) (*store.CrewCertificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.crewCerts.get(id)
	if !ok {
		return nil, store.NotFound("crew certificate")
	}
	c.Status = certStatus(c.ExpiryDate, s.now())
	return &c, nil
}

func (s *Store) ListCrewCertificates(ctx context.Context, f store.CertFilter) ([]store.CrewCertificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []store.CrewCertificate{}
	for _, c := range s.crewCerts.all() {
		if f.CrewMemberID != "" && c.CrewMemberID != f.CrewMemberID {
			continue
		}
		if f.VesselID != "" {
			// Crew certificates are vessel-scoped through their holder.
			m, ok := s.crew.get(c.CrewMemberID)
			if !ok || m.VesselID != f.VesselID {
				continue
			}
		}
		if !expiryWindow(f, c.ExpiryDate, now) {
			continue
		}
		c.Status = certStatus(c.ExpiryDate, now)
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpdateCrewCertificate(ctx context.Context, c *store.CrewCertificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.crewCerts.get(c.ID)
	if !ok {
		return store.NotFound("crew certificate")
	}
	c.CrewMemberID = prev.CrewMemberID
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = s.now()
	c.Status = certStatus(c.ExpiryDate, c.UpdatedAt)
	s.crewCerts.replace(c.ID, *c)
	return nil
}

func (s *Store) DeleteCrewCertificate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.crewCerts.remove(id) {
		return store.NotFound("crew certificate")
	}
	return nil
}

func (s *Store) CreateTraining(ctx context.Context, t *store.Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.crew.get(t.CrewMemberID); !ok {
		return store.NotFound("crew member")
	}
	if t.ID == "" {
		t.ID = newID()
	}
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.trainings.insert(t.ID, *t)
	return nil
}

func (s *Store) GetTraining(ctx context.Context, id string) (*store.Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trainings.get(id)
	if !ok {
		return nil, store.NotFound("training")
	}
	return &t, nil
}

func (s *Store) ListTrainings(ctx context.Context, crewMemberID string) ([]store.Training, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Training{}
	for _, t := range s.trainings.all() {
		if crewMemberID != "" && t.CrewMemberID != crewMemberID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) UpdateTraining(ctx context.Context, t *store.Training) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.trainings.get(t.ID)
	if !ok {
		return store.NotFound("training")
	}
	t.CrewMemberID = prev.CrewMemberID
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now()
	s.trainings.replace(t.ID, *t)
	return nil
}

func (s *Store) DeleteTraining(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.trainings.remove(id) {
		return store.NotFound("training")
	}
	return nil
}

func (s *Store) CreateRotation(ctx context.Context, r *store.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.crew.get(r.CrewMemberID); !ok {
		return store.NotFound("crew member")
	}
	if r.VesselID != "" && !s.vesselExists(r.VesselID) {
		return store.NotFound("vessel")
	}
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = "PLANNED"
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	s.rotations.insert(r.ID, *r)
	return nil
}

func (s *Store) GetRotation(ctx context.Context, id string) (*store.Rotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rotations.get(id)
	if !ok {
		return nil, store.NotFound("rotation")
	}
	return &r, nil
}

func (s *Store) ListRotations(ctx context.Context, f store.ListFilter) ([]store.Rotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Rotation{}
	for _, r := range s.rotations.all() {
		if f.VesselID != "" && r.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) UpdateRotation(ctx context.Context, r *store.Rotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.rotations.get(r.ID)
	if !ok {
		return store.NotFound("rotation")
	}
	r.CrewMemberID = prev.CrewMemberID
	r.CreatedAt = prev.CreatedAt
	r.UpdatedAt = s.now()
	s.rotations.replace(r.ID, *r)
	return nil
}

func (s *Store) DeleteRotation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rotations.remove(id) {
		return store.NotFound("rotation")
	}
	return nil
}
