package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreatePSCInspection(ctx context.Context, p *store.PSCInspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(p.VesselID) {
		return store.NotFound("vessel")
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = "OPEN"
	}
	if p.Deficiencies == nil {
		p.Deficiencies = []store.Deficiency{}
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	if p.InspectionDate.IsZero() {
		p.InspectionDate = p.CreatedAt
	}
	s.pscInspection.insert(p.ID, *p)
	return nil
}

func (s *Store) GetPSCInspection(ctx context.Context, id string) (*store.PSCInspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pscInspection.get(id)
	if !ok {
		return nil, store.NotFound("psc inspection")
	}
	return &p, nil
}

func (s *Store) ListPSCInspections(ctx context.Context, f store.ListFilter) ([]store.PSCInspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.PSCInspection{}
	for _, p := range s.pscInspection.all() {
		if f.VesselID != "" && p.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) UpdatePSCInspection(ctx context.Context, p *store.PSCInspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.pscInspection.get(p.ID)
	if !ok {
		return store.NotFound("psc inspection")
	}
	p.VesselID = prev.VesselID
	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = s.now()
	if p.Deficiencies == nil {
		p.Deficiencies = prev.Deficiencies
	}
	s.pscInspection.replace(p.ID, *p)
	return nil
}

func (s *Store) DeletePSCInspection(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pscInspection.remove(id) {
		return store.NotFound("psc inspection")
	}
	return nil
}

func (s *Store) CreateSafetyDrill(ctx context.Context, d *store.SafetyDrill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(d.VesselID) {
		return store.NotFound("vessel")
	}
	if d.ID == "" {
		d.ID = newID()
	}
	d.CreatedAt = s.now()
	d.UpdatedAt = d.CreatedAt
	if d.ConductedDate.IsZero() {
		d.ConductedDate = d.CreatedAt
	}
	s.drills.insert(d.ID, *d)
	return nil
}

func (s *Store) GetSafetyDrill(ctx context.Context, id string) (*store.SafetyDrill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drills.get(id)
	if !ok {
		return nil, store.NotFound("safety drill")
	}
	return &d, nil
}

func (s *Store) ListSafetyDrills(ctx context.Context, f store.ListFilter) ([]store.SafetyDrill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.SafetyDrill{}
	for _, d := range s.drills.all() {
		if f.VesselID != "" && d.VesselID != f.VesselID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) UpdateSafetyDrill(ctx context.Context, d *store.SafetyDrill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.drills.get(d.ID)
	if !ok {
		return store.NotFound("safety drill")
	}
	d.VesselID = prev.VesselID
	d.CreatedAt = prev.CreatedAt
	d.UpdatedAt = s.now()
	s.drills.replace(d.ID, *d)
	return nil
}

func (s *Store) DeleteSafetyDrill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drills.remove(id) {
		return store.NotFound("safety drill")
	}
	return nil
}

func (s *Store) CreateIncident(ctx context.Context, i *store.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(i.VesselID) {
		return store.NotFound("vessel")
	}
	if i.ID == "" {
		i.ID = newID()
	}
	if i.Status == "" {
		i.Status = store.IncidentOpen
	}
	if i.PhotoKeys == nil {
		i.PhotoKeys = []string{}
	}
	i.CreatedAt = s.now()
	i.UpdatedAt = i.CreatedAt
	if i.OccurredAt.IsZero() {
		i.OccurredAt = i.CreatedAt
	}
	s.incidents.insert(i.ID, *i)
	return nil
}

func (s *Store) GetIncident(ctx context.Context, id string) (*store.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.incidents.get(id)
	if !ok {
		return nil, store.NotFound("incident")
	}
	return &i, nil
}

func (s *Store) ListIncidents(ctx context.Context, f store.ListFilter) ([]store.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Incident{}
	for _, i := range s.incidents.all() {
		if f.VesselID != "" && i.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && i.Status != f.Status {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func (s *Store) UpdateIncident(ctx context.Context, i *store.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.incidents.get(i.ID)
	if !ok {
		return store.NotFound("incident")
	}
	i.VesselID = prev.VesselID
	i.CreatedAt = prev.CreatedAt
	i.UpdatedAt = s.now()
	if i.PhotoKeys == nil {
		i.PhotoKeys = prev.PhotoKeys
	}
	s.incidents.replace(i.ID, *i)
	return nil
}

func (s *Store) DeleteIncident(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.incidents.remove(id) {
		return store.NotFound("incident")
	}
	return nil
}
