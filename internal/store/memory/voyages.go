package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateVoyage(ctx context.Context, v *store.Voyage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(v.VesselID) {
		return store.NotFound("vessel")
	}
	if v.ID == "" {
		v.ID = newID()
	}
	if v.Status == "" {
		v.Status = store.VoyagePlanned
	}
	v.CreatedAt = s.now()
	v.UpdatedAt = v.CreatedAt
	s.voyages.insert(v.ID, *v)
	return nil
}

func (s *Store) GetVoyage(ctx context.Context, id string) (*store.Voyage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voyages.get(id)
	if !ok {
		return nil, store.NotFound("voyage")
	}
	return &v, nil
}

func (s *Store) ListVoyages(ctx context.Context, f store.ListFilter) ([]store.Voyage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Voyage{}
	for _, v := range s.voyages.all() {
		if f.VesselID != "" && v.VesselID != f.VesselID {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) UpdateVoyage(ctx context.Context, v *store.Voyage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.voyages.get(v.ID)
	if !ok {
		return store.NotFound("voyage")
	}
	v.VesselID = prev.VesselID
	v.CreatedAt = prev.CreatedAt
	v.UpdatedAt = s.now()
	s.voyages.replace(v.ID, *v)
	return nil
}

func (s *Store) DeleteVoyage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.voyages.remove(id) {
		return store.NotFound("voyage")
	}
	return nil
}

func (s *Store) CreateLogbookEntry(ctx context.Context, e *store.LogbookEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(e.VesselID) {
		return store.NotFound("vessel")
	}
	if e.VoyageID != "" {
		if _, ok := s.voyages.get(e.VoyageID); !ok {
			return store.NotFound("voyage")
		}
	}
	if e.ID == "" {
		e.ID = newID()
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	if e.EntryTime.IsZero() {
		e.EntryTime = e.CreatedAt
	}
	s.logbook.insert(e.ID, *e)
	return nil
}

func (s *Store) GetLogbookEntry(ctx context.Context, id string) (*store.LogbookEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.logbook.get(id)
	if !ok {
		return nil, store.NotFound("logbook entry")
	}
	return &e, nil
}

func (s *Store) ListLogbookEntries(ctx context.Context, f store.LogFilter) ([]store.LogbookEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.LogbookEntry{}
	for _, e := range s.logbook.all() {
		if f.VesselID != "" && e.VesselID != f.VesselID {
			continue
		}
		if f.VoyageID != "" && e.VoyageID != f.VoyageID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// UpdateLogbookEntry rejects updates to signed entries: a countersigned log
// record is immutable.
func (s *Store) UpdateLogbookEntry(ctx context.Context, e *store.LogbookEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.logbook.get(e.ID)
	if !ok {
		return store.NotFound("logbook entry")
	}
	if prev.Signed() {
		return store.ErrAlreadySigned
	}
	e.VesselID = prev.VesselID
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = s.now()
	s.logbook.replace(e.ID, *e)
	return nil
}

func (s *Store) DeleteLogbookEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.logbook.get(id)
	if !ok {
		return store.NotFound("logbook entry")
	}
	if e.Signed() {
		return store.ErrAlreadySigned
	}
	s.logbook.remove(id)
	return nil
}

func (s *Store) CreateEngineLogEntry(ctx context.Context, e *store.EngineLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(e.VesselID) {
		return store.NotFound("vessel")
	}
	if e.ID == "" {
		e.ID = newID()
	}
	e.CreatedAt = s.now()
	e.UpdatedAt = e.CreatedAt
	if e.EntryTime.IsZero() {
		e.EntryTime = e.CreatedAt
	}
	s.engineLog.insert(e.ID, *e)
	return nil
}

func (s *Store) GetEngineLogEntry(ctx context.Context, id string) (*store.EngineLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.engineLog.get(id)
	if !ok {
		return nil, store.NotFound("engine log entry")
	}
	return &e, nil
}

func (s *Store) ListEngineLogEntries(ctx context.Context, f store.ListFilter) ([]store.EngineLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.EngineLogEntry{}
	for _, e := range s.engineLog.all() {
		if f.VesselID != "" && e.VesselID != f.VesselID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) UpdateEngineLogEntry(ctx context.Context, e *store.EngineLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.engineLog.get(e.ID)
	if !ok {
		return store.NotFound("engine log entry")
	}
	e.VesselID = prev.VesselID
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = s.now()
	s.engineLog.replace(e.ID, *e)
	return nil
}

func (s *Store) DeleteEngineLogEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.engineLog.remove(id) {
		return store.NotFound("engine log entry")
	}
	return nil
}

func (s *Store) CreateFuelRecord(ctx context.Context, r *store.FuelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vesselExists(r.VesselID) {
		return store.NotFound("vessel")
	}
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	if r.RecordDate.IsZero() {
		r.RecordDate = r.CreatedAt
	}
	s.fuelRecords.insert(r.ID, *r)
	return nil
}

func (s *Store) GetFuelRecord(ctx context.Context, id string) (*store.FuelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.fuelRecords.get(id)
	if !ok {
		return nil, store.NotFound("fuel record")
	}
	return &r, nil
}

func (s *Store) ListFuelRecords(ctx context.Context, f store.ListFilter) ([]store.FuelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.FuelRecord{}
	for _, r := range s.fuelRecords.all() {
		if f.VesselID != "" && r.VesselID != f.VesselID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) UpdateFuelRecord(ctx context.Context, r *store.FuelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.fuelRecords.get(r.ID)
	if !ok {
		return store.NotFound("fuel record")
	}
	r.VesselID = prev.VesselID
	r.CreatedAt = prev.CreatedAt
	r.UpdatedAt = s.now()
	s.fuelRecords.replace(r.ID, *r)
	return nil
}

func (s *Store) DeleteFuelRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fuelRecords.remove(id) {
		return store.NotFound("fuel record")
	}
	return nil
}
