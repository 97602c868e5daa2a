package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateMaintenanceTask(ctx context.Context, t *store.MaintenanceTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.VesselID != "" && !s.vesselExists(t.VesselID) {
		return store.NotFound("vessel")
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Status == "" {
		t.Status = store.TaskPending
	}
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.tasks.insert(t.ID, *t)
	return nil
}

func (s *Store) GetMaintenanceTask(ctx context.Context, id string) (*store.MaintenanceTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks.get(id)
	if !ok {
		return nil, store.NotFound("maintenance task")
	}
	t.Status = t.EffectiveStatus(s.now())
	return &t, nil
}

func (s *Store) ListMaintenanceTasks(ctx context.Context, f store.TaskFilter) ([]store.MaintenanceTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []store.MaintenanceTask{}
	for _, t := range s.tasks.all() {
		if f.VesselID != "" && t.VesselID != f.VesselID {
			continue
		}
		effective := t.EffectiveStatus(now)
		if f.OverdueOnly && effective != store.TaskOverdue {
			continue
		}
		if f.Status != "" && effective != f.Status {
			continue
		}
		t.Status = effective
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) UpdateMaintenanceTask(ctx context.Context, t *store.MaintenanceTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.tasks.get(t.ID)
	if !ok {
		return store.NotFound("maintenance task")
	}
	t.VesselID = prev.VesselID
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now()
	s.tasks.replace(t.ID, *t)
	return nil
}

func (s *Store) DeleteMaintenanceTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tasks.remove(id) {
		return store.NotFound("maintenance task")
	}
	return nil
}

func (s *Store) CreateWorkOrder(ctx context.Context, w *store.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks.get(w.TaskID); !ok {
		return store.NotFound("maintenance task")
	}
	if w.ID == "" {
		w.ID = newID()
	}
	w.CreatedAt = s.now()
	if w.CompletedAt.IsZero() {
		w.CompletedAt = w.CreatedAt
	}
	s.workOrders.insert(w.ID, *w)
	return nil
}

func (s *Store) GetWorkOrder(ctx context.Context, id string) (*store.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workOrders.get(id)
	if !ok {
		return nil, store.NotFound("work order")
	}
	return &w, nil
}

func (s *Store) ListWorkOrders(ctx context.Context, f store.ListFilter) ([]store.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.WorkOrder{}
	for _, w := range s.workOrders.all() {
		if f.VesselID != "" && w.VesselID != f.VesselID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
