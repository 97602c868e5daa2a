package memory

import (
	"context"

	"gdys/internal/store"
)

func (s *Store) CreateProcurementRequest(ctx context.Context, r *store.ProcurementRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.VesselID != "" && !s.vesselExists(r.VesselID) {
		return store.NotFound("vessel")
	}
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = store.RequestPending
	}
	if r.Priority == "" {
		r.Priority = "NORMAL"
	}
	if r.Items == nil {
		r.Items = []store.RequestItem{}
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	s.requests.insert(r.ID, *r)
	return nil
}

func (s *Store) GetProcurementRequest(ctx context.Context, id string) (*store.ProcurementRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests.get(id)
	if !ok {
		return nil, store.NotFound("procurement request")
	}
	return &r, nil
}

func (s *Store) ListProcurementRequests(ctx context.Context, f store.ListFilter) ([]store.ProcurementRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.ProcurementRequest{}
	for _, r := range s.requests.all() {
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

func (s *Store) UpdateProcurementRequest(ctx context.Context, r *store.ProcurementRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.requests.get(r.ID)
	if !ok {
		return store.NotFound("procurement request")
	}
	r.VesselID = prev.VesselID
	r.CreatedAt = prev.CreatedAt
	r.UpdatedAt = s.now()
	if r.Items == nil {
		r.Items = prev.Items
	}
	s.requests.replace(r.ID, *r)
	return nil
}

func (s *Store) DeleteProcurementRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requests.remove(id) {
		return store.NotFound("procurement request")
	}
	return nil
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, o *store.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests.get(o.RequestID)
	if !ok {
		return store.NotFound("procurement request")
	}
	if _, ok := s.suppliers.get(o.SupplierID); !ok {
		return store.NotFound("supplier")
	}
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = store.OrderOpen
	}
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	if o.OrderDate.IsZero() {
		o.OrderDate = o.CreatedAt
	}
	s.orders.insert(o.ID, *o)

	// Ordering moves the underlying request along its workflow.
	req.Status = store.RequestOrdered
	req.UpdatedAt = o.CreatedAt
	s.requests.replace(req.ID, req)
	return nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id string) (*store.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders.get(id)
	if !ok {
		return nil, store.NotFound("purchase order")
	}
	return &o, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context, f store.ListFilter) ([]store.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.PurchaseOrder{}
	for _, o := range s.orders.all() {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.VesselID != "" {
			req, ok := s.requests.get(o.RequestID)
			if !ok || req.VesselID != f.VesselID {
				continue
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, o *store.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.orders.get(o.ID)
	if !ok {
		return store.NotFound("purchase order")
	}
	o.RequestID = prev.RequestID
	o.CreatedAt = prev.CreatedAt
	o.UpdatedAt = s.now()
	s.orders.replace(o.ID, *o)
	return nil
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.orders.remove(id) {
		return store.NotFound("purchase order")
	}
	return nil
}

func (s *Store) CreateSupplier(ctx context.Context, sp *store.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sp.ID == "" {
		sp.ID = newID()
	}
	sp.CreatedAt = s.now()
	sp.UpdatedAt = sp.CreatedAt
	s.suppliers.insert(sp.ID, *sp)
	return nil
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*store.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.suppliers.get(id)
	if !ok {
		return nil, store.NotFound("supplier")
	}
	return &sp, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]store.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.all(), nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sp *store.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.suppliers.get(sp.ID)
	if !ok {
		return store.NotFound("supplier")
	}
	sp.CreatedAt = prev.CreatedAt
	sp.UpdatedAt = s.now()
	s.suppliers.replace(sp.ID, *sp)
	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.suppliers.remove(id) {
		return store.NotFound("supplier")
	}
	return nil
}
