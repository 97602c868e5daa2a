package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const requestColumns = "id, vessel_id, title, requested_by, priority, status, items, created_at, updated_at"

func scanRequest(row interface{ Scan(...any) error }) (*store.ProcurementRequest, error) {
	var (
		r        store.ProcurementRequest
		vesselID sql.NullString
		items    []byte
	)
	err := row.Scan(&r.ID, &vesselID, &r.Title, &r.RequestedBy, &r.Priority,
		&r.Status, &items, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.VesselID = vesselID.String
	r.Items = []store.RequestItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &r.Items); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func (s *Store) CreateProcurementRequest(ctx context.Context, r *store.ProcurementRequest) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
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
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt

	items, err := json.Marshal(r.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO procurement_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		r.ID, nullStr(r.VesselID), r.Title, r.RequestedBy, r.Priority,
		r.Status, items, r.CreatedAt, r.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetProcurementRequest(ctx context.Context, id string) (*store.ProcurementRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM procurement_requests WHERE id = $1", id)
	r, err := scanRequest(row)
	if err != nil {
		return nil, notFound(err, "procurement request")
	}
	return r, nil
}

func (s *Store) ListProcurementRequests(ctx context.Context, f store.ListFilter) ([]store.ProcurementRequest, error) {
	query := "SELECT " + requestColumns + ` FROM procurement_requests
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.ProcurementRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateProcurementRequest(ctx context.Context, r *store.ProcurementRequest) error {
	r.UpdatedAt = now()
	items, err := json.Marshal(r.Items)
	if err != nil {
		return err
	}
	// A nil Items slice keeps the stored line items.
	query := `
		UPDATE procurement_requests
		SET title = $2, requested_by = $3, priority = $4, status = $5,
		    items = CASE WHEN $6 THEN items ELSE $7::jsonb END,
		    updated_at = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ID, r.Title, r.RequestedBy, r.Priority, r.Status,
		r.Items == nil, items, r.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "procurement request")
}

func (s *Store) DeleteProcurementRequest(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM procurement_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "procurement request")
}

const orderColumns = "id, request_id, supplier_id, order_date, expected_delivery, total_cost, status, created_at, updated_at"

func scanOrder(row interface{ Scan(...any) error }) (*store.PurchaseOrder, error) {
	var (
		o        store.PurchaseOrder
		expected sql.NullTime
	)
	err := row.Scan(&o.ID, &o.RequestID, &o.SupplierID, &o.OrderDate,
		&expected, &o.TotalCost, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.ExpectedDelivery = timePtr(expected)
	return &o, nil
}

// CreatePurchaseOrder inserts the order and moves the underlying request to
// ORDERED in the same database transaction.
func (s *Store) CreatePurchaseOrder(ctx context.Context, o *store.PurchaseOrder) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = store.OrderOpen
	}
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	if o.OrderDate.IsZero() {
		o.OrderDate = o.CreatedAt
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx,
		"UPDATE procurement_requests SET status = $2, updated_at = $3 WHERE id = $1",
		o.RequestID, store.RequestOrdered, o.CreatedAt)
	if err != nil {
		return err
	}
	if err := affected(res, "procurement request"); err != nil {
		return err
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO purchase_orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.RequestID, o.SupplierID, o.OrderDate,
		nullTime(o.ExpectedDelivery), o.TotalCost, o.Status, o.CreatedAt, o.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("supplier")
	}
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id string) (*store.PurchaseOrder, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM purchase_orders WHERE id = $1", id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, notFound(err, "purchase order")
	}
	return o, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context, f store.ListFilter) ([]store.PurchaseOrder, error) {
	query := `
		SELECT o.id, o.request_id, o.supplier_id, o.order_date, o.expected_delivery,
		       o.total_cost, o.status, o.created_at, o.updated_at
		FROM purchase_orders o
		JOIN procurement_requests r ON r.id = o.request_id
		WHERE ($1 = '' OR r.vessel_id = $1::uuid)
		  AND ($2 = '' OR o.status = $2)
		ORDER BY o.created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.PurchaseOrder{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, o *store.PurchaseOrder) error {
	o.UpdatedAt = now()
	query := `
		UPDATE purchase_orders
		SET supplier_id = $2, order_date = $3, expected_delivery = $4,
		    total_cost = $5, status = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		o.ID, o.SupplierID, o.OrderDate, nullTime(o.ExpectedDelivery),
		o.TotalCost, o.Status, o.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("supplier")
	}
	if err != nil {
		return err
	}
	return affected(res, "purchase order")
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "purchase order")
}

const supplierColumns = "id, name, contact_person, email, phone, country, created_at, updated_at"

func scanSupplier(row interface{ Scan(...any) error }) (*store.Supplier, error) {
	var sp store.Supplier
	err := row.Scan(&sp.ID, &sp.Name, &sp.ContactPerson, &sp.Email,
		&sp.Phone, &sp.Country, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sp *store.Supplier) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	sp.CreatedAt = now()
	sp.UpdatedAt = sp.CreatedAt
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO suppliers ("+supplierColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		sp.ID, sp.Name, sp.ContactPerson, sp.Email, sp.Phone, sp.Country,
		sp.CreatedAt, sp.UpdatedAt)
	return err
}

func (s *Store) GetSupplier(ctx context.Context, id string) (*store.Supplier, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+supplierColumns+" FROM suppliers WHERE id = $1", id)
	sp, err := scanSupplier(row)
	if err != nil {
		return nil, notFound(err, "supplier")
	}
	return sp, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]store.Supplier, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+supplierColumns+" FROM suppliers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Supplier{}
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sp)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSupplier(ctx context.Context, sp *store.Supplier) error {
	sp.UpdatedAt = now()
	query := `
		UPDATE suppliers
		SET name = $2, contact_person = $3, email = $4, phone = $5, country = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		sp.ID, sp.Name, sp.ContactPerson, sp.Email, sp.Phone, sp.Country, sp.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "supplier")
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "supplier")
}
