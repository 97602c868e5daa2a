package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const taskColumns = "id, vessel_id, equipment, title, description, assigned_to, due_date, interval_days, status, created_at, updated_at"

func scanTask(row interface{ Scan(...any) error }) (*store.MaintenanceTask, error) {
	var (
		t        store.MaintenanceTask
		vesselID sql.NullString
	)
	err := row.Scan(&t.ID, &vesselID, &t.Equipment, &t.Title, &t.Description,
		&t.AssignedTo, &t.DueDate, &t.IntervalDays, &t.Status,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.VesselID = vesselID.String
	return &t, nil
}

func (s *Store) CreateMaintenanceTask(ctx context.Context, t *store.MaintenanceTask) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = store.TaskPending
	}
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt

	query := `
		INSERT INTO maintenance_tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, nullStr(t.VesselID), t.Equipment, t.Title, t.Description,
		t.AssignedTo, t.DueDate, t.IntervalDays, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetMaintenanceTask(ctx context.Context, id string) (*store.MaintenanceTask, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM maintenance_tasks WHERE id = $1", id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "maintenance task")
	}
	t.Status = t.EffectiveStatus(now())
	return t, nil
}

func (s *Store) ListMaintenanceTasks(ctx context.Context, f store.TaskFilter) ([]store.MaintenanceTask, error) {
	at := now()
	// The OVERDUE filter and the OVERDUE status value both resolve against the
	// stored due date, since the state is derived rather than written back.
	query := "SELECT " + taskColumns + ` FROM maintenance_tasks
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND (NOT $2 OR (due_date < $3 AND status != 'COMPLETED'))
		ORDER BY due_date`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.OverdueOnly, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.MaintenanceTask{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		t.Status = t.EffectiveStatus(at)
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateMaintenanceTask(ctx context.Context, t *store.MaintenanceTask) error {
	t.UpdatedAt = now()
	// OVERDUE is derived, never stored.
	status := t.Status
	if status == store.TaskOverdue {
		status = store.TaskPending
	}
	query := `
		UPDATE maintenance_tasks
		SET equipment = $2, title = $3, description = $4, assigned_to = $5,
		    due_date = $6, interval_days = $7, status = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		t.ID, t.Equipment, t.Title, t.Description, t.AssignedTo,
		t.DueDate, t.IntervalDays, status, t.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "maintenance task")
}

func (s *Store) DeleteMaintenanceTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM maintenance_tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "maintenance task")
}

const workOrderColumns = "id, task_id, vessel_id, completed_by, completed_at, labor_hours, notes, created_at"

func scanWorkOrder(row interface{ Scan(...any) error }) (*store.WorkOrder, error) {
	var (
		w        store.WorkOrder
		vesselID sql.NullString
	)
	err := row.Scan(&w.ID, &w.TaskID, &vesselID, &w.CompletedBy,
		&w.CompletedAt, &w.LaborHours, &w.Notes, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.VesselID = vesselID.String
	return &w, nil
}

func (s *Store) CreateWorkOrder(ctx context.Context, w *store.WorkOrder) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.CreatedAt = now()
	if w.CompletedAt.IsZero() {
		w.CompletedAt = w.CreatedAt
	}
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.TaskID, nullStr(w.VesselID), w.CompletedBy,
		w.CompletedAt, w.LaborHours, w.Notes, w.CreatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("maintenance task")
	}
	return err
}

func (s *Store) GetWorkOrder(ctx context.Context, id string) (*store.WorkOrder, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+workOrderColumns+" FROM work_orders WHERE id = $1", id)
	w, err := scanWorkOrder(row)
	if err != nil {
		return nil, notFound(err, "work order")
	}
	return w, nil
}

func (s *Store) ListWorkOrders(ctx context.Context, f store.ListFilter) ([]store.WorkOrder, error) {
	query := "SELECT " + workOrderColumns + ` FROM work_orders
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		ORDER BY completed_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.WorkOrder{}
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}
