package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const documentColumns = "id, vessel_id, category_id, title, file_name, file_key, file_size, status, uploaded_by, approved_by, reject_reason, created_at, updated_at"

func scanDocument(row interface{ Scan(...any) error }) (*store.Document, error) {
	var (
		d                  store.Document
		vesselID, category sql.NullString
	)
	err := row.Scan(&d.ID, &vesselID, &category, &d.Title, &d.FileName, &d.FileKey,
		&d.FileSize, &d.Status, &d.UploadedBy, &d.ApprovedBy, &d.RejectReason,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.VesselID = vesselID.String
	d.CategoryID = category.String
	return &d, nil
}

func (s *Store) CreateDocument(ctx context.Context, d *store.Document) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = store.DocumentDraft
	}
	d.CreatedAt = now()
	d.UpdatedAt = d.CreatedAt

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(ctx, query,
		d.ID, nullStr(d.VesselID), nullStr(d.CategoryID), d.Title,
		d.FileName, d.FileKey, d.FileSize, d.Status,
		d.UploadedBy, d.ApprovedBy, d.RejectReason, d.CreatedAt, d.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		if pqErr.Constraint == "documents_category_id_fkey" {
			return store.NotFound("category")
		}
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetDocument(ctx context.Context, id string) (*store.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = $1", id)
	d, err := scanDocument(row)
	if err != nil {
		return nil, notFound(err, "document")
	}
	return d, nil
}

func (s *Store) ListDocuments(ctx context.Context, f store.ListFilter) ([]store.Document, error) {
	query := "SELECT " + documentColumns + ` FROM documents
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// UpdateDocument replaces the mutable fields. The owning vessel never changes.
func (s *Store) UpdateDocument(ctx context.Context, d *store.Document) error {
	d.UpdatedAt = now()
	query := `
		UPDATE documents
		SET category_id = $2, title = $3, file_name = $4, file_key = $5, file_size = $6,
		    status = $7, approved_by = $8, reject_reason = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		d.ID, nullStr(d.CategoryID), d.Title, d.FileName, d.FileKey, d.FileSize,
		d.Status, d.ApprovedBy, d.RejectReason, d.UpdatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("category")
	}
	if err != nil {
		return err
	}
	return affected(res, "document")
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "document")
}

const categoryColumns = "id, name, description, created_at, updated_at"

func (s *Store) CreateCategory(ctx context.Context, c *store.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories ("+categoryColumns+") VALUES ($1, $2, $3, $4, $5)",
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *Store) GetCategory(ctx context.Context, id string) (*store.Category, error) {
	var c store.Category
	err := s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]store.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Category{}
	for rows.Next() {
		var c store.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, c *store.Category) error {
	c.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1",
		c.ID, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "category")
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "category")
}
