package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

func startOfDay(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour)
}

// expiryBounds converts the filter's WithinDays window into half-open
// timestamp bounds [today, today+days+1). Returns useWindow=false when the
// filter carries no window.
func expiryBounds(f store.CertFilter) (from, until time.Time, useWindow bool) {
	if f.WithinDays <= 0 {
		return time.Time{}, time.Time{}, false
	}
	from = startOfDay(now())
	until = from.AddDate(0, 0, f.WithinDays+1)
	return from, until, true
}

// pgCertStatus derives the display status from the expiry date.
func pgCertStatus(expiry, at time.Time) string {
	today := startOfDay(at)
	switch {
	case expiry.Before(today):
		return store.CertificateExpired
	case expiry.Before(today.AddDate(0, 0, 30)):
		return store.CertificateExpiring
	default:
		return store.CertificateValid
	}
}

const certColumns = "id, vessel_id, name, issuer, issue_date, expiry_date, created_at, updated_at"

func scanCertificate(row interface{ Scan(...any) error }) (*store.Certificate, error) {
	var c store.Certificate
	err := row.Scan(&c.ID, &c.VesselID, &c.Name, &c.Issuer,
		&c.IssueDate, &c.ExpiryDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCertificate(ctx context.Context, c *store.Certificate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	c.Status = pgCertStatus(c.ExpiryDate, c.CreatedAt)

	query := `
		INSERT INTO certificates (` + certColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.VesselID, c.Name, c.Issuer,
		c.IssueDate, c.ExpiryDate, c.CreatedAt, c.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetCertificate(ctx context.Context, id string) (*store.Certificate, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+certColumns+" FROM certificates WHERE id = $1", id)
	c, err := scanCertificate(row)
	if err != nil {
		return nil, notFound(err, "certificate")
	}
	c.Status = pgCertStatus(c.ExpiryDate, now())
	return c, nil
}

func (s *Store) ListCertificates(ctx context.Context, f store.CertFilter) ([]store.Certificate, error) {
	from, until, useWindow := expiryBounds(f)
	query := "SELECT " + certColumns + ` FROM certificates
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND (NOT $2 OR (expiry_date >= $3 AND expiry_date < $4))
		  AND (NOT $5 OR expiry_date < $6)
		ORDER BY expiry_date`
	rows, err := s.db.QueryContext(ctx, query,
		f.VesselID, useWindow, from, until, f.ExpiredOnly, startOfDay(now()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := now()
	out := []store.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		c.Status = pgCertStatus(c.ExpiryDate, today)
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCertificate(ctx context.Context, c *store.Certificate) error {
	c.UpdatedAt = now()
	c.Status = pgCertStatus(c.ExpiryDate, c.UpdatedAt)
	query := `
		UPDATE certificates
		SET name = $2, issuer = $3, issue_date = $4, expiry_date = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "certificate")
}

func (s *Store) DeleteCertificate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM certificates WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "certificate")
}
