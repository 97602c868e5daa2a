package postgres

import (
	"context"

	"github.com/google/uuid"

	"gdys/internal/store"
)

const vesselColumns = "id, name, imo_number, vessel_type, flag, gross_tonnage, year_built, status, created_at, updated_at"

func scanVessel(row interface{ Scan(...any) error }) (*store.Vessel, error) {
	var v store.Vessel
	err := row.Scan(&v.ID, &v.Name, &v.IMONumber, &v.VesselType, &v.Flag,
		&v.GrossTonnage, &v.YearBuilt, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) CreateVessel(ctx context.Context, v *store.Vessel) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = "ACTIVE"
	}
	v.CreatedAt = now()
	v.UpdatedAt = v.CreatedAt

	query := `
		INSERT INTO vessels (` + vesselColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.Name, v.IMONumber, v.VesselType, v.Flag,
		v.GrossTonnage, v.YearBuilt, v.Status, v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (s *Store) GetVessel(ctx context.Context, id string) (*store.Vessel, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+vesselColumns+" FROM vessels WHERE id = $1", id)
	v, err := scanVessel(row)
	if err != nil {
		return nil, notFound(err, "vessel")
	}
	return v, nil
}

func (s *Store) ListVessels(ctx context.Context) ([]store.Vessel, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+vesselColumns+" FROM vessels ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Vessel{}
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (s *Store) UpdateVessel(ctx context.Context, v *store.Vessel) error {
	v.UpdatedAt = now()
	query := `
		UPDATE vessels
		SET name = $2, imo_number = $3, vessel_type = $4, flag = $5,
		    gross_tonnage = $6, year_built = $7, status = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		v.ID, v.Name, v.IMONumber, v.VesselType, v.Flag,
		v.GrossTonnage, v.YearBuilt, v.Status, v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affected(res, "vessel")
}

func (s *Store) DeleteVessel(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM vessels WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "vessel")
}
