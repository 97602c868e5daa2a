package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const inspectionColumns = "id, vessel_id, port, authority, inspection_date, deficiencies, detention, status, created_at, updated_at"

func scanInspection(row interface{ Scan(...any) error }) (*store.PSCInspection, error) {
	var (
		p            store.PSCInspection
		deficiencies []byte
	)
	err := row.Scan(&p.ID, &p.VesselID, &p.Port, &p.Authority,
		&p.InspectionDate, &deficiencies, &p.Detention, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Deficiencies = []store.Deficiency{}
	if len(deficiencies) > 0 {
		if err := json.Unmarshal(deficiencies, &p.Deficiencies); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *Store) CreatePSCInspection(ctx context.Context, p *store.PSCInspection) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "OPEN"
	}
	if p.Deficiencies == nil {
		p.Deficiencies = []store.Deficiency{}
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	deficiencies, err := json.Marshal(p.Deficiencies)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO psc_inspections (` + inspectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.VesselID, p.Port, p.Authority, p.InspectionDate,
		deficiencies, p.Detention, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetPSCInspection(ctx context.Context, id string) (*store.PSCInspection, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+inspectionColumns+" FROM psc_inspections WHERE id = $1", id)
	p, err := scanInspection(row)
	if err != nil {
		return nil, notFound(err, "PSC inspection")
	}
	return p, nil
}

func (s *Store) ListPSCInspections(ctx context.Context, f store.ListFilter) ([]store.PSCInspection, error) {
	query := "SELECT " + inspectionColumns + ` FROM psc_inspections
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY inspection_date`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.PSCInspection{}
	for rows.Next() {
		p, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePSCInspection(ctx context.Context, p *store.PSCInspection) error {
	p.UpdatedAt = now()
	if p.Deficiencies == nil {
		p.Deficiencies = []store.Deficiency{}
	}
	deficiencies, err := json.Marshal(p.Deficiencies)
	if err != nil {
		return err
	}
	query := `
		UPDATE psc_inspections
		SET port = $2, authority = $3, inspection_date = $4, deficiencies = $5,
		    detention = $6, status = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		p.ID, p.Port, p.Authority, p.InspectionDate, deficiencies,
		p.Detention, p.Status, p.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "PSC inspection")
}

func (s *Store) DeletePSCInspection(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM psc_inspections WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "PSC inspection")
}

const drillColumns = "id, vessel_id, drill_type, conducted_date, participants, remarks, next_due_date, created_at, updated_at"

func scanDrill(row interface{ Scan(...any) error }) (*store.SafetyDrill, error) {
	var (
		d       store.SafetyDrill
		nextDue sql.NullTime
	)
	err := row.Scan(&d.ID, &d.VesselID, &d.DrillType, &d.ConductedDate,
		&d.Participants, &d.Remarks, &nextDue, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.NextDueDate = timePtr(nextDue)
	return &d, nil
}

func (s *Store) CreateSafetyDrill(ctx context.Context, d *store.SafetyDrill) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = now()
	d.UpdatedAt = d.CreatedAt
	if d.ConductedDate.IsZero() {
		d.ConductedDate = d.CreatedAt
	}
	query := `
		INSERT INTO safety_drills (` + drillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.VesselID, d.DrillType, d.ConductedDate, d.Participants,
		d.Remarks, nullTime(d.NextDueDate), d.CreatedAt, d.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetSafetyDrill(ctx context.Context, id string) (*store.SafetyDrill, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+drillColumns+" FROM safety_drills WHERE id = $1", id)
	d, err := scanDrill(row)
	if err != nil {
		return nil, notFound(err, "safety drill")
	}
	return d, nil
}

func (s *Store) ListSafetyDrills(ctx context.Context, f store.ListFilter) ([]store.SafetyDrill, error) {
	query := "SELECT " + drillColumns + ` FROM safety_drills
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		ORDER BY conducted_date`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.SafetyDrill{}
	for rows.Next() {
		d, err := scanDrill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSafetyDrill(ctx context.Context, d *store.SafetyDrill) error {
	d.UpdatedAt = now()
	query := `
		UPDATE safety_drills
		SET drill_type = $2, conducted_date = $3, participants = $4,
		    remarks = $5, next_due_date = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		d.ID, d.DrillType, d.ConductedDate, d.Participants,
		d.Remarks, nullTime(d.NextDueDate), d.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "safety drill")
}

func (s *Store) DeleteSafetyDrill(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM safety_drills WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "safety drill")
}

const incidentColumns = "id, vessel_id, incident_type, severity, occurred_at, location, description, reported_by, status, photo_keys, created_at, updated_at"

func scanIncident(row interface{ Scan(...any) error }) (*store.Incident, error) {
	var (
		i         store.Incident
		photoKeys []byte
	)
	err := row.Scan(&i.ID, &i.VesselID, &i.IncidentType, &i.Severity,
		&i.OccurredAt, &i.Location, &i.Description, &i.ReportedBy,
		&i.Status, &photoKeys, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.PhotoKeys = []string{}
	if len(photoKeys) > 0 {
		if err := json.Unmarshal(photoKeys, &i.PhotoKeys); err != nil {
			return nil, err
		}
	}
	return &i, nil
}

func (s *Store) CreateIncident(ctx context.Context, i *store.Incident) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = store.IncidentOpen
	}
	if i.PhotoKeys == nil {
		i.PhotoKeys = []string{}
	}
	i.CreatedAt = now()
	i.UpdatedAt = i.CreatedAt
	if i.OccurredAt.IsZero() {
		i.OccurredAt = i.CreatedAt
	}

	photoKeys, err := json.Marshal(i.PhotoKeys)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO incidents (` + incidentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(ctx, query,
		i.ID, i.VesselID, i.IncidentType, i.Severity, i.OccurredAt,
		i.Location, i.Description, i.ReportedBy, i.Status, photoKeys,
		i.CreatedAt, i.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetIncident(ctx context.Context, id string) (*store.Incident, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+incidentColumns+" FROM incidents WHERE id = $1", id)
	i, err := scanIncident(row)
	if err != nil {
		return nil, notFound(err, "incident")
	}
	return i, nil
}

func (s *Store) ListIncidents(ctx context.Context, f store.ListFilter) ([]store.Incident, error) {
	query := "SELECT " + incidentColumns + ` FROM incidents
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY occurred_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Incident{}
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (s *Store) UpdateIncident(ctx context.Context, i *store.Incident) error {
	i.UpdatedAt = now()
	if i.PhotoKeys == nil {
		i.PhotoKeys = []string{}
	}
	photoKeys, err := json.Marshal(i.PhotoKeys)
	if err != nil {
		return err
	}
	query := `
		UPDATE incidents
		SET incident_type = $2, severity = $3, occurred_at = $4, location = $5,
		    description = $6, status = $7, photo_keys = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		i.ID, i.IncidentType, i.Severity, i.OccurredAt, i.Location,
		i.Description, i.Status, photoKeys, i.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "incident")
}

func (s *Store) DeleteIncident(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM incidents WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "incident")
}
