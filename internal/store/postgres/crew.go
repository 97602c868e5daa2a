package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const crewColumns = "id, vessel_id, first_name, last_name, position, nationality, date_of_birth, embark_date, status, created_at, updated_at"

func scanCrewMember(row interface{ Scan(...any) error }) (*store.CrewMember, error) {
	var m store.CrewMember
	var vesselID = nullStr("")
	var dob, embark sql.NullTime
	err := row.Scan(&m.ID, &vesselID, &m.FirstName, &m.LastName, &m.Position,
		&m.Nationality, &dob, &embark, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.VesselID = strOf(vesselID)
	m.DateOfBirth = timePtr(dob)
	m.EmbarkDate = timePtr(embark)
	return &m, nil
}

func (s *Store) CreateCrewMember(ctx context.Context, m *store.CrewMember) error {
	if m.VesselID != "" {
		if _, err := s.GetVessel(ctx, m.VesselID); err != nil {
			return err
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = "ACTIVE"
	}
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt

	query := `
		INSERT INTO crew_members (` + crewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		m.ID, nullStr(m.VesselID), m.FirstName, m.LastName, m.Position,
		m.Nationality, nullTime(m.DateOfBirth), nullTime(m.EmbarkDate),
		m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	m.Certificates = []store.CrewCertificate{}
	m.Trainings = []store.Training{}
	m.Rotations = []store.Rotation{}
	return nil
}

func (s *Store) GetCrewMember(ctx context.Context, id string) (*store.CrewMember, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+crewColumns+" FROM crew_members WHERE id = $1", id)
	m, err := scanCrewMember(row)
	if err != nil {
		return nil, notFound(err, "crew member")
	}
	if err := s.embedCrewRelations(ctx, []*store.CrewMember{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) ListCrewMembers(ctx context.Context, f store.ListFilter) ([]store.CrewMember, error) {
	query := "SELECT " + crewColumns + ` FROM crew_members
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*store.CrewMember{}
	for rows.Next() {
		m, err := scanCrewMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.embedCrewRelations(ctx, members); err != nil {
		return nil, err
	}

	out := make([]store.CrewMember, 0, len(members))
	for _, m := range members {
		out = append(out, *m)
	}
	return out, nil
}

// embedCrewRelations loads certificates, trainings and rotations for the
// given members in three grouped queries.
func (s *Store) embedCrewRelations(ctx context.Context, members []*store.CrewMember) error {
	byID := make(map[string]*store.CrewMember, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		m.Certificates = []store.CrewCertificate{}
		m.Trainings = []store.Training{}
		m.Rotations = []store.Rotation{}
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return nil
	}
	today := now()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+crewCertColumns+" FROM crew_certificates WHERE crew_member_id = ANY($1) ORDER BY created_at",
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCrewCertificate(rows)
		if err != nil {
			return err
		}
		c.Status = pgCertStatus(c.ExpiryDate, today)
		if m, ok := byID[c.CrewMemberID]; ok {
			m.Certificates = append(m.Certificates, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	trows, err := s.db.QueryContext(ctx,
		"SELECT "+trainingColumns+" FROM trainings WHERE crew_member_id = ANY($1) ORDER BY created_at",
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer trows.Close()
	for trows.Next() {
		tr, err := scanTraining(trows)
		if err != nil {
			return err
		}
		if m, ok := byID[tr.CrewMemberID]; ok {
			m.Trainings = append(m.Trainings, *tr)
		}
	}
	if err := trows.Err(); err != nil {
		return err
	}

	rrows, err := s.db.QueryContext(ctx,
		"SELECT "+rotationColumns+" FROM rotations WHERE crew_member_id = ANY($1) ORDER BY created_at",
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rrows.Close()
	for rrows.Next() {
		r, err := scanRotation(rrows)
		if err != nil {
			return err
		}
		if m, ok := byID[r.CrewMemberID]; ok {
			m.Rotations = append(m.Rotations, *r)
		}
	}
	return rrows.Err()
}

func (s *Store) UpdateCrewMember(ctx context.Context, m *store.CrewMember) error {
	m.UpdatedAt = now()
	query := `
		UPDATE crew_members
		SET vessel_id = $2, first_name = $3, last_name = $4, position = $5,
		    nationality = $6, date_of_birth = $7, embark_date = $8, status = $9,
		    updated_at = $10
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		m.ID, nullStr(m.VesselID), m.FirstName, m.LastName, m.Position,
		m.Nationality, nullTime(m.DateOfBirth), nullTime(m.EmbarkDate),
		m.Status, m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affected(res, "crew member")
}

func (s *Store) DeleteCrewMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM crew_members WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "crew member")
}

const crewCertColumns = "id, crew_member_id, name, issuer, issue_date, expiry_date, created_at, updated_at"

func scanCrewCertificate(row interface{ Scan(...any) error }) (*store.CrewCertificate, error) {
	var c store.CrewCertificate
	err := row.Scan(&c.ID, &c.CrewMemberID, &c.Name, &c.Issuer,
		&c.IssueDate, &c.ExpiryDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCrewCertificate(ctx context.Context, c *store.CrewCertificate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	c.Status = pgCertStatus(c.ExpiryDate, c.CreatedAt)

	query := `
		INSERT INTO crew_certificates (` + crewCertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.CrewMemberID, c.Name, c.Issuer,
		c.IssueDate, c.ExpiryDate, c.CreatedAt, c.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("crew member")
	}
	return err
}

func (s *Store) GetCrewCertificate(ctx context.Context, id string) (*store.CrewCertificate, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+crewCertColumns+" FROM crew_certificates WHERE id = $1", id)
	c, err := scanCrewCertificate(row)
	if err != nil {
		return nil, notFound(err, "crew certificate")
	}
	c.Status = pgCertStatus(c.ExpiryDate, now())
	return c, nil
}

func (s *Store) ListCrewCertificates(ctx context.Context, f store.CertFilter) ([]store.CrewCertificate, error) {
	from, until, useWindow := expiryBounds(f)
	query := `SELECT c.id, c.crew_member_id, c.name, c.issuer, c.issue_date,
		       c.expiry_date, c.created_at, c.updated_at
		FROM crew_certificates c
		JOIN crew_members m ON m.id = c.crew_member_id
		WHERE ($1 = '' OR c.crew_member_id = $1::uuid)
		  AND ($2 = '' OR m.vessel_id = $2::uuid)
		  AND (NOT $3 OR (c.expiry_date >= $4 AND c.expiry_date < $5))
		  AND (NOT $6 OR c.expiry_date < $7)
		ORDER BY c.expiry_date`
	rows, err := s.db.QueryContext(ctx, query,
		f.CrewMemberID, f.VesselID,
		useWindow, from, until,
		f.ExpiredOnly, startOfDay(now()),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := now()
	out := []store.CrewCertificate{}
	for rows.Next() {
		c, err := scanCrewCertificate(rows)
		if err != nil {
			return nil, err
		}
		c.Status = pgCertStatus(c.ExpiryDate, today)
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCrewCertificate(ctx context.Context, c *store.CrewCertificate) error {
	c.UpdatedAt = now()
	c.Status = pgCertStatus(c.ExpiryDate, c.UpdatedAt)
	query := `
		UPDATE crew_certificates
		SET name = $2, issuer = $3, issue_date = $4, expiry_date = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Issuer, c.IssueDate, c.ExpiryDate, c.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "crew certificate")
}

func (s *Store) DeleteCrewCertificate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM crew_certificates WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "crew certificate")
}

const trainingColumns = "id, crew_member_id, name, provider, completed_date, expiry_date, created_at, updated_at"

func scanTraining(row interface{ Scan(...any) error }) (*store.Training, error) {
	var t store.Training
	var completed, expiry sql.NullTime
	err := row.Scan(&t.ID, &t.CrewMemberID, &t.Name, &t.Provider,
		&completed, &expiry, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CompletedDate = timePtr(completed)
	t.ExpiryDate = timePtr(expiry)
	return &t, nil
}

func (s *Store) CreateTraining(ctx context.Context, t *store.Training) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt

	query := `
		INSERT INTO trainings (` + trainingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.CrewMemberID, t.Name, t.Provider,
		nullTime(t.CompletedDate), nullTime(t.ExpiryDate), t.CreatedAt, t.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("crew member")
	}
	return err
}

func (s *Store) GetTraining(ctx context.Context, id string) (*store.Training, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+trainingColumns+" FROM trainings WHERE id = $1", id)
	t, err := scanTraining(row)
	if err != nil {
		return nil, notFound(err, "training")
	}
	return t, nil
}

func (s *Store) ListTrainings(ctx context.Context, crewMemberID string) ([]store.Training, error) {
	query := "SELECT " + trainingColumns + ` FROM trainings
		WHERE ($1 = '' OR crew_member_id = $1::uuid)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, crewMemberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Training{}
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTraining(ctx context.Context, t *store.Training) error {
	t.UpdatedAt = now()
	query := `
		UPDATE trainings
		SET name = $2, provider = $3, completed_date = $4, expiry_date = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Provider, nullTime(t.CompletedDate), nullTime(t.ExpiryDate), t.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "training")
}

func (s *Store) DeleteTraining(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trainings WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "training")
}

const rotationColumns = "id, crew_member_id, vessel_id, join_date, leave_date, status, created_at, updated_at"

func scanRotation(row interface{ Scan(...any) error }) (*store.Rotation, error) {
	var r store.Rotation
	var vesselID = nullStr("")
	var leave sql.NullTime
	err := row.Scan(&r.ID, &r.CrewMemberID, &vesselID, &r.JoinDate,
		&leave, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.VesselID = strOf(vesselID)
	r.LeaveDate = timePtr(leave)
	return &r, nil
}

func (s *Store) CreateRotation(ctx context.Context, r *store.Rotation) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = "PLANNED"
	}
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt

	query := `
		INSERT INTO rotations (` + rotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.CrewMemberID, nullStr(r.VesselID), r.JoinDate,
		nullTime(r.LeaveDate), r.Status, r.CreatedAt, r.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("crew member")
	}
	return err
}

func (s *Store) GetRotation(ctx context.Context, id string) (*store.Rotation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+rotationColumns+" FROM rotations WHERE id = $1", id)
	r, err := scanRotation(row)
	if err != nil {
		return nil, notFound(err, "rotation")
	}
	return r, nil
}

func (s *Store) ListRotations(ctx context.Context, f store.ListFilter) ([]store.Rotation, error) {
	query := "SELECT " + rotationColumns + ` FROM rotations
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Rotation{}
	for rows.Next() {
		r, err := scanRotation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRotation(ctx context.Context, r *store.Rotation) error {
	r.UpdatedAt = now()
	query := `
		UPDATE rotations
		SET vessel_id = $2, join_date = $3, leave_date = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ID, nullStr(r.VesselID), r.JoinDate, nullTime(r.LeaveDate), r.Status, r.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "rotation")
}

func (s *Store) DeleteRotation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rotations WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "rotation")
}
