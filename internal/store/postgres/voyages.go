package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const voyageColumns = "id, vessel_id, voyage_number, departure_port, arrival_port, departure_time, arrival_time, cargo_description, status, created_at, updated_at"

func scanVoyage(row interface{ Scan(...any) error }) (*store.Voyage, error) {
	var (
		v                  store.Voyage
		departure, arrival sql.NullTime
	)
	err := row.Scan(&v.ID, &v.VesselID, &v.VoyageNumber, &v.DeparturePort,
		&v.ArrivalPort, &departure, &arrival, &v.CargoDescription, &v.Status,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.DepartureTime = timePtr(departure)
	v.ArrivalTime = timePtr(arrival)
	return &v, nil
}

func (s *Store) CreateVoyage(ctx context.Context, v *store.Voyage) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = store.VoyagePlanned
	}
	v.CreatedAt = now()
	v.UpdatedAt = v.CreatedAt

	query := `
		INSERT INTO voyages (` + voyageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.VesselID, v.VoyageNumber, v.DeparturePort, v.ArrivalPort,
		nullTime(v.DepartureTime), nullTime(v.ArrivalTime), v.CargoDescription,
		v.Status, v.CreatedAt, v.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetVoyage(ctx context.Context, id string) (*store.Voyage, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+voyageColumns+" FROM voyages WHERE id = $1", id)
	v, err := scanVoyage(row)
	if err != nil {
		return nil, notFound(err, "voyage")
	}
	return v, nil
}

func (s *Store) ListVoyages(ctx context.Context, f store.ListFilter) ([]store.Voyage, error) {
	query := "SELECT " + voyageColumns + ` FROM voyages
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Voyage{}
	for rows.Next() {
		v, err := scanVoyage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (s *Store) UpdateVoyage(ctx context.Context, v *store.Voyage) error {
	v.UpdatedAt = now()
	query := `
		UPDATE voyages
		SET voyage_number = $2, departure_port = $3, arrival_port = $4,
		    departure_time = $5, arrival_time = $6, cargo_description = $7,
		    status = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		v.ID, v.VoyageNumber, v.DeparturePort, v.ArrivalPort,
		nullTime(v.DepartureTime), nullTime(v.ArrivalTime), v.CargoDescription,
		v.Status, v.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "voyage")
}

func (s *Store) DeleteVoyage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM voyages WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "voyage")
}

const logbookColumns = "id, vessel_id, voyage_id, entry_time, latitude, longitude, course, speed, weather, remarks, recorded_by, signed_by, signed_at, created_at, updated_at"

func scanLogbookEntry(row interface{ Scan(...any) error }) (*store.LogbookEntry, error) {
	var (
		e        store.LogbookEntry
		voyageID sql.NullString
		signedAt sql.NullTime
	)
	err := row.Scan(&e.ID, &e.VesselID, &voyageID, &e.EntryTime, &e.Latitude,
		&e.Longitude, &e.Course, &e.Speed, &e.Weather, &e.Remarks,
		&e.RecordedBy, &e.SignedBy, &signedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.VoyageID = voyageID.String
	e.SignedAt = timePtr(signedAt)
	return &e, nil
}

func (s *Store) CreateLogbookEntry(ctx context.Context, e *store.LogbookEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt
	if e.EntryTime.IsZero() {
		e.EntryTime = e.CreatedAt
	}

	query := `
		INSERT INTO logbook_entries (` + logbookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.VesselID, nullStr(e.VoyageID), e.EntryTime, e.Latitude,
		e.Longitude, e.Course, e.Speed, e.Weather, e.Remarks,
		e.RecordedBy, e.SignedBy, nullTime(e.SignedAt), e.CreatedAt, e.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		if pqErr.Constraint == "logbook_entries_voyage_id_fkey" {
			return store.NotFound("voyage")
		}
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetLogbookEntry(ctx context.Context, id string) (*store.LogbookEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+logbookColumns+" FROM logbook_entries WHERE id = $1", id)
	e, err := scanLogbookEntry(row)
	if err != nil {
		return nil, notFound(err, "logbook entry")
	}
	return e, nil
}

func (s *Store) ListLogbookEntries(ctx context.Context, f store.LogFilter) ([]store.LogbookEntry, error) {
	query := "SELECT " + logbookColumns + ` FROM logbook_entries
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND ($2 = '' OR voyage_id = $2::uuid)
		ORDER BY entry_time`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID, f.VoyageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.LogbookEntry{}
	for rows.Next() {
		e, err := scanLogbookEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// UpdateLogbookEntry rejects updates to signed entries: a countersigned log
// record is immutable. The signing write itself passes through because it
// carries the new signature.
func (s *Store) UpdateLogbookEntry(ctx context.Context, e *store.LogbookEntry) error {
	e.UpdatedAt = now()
	query := `
		UPDATE logbook_entries
		SET voyage_id = $2, entry_time = $3, latitude = $4, longitude = $5,
		    course = $6, speed = $7, weather = $8, remarks = $9,
		    signed_by = $10, signed_at = $11, updated_at = $12
		WHERE id = $1 AND signed_at IS NULL
	`
	res, err := s.db.ExecContext(ctx, query,
		e.ID, nullStr(e.VoyageID), e.EntryTime, e.Latitude, e.Longitude,
		e.Course, e.Speed, e.Weather, e.Remarks,
		e.SignedBy, nullTime(e.SignedAt), e.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var signed sql.NullTime
		err := s.db.QueryRowContext(ctx,
			"SELECT signed_at FROM logbook_entries WHERE id = $1", e.ID).Scan(&signed)
		if err != nil {
			return notFound(err, "logbook entry")
		}
		return store.ErrAlreadySigned
	}
	return nil
}

func (s *Store) DeleteLogbookEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM logbook_entries WHERE id = $1 AND signed_at IS NULL", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var signed sql.NullTime
		err := s.db.QueryRowContext(ctx,
			"SELECT signed_at FROM logbook_entries WHERE id = $1", id).Scan(&signed)
		if err != nil {
			return notFound(err, "logbook entry")
		}
		return store.ErrAlreadySigned
	}
	return nil
}

const engineLogColumns = "id, vessel_id, entry_time, main_engine_hours, rpm, load_percent, lube_oil_pressure, coolant_temp, remarks, recorded_by, created_at, updated_at"

func scanEngineLogEntry(row interface{ Scan(...any) error }) (*store.EngineLogEntry, error) {
	var e store.EngineLogEntry
	err := row.Scan(&e.ID, &e.VesselID, &e.EntryTime, &e.MainEngineHours,
		&e.RPM, &e.LoadPercent, &e.LubeOilPressure, &e.CoolantTemp,
		&e.Remarks, &e.RecordedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) CreateEngineLogEntry(ctx context.Context, e *store.EngineLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt
	if e.EntryTime.IsZero() {
		e.EntryTime = e.CreatedAt
	}
	query := `
		INSERT INTO engine_log_entries (` + engineLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.VesselID, e.EntryTime, e.MainEngineHours, e.RPM,
		e.LoadPercent, e.LubeOilPressure, e.CoolantTemp, e.Remarks,
		e.RecordedBy, e.CreatedAt, e.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetEngineLogEntry(ctx context.Context, id string) (*store.EngineLogEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+engineLogColumns+" FROM engine_log_entries WHERE id = $1", id)
	e, err := scanEngineLogEntry(row)
	if err != nil {
		return nil, notFound(err, "engine log entry")
	}
	return e, nil
}

func (s *Store) ListEngineLogEntries(ctx context.Context, f store.ListFilter) ([]store.EngineLogEntry, error) {
	query := "SELECT " + engineLogColumns + ` FROM engine_log_entries
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		ORDER BY entry_time`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.EngineLogEntry{}
	for rows.Next() {
		e, err := scanEngineLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEngineLogEntry(ctx context.Context, e *store.EngineLogEntry) error {
	e.UpdatedAt = now()
	query := `
		UPDATE engine_log_entries
		SET entry_time = $2, main_engine_hours = $3, rpm = $4, load_percent = $5,
		    lube_oil_pressure = $6, coolant_temp = $7, remarks = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		e.ID, e.EntryTime, e.MainEngineHours, e.RPM, e.LoadPercent,
		e.LubeOilPressure, e.CoolantTemp, e.Remarks, e.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "engine log entry")
}

func (s *Store) DeleteEngineLogEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM engine_log_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "engine log entry")
}

const fuelColumns = "id, vessel_id, record_date, fuel_type, quantity_received, quantity_consumed, remaining_on_board, price_per_ton, created_at, updated_at"

func scanFuelRecord(row interface{ Scan(...any) error }) (*store.FuelRecord, error) {
	var r store.FuelRecord
	err := row.Scan(&r.ID, &r.VesselID, &r.RecordDate, &r.FuelType,
		&r.QuantityReceived, &r.QuantityConsumed, &r.RemainingOnBoard,
		&r.PricePerTon, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateFuelRecord(ctx context.Context, r *store.FuelRecord) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt
	if r.RecordDate.IsZero() {
		r.RecordDate = r.CreatedAt
	}
	query := `
		INSERT INTO fuel_records (` + fuelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.VesselID, r.RecordDate, r.FuelType, r.QuantityReceived,
		r.QuantityConsumed, r.RemainingOnBoard, r.PricePerTon,
		r.CreatedAt, r.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetFuelRecord(ctx context.Context, id string) (*store.FuelRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+fuelColumns+" FROM fuel_records WHERE id = $1", id)
	r, err := scanFuelRecord(row)
	if err != nil {
		return nil, notFound(err, "fuel record")
	}
	return r, nil
}

func (s *Store) ListFuelRecords(ctx context.Context, f store.ListFilter) ([]store.FuelRecord, error) {
	query := "SELECT " + fuelColumns + ` FROM fuel_records
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		ORDER BY record_date`
	rows, err := s.db.QueryContext(ctx, query, f.VesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.FuelRecord{}
	for rows.Next() {
		r, err := scanFuelRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateFuelRecord(ctx context.Context, r *store.FuelRecord) error {
	r.UpdatedAt = now()
	query := `
		UPDATE fuel_records
		SET record_date = $2, fuel_type = $3, quantity_received = $4,
		    quantity_consumed = $5, remaining_on_board = $6, price_per_ton = $7,
		    updated_at = $8
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		r.ID, r.RecordDate, r.FuelType, r.QuantityReceived,
		r.QuantityConsumed, r.RemainingOnBoard, r.PricePerTon, r.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "fuel record")
}

func (s *Store) DeleteFuelRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fuel_records WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "fuel record")
}
