package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gdys/internal/store"
)

const itemColumns = "id, vessel_id, name, part_number, category, location, quantity, min_quantity, unit, expiry_date, created_at, updated_at"

func scanItem(row interface{ Scan(...any) error }) (*store.InventoryItem, error) {
	var (
		it       store.InventoryItem
		vesselID sql.NullString
		expiry   sql.NullTime
	)
	err := row.Scan(&it.ID, &vesselID, &it.Name, &it.PartNumber, &it.Category,
		&it.Location, &it.Quantity, &it.MinQuantity, &it.Unit, &expiry,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.VesselID = vesselID.String
	it.ExpiryDate = timePtr(expiry)
	return &it, nil
}

func (s *Store) CreateInventoryItem(ctx context.Context, it *store.InventoryItem) error {
	if it.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.CreatedAt = now()
	it.UpdatedAt = it.CreatedAt

	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		it.ID, nullStr(it.VesselID), it.Name, it.PartNumber, it.Category,
		it.Location, it.Quantity, it.MinQuantity, it.Unit, nullTime(it.ExpiryDate),
		it.CreatedAt, it.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
		return store.NotFound("vessel")
	}
	return err
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (*store.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM inventory_items WHERE id = $1", id)
	it, err := scanItem(row)
	if err != nil {
		return nil, notFound(err, "inventory item")
	}
	return it, nil
}

func (s *Store) ListInventoryItems(ctx context.Context, f store.InventoryFilter) ([]store.InventoryItem, error) {
	from, until, useWindow := expiryBounds(store.CertFilter{WithinDays: f.ExpiringWithinDays})
	query := "SELECT " + itemColumns + ` FROM inventory_items
		WHERE ($1 = '' OR vessel_id = $1::uuid)
		  AND (NOT $2 OR quantity <= min_quantity)
		  AND (NOT $3 OR (expiry_date IS NOT NULL AND expiry_date >= $4 AND expiry_date < $5))
		ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query,
		f.VesselID, f.LowStockOnly, useWindow, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.InventoryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// UpdateInventoryItem replaces the descriptive fields. Quantity only moves
// through transactions and the owning vessel never changes.
func (s *Store) UpdateInventoryItem(ctx context.Context, it *store.InventoryItem) error {
	it.UpdatedAt = now()
	query := `
		UPDATE inventory_items
		SET name = $2, part_number = $3, category = $4, location = $5,
		    min_quantity = $6, unit = $7, expiry_date = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		it.ID, it.Name, it.PartNumber, it.Category, it.Location,
		it.MinQuantity, it.Unit, nullTime(it.ExpiryDate), it.UpdatedAt)
	if err != nil {
		return err
	}
	return affected(res, "inventory item")
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	return affected(res, "inventory item")
}

// CreateTransaction applies a stock movement and records it in one database
// transaction. The item row is locked for the duration so concurrent movements
// serialize, and a rejected movement rolls back without a trace.
func (s *Store) CreateTransaction(ctx context.Context, t *store.InventoryTransaction) error {
	if t.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	var quantity int
	err = dbTx.QueryRowContext(ctx,
		"SELECT quantity FROM inventory_items WHERE id = $1 FOR UPDATE", t.ItemID).
		Scan(&quantity)
	if err != nil {
		return notFound(err, "inventory item")
	}

	switch t.TransactionType {
	case store.TransactionIn:
		quantity += t.Quantity
	case store.TransactionOut:
		if t.Quantity > quantity {
			return fmt.Errorf("item %s has %d on hand: %w", t.ItemID, quantity, store.ErrInsufficientStock)
		}
		quantity -= t.Quantity
	case store.TransactionAdjustment:
		quantity = t.Quantity
	default:
		return fmt.Errorf("unknown transaction type %q", t.TransactionType)
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now()

	_, err = dbTx.ExecContext(ctx,
		"UPDATE inventory_items SET quantity = $2, updated_at = $3 WHERE id = $1",
		t.ItemID, quantity, t.CreatedAt)
	if err != nil {
		return err
	}
	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO inventory_transactions (id, item_id, transaction_type, quantity, reference, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.ItemID, t.TransactionType, t.Quantity, t.Reference, t.PerformedBy, t.CreatedAt)
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

func (s *Store) ListTransactions(ctx context.Context, f store.TransactionFilter) ([]store.InventoryTransaction, error) {
	query := `
		SELECT t.id, t.item_id, t.transaction_type, t.quantity, t.reference, t.performed_by, t.created_at
		FROM inventory_transactions t
		JOIN inventory_items i ON i.id = t.item_id
		WHERE ($1 = '' OR t.item_id = $1::uuid)
		  AND ($2 = '' OR i.vessel_id = $2::uuid)
		ORDER BY t.created_at`
	rows, err := s.db.QueryContext(ctx, query, f.ItemID, f.VesselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.InventoryTransaction{}
	for rows.Next() {
		var t store.InventoryTransaction
		err := rows.Scan(&t.ID, &t.ItemID, &t.TransactionType, &t.Quantity,
			&t.Reference, &t.PerformedBy, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
