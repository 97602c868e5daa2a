package memory

import (
	"context"
	"fmt"

	"gdys/internal/store"
)

func (s *Store) CreateInventoryItem(ctx context.Context, it *store.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.VesselID != "" && !s.vesselExists(it.VesselID) {
		return store.NotFound("vessel")
	}
	if it.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if it.ID == "" {
		it.ID = newID()
	}
	it.CreatedAt = s.now()
	it.UpdatedAt = it.CreatedAt
	s.items.insert(it.ID, *it)
	return nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (*store.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items.get(id)
	if !ok {
		return nil, store.NotFound("inventory item")
	}
	return &it, nil
}

func (s *Store) ListInventoryItems(ctx context.Context, f store.InventoryFilter) ([]store.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []store.InventoryItem{}
	for _, it := range s.items.all() {
		if f.VesselID != "" && it.VesselID != f.VesselID {
			continue
		}
		if f.LowStockOnly && it.Quantity > it.MinQuantity {
			continue
		}
		if f.ExpiringWithinDays > 0 {
			if it.ExpiryDate == nil {
				continue
			}
			if !expiryWindow(store.CertFilter{WithinDays: f.ExpiringWithinDays}, *it.ExpiryDate, now) {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) UpdateInventoryItem(ctx context.Context, it *store.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.items.get(it.ID)
	if !ok {
		return store.NotFound("inventory item")
	}
	it.VesselID = prev.VesselID
	// Stock level only moves through transactions.
	it.Quantity = prev.Quantity
	it.CreatedAt = prev.CreatedAt
	it.UpdatedAt = s.now()
	s.items.replace(it.ID, *it)
	return nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.items.remove(id) {
		return store.NotFound("inventory item")
	}
	return nil
}

// CreateTransaction applies a stock movement and records it under one lock,
// so a rejected movement can never leave a partial write behind.
func (s *Store) CreateTransaction(ctx context.Context, tx *store.InventoryTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items.get(tx.ItemID)
	if !ok {
		return store.NotFound("inventory item")
	}
	if tx.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	switch tx.TransactionType {
	case store.TransactionIn:
		it.Quantity += tx.Quantity
	case store.TransactionOut:
		if tx.Quantity > it.Quantity {
			return fmt.Errorf("item %s has %d on hand: %w", it.ID, it.Quantity, store.ErrInsufficientStock)
		}
		it.Quantity -= tx.Quantity
	case store.TransactionAdjustment:
		it.Quantity = tx.Quantity
	default:
		return fmt.Errorf("unknown transaction type %q", tx.TransactionType)
	}

	if tx.ID == "" {
		tx.ID = newID()
	}
	tx.CreatedAt = s.now()
	it.UpdatedAt = tx.CreatedAt

	s.items.replace(it.ID, it)
	s.transactions.insert(tx.ID, *tx)
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, f store.TransactionFilter) ([]store.InventoryTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.InventoryTransaction{}
	for _, tx := range s.transactions.all() {
		if f.ItemID != "" && tx.ItemID != f.ItemID {
			continue
		}
		if f.VesselID != "" {
			it, ok := s.items.get(tx.ItemID)
			if !ok || it.VesselID != f.VesselID {
				continue
			}
		}
		out = append(out, tx)
	}
	return out, nil
}
