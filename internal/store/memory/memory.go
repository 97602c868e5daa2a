// Package memory implements store.Store against in-process collections.
// It is the development backend: the full persistence contract with no
// external dependencies, safe for concurrent use.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gdys/internal/store"
)

// collection holds one entity type: a map keyed by ID plus an insertion-order
// index so list results are stable.
type collection[T any] struct {
	byID  map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[string]T)}
}

func (c *collection[T]) insert(id string, v T) {
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *collection[T]) replace(id string, v T) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	c.byID[id] = v
	return true
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Store is an in-memory implementation of store.Store. A single RWMutex
// guards every collection; cross-collection operations (stock transactions,
// embedded crew reads) see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	users         *collection[store.User]
	vessels       *collection[store.Vessel]
	crew          *collection[store.CrewMember]
	certificates  *collection[store.Certificate]
	crewCerts     *collection[store.CrewCertificate]
	trainings     *collection[store.Training]
	rotations     *collection[store.Rotation]
	documents     *collection[store.Document]
	categories    *collection[store.Category]
	items         *collection[store.InventoryItem]
	transactions  *collection[store.InventoryTransaction]
	requests      *collection[store.ProcurementRequest]
	orders        *collection[store.PurchaseOrder]
	suppliers     *collection[store.Supplier]
	tasks         *collection[store.MaintenanceTask]
	workOrders    *collection[store.WorkOrder]
	voyages       *collection[store.Voyage]
	logbook       *collection[store.LogbookEntry]
	engineLog     *collection[store.EngineLogEntry]
	fuelRecords   *collection[store.FuelRecord]
	pscInspection *collection[store.PSCInspection]
	drills        *collection[store.SafetyDrill]
	incidents     *collection[store.Incident]

	// nowFn is swappable in tests.
	nowFn func() time.Time
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:         newCollection[store.User](),
		vessels:       newCollection[store.Vessel](),
		crew:          newCollection[store.CrewMember](),
		certificates:  newCollection[store.Certificate](),
		crewCerts:     newCollection[store.CrewCertificate](),
		trainings:     newCollection[store.Training](),
		rotations:     newCollection[store.Rotation](),
		documents:     newCollection[store.Document](),
		categories:    newCollection[store.Category](),
		items:         newCollection[store.InventoryItem](),
		transactions:  newCollection[store.InventoryTransaction](),
		requests:      newCollection[store.ProcurementRequest](),
		orders:        newCollection[store.PurchaseOrder](),
		suppliers:     newCollection[store.Supplier](),
		tasks:         newCollection[store.MaintenanceTask](),
		workOrders:    newCollection[store.WorkOrder](),
		voyages:       newCollection[store.Voyage](),
		logbook:       newCollection[store.LogbookEntry](),
		engineLog:     newCollection[store.EngineLogEntry](),
		fuelRecords:   newCollection[store.FuelRecord](),
		pscInspection: newCollection[store.PSCInspection](),
		drills:        newCollection[store.SafetyDrill](),
		incidents:     newCollection[store.Incident](),
		nowFn:         func() time.Time { return time.Now().UTC() },
	}
}

var _ store.Store = (*Store)(nil)

// Ping always succeeds; the store has no backing connection.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

func (s *Store) now() time.Time { return s.nowFn() }

func newID() string { return uuid.NewString() }

// expiryWindow reports whether expiry falls inside the filter's window:
// within [today, today+WithinDays] inclusive, or strictly before today for
// ExpiredOnly. With neither set every date passes.
func expiryWindow(f store.CertFilter, expiry, now time.Time) bool {
	today := now.Truncate(24 * time.Hour)
	switch {
	case f.ExpiredOnly:
		return expiry.Before(today)
	case f.WithinDays > 0:
		limit := today.AddDate(0, 0, f.WithinDays)
		return !expiry.Before(today) && !expiry.After(limit.Add(24*time.Hour-time.Nanosecond))
	default:
		return true
	}
}

// certStatus derives the display status from the expiry date.
func certStatus(expiry, now time.Time) string {
	today := now.Truncate(24 * time.Hour)
	switch {
	case expiry.Before(today):
		return store.CertificateExpired
	case expiry.Before(today.AddDate(0, 0, 30)):
		return store.CertificateExpiring
	default:
		return store.CertificateValid
	}
}
