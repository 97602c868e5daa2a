package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"gdys/internal/store"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return &Store{db: db}, mock
}

func TestGetVessel_Success(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	ctx := context.Background()
	vesselID := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT id, name, imo_number, vessel_type, flag, gross_tonnage, year_built, status, created_at, updated_at FROM vessels WHERE id = \$1`).
		WithArgs(vesselID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "imo_number", "vessel_type", "flag",
			"gross_tonnage", "year_built", "status", "created_at", "updated_at",
		}).AddRow(vesselID, "MV Aurora", "9321483", "BULK_CARRIER", "MT",
			52000.0, 2012, "ACTIVE", createdAt, createdAt))

	v, err := s.GetVessel(ctx, vesselID)
	if err != nil {
		t.Fatalf("GetVessel failed: %v", err)
	}
	if v.Name != "MV Aurora" {
		t.Errorf("got Name %s, want MV Aurora", v.Name)
	}
	if v.IMONumber != "9321483" {
		t.Errorf("got IMONumber %s, want 9321483", v.IMONumber)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetVessel_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	vesselID := uuid.NewString()
	mock.ExpectQuery(`SELECT .+ FROM vessels WHERE id = \$1`).
		WithArgs(vesselID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "imo_number", "vessel_type", "flag",
			"gross_tonnage", "year_built", "status", "created_at", "updated_at",
		}))

	v, err := s.GetVessel(context.Background(), vesselID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if v != nil {
		t.Error("expected nil vessel")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteVessel_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	vesselID := uuid.NewString()
	mock.ExpectExec(`DELETE FROM vessels WHERE id = \$1`).
		WithArgs(vesselID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteVessel(context.Background(), vesselID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateTransaction_OutSuccess(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	itemID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM inventory_items WHERE id = \$1 FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(10))
	mock.ExpectExec(`UPDATE inventory_items SET quantity = \$2, updated_at = \$3 WHERE id = \$1`).
		WithArgs(itemID, 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_transactions`).
		WithArgs(sqlmock.AnyArg(), itemID, store.TransactionOut, 3, "WO-17", "chief", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := &store.InventoryTransaction{
		ItemID:          itemID,
		TransactionType: store.TransactionOut,
		Quantity:        3,
		Reference:       "WO-17",
		PerformedBy:     "chief",
	}
	if err := s.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if tx.ID == "" {
		t.Error("expected transaction ID to be assigned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateTransaction_InsufficientStock(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	itemID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity FROM inventory_items WHERE id = \$1 FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectRollback()

	tx := &store.InventoryTransaction{
		ItemID:          itemID,
		TransactionType: store.TransactionOut,
		Quantity:        5,
	}
	err := s.CreateTransaction(context.Background(), tx)
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreatePurchaseOrder_MovesRequestToOrdered(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	requestID := uuid.NewString()
	supplierID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE procurement_requests SET status = \$2, updated_at = \$3 WHERE id = \$1`).
		WithArgs(requestID, store.RequestOrdered, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO purchase_orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	o := &store.PurchaseOrder{RequestID: requestID, SupplierID: supplierID, TotalCost: 1250}
	if err := s.CreatePurchaseOrder(context.Background(), o); err != nil {
		t.Fatalf("CreatePurchaseOrder failed: %v", err)
	}
	if o.Status != store.OrderOpen {
		t.Errorf("got status %s, want %s", o.Status, store.OrderOpen)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreatePurchaseOrder_RequestMissing(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	requestID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE procurement_requests SET status = \$2, updated_at = \$3 WHERE id = \$1`).
		WithArgs(requestID, store.RequestOrdered, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	o := &store.PurchaseOrder{RequestID: requestID, SupplierID: uuid.NewString()}
	if err := s.CreatePurchaseOrder(context.Background(), o); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateLogbookEntry_Signed(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	entryID := uuid.NewString()
	signedAt := time.Now().UTC()

	mock.ExpectExec(`UPDATE logbook_entries`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT signed_at FROM logbook_entries WHERE id = \$1`).
		WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"signed_at"}).AddRow(signedAt))

	e := &store.LogbookEntry{ID: entryID, Remarks: "amended"}
	if err := s.UpdateLogbookEntry(context.Background(), e); !errors.Is(err, store.ErrAlreadySigned) {
		t.Errorf("expected ErrAlreadySigned, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListCertificates_DerivesStatus(t *testing.T) {
	s, mock := newMockStore(t)
	defer s.db.Close()

	vesselID := uuid.NewString()
	nowTime := time.Now().UTC()
	createdAt := nowTime.AddDate(-1, 0, 0)

	rows := sqlmock.NewRows([]string{
		"id", "vessel_id", "name", "issuer", "issue_date", "expiry_date", "created_at", "updated_at",
	}).
		AddRow(uuid.NewString(), vesselID, "Safety Management Certificate", "DNV",
			createdAt, nowTime.AddDate(0, 0, -2), createdAt, createdAt).
		AddRow(uuid.NewString(), vesselID, "Load Line Certificate", "DNV",
			createdAt, nowTime.AddDate(0, 0, 10), createdAt, createdAt).
		AddRow(uuid.NewString(), vesselID, "Radio Certificate", "DNV",
			createdAt, nowTime.AddDate(1, 0, 0), createdAt, createdAt)

	mock.ExpectQuery(`SELECT .+ FROM certificates`).
		WillReturnRows(rows)

	certs, err := s.ListCertificates(context.Background(), store.CertFilter{VesselID: vesselID})
	if err != nil {
		t.Fatalf("ListCertificates failed: %v", err)
	}
	if len(certs) != 3 {
		t.Fatalf("got %d certificates, want 3", len(certs))
	}
	want := []string{store.CertificateExpired, store.CertificateExpiring, store.CertificateValid}
	for i, c := range certs {
		if c.Status != want[i] {
			t.Errorf("certificate %d: got status %s, want %s", i, c.Status, want[i])
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
