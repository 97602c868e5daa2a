package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"gdys/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	// Pin the clock so expiry-window assertions are deterministic.
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return fixed }
	return s
}

func seedVessel(t *testing.T, s *Store) *store.Vessel {
	t.Helper()
	v := &store.Vessel{Name: "MV Test", IMONumber: "1234567", VesselType: "BULK_CARRIER", Flag: "MT"}
	if err := s.CreateVessel(context.Background(), v); err != nil {
		t.Fatalf("CreateVessel: %v", err)
	}
	return v
}

func TestCreateThenListIncludesRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	m := &store.CrewMember{VesselID: v.ID, FirstName: "Ali", LastName: "Veli", Position: "OFFICER"}
	if err := s.CreateCrewMember(ctx, m); err != nil {
		t.Fatalf("CreateCrewMember: %v", err)
	}

	if m.ID == "" {
		t.Error("expected a store-assigned id")
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if m.Certificates == nil || m.Trainings == nil || m.Rotations == nil {
		t.Error("expected non-nil relation slices on a new crew member")
	}

	list, err := s.ListCrewMembers(ctx, store.ListFilter{})
	if err != nil {
		t.Fatalf("ListCrewMembers: %v", err)
	}
	found := false
	for _, got := range list {
		if got.ID == m.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("created member %s not in list", m.ID)
	}
}

func TestCreateCrewMemberUnknownVessel(t *testing.T) {
	s := newTestStore(t)
	m := &store.CrewMember{VesselID: "nope", FirstName: "A", LastName: "B", Position: "OFFICER"}
	err := s.CreateCrewMember(context.Background(), m)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRefreshesUpdatedAtOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	created := v.CreatedAt
	s.nowFn = func() time.Time { return created.Add(time.Hour) }

	v.Name = "MV Renamed"
	if err := s.UpdateVessel(ctx, v); err != nil {
		t.Fatalf("UpdateVessel: %v", err)
	}

	got, err := s.GetVessel(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetVessel: %v", err)
	}
	if got.Name != "MV Renamed" {
		t.Errorf("name = %q, want MV Renamed", got.Name)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt not refreshed: %v", got.UpdatedAt)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	if err := s.DeleteVessel(ctx, v.ID); err != nil {
		t.Fatalf("DeleteVessel: %v", err)
	}
	if _, err := s.GetVessel(ctx, v.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteVessel(ctx, v.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestVesselScopedList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v1 := seedVessel(t, s)
	v2 := &store.Vessel{Name: "MV Other", IMONumber: "7654321"}
	if err := s.CreateVessel(ctx, v2); err != nil {
		t.Fatalf("CreateVessel: %v", err)
	}

	for _, vid := range []string{v1.ID, v1.ID, v2.ID} {
		m := &store.CrewMember{VesselID: vid, FirstName: "X", LastName: "Y", Position: "OFFICER"}
		if err := s.CreateCrewMember(ctx, m); err != nil {
			t.Fatalf("CreateCrewMember: %v", err)
		}
	}

	scoped, _ := s.ListCrewMembers(ctx, store.ListFilter{VesselID: v1.ID})
	if len(scoped) != 2 {
		t.Errorf("scoped list = %d members, want 2", len(scoped))
	}
	all, _ := s.ListCrewMembers(ctx, store.ListFilter{})
	if len(all) != 3 {
		t.Errorf("unscoped list = %d members, want 3", len(all))
	}
}

func TestInventoryTransactions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	item := &store.InventoryItem{VesselID: v.ID, Name: "Filter", Quantity: 10, MinQuantity: 2}
	if err := s.CreateInventoryItem(ctx, item); err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}

	tests := []struct {
		name     string
		txType   string
		qty      int
		wantErr  error
		wantQty  int
		recorded bool
	}{
		{"out exceeding stock rejected", store.TransactionOut, 999999, store.ErrInsufficientStock, 10, false},
		{"in adds", store.TransactionIn, 5, nil, 15, true},
		{"out subtracts", store.TransactionOut, 3, nil, 12, true},
		{"adjustment sets absolute", store.TransactionAdjustment, 7, nil, 7, true},
	}

	recorded := 0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &store.InventoryTransaction{ItemID: item.ID, TransactionType: tt.txType, Quantity: tt.qty}
			err := s.CreateTransaction(ctx, tx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("CreateTransaction: %v", err)
			}
			if tt.recorded {
				recorded++
			}

			got, err := s.GetInventoryItem(ctx, item.ID)
			if err != nil {
				t.Fatalf("GetInventoryItem: %v", err)
			}
			if got.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", got.Quantity, tt.wantQty)
			}
		})
	}

	txs, err := s.ListTransactions(ctx, store.TransactionFilter{ItemID: item.ID})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != recorded {
		t.Errorf("recorded %d transactions, want %d (rejected one must not be stored)", len(txs), recorded)
	}
}

func TestCertificateExpiryWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)
	today := s.now().Truncate(24 * time.Hour)

	mk := func(name string, expiry time.Time) {
		c := &store.Certificate{VesselID: v.ID, Name: name, IssueDate: today.AddDate(-1, 0, 0), ExpiryDate: expiry}
		if err := s.CreateCertificate(ctx, c); err != nil {
			t.Fatalf("CreateCertificate: %v", err)
		}
	}
	mk("expired yesterday", today.AddDate(0, 0, -1))
	mk("expires today", today)
	mk("expires day 30", today.AddDate(0, 0, 30))
	mk("expires day 31", today.AddDate(0, 0, 31))

	expiring, err := s.ListCertificates(ctx, store.CertFilter{WithinDays: 30})
	if err != nil {
		t.Fatalf("ListCertificates: %v", err)
	}
	if len(expiring) != 2 {
		var names []string
		for _, c := range expiring {
			names = append(names, c.Name)
		}
		t.Errorf("expiring window returned %v, want [expires today, expires day 30]", names)
	}

	expired, err := s.ListCertificates(ctx, store.CertFilter{ExpiredOnly: true})
	if err != nil {
		t.Fatalf("ListCertificates expired: %v", err)
	}
	if len(expired) != 1 || expired[0].Name != "expired yesterday" {
		t.Errorf("expired filter returned %d entries", len(expired))
	}
	if len(expired) == 1 && expired[0].Status != store.CertificateExpired {
		t.Errorf("expired cert status = %q", expired[0].Status)
	}
}

func TestCrewMemberEmbedsRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	m := &store.CrewMember{VesselID: v.ID, FirstName: "Ali", LastName: "Veli", Position: "OFFICER"}
	if err := s.CreateCrewMember(ctx, m); err != nil {
		t.Fatalf("CreateCrewMember: %v", err)
	}

	cert := &store.CrewCertificate{CrewMemberID: m.ID, Name: "STCW Basic Safety", ExpiryDate: s.now().AddDate(2, 0, 0)}
	if err := s.CreateCrewCertificate(ctx, cert); err != nil {
		t.Fatalf("CreateCrewCertificate: %v", err)
	}
	tr := &store.Training{CrewMemberID: m.ID, Name: "ECDIS"}
	if err := s.CreateTraining(ctx, tr); err != nil {
		t.Fatalf("CreateTraining: %v", err)
	}

	got, err := s.GetCrewMember(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetCrewMember: %v", err)
	}
	if len(got.Certificates) != 1 || got.Certificates[0].Name != "STCW Basic Safety" {
		t.Errorf("certificates = %+v", got.Certificates)
	}
	if len(got.Trainings) != 1 {
		t.Errorf("trainings = %+v", got.Trainings)
	}
	if got.Rotations == nil || len(got.Rotations) != 0 {
		t.Errorf("rotations should be an empty slice, got %+v", got.Rotations)
	}
}

func TestLogbookSignImmutability(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	e := &store.LogbookEntry{VesselID: v.ID, Remarks: "Departure Gemlik"}
	if err := s.CreateLogbookEntry(ctx, e); err != nil {
		t.Fatalf("CreateLogbookEntry: %v", err)
	}

	signedAt := s.now()
	e.SignedBy = "master"
	e.SignedAt = &signedAt
	if err := s.UpdateLogbookEntry(ctx, e); err != nil {
		t.Fatalf("sign update: %v", err)
	}

	e.SignedAt = nil
	e.Remarks = "tampered"
	if err := s.UpdateLogbookEntry(ctx, e); !errors.Is(err, store.ErrAlreadySigned) {
		t.Errorf("update after sign = %v, want ErrAlreadySigned", err)
	}

	// Carrying the signature along does not reopen the entry either.
	e.SignedAt = &signedAt
	e.Remarks = "tampered, signature kept"
	if err := s.UpdateLogbookEntry(ctx, e); !errors.Is(err, store.ErrAlreadySigned) {
		t.Errorf("update with signature kept = %v, want ErrAlreadySigned", err)
	}

	if err := s.DeleteLogbookEntry(ctx, e.ID); !errors.Is(err, store.ErrAlreadySigned) {
		t.Errorf("delete after sign = %v, want ErrAlreadySigned", err)
	}

	got, err := s.GetLogbookEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetLogbookEntry: %v", err)
	}
	if got.Remarks != "Departure Gemlik" {
		t.Errorf("remarks = %q, signed entry was mutated", got.Remarks)
	}
}

func TestMaintenanceOverdueDerivation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	v := seedVessel(t, s)

	overdue := &store.MaintenanceTask{VesselID: v.ID, Equipment: "ME", Title: "Late", DueDate: s.now().AddDate(0, 0, -1)}
	future := &store.MaintenanceTask{VesselID: v.ID, Equipment: "AE", Title: "Future", DueDate: s.now().AddDate(0, 0, 10)}
	for _, task := range []*store.MaintenanceTask{overdue, future} {
		if err := s.CreateMaintenanceTask(ctx, task); err != nil {
			t.Fatalf("CreateMaintenanceTask: %v", err)
		}
	}

	got, err := s.ListMaintenanceTasks(ctx, store.TaskFilter{OverdueOnly: true})
	if err != nil {
		t.Fatalf("ListMaintenanceTasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != overdue.ID {
		t.Fatalf("overdue list = %+v", got)
	}
	if got[0].Status != store.TaskOverdue {
		t.Errorf("status = %q, want OVERDUE", got[0].Status)
	}
}

func TestDuplicateUserEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &store.User{Email: "dpa@example.com", Name: "DPA", Role: store.RoleDPAOffice}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := &store.User{Email: "DPA@example.com", Name: "Dup", Role: store.RoleOfficer}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("duplicate email = %v, want ErrDuplicate", err)
	}
}
