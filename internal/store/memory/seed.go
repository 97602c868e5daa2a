package memory

import (
	"context"
	"fmt"
	"time"

	"gdys/internal/store"
)

// Seed loads a small development dataset: two vessels, crew, certificates,
// stock and a maintenance backlog. Passwords for the seeded accounts are set
// by the caller (cmd/server hashes them with the configured salt scheme).
func (s *Store) Seed(ctx context.Context, users []store.User) error {
	now := s.now()

	aurora := &store.Vessel{
		Name:         "MV Aurora",
		IMONumber:    "9321483",
		VesselType:   "BULK_CARRIER",
		Flag:         "MT",
		GrossTonnage: 32571,
		YearBuilt:    2009,
	}
	meltem := &store.Vessel{
		Name:         "MV Meltem",
		IMONumber:    "9456722",
		VesselType:   "GENERAL_CARGO",
		Flag:         "TR",
		GrossTonnage: 18540,
		YearBuilt:    2014,
	}
	for _, v := range []*store.Vessel{aurora, meltem} {
		if err := s.CreateVessel(ctx, v); err != nil {
			return fmt.Errorf("seed vessel: %w", err)
		}
	}

	for i := range users {
		if users[i].VesselID == "vessel-1" {
			users[i].VesselID = aurora.ID
		}
		if err := s.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}

	master := &store.CrewMember{
		VesselID:    aurora.ID,
		FirstName:   "Ali",
		LastName:    "Veli",
		Position:    "MASTER",
		Nationality: "TR",
	}
	chief := &store.CrewMember{
		VesselID:    aurora.ID,
		FirstName:   "Deniz",
		LastName:    "Kaya",
		Position:    "CHIEF_ENGINEER",
		Nationality: "TR",
	}
	for _, m := range []*store.CrewMember{master, chief} {
		if err := s.CreateCrewMember(ctx, m); err != nil {
			return fmt.Errorf("seed crew: %w", err)
		}
	}

	certs := []*store.Certificate{
		{VesselID: aurora.ID, Name: "Safety Management Certificate", Issuer: "Class NK",
			IssueDate: now.AddDate(-2, 0, 0), ExpiryDate: now.AddDate(0, 0, 21)},
		{VesselID: aurora.ID, Name: "International Oil Pollution Prevention", Issuer: "Class NK",
			IssueDate: now.AddDate(-4, 0, 0), ExpiryDate: now.AddDate(1, 0, 0)},
		{VesselID: meltem.ID, Name: "Load Line Certificate", Issuer: "BV",
			IssueDate: now.AddDate(-5, 0, 0), ExpiryDate: now.AddDate(0, -1, 0)},
	}
	for _, c := range certs {
		if err := s.CreateCertificate(ctx, c); err != nil {
			return fmt.Errorf("seed certificate: %w", err)
		}
	}

	items := []*store.InventoryItem{
		{VesselID: aurora.ID, Name: "Fuel filter", PartNumber: "FF-2031", Category: "ENGINE",
			Location: "Store room A", Quantity: 10, MinQuantity: 4, Unit: "pcs"},
		{VesselID: aurora.ID, Name: "Hydraulic oil", PartNumber: "HO-68", Category: "ENGINE",
			Location: "Paint locker", Quantity: 3, MinQuantity: 5, Unit: "drum"},
	}
	for _, it := range items {
		if err := s.CreateInventoryItem(ctx, it); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	task := &store.MaintenanceTask{
		VesselID:     aurora.ID,
		Equipment:    "Main engine",
		Title:        "Fuel injector overhaul",
		DueDate:      now.AddDate(0, 0, 14),
		IntervalDays: 180,
	}
	if err := s.CreateMaintenanceTask(ctx, task); err != nil {
		return fmt.Errorf("seed task: %w", err)
	}

	dep := now.Add(-72 * time.Hour)
	voyage := &store.Voyage{
		VesselID:      aurora.ID,
		VoyageNumber:  "AUR-2406",
		DeparturePort: "TRGEM",
		ArrivalPort:   "ESVLC",
		DepartureTime: &dep,
		Status:        store.VoyageUnderway,
	}
	if err := s.CreateVoyage(ctx, voyage); err != nil {
		return fmt.Errorf("seed voyage: %w", err)
	}

	return nil
}
