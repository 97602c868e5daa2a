package store

import "context"

// ListFilter narrows a list call. Zero values mean "no filter": an empty
// VesselID returns the whole collection (fleet-wide callers), a set one
// returns only records scoped to that vessel.
type ListFilter struct {
	VesselID string
	Status   string
}

// CertFilter narrows certificate lists. WithinDays > 0 selects certificates
// whose expiry date falls in [today, today+WithinDays], boundaries inclusive.
// ExpiredOnly selects certificates already past their expiry date.
type CertFilter struct {
	VesselID     string
	CrewMemberID string
	WithinDays   int
	ExpiredOnly  bool
}

// InventoryFilter narrows inventory item lists.
type InventoryFilter struct {
	VesselID           string
	LowStockOnly       bool
	ExpiringWithinDays int
}

// TransactionFilter narrows inventory transaction lists.
type TransactionFilter struct {
	ItemID   string
	VesselID string
}

// TaskFilter narrows maintenance task lists. OverdueOnly selects tasks past
// their due date that are not completed.
type TaskFilter struct {
	VesselID    string
	Status      string
	OverdueOnly bool
}

// LogFilter narrows logbook and engine-log lists.
type LogFilter struct {
	VesselID string
	VoyageID string
}

// UserStore handles account persistence and lookup for authentication.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// VesselStore handles the fleet registry.
type VesselStore interface {
	CreateVessel(ctx context.Context, v *Vessel) error
	GetVessel(ctx context.Context, id string) (*Vessel, error)
	ListVessels(ctx context.Context) ([]Vessel, error)
	UpdateVessel(ctx context.Context, v *Vessel) error
	DeleteVessel(ctx context.Context, id string) error
}

// CrewStore handles crew members and their certificates, trainings and
// rotations. GetCrewMember and ListCrewMembers embed the related records.
type CrewStore interface {
	CreateCrewMember(ctx context.Context, m *CrewMember) error
	GetCrewMember(ctx context.Context, id string) (*CrewMember, error)
	ListCrewMembers(ctx context.Context, f ListFilter) ([]CrewMember, error)
	UpdateCrewMember(ctx context.Context, m *CrewMember) error
	DeleteCrewMember(ctx context.Context, id string) error

	CreateCrewCertificate(ctx context.Context, c *CrewCertificate) error
	GetCrewCertificate(ctx context.Context, id string) (*CrewCertificate, error)
	ListCrewCertificates(ctx context.Context, f CertFilter) ([]CrewCertificate, error)
	UpdateCrewCertificate(ctx context.Context, c *CrewCertificate) error
	DeleteCrewCertificate(ctx context.Context, id string) error

	CreateTraining(ctx context.Context, t *Training) error
	GetTraining(ctx context.Context, id string) (*Training, error)
	ListTrainings(ctx context.Context, crewMemberID string) ([]Training, error)
	UpdateTraining(ctx context.Context, t *Training) error
	DeleteTraining(ctx context.Context, id string) error

	CreateRotation(ctx context.Context, r *Rotation) error
	GetRotation(ctx context.Context, id string) (*Rotation, error)
	ListRotations(ctx context.Context, f ListFilter) ([]Rotation, error)
	UpdateRotation(ctx context.Context, r *Rotation) error
	DeleteRotation(ctx context.Context, id string) error
}

// CertificateStore handles vessel certificates.
type CertificateStore interface {
	CreateCertificate(ctx context.Context, c *Certificate) error
	GetCertificate(ctx context.Context, id string) (*Certificate, error)
	ListCertificates(ctx context.Context, f CertFilter) ([]Certificate, error)
	UpdateCertificate(ctx context.Context, c *Certificate) error
	DeleteCertificate(ctx context.Context, id string) error
}

// DocumentStore handles controlled documents and their categories.
type DocumentStore interface {
	CreateDocument(ctx context.Context, d *Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, f ListFilter) ([]Document, error)
	UpdateDocument(ctx context.Context, d *Document) error
	DeleteDocument(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// InventoryStore handles items and stock transactions. CreateTransaction
// applies the stock arithmetic atomically: IN adds, OUT subtracts and fails
// with ErrInsufficientStock when the requested quantity exceeds stock,
// ADJUSTMENT sets the absolute quantity. A failed transaction leaves the
// item untouched and records nothing.
type InventoryStore interface {
	CreateInventoryItem(ctx context.Context, it *InventoryItem) error
	GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error)
	ListInventoryItems(ctx context.Context, f InventoryFilter) ([]InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, it *InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, tx *InventoryTransaction) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]InventoryTransaction, error)
}

// ProcurementStore handles requests, purchase orders and suppliers.
type ProcurementStore interface {
	CreateProcurementRequest(ctx context.Context, r *ProcurementRequest) error
	GetProcurementRequest(ctx context.Context, id string) (*ProcurementRequest, error)
	ListProcurementRequests(ctx context.Context, f ListFilter) ([]ProcurementRequest, error)
	UpdateProcurementRequest(ctx context.Context, r *ProcurementRequest) error
	DeleteProcurementRequest(ctx context.Context, id string) error

	CreatePurchaseOrder(ctx context.Context, o *PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, id string) (*PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, f ListFilter) ([]PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, o *PurchaseOrder) error
	DeletePurchaseOrder(ctx context.Context, id string) error

	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

// MaintenanceStore handles planned maintenance tasks and work orders.
type MaintenanceStore interface {
	CreateMaintenanceTask(ctx context.Context, t *MaintenanceTask) error
	GetMaintenanceTask(ctx context.Context, id string) (*MaintenanceTask, error)
	ListMaintenanceTasks(ctx context.Context, f TaskFilter) ([]MaintenanceTask, error)
	UpdateMaintenanceTask(ctx context.Context, t *MaintenanceTask) error
	DeleteMaintenanceTask(ctx context.Context, id string) error

	CreateWorkOrder(ctx context.Context, w *WorkOrder) error
	GetWorkOrder(ctx context.Context, id string) (*WorkOrder, error)
	ListWorkOrders(ctx context.Context, f ListFilter) ([]WorkOrder, error)
}

// VoyageStore handles voyages, deck and engine logs and fuel records.
type VoyageStore interface {
	CreateVoyage(ctx context.Context, v *Voyage) error
	GetVoyage(ctx context.Context, id string) (*Voyage, error)
	ListVoyages(ctx context.Context, f ListFilter) ([]Voyage, error)
	UpdateVoyage(ctx context.Context, v *Voyage) error
	DeleteVoyage(ctx context.Context, id string) error

	CreateLogbookEntry(ctx context.Context, e *LogbookEntry) error
	GetLogbookEntry(ctx context.Context, id string) (*LogbookEntry, error)
	ListLogbookEntries(ctx context.Context, f LogFilter) ([]LogbookEntry, error)
	UpdateLogbookEntry(ctx context.Context, e *LogbookEntry) error
	DeleteLogbookEntry(ctx context.Context, id string) error

	CreateEngineLogEntry(ctx context.Context, e *EngineLogEntry) error
	GetEngineLogEntry(ctx context.Context, id string) (*EngineLogEntry, error)
	ListEngineLogEntries(ctx context.Context, f ListFilter) ([]EngineLogEntry, error)
	UpdateEngineLogEntry(ctx context.Context, e *EngineLogEntry) error
	DeleteEngineLogEntry(ctx context.Context, id string) error

	CreateFuelRecord(ctx context.Context, r *FuelRecord) error
	GetFuelRecord(ctx context.Context, id string) (*FuelRecord, error)
	ListFuelRecords(ctx context.Context, f ListFilter) ([]FuelRecord, error)
	UpdateFuelRecord(ctx context.Context, r *FuelRecord) error
	DeleteFuelRecord(ctx context.Context, id string) error
}

// SafetyStore handles PSC inspections, drills and incidents.
type SafetyStore interface {
	CreatePSCInspection(ctx context.Context, p *PSCInspection) error
	GetPSCInspection(ctx context.Context, id string) (*PSCInspection, error)
	ListPSCInspections(ctx context.Context, f ListFilter) ([]PSCInspection, error)
	UpdatePSCInspection(ctx context.Context, p *PSCInspection) error
	DeletePSCInspection(ctx context.Context, id string) error

	CreateSafetyDrill(ctx context.Context, d *SafetyDrill) error
	GetSafetyDrill(ctx context.Context, id string) (*SafetyDrill, error)
	ListSafetyDrills(ctx context.Context, f ListFilter) ([]SafetyDrill, error)
	UpdateSafetyDrill(ctx context.Context, d *SafetyDrill) error
	DeleteSafetyDrill(ctx context.Context, id string) error

	CreateIncident(ctx context.Context, i *Incident) error
	GetIncident(ctx context.Context, id string) (*Incident, error)
	ListIncidents(ctx context.Context, f ListFilter) ([]Incident, error)
	UpdateIncident(ctx context.Context, i *Incident) error
	DeleteIncident(ctx context.Context, id string) error
}

// Store is the full persistence contract implemented by store/memory and
// store/postgres.
type Store interface {
	UserStore
	VesselStore
	CrewStore
	CertificateStore
	DocumentStore
	InventoryStore
	ProcurementStore
	MaintenanceStore
	VoyageStore
	SafetyStore

	Ping(ctx context.Context) error
	Close() error
}
