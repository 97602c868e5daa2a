// Package store contains the domain model and the persistence contracts for
// GDYS. Implementations live in store/memory and store/postgres.
package store

import "time"

// Role is the access level carried by a user and their bearer token.
type Role string

const (
	RoleSystemAdmin   Role = "SYSTEM_ADMIN"
	RoleDPAOffice     Role = "DPA_OFFICE"
	RoleCaptain       Role = "CAPTAIN"
	RoleChiefEngineer Role = "CHIEF_ENGINEER"
	RoleOfficer       Role = "OFFICER"
)

// FleetWide reports whether the role sees every vessel rather than being
// pinned to one.
func (r Role) FleetWide() bool {
	return r == RoleSystemAdmin || r == RoleDPAOffice
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleDPAOffice, RoleCaptain, RoleChiefEngineer, RoleOfficer:
		return true
	}
	return false
}

// User is an authenticated account. VesselID is empty for fleet-wide roles.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	VesselID     string    `json:"vesselId,omitempty"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Vessel is a ship in the managed fleet.
type Vessel struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	IMONumber    string    `json:"imoNumber"`
	VesselType   string    `json:"vesselType"`
	Flag         string    `json:"flag"`
	GrossTonnage float64   `json:"grossTonnage"`
	YearBuilt    int       `json:"yearBuilt"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CrewMember is a seafarer assigned to a vessel. The read path embeds the
// certificates, trainings and rotations belonging to the member; the slices
// are always non-nil in responses.
type CrewMember struct {
	ID           string            `json:"id"`
	VesselID     string            `json:"vesselId,omitempty"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Position     string            `json:"position"`
	Nationality  string            `json:"nationality,omitempty"`
	DateOfBirth  *time.Time        `json:"dateOfBirth,omitempty"`
	EmbarkDate   *time.Time        `json:"embarkDate,omitempty"`
	Status       string            `json:"status"`
	Certificates []CrewCertificate `json:"certificates"`
	Trainings    []Training        `json:"trainings"`
	Rotations    []Rotation        `json:"rotations"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CertificateStatus is derived from the expiry date at read time.
const (
	CertificateValid    = "VALID"
	CertificateExpiring = "EXPIRING"
	CertificateExpired  = "EXPIRED"
)

// Certificate is a statutory certificate held by a vessel.
type Certificate struct {
	ID         string    `json:"id"`
	VesselID   string    `json:"vesselId"`
	Name       string    `json:"name"`
	Issuer     string    `json:"issuer,omitempty"`
	IssueDate  time.Time `json:"issueDate"`
	ExpiryDate time.Time `json:"expiryDate"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CrewCertificate is a competency certificate held by a crew member.
type CrewCertificate struct {
	ID           string    `json:"id"`
	CrewMemberID string    `json:"crewMemberId"`
	Name         string    `json:"name"`
	Issuer       string    `json:"issuer,omitempty"`
	IssueDate    time.Time `json:"issueDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Training is a completed course for a crew member.
type Training struct {
	ID            string     `json:"id"`
	CrewMemberID  string     `json:"crewMemberId"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Rotation is a crew member's tour of duty on a vessel.
type Rotation struct {
	ID           string     `json:"id"`
	CrewMemberID string     `json:"crewMemberId"`
	VesselID     string     `json:"vesselId,omitempty"`
	JoinDate     time.Time  `json:"joinDate"`
	LeaveDate    *time.Time `json:"leaveDate,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// DocumentStatus is the review workflow state of a document.
type DocumentStatus string

const (
	DocumentDraft           DocumentStatus = "DRAFT"
	DocumentPendingApproval DocumentStatus = "PENDING_APPROVAL"
	DocumentApproved        DocumentStatus = "APPROVED"
	DocumentRejected        DocumentStatus = "REJECTED"
)

// Document is a controlled document attached to a vessel.
type Document struct {
	ID           string         `json:"id"`
	VesselID     string         `json:"vesselId,omitempty"`
	CategoryID   string         `json:"categoryId,omitempty"`
	Title        string         `json:"title"`
	FileName     string         `json:"fileName,omitempty"`
	FileKey      string         `json:"fileKey,omitempty"`
	FileSize     int64          `json:"fileSize,omitempty"`
	Status       DocumentStatus `json:"status"`
	UploadedBy   string         `json:"uploadedBy,omitempty"`
	ApprovedBy   string         `json:"approvedBy,omitempty"`
	RejectReason string         `json:"rejectReason,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Category groups documents.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InventoryItem is a spare part or consumable held on board.
type InventoryItem struct {
	ID          string     `json:"id"`
	VesselID    string     `json:"vesselId,omitempty"`
	Name        string     `json:"name"`
	PartNumber  string     `json:"partNumber,omitempty"`
	Category    string     `json:"category,omitempty"`
	Location    string     `json:"location,omitempty"`
	Quantity    int        `json:"quantity"`
	MinQuantity int        `json:"minQuantity"`
	Unit        string     `json:"unit,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Transaction types for stock movements.
const (
	TransactionIn         = "IN"
	TransactionOut        = "OUT"
	TransactionAdjustment = "ADJUSTMENT"
)

// InventoryTransaction is a stock movement against an item. IN adds to the
// item quantity, OUT subtracts (and must not exceed current stock),
// ADJUSTMENT sets the absolute quantity.
type InventoryTransaction struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	TransactionType string    `json:"transactionType"`
	Quantity        int       `json:"quantity"`
	Reference       string    `json:"reference,omitempty"`
	PerformedBy     string    `json:"performedBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RequestStatus is the workflow state of a procurement request.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
	RequestOrdered  = "ORDERED"
)

// RequestItem is a line item on a procurement request.
type RequestItem struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`
}

// ProcurementRequest is a shipboard purchase request.
type ProcurementRequest struct {
	ID          string        `json:"id"`
	VesselID    string        `json:"vesselId,omitempty"`
	Title       string        `json:"title"`
	RequestedBy string        `json:"requestedBy,omitempty"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	Items       []RequestItem `json:"items"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Purchase order statuses.
const (
	OrderOpen      = "ORDERED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// PurchaseOrder is an order placed against an approved request.
type PurchaseOrder struct {
	ID               string     `json:"id"`
	RequestID        string     `json:"requestId"`
	SupplierID       string     `json:"supplierId"`
	OrderDate        time.Time  `json:"orderDate"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	TotalCost        float64    `json:"totalCost"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Supplier is a vendor on the approved supplier list.
type Supplier struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Maintenance task statuses. OVERDUE is derived at read time: a task past its
// due date that is not completed reports OVERDUE regardless of the stored
// state.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskOverdue    = "OVERDUE"
)

// MaintenanceTask is a planned maintenance job on a piece of equipment.
type MaintenanceTask struct {
	ID           string    `json:"id"`
	VesselID     string    `json:"vesselId,omitempty"`
	Equipment    string    `json:"equipment"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	AssignedTo   string    `json:"assignedTo,omitempty"`
	DueDate      time.Time `json:"dueDate"`
	IntervalDays int       `json:"intervalDays,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EffectiveStatus returns the status with the overdue derivation applied.
func (t MaintenanceTask) EffectiveStatus(now time.Time) string {
	if t.Status != TaskCompleted && t.DueDate.Before(now) {
		return TaskOverdue
	}
	return t.Status
}

// WorkOrder records the completion of a maintenance task.
type WorkOrder struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	VesselID    string    `json:"vesselId,omitempty"`
	CompletedBy string    `json:"completedBy,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
	LaborHours  float64   `json:"laborHours,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Voyage statuses.
const (
	VoyagePlanned   = "PLANNED"
	VoyageUnderway  = "UNDERWAY"
	VoyageCompleted = "COMPLETED"
)

// Voyage is a planned or executed passage between two ports.
type Voyage struct {
	ID               string     `json:"id"`
	VesselID         string     `json:"vesselId"`
	VoyageNumber     string     `json:"voyageNumber"`
	DeparturePort    string     `json:"departurePort"`
	ArrivalPort      string     `json:"arrivalPort"`
	DepartureTime    *time.Time `json:"departureTime,omitempty"`
	ArrivalTime      *time.Time `json:"arrivalTime,omitempty"`
	CargoDescription string     `json:"cargoDescription,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// LogbookEntry is a deck log record. Once signed it is immutable.
type LogbookEntry struct {
	ID         string     `json:"id"`
	VesselID   string     `json:"vesselId"`
	VoyageID   string     `json:"voyageId,omitempty"`
	EntryTime  time.Time  `json:"entryTime"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Course     float64    `json:"course"`
	Speed      float64    `json:"speed"`
	Weather    string     `json:"weather,omitempty"`
	Remarks    string     `json:"remarks,omitempty"`
	RecordedBy string     `json:"recordedBy,omitempty"`
	SignedBy   string     `json:"signedBy,omitempty"`
	SignedAt   *time.Time `json:"signedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Signed reports whether the entry has been countersigned.
func (e LogbookEntry) Signed() bool { return e.SignedAt != nil }

// EngineLogEntry is an engine-room log record.
type EngineLogEntry struct {
	ID              string    `json:"id"`
	VesselID        string    `json:"vesselId"`
	EntryTime       time.Time `json:"entryTime"`
	MainEngineHours float64   `json:"mainEngineHours"`
	RPM             float64   `json:"rpm"`
	LoadPercent     float64   `json:"loadPercent"`
	LubeOilPressure float64   `json:"lubeOilPressure"`
	CoolantTemp     float64   `json:"coolantTemp"`
	Remarks         string    `json:"remarks,omitempty"`
	RecordedBy      string    `json:"recordedBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FuelRecord is a daily bunkering / consumption record.
type FuelRecord struct {
	ID               string    `json:"id"`
	VesselID         string    `json:"vesselId"`
	RecordDate       time.Time `json:"recordDate"`
	FuelType         string    `json:"fuelType"`
	QuantityReceived float64   `json:"quantityReceived"`
	QuantityConsumed float64   `json:"quantityConsumed"`
	RemainingOnBoard float64   `json:"remainingOnBoard"`
	PricePerTon      float64   `json:"pricePerTon,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Deficiency is a finding recorded on a PSC inspection.
type Deficiency struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Rectified   bool   `json:"rectified"`
}

// PSCInspection is a port-state-control inspection record.
type PSCInspection struct {
	ID             string       `json:"id"`
	VesselID       string       `json:"vesselId"`
	Port           string       `json:"port"`
	Authority      string       `json:"authority,omitempty"`
	InspectionDate time.Time    `json:"inspectionDate"`
	Deficiencies   []Deficiency `json:"deficiencies"`
	Detention      bool         `json:"detention"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// SafetyDrill is a completed onboard drill.
type SafetyDrill struct {
	ID            string     `json:"id"`
	VesselID      string     `json:"vesselId"`
	DrillType     string     `json:"drillType"`
	ConductedDate time.Time  `json:"conductedDate"`
	Participants  int        `json:"participants,omitempty"`
	Remarks       string     `json:"remarks,omitempty"`
	NextDueDate   *time.Time `json:"nextDueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Incident statuses.
const (
	IncidentOpen               = "OPEN"
	IncidentUnderInvestigation = "UNDER_INVESTIGATION"
	IncidentClosed             = "CLOSED"
)

// Incident is a reported safety or operational incident.
type Incident struct {
	ID           string    `json:"id"`
	VesselID     string    `json:"vesselId"`
	IncidentType string    `json:"incidentType"`
	Severity     string    `json:"severity,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	ReportedBy   string    `json:"reportedBy,omitempty"`
	Status       string    `json:"status"`
	PhotoKeys    []string  `json:"photoKeys"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
