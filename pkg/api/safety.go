package api

// Deficiency is a single finding on a port-state-control inspection.
type Deficiency struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Rectified   bool   `json:"rectified"`
}

// CreatePSCInspectionRequest is the request body for POST /api/psc.
type CreatePSCInspectionRequest struct {
	VesselID       string       `json:"vesselId,omitempty"`
	Port           string       `json:"port"`
	Authority      string       `json:"authority,omitempty"`
	InspectionDate string       `json:"inspectionDate,omitempty"`
	Deficiencies   []Deficiency `json:"deficiencies,omitempty"`
	Detention      bool         `json:"detention,omitempty"`
}

// UpdatePSCInspectionRequest is the request body for PUT /api/psc/{id}.
type UpdatePSCInspectionRequest struct {
	Port         *string      `json:"port,omitempty"`
	Authority    *string      `json:"authority,omitempty"`
	Deficiencies []Deficiency `json:"deficiencies,omitempty"`
	Detention    *bool        `json:"detention,omitempty"`
	Status       *string      `json:"status,omitempty"`
}

// CreateSafetyDrillRequest is the request body for POST /api/safety.
type CreateSafetyDrillRequest struct {
	VesselID      string `json:"vesselId,omitempty"`
	DrillType     string `json:"drillType"`
	ConductedDate string `json:"conductedDate,omitempty"`
	Participants  int    `json:"participants,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
	NextDueDate   string `json:"nextDueDate,omitempty"`
}

// UpdateSafetyDrillRequest is the request body for PUT /api/safety/{id}.
type UpdateSafetyDrillRequest struct {
	DrillType     *string `json:"drillType,omitempty"`
	ConductedDate *string `json:"conductedDate,omitempty"`
	Participants  *int    `json:"participants,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
	NextDueDate   *string `json:"nextDueDate,omitempty"`
}

// CreateIncidentRequest is the request body for POST /api/incidents.
type CreateIncidentRequest struct {
	VesselID     string `json:"vesselId,omitempty"`
	IncidentType string `json:"incidentType"`
	Severity     string `json:"severity,omitempty"`
	OccurredAt   string `json:"occurredAt,omitempty"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description,omitempty"`
}

// UpdateIncidentRequest is the request body for PUT /api/incidents/{id}.
type UpdateIncidentRequest struct {
	IncidentType *string `json:"incidentType,omitempty"`
	Severity     *string `json:"severity,omitempty"`
	Location     *string `json:"location,omitempty"`
	Description  *string `json:"description,omitempty"`
	Status       *string `json:"status,omitempty"`
}
