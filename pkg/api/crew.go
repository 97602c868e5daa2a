package api

// CreateCrewMemberRequest is the request body for POST /api/crew/members.
type CreateCrewMemberRequest struct {
	VesselID    string `json:"vesselId,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Position    string `json:"position"`
	Nationality string `json:"nationality,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	EmbarkDate  string `json:"embarkDate,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateCrewMemberRequest is the request body for PUT /api/crew/members/{id}.
type UpdateCrewMemberRequest struct {
	VesselID    *string `json:"vesselId,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Position    *string `json:"position,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	EmbarkDate  *string `json:"embarkDate,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CreateCertificateRequest covers both vessel certificates
// (POST /api/certificates, vesselId set) and crew certificates
// (POST /api/crew/certificates, crewMemberId set).
type CreateCertificateRequest struct {
	VesselID     string `json:"vesselId,omitempty"`
	CrewMemberID string `json:"crewMemberId,omitempty"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	IssueDate    string `json:"issueDate,omitempty"`
	ExpiryDate   string `json:"expiryDate"`
}

// UpdateCertificateRequest is the request body for certificate updates.
type UpdateCertificateRequest struct {
	Name       *string `json:"name,omitempty"`
	Issuer     *string `json:"issuer,omitempty"`
	IssueDate  *string `json:"issueDate,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
}

// CreateTrainingRequest is the request body for POST /api/crew/trainings.
type CreateTrainingRequest struct {
	CrewMemberID  string `json:"crewMemberId"`
	Name          string `json:"name"`
	Provider      string `json:"provider,omitempty"`
	CompletedDate string `json:"completedDate,omitempty"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
}

// UpdateTrainingRequest is the request body for PUT /api/crew/trainings/{id}.
type UpdateTrainingRequest struct {
	Name          *string `json:"name,omitempty"`
	Provider      *string `json:"provider,omitempty"`
	CompletedDate *string `json:"completedDate,omitempty"`
	ExpiryDate    *string `json:"expiryDate,omitempty"`
}

// CreateRotationRequest is the request body for POST /api/crew/rotations.
type CreateRotationRequest struct {
	CrewMemberID string `json:"crewMemberId"`
	VesselID     string `json:"vesselId,omitempty"`
	JoinDate     string `json:"joinDate"`
	LeaveDate    string `json:"leaveDate,omitempty"`
	Status       string `json:"status,omitempty"`
}

// UpdateRotationRequest is the request body for PUT /api/crew/rotations/{id}.
type UpdateRotationRequest struct {
	VesselID  *string `json:"vesselId,omitempty"`
	JoinDate  *string `json:"joinDate,omitempty"`
	LeaveDate *string `json:"leaveDate,omitempty"`
	Status    *string `json:"status,omitempty"`
}
