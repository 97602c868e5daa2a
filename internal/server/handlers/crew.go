package handlers

import (
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListCrewMembers handles GET /api/crew/members.
func (h *Handlers) ListCrewMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListCrewMembers(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, members)
}

// CreateCrewMember handles POST /api/crew/members.
func (h *Handlers) CreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCrewMemberRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Position == "" {
		h.httpError(w, "firstName, lastName and position are required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	dob, err := parseDatePtr(req.DateOfBirth)
	if err != nil {
		h.httpError(w, "Invalid dateOfBirth", http.StatusBadRequest)
		return
	}
	embark, err := parseDatePtr(req.EmbarkDate)
	if err != nil {
		h.httpError(w, "Invalid embarkDate", http.StatusBadRequest)
		return
	}

	m := &store.CrewMember{
		VesselID:    req.VesselID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Position:    req.Position,
		Nationality: req.Nationality,
		DateOfBirth: dob,
		EmbarkDate:  embark,
		Status:      req.Status,
	}
	if m.Status == "" {
		m.Status = "ACTIVE"
	}
	if err := h.store.CreateCrewMember(r.Context(), m); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, m)
}

// GetCrewMember handles GET /api/crew/members/{id}. The response embeds the
// member's certificates, trainings and rotations.
func (h *Handlers) GetCrewMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetCrewMember(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, m.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, m)
}

// UpdateCrewMember handles PUT /api/crew/members/{id}.
func (h *Handlers) UpdateCrewMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCrewMemberRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.store.GetCrewMember(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, m.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID != nil {
		// Reassigning a crew member to another vessel is an elevated action.
		if _, fleetWide := scope(r); !fleetWide && *req.VesselID != m.VesselID {
			h.httpError(w, "Forbidden", http.StatusForbidden)
			return
		}
		m.VesselID = *req.VesselID
	}
	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.Position != nil {
		m.Position = *req.Position
	}
	if req.Nationality != nil {
		m.Nationality = *req.Nationality
	}
	if req.DateOfBirth != nil {
		dob, err := parseDatePtr(*req.DateOfBirth)
		if err != nil {
			h.httpError(w, "Invalid dateOfBirth", http.StatusBadRequest)
			return
		}
		m.DateOfBirth = dob
	}
	if req.EmbarkDate != nil {
		embark, err := parseDatePtr(*req.EmbarkDate)
		if err != nil {
			h.httpError(w, "Invalid embarkDate", http.StatusBadRequest)
			return
		}
		m.EmbarkDate = embark
	}
	if req.Status != nil {
		m.Status = *req.Status
	}

	if err := h.store.UpdateCrewMember(ctx, m); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, m)
}

// DeleteCrewMember handles DELETE /api/crew/members/{id}.
func (h *Handlers) DeleteCrewMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	m, err := h.store.GetCrewMember(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, m.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteCrewMember(ctx, m.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCrewCertificates handles GET /api/crew/certificates. An optional
// ?crewMemberId narrows to one member; ?days=N narrows to the expiry window.
func (h *Handlers) ListCrewCertificates(w http.ResponseWriter, r *http.Request) {
	f := certFilter(r)
	f.CrewMemberID = r.URL.Query().Get("crewMemberId")
	f.ExpiredOnly = r.URL.Query().Get("expired") == "true"
	certs, err := h.store.ListCrewCertificates(r.Context(), f)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// ListExpiringCrewCertificates handles GET /api/crew/certificates/expiring.
// The window defaults to 30 days and can be widened with ?days=N.
func (h *Handlers) ListExpiringCrewCertificates(w http.ResponseWriter, r *http.Request) {
	f := certFilter(r)
	f.CrewMemberID = r.URL.Query().Get("crewMemberId")
	if f.WithinDays == 0 {
		f.WithinDays = 30
	}
	certs, err := h.store.ListCrewCertificates(r.Context(), f)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// ListExpiredCrewCertificates handles GET /api/crew/certificates/expired.
func (h *Handlers) ListExpiredCrewCertificates(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	certs, err := h.store.ListCrewCertificates(r.Context(), store.CertFilter{
		VesselID:     vesselID,
		CrewMemberID: r.URL.Query().Get("crewMemberId"),
		ExpiredOnly:  true,
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// CreateCrewCertificate handles POST /api/crew/certificates.
func (h *Handlers) CreateCrewCertificate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCertificateRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.CrewMemberID == "" {
		h.httpError(w, "Name and crewMemberId are required", http.StatusBadRequest)
		return
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
		return
	}
	issue, err := parseDatePtr(req.IssueDate)
	if err != nil {
		h.httpError(w, "Invalid issueDate", http.StatusBadRequest)
		return
	}

	c := &store.CrewCertificate{
		CrewMemberID: req.CrewMemberID,
		Name:         req.Name,
		Issuer:       req.Issuer,
		ExpiryDate:   expiry,
	}
	if issue != nil {
		c.IssueDate = *issue
	}
	if err := h.store.CreateCrewCertificate(r.Context(), c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, c)
}

// GetCrewCertificate handles GET /api/crew/certificates/{id}.
func (h *Handlers) GetCrewCertificate(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetCrewCertificate(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, c)
}

// UpdateCrewCertificate handles PUT /api/crew/certificates/{id}.
func (h *Handlers) UpdateCrewCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCertificateRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.store.GetCrewCertificate(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Issuer != nil {
		c.Issuer = *req.Issuer
	}
	if req.IssueDate != nil {
		issue, err := parseDate(*req.IssueDate)
		if err != nil {
			h.httpError(w, "Invalid issueDate", http.StatusBadRequest)
			return
		}
		c.IssueDate = issue
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
			return
		}
		c.ExpiryDate = expiry
	}

	if err := h.store.UpdateCrewCertificate(ctx, c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, c)
}

// DeleteCrewCertificate handles DELETE /api/crew/certificates/{id}.
func (h *Handlers) DeleteCrewCertificate(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCrewCertificate(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTrainings handles GET /api/crew/trainings.
func (h *Handlers) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.store.ListTrainings(r.Context(), r.URL.Query().Get("crewMemberId"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, trainings)
}

// CreateTraining handles POST /api/crew/trainings.
func (h *Handlers) CreateTraining(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTrainingRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.CrewMemberID == "" {
		h.httpError(w, "Name and crewMemberId are required", http.StatusBadRequest)
		return
	}
	completed, err := parseDatePtr(req.CompletedDate)
	if err != nil {
		h.httpError(w, "Invalid completedDate", http.StatusBadRequest)
		return
	}
	expiry, err := parseDatePtr(req.ExpiryDate)
	if err != nil {
		h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
		return
	}

	t := &store.Training{
		CrewMemberID:  req.CrewMemberID,
		Name:          req.Name,
		Provider:      req.Provider,
		CompletedDate: completed,
		ExpiryDate:    expiry,
	}
	if err := h.store.CreateTraining(r.Context(), t); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, t)
}

// UpdateTraining handles PUT /api/crew/trainings/{id}.
func (h *Handlers) UpdateTraining(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateTrainingRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.store.GetTraining(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Provider != nil {
		t.Provider = *req.Provider
	}
	if req.CompletedDate != nil {
		completed, err := parseDatePtr(*req.CompletedDate)
		if err != nil {
			h.httpError(w, "Invalid completedDate", http.StatusBadRequest)
			return
		}
		t.CompletedDate = completed
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDatePtr(*req.ExpiryDate)
		if err != nil {
			h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
			return
		}
		t.ExpiryDate = expiry
	}

	if err := h.store.UpdateTraining(ctx, t); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, t)
}

// DeleteTraining handles DELETE /api/crew/trainings/{id}.
func (h *Handlers) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTraining(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRotations handles GET /api/crew/rotations.
func (h *Handlers) ListRotations(w http.ResponseWriter, r *http.Request) {
	rotations, err := h.store.ListRotations(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, rotations)
}

// CreateRotation handles POST /api/crew/rotations.
func (h *Handlers) CreateRotation(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRotationRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CrewMemberID == "" {
		h.httpError(w, "crewMemberId is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	join, err := parseDate(req.JoinDate)
	if err != nil {
		h.httpError(w, "Invalid joinDate", http.StatusBadRequest)
		return
	}
	leave, err := parseDatePtr(req.LeaveDate)
	if err != nil {
		h.httpError(w, "Invalid leaveDate", http.StatusBadRequest)
		return
	}

	rot := &store.Rotation{
		CrewMemberID: req.CrewMemberID,
		VesselID:     req.VesselID,
		JoinDate:     join,
		LeaveDate:    leave,
		Status:       req.Status,
	}
	if rot.Status == "" {
		rot.Status = "PLANNED"
	}
	if err := h.store.CreateRotation(r.Context(), rot); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, rot)
}

// UpdateRotation handles PUT /api/crew/rotations/{id}.
func (h *Handlers) UpdateRotation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateRotationRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rot, err := h.store.GetRotation(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, rot.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID != nil {
		rot.VesselID = *req.VesselID
	}
	if req.JoinDate != nil {
		join, err := parseDate(*req.JoinDate)
		if err != nil {
			h.httpError(w, "Invalid joinDate", http.StatusBadRequest)
			return
		}
		rot.JoinDate = join
	}
	if req.LeaveDate != nil {
		leave, err := parseDatePtr(*req.LeaveDate)
		if err != nil {
			h.httpError(w, "Invalid leaveDate", http.StatusBadRequest)
			return
		}
		rot.LeaveDate = leave
	}
	if req.Status != nil {
		rot.Status = *req.Status
	}

	if err := h.store.UpdateRotation(ctx, rot); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, rot)
}

// DeleteRotation handles DELETE /api/crew/rotations/{id}.
func (h *Handlers) DeleteRotation(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRotation(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
