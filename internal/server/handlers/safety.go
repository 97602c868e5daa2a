package handlers

import (
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

func toStoreDeficiencies(in []api.Deficiency) []store.Deficiency {
	if in == nil {
		return nil
	}
	out := make([]store.Deficiency, len(in))
	for i, d := range in {
		out[i] = store.Deficiency{
			Code:        d.Code,
			Description: d.Description,
			Rectified:   d.Rectified,
		}
	}
	return out
}

// ListPSCInspections handles GET /api/psc.
func (h *Handlers) ListPSCInspections(w http.ResponseWriter, r *http.Request) {
	inspections, err := h.store.ListPSCInspections(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, inspections)
}

// CreatePSCInspection handles POST /api/psc.
func (h *Handlers) CreatePSCInspection(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePSCInspectionRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Port == "" {
		h.httpError(w, "Port is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	date, err := parseDatePtr(req.InspectionDate)
	if err != nil {
		h.httpError(w, "Invalid inspectionDate", http.StatusBadRequest)
		return
	}

	p := &store.PSCInspection{
		VesselID:     req.VesselID,
		Port:         req.Port,
		Authority:    req.Authority,
		Deficiencies: toStoreDeficiencies(req.Deficiencies),
		Detention:    req.Detention,
	}
	if date != nil {
		p.InspectionDate = *date
	}
	if err := h.store.CreatePSCInspection(r.Context(), p); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, p)
}

// GetPSCInspection handles GET /api/psc/{id}.
func (h *Handlers) GetPSCInspection(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetPSCInspection(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, p.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, p)
}

// UpdatePSCInspection handles PUT /api/psc/{id}.
func (h *Handlers) UpdatePSCInspection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdatePSCInspectionRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.store.GetPSCInspection(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, p.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.Port != nil {
		p.Port = *req.Port
	}
	if req.Authority != nil {
		p.Authority = *req.Authority
	}
	if req.Deficiencies != nil {
		p.Deficiencies = toStoreDeficiencies(req.Deficiencies)
	}
	if req.Detention != nil {
		p.Detention = *req.Detention
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := h.store.UpdatePSCInspection(ctx, p); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, p)
}

// DeletePSCInspection handles DELETE /api/psc/{id}.
func (h *Handlers) DeletePSCInspection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.store.GetPSCInspection(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, p.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeletePSCInspection(ctx, p.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSafetyDrills handles GET /api/safety.
func (h *Handlers) ListSafetyDrills(w http.ResponseWriter, r *http.Request) {
	drills, err := h.store.ListSafetyDrills(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, drills)
}

// CreateSafetyDrill handles POST /api/safety.
func (h *Handlers) CreateSafetyDrill(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSafetyDrillRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DrillType == "" {
		h.httpError(w, "drillType is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	conducted, err := parseDatePtr(req.ConductedDate)
	if err != nil {
		h.httpError(w, "Invalid conductedDate", http.StatusBadRequest)
		return
	}
	nextDue, err := parseDatePtr(req.NextDueDate)
	if err != nil {
		h.httpError(w, "Invalid nextDueDate", http.StatusBadRequest)
		return
	}

	d := &store.SafetyDrill{
		VesselID:     req.VesselID,
		DrillType:    req.DrillType,
		Participants: req.Participants,
		Remarks:      req.Remarks,
		NextDueDate:  nextDue,
	}
	if conducted != nil {
		d.ConductedDate = *conducted
	}
	if err := h.store.CreateSafetyDrill(r.Context(), d); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, d)
}

// GetSafetyDrill handles GET /api/safety/{id}.
func (h *Handlers) GetSafetyDrill(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetSafetyDrill(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, d)
}

// UpdateSafetyDrill handles PUT /api/safety/{id}.
func (h *Handlers) UpdateSafetyDrill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateSafetyDrillRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.store.GetSafetyDrill(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.DrillType != nil {
		d.DrillType = *req.DrillType
	}
	if req.ConductedDate != nil {
		conducted, err := parseDate(*req.ConductedDate)
		if err != nil {
			h.httpError(w, "Invalid conductedDate", http.StatusBadRequest)
			return
		}
		d.ConductedDate = conducted
	}
	if req.Participants != nil {
		d.Participants = *req.Participants
	}
	if req.Remarks != nil {
		d.Remarks = *req.Remarks
	}
	if req.NextDueDate != nil {
		nextDue, err := parseDatePtr(*req.NextDueDate)
		if err != nil {
			h.httpError(w, "Invalid nextDueDate", http.StatusBadRequest)
			return
		}
		d.NextDueDate = nextDue
	}

	if err := h.store.UpdateSafetyDrill(ctx, d); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, d)
}

// DeleteSafetyDrill handles DELETE /api/safety/{id}.
func (h *Handlers) DeleteSafetyDrill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.store.GetSafetyDrill(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteSafetyDrill(ctx, d.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListIncidents handles GET /api/incidents.
func (h *Handlers) ListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.store.ListIncidents(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, incidents)
}

// CreateIncident handles POST /api/incidents.
func (h *Handlers) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req api.CreateIncidentRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.IncidentType == "" {
		h.httpError(w, "incidentType is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	occurred, err := parseDatePtr(req.OccurredAt)
	if err != nil {
		h.httpError(w, "Invalid occurredAt", http.StatusBadRequest)
		return
	}

	in := &store.Incident{
		VesselID:     req.VesselID,
		IncidentType: req.IncidentType,
		Severity:     req.Severity,
		Location:     req.Location,
		Description:  req.Description,
		ReportedBy:   callerID(r),
	}
	if occurred != nil {
		in.OccurredAt = *occurred
	}
	if err := h.store.CreateIncident(r.Context(), in); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, in)
}

// GetIncident handles GET /api/incidents/{id}.
func (h *Handlers) GetIncident(w http.ResponseWriter, r *http.Request) {
	in, err := h.store.GetIncident(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, in.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, in)
}

// UpdateIncident handles PUT /api/incidents/{id}.
func (h *Handlers) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateIncidentRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in, err := h.store.GetIncident(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, in.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.IncidentType != nil {
		in.IncidentType = *req.IncidentType
	}
	if req.Severity != nil {
		in.Severity = *req.Severity
	}
	if req.Location != nil {
		in.Location = *req.Location
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case store.IncidentOpen, store.IncidentUnderInvestigation, store.IncidentClosed:
			in.Status = *req.Status
		default:
			h.httpError(w, "Invalid incident status", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.UpdateIncident(ctx, in); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, in)
}

// DeleteIncident handles DELETE /api/incidents/{id}.
func (h *Handlers) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := h.store.GetIncident(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, in.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteIncident(ctx, in.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadIncidentPhoto handles POST /api/incidents/{id}/photos. The photo goes
// to the blob store and its key is appended to the incident.
func (h *Handlers) UploadIncidentPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := h.store.GetIncident(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, in.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}

	key, name, size, ok := h.saveUpload(w, r)
	if !ok {
		return
	}
	in.PhotoKeys = append(in.PhotoKeys, key)
	if err := h.store.UpdateIncident(ctx, in); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, api.UploadResponse{
		FileKey:  key,
		FileName: name,
		Size:     size,
	})
}
