package handlers

import (
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListVessels handles GET /api/vessels. Non-elevated callers see only their
// own vessel.
func (h *Handlers) ListVessels(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.store.ListVessels(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}

	vesselID, fleetWide := scope(r)
	if !fleetWide || vesselID != "" {
		filtered := []store.Vessel{}
		for _, v := range vessels {
			if vesselID == "" || v.ID == vesselID {
				filtered = append(filtered, v)
			}
		}
		vessels = filtered
	}
	h.respondData(w, http.StatusOK, vessels)
}

// CreateVessel handles POST /api/vessels.
func (h *Handlers) CreateVessel(w http.ResponseWriter, r *http.Request) {
	var req api.CreateVesselRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.IMONumber == "" {
		h.httpError(w, "Name and imoNumber are required", http.StatusBadRequest)
		return
	}

	v := &store.Vessel{
		Name:         req.Name,
		IMONumber:    req.IMONumber,
		VesselType:   req.VesselType,
		Flag:         req.Flag,
		GrossTonnage: req.GrossTonnage,
		YearBuilt:    req.YearBuilt,
		Status:       req.Status,
	}
	if v.Status == "" {
		v.Status = "ACTIVE"
	}
	if err := h.store.CreateVessel(r.Context(), v); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, v)
}

// GetVessel handles GET /api/vessels/{id}.
func (h *Handlers) GetVessel(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.GetVessel(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, v.ID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, v)
}

// UpdateVessel handles PUT /api/vessels/{id}.
func (h *Handlers) UpdateVessel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateVesselRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	v, err := h.store.GetVessel(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.IMONumber != nil {
		v.IMONumber = *req.IMONumber
	}
	if req.VesselType != nil {
		v.VesselType = *req.VesselType
	}
	if req.Flag != nil {
		v.Flag = *req.Flag
	}
	if req.GrossTonnage != nil {
		v.GrossTonnage = *req.GrossTonnage
	}
	if req.YearBuilt != nil {
		v.YearBuilt = *req.YearBuilt
	}
	if req.Status != nil {
		v.Status = *req.Status
	}

	if err := h.store.UpdateVessel(ctx, v); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, v)
}

// DeleteVessel handles DELETE /api/vessels/{id}.
func (h *Handlers) DeleteVessel(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteVessel(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
