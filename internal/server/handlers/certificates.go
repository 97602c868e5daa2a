package handlers

import (
	"net/http"
	"strconv"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// certFilter builds the certificate list filter from the caller's scope and
// the optional ?days window.
func certFilter(r *http.Request) store.CertFilter {
	vesselID, _ := scope(r)
	f := store.CertFilter{VesselID: vesselID}
	if s := r.URL.Query().Get("days"); s != "" {
		if days, err := strconv.Atoi(s); err == nil && days > 0 {
			f.WithinDays = days
		}
	}
	return f
}

// ListCertificates handles GET /api/certificates.
func (h *Handlers) ListCertificates(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	certs, err := h.store.ListCertificates(r.Context(), store.CertFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// ListExpiringCertificates handles GET /api/certificates/expiring.
// The window defaults to 30 days and can be widened with ?days=N.
func (h *Handlers) ListExpiringCertificates(w http.ResponseWriter, r *http.Request) {
	f := certFilter(r)
	if f.WithinDays == 0 {
		f.WithinDays = 30
	}
	certs, err := h.store.ListCertificates(r.Context(), f)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// ListExpiredCertificates handles GET /api/certificates/expired.
func (h *Handlers) ListExpiredCertificates(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	certs, err := h.store.ListCertificates(r.Context(), store.CertFilter{VesselID: vesselID, ExpiredOnly: true})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, certs)
}

// CreateCertificate handles POST /api/certificates.
func (h *Handlers) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCertificateRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.VesselID == "" {
		h.httpError(w, "Name and vesselId are required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
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

	c := &store.Certificate{
		VesselID:   req.VesselID,
		Name:       req.Name,
		Issuer:     req.Issuer,
		ExpiryDate: expiry,
	}
	if issue != nil {
		c.IssueDate = *issue
	}
	if err := h.store.CreateCertificate(r.Context(), c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, c)
}

// GetCertificate handles GET /api/certificates/{id}.
func (h *Handlers) GetCertificate(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetCertificate(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, c.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, c)
}

// UpdateCertificate handles PUT /api/certificates/{id}.
func (h *Handlers) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCertificateRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.store.GetCertificate(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, c.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
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

	if err := h.store.UpdateCertificate(ctx, c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, c)
}

// DeleteCertificate handles DELETE /api/certificates/{id}.
func (h *Handlers) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.store.GetCertificate(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, c.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteCertificate(ctx, c.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
