// Package handlers contains the HTTP handlers for the GDYS API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gdys/internal/blob"
	"gdys/internal/config"
	"gdys/internal/server/middleware"
	"gdys/internal/store"
	"gdys/pkg/api"
)

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	store store.Store
	blobs blob.Store
	cfg   *config.Config
	log   *slog.Logger
}

// New creates a new Handlers instance.
func New(s store.Store, blobs blob.Store, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{store: s, blobs: blobs, cfg: cfg, log: log}
}

// envelope is the uniform success wrapper.
type envelope struct {
	Data any `json:"data"`
}

// respondData writes a {"data": ...} success body.
func (h *Handlers) respondData(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Data: payload})
}

// httpError returns a consistent error body.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}

// storeError maps store sentinel errors onto HTTP statuses.
func (h *Handlers) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.httpError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrInsufficientStock):
		h.httpError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrAlreadySigned):
		h.httpError(w, "Entry is signed and immutable", http.StatusConflict)
	case errors.Is(err, store.ErrInvalidStatus):
		h.httpError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrDuplicate):
		h.httpError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrInvalidCredentials):
		h.httpError(w, "Invalid email or password", http.StatusUnauthorized)
	default:
		h.httpError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decode reads a JSON request body.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// parseDatePtr returns nil for an empty string.
func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scope resolves the caller's vessel visibility. Non-elevated callers are
// pinned to their token's vessel; elevated callers may pass an explicit
// vesselId query param or see the whole fleet.
func scope(r *http.Request) (vesselID string, fleetWide bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	if store.Role(claims.Role).FleetWide() {
		return r.URL.Query().Get("vesselId"), true
	}
	return claims.VesselID, false
}

// scopedFilter builds the common list filter from the caller's scope and the
// optional status query param.
func scopedFilter(r *http.Request) store.ListFilter {
	vesselID, _ := scope(r)
	return store.ListFilter{
		VesselID: vesselID,
		Status:   r.URL.Query().Get("status"),
	}
}

// canAccess reports whether the caller may touch a record belonging to the
// given vessel. Records without a vessel are visible to everyone.
func canAccess(r *http.Request, recordVesselID string) bool {
	if recordVesselID == "" {
		return true
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return false
	}
	if store.Role(claims.Role).FleetWide() {
		return true
	}
	return claims.VesselID == recordVesselID
}

// callerID returns the authenticated user's ID, or "".
func callerID(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.Subject
}

// callerName returns the authenticated user's display name, or "".
func callerName(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.Name
}

// forceVessel pins a create payload's vessel to the caller's own vessel when
// the caller is not fleet-wide. Returns false when the payload names a
// different vessel than the caller may write to.
func forceVessel(r *http.Request, vesselID *string) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return false
	}
	if store.Role(claims.Role).FleetWide() {
		return true
	}
	if *vesselID == "" {
		*vesselID = claims.VesselID
		return true
	}
	return *vesselID == claims.VesselID
}
