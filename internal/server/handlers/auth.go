package handlers

import (
	"errors"
	"net/http"

	"gdys/internal/auth"
	"gdys/internal/store"
	"gdys/pkg/api"
)

func profileOf(u *store.User) api.UserProfile {
	return api.UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		VesselID: u.VesselID,
	}
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.httpError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	u, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.storeError(w, store.ErrInvalidCredentials)
			return
		}
		h.storeError(w, err)
		return
	}
	if !auth.VerifyPassword(req.Password, u.PasswordSalt, u.PasswordHash) {
		h.storeError(w, store.ErrInvalidCredentials)
		return
	}

	token, _, err := auth.IssueToken(h.cfg.JWTSecret, u, h.cfg.TokenTTL)
	if err != nil {
		h.log.Error("failed to issue token", "error", err)
		h.httpError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.respondData(w, http.StatusOK, api.LoginResponse{
		Token: token,
		User:  profileOf(u),
	})
}

// Me handles GET /api/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(r.Context(), callerID(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, profileOf(u))
}
