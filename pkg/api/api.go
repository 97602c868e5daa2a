// Package api contains the shared JSON request/response structs for the GDYS
// HTTP surface. This package is shared between the CLI, the client library
// and the server handlers.
package api

import "encoding/json"

// Envelope is the uniform success wrapper: every 2xx body is {"data": ...}.
type Envelope struct {
	Data json.RawMessage `json:"data"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the authenticated user's public profile.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	VesselID string `json:"vesselId,omitempty"`
}

// LoginResponse carries the bearer token and the profile it was minted for.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// CreateVesselRequest is the request body for POST /api/vessels.
type CreateVesselRequest struct {
	Name         string  `json:"name"`
	IMONumber    string  `json:"imoNumber"`
	VesselType   string  `json:"vesselType"`
	Flag         string  `json:"flag"`
	GrossTonnage float64 `json:"grossTonnage,omitempty"`
	YearBuilt    int     `json:"yearBuilt,omitempty"`
	Status       string  `json:"status,omitempty"`
}

// UpdateVesselRequest is the request body for PUT /api/vessels/{id}.
// Only fields present in the payload are applied; absent fields keep their
// prior values.
type UpdateVesselRequest struct {
	Name         *string  `json:"name,omitempty"`
	IMONumber    *string  `json:"imoNumber,omitempty"`
	VesselType   *string  `json:"vesselType,omitempty"`
	Flag         *string  `json:"flag,omitempty"`
	GrossTonnage *float64 `json:"grossTonnage,omitempty"`
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// CreateCategoryRequest is the request body for POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest is the request body for PUT /api/categories/{id}.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
