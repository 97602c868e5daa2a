// Package client is the Go client library for the GDYS API: a thin resource
// client with persisted sessions, plus a query cache and mutation executor
// for interactive callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gdys/pkg/api"
)

// ErrSessionExpired means the server rejected the stored token. The persisted
// session has already been cleared; the caller should log in again.
var ErrSessionExpired = errors.New("session expired, log in again")

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Client handles API calls to the GDYS server.
type Client struct {
	BaseURL    string
	Sessions   SessionStore
	HTTPClient *http.Client
}

// New creates a client against the given base URL.
func New(baseURL string, sessions SessionStore) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Sessions: sessions,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// normalizePath reduces a caller-supplied path to the canonical
// "segment/segment" form and splits off any embedded query string.
func normalizePath(path string) (string, url.Values) {
	path, rawQuery, _ := strings.Cut(path, "?")
	embedded, _ := url.ParseQuery(rawQuery)

	path = strings.Trim(path, "/")
	path = strings.TrimPrefix(path, "api/")
	path = strings.Trim(path, "/")
	return path, embedded
}

// buildURL merges the embedded query with the explicit map (explicit wins)
// and injects the session's vessel scope for non-elevated list calls.
func (c *Client) buildURL(method, path string, query map[string]string, session *Session) string {
	p, values := normalizePath(path)
	for k, v := range query {
		values.Set(k, v)
	}
	if method == http.MethodGet &&
		session != nil && session.VesselID != "" && !session.Elevated() &&
		values.Get("vesselId") == "" {
		values.Set("vesselId", session.VesselID)
	}

	u := c.BaseURL + "/api/" + p
	if enc := values.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// Get performs a GET request and decodes the envelope payload into out.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, query map[string]string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, query map[string]string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query map[string]string) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, api.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp); err != nil {
		return nil, err
	}

	if c.Sessions != nil {
		err := c.Sessions.Save(&Session{
			Token:    resp.Token,
			UserID:   resp.User.ID,
			Role:     resp.User.Role,
			VesselID: resp.User.VesselID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}
	return &resp, nil
}

// Logout clears the persisted session.
func (c *Client) Logout() error {
	if c.Sessions == nil {
		return nil
	}
	return c.Sessions.Clear()
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	// Login carries credentials instead of a token; a 401 there means the
	// credentials were wrong, not that the stored session went stale.
	normalized, _ := normalizePath(path)
	isLogin := normalized == "auth/login"

	var session *Session
	if c.Sessions != nil {
		var err error
		session, err = c.Sessions.Load()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.buildURL(method, path, query, session), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if session != nil && session.Token != "" && !isLogin {
		httpReq.Header.Add("Authorization", fmt.Sprintf("Bearer %s", session.Token))
	}
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !isLogin {
		if c.Sessions != nil {
			// Stale token; drop it so the next call prompts a login.
			_ = c.Sessions.Clear()
		}
		return ErrSessionExpired
	}

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr api.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	var envelope api.Envelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Data == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
