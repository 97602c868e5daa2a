package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"gdys/internal/auth"
)

func claimedRequest(userID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
	return r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
}

func TestRateLimit_SharedAcrossHandlers(t *testing.T) {
	mw := RateLimit(1, 1)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Two wrapped handlers, as the route table produces. The budget is one
	// token per user in total, not one per handler.
	first := mw(ok)
	second := mw(ok)

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, claimedRequest("u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, claimedRequest("u1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request drew from a fresh bucket: status = %d, want 429", rec.Code)
	}

	// A different user has their own bucket.
	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, claimedRequest("u2"))
	if rec.Code != http.StatusOK {
		t.Errorf("other user's request status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_ZeroDisables(t *testing.T) {
	mw := RateLimit(0, 0)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}
