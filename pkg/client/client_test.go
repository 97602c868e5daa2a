package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gdys/pkg/api"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in        string
		wantPath  string
		wantQuery map[string]string
	}{
		{"vessels", "vessels", nil},
		{"/vessels/", "vessels", nil},
		{"/api/vessels", "vessels", nil},
		{"api/vessels", "vessels", nil},
		{"/api/inventory/items", "inventory/items", nil},
		{"vessels?status=ACTIVE", "vessels", map[string]string{"status": "ACTIVE"}},
		{"/api/logbook?voyageId=v1&status=X", "logbook", map[string]string{"voyageId": "v1", "status": "X"}},
	}

	for _, tt := range tests {
		gotPath, gotQuery := normalizePath(tt.in)
		if gotPath != tt.wantPath {
			t.Errorf("normalizePath(%q) path = %q, want %q", tt.in, gotPath, tt.wantPath)
		}
		for k, v := range tt.wantQuery {
			if gotQuery.Get(k) != v {
				t.Errorf("normalizePath(%q) query[%s] = %q, want %q", tt.in, k, gotQuery.Get(k), v)
			}
		}
	}
}

func TestBuildURL_ExplicitQueryWins(t *testing.T) {
	c := New("http://example.test", nil)

	got := c.buildURL(http.MethodGet, "vessels?status=ACTIVE", map[string]string{"status": "LAID_UP"}, nil)
	want := "http://example.test/api/vessels?status=LAID_UP"
	if got != want {
		t.Errorf("buildURL = %q, want %q", got, want)
	}
}

func TestBuildURL_VesselScopeInjection(t *testing.T) {
	c := New("http://example.test", nil)
	crew := &Session{Token: "tok", Role: "OFFICER", VesselID: "v-1"}
	admin := &Session{Token: "tok", Role: "SYSTEM_ADMIN", VesselID: ""}

	if got := c.buildURL(http.MethodGet, "certificates", nil, crew); got != "http://example.test/api/certificates?vesselId=v-1" {
		t.Errorf("scoped GET = %q", got)
	}
	// Explicit vesselId is kept.
	if got := c.buildURL(http.MethodGet, "certificates", map[string]string{"vesselId": "v-9"}, crew); got != "http://example.test/api/certificates?vesselId=v-9" {
		t.Errorf("explicit vesselId overridden: %q", got)
	}
	// Elevated roles are not pinned.
	if got := c.buildURL(http.MethodGet, "certificates", nil, admin); got != "http://example.test/api/certificates" {
		t.Errorf("elevated GET = %q", got)
	}
	// Writes are not rewritten.
	if got := c.buildURL(http.MethodPost, "certificates", nil, crew); got != "http://example.test/api/certificates" {
		t.Errorf("POST rewritten: %q", got)
	}
}

func respondData(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	json.NewEncoder(w).Encode(api.Envelope{Data: data})
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vessels" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected Bearer token, got: %s", r.Header.Get("Authorization"))
		}
		respondData(t, w, []api.UserProfile{{ID: "u1", Name: "Test"}})
	}))
	defer server.Close()

	sessions := &MemorySessionStore{}
	sessions.Save(&Session{Token: "test-token", Role: "SYSTEM_ADMIN"})
	c := New(server.URL, sessions)

	var out []api.UserProfile
	if err := c.Get(context.Background(), "/api/vessels", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "u1" {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Invalid token"})
	}))
	defer server.Close()

	sessions := &MemorySessionStore{}
	sessions.Save(&Session{Token: "stale", Role: "OFFICER", VesselID: "v-1"})
	c := New(server.URL, sessions)

	err := c.Get(context.Background(), "vessels", nil, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if s, _ := sessions.Load(); s != nil {
		t.Errorf("session not cleared after 401")
	}
}

func TestClient_FailedLoginKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login carried a bearer token: %q", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Invalid email or password"})
	}))
	defer server.Close()

	sessions := &MemorySessionStore{}
	sessions.Save(&Session{Token: "valid", Role: "CAPTAIN", VesselID: "v-1"})
	c := New(server.URL, sessions)

	_, err := c.Login(context.Background(), "captain@gdys.local", "wrong")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid email or password" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if errors.Is(err, ErrSessionExpired) {
		t.Error("failed login reported as an expired session")
	}
	if s, _ := sessions.Load(); s == nil || s.Token != "valid" {
		t.Errorf("failed login clobbered the stored session: %+v", s)
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "vessel not found"})
	}))
	defer server.Close()

	c := New(server.URL, &MemorySessionStore{})
	err := c.Get(context.Background(), "vessels/missing", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "vessel not found" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestClient_LoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		respondData(t, w, api.LoginResponse{
			Token: "minted",
			User:  api.UserProfile{ID: "u1", Role: "CAPTAIN", VesselID: "v-1"},
		})
	}))
	defer server.Close()

	sessions := &MemorySessionStore{}
	c := New(server.URL, sessions)

	resp, err := c.Login(context.Background(), "captain@gdys.local", "password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "minted" {
		t.Errorf("unexpected token: %s", resp.Token)
	}

	s, _ := sessions.Load()
	if s == nil || s.Token != "minted" || s.VesselID != "v-1" || s.Role != "CAPTAIN" {
		t.Errorf("session not persisted: %+v", s)
	}
}

func TestCache_DedupsConcurrentFetches(t *testing.T) {
	cache := NewCache(time.Minute)
	var calls atomic.Int64
	release := make(chan struct{})

	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Fetch(context.Background(), Key{"vessels"}, fn)
			if err != nil || got != "value" {
				t.Errorf("Fetch = %v, %v", got, err)
			}
		}()
	}

	// Let the goroutines pile up on the in-flight call before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("fetch function called %d times, want 1", n)
	}
}

func TestCache_ServesCachedValue(t *testing.T) {
	cache := NewCache(time.Minute)
	var calls atomic.Int64

	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.Fetch(context.Background(), Key{"vessels"}, fn)
		if err != nil || got != 1 {
			t.Fatalf("Fetch #%d = %v, %v", i, got, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("fetch function called %d times, want 1", n)
	}
}

func TestCache_InvalidateByPrefix(t *testing.T) {
	cache := NewCache(time.Minute)
	fetchConst := func(v any) FetchFunc {
		return func(ctx context.Context) (any, error) { return v, nil }
	}

	cache.Fetch(context.Background(), Key{"inventory", "items", "v-1"}, fetchConst("a"))
	cache.Fetch(context.Background(), Key{"inventory", "transactions"}, fetchConst("b"))
	cache.Fetch(context.Background(), Key{"vessels"}, fetchConst("c"))

	cache.Invalidate(Key{"inventory"})

	if _, ok := cache.Get(Key{"inventory", "items", "v-1"}); ok {
		t.Errorf("inventory/items survived invalidation")
	}
	if _, ok := cache.Get(Key{"inventory", "transactions"}); ok {
		t.Errorf("inventory/transactions survived invalidation")
	}
	if _, ok := cache.Get(Key{"vessels"}); !ok {
		t.Errorf("unrelated key was invalidated")
	}
}

func TestCache_SubscribeReceivesInvalidations(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Fetch(context.Background(), Key{"maintenance", "tasks"}, func(ctx context.Context) (any, error) {
		return "x", nil
	})

	ch := cache.Subscribe(Key{"maintenance"})
	cache.Invalidate(Key{"maintenance", "tasks"})

	select {
	case k := <-ch:
		if k.String() != "maintenance/tasks" {
			t.Errorf("unexpected key: %v", k)
		}
	case <-time.After(time.Second):
		t.Fatal("no invalidation notification received")
	}
}

func TestMutator_FailureLeavesCache(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Fetch(context.Background(), Key{"vessels"}, func(ctx context.Context) (any, error) {
		return "cached", nil
	})

	m := NewMutator(cache)
	wantErr := errors.New("write failed")
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return wantErr
	}, Key{"vessels"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("unexpected error: %v", err)
	}

	if e, ok := cache.Get(Key{"vessels"}); !ok || e.Data != "cached" {
		t.Errorf("failed mutation touched the cache: %+v", e)
	}
}

func TestMutator_SuccessInvalidates(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Fetch(context.Background(), Key{"vessels"}, func(ctx context.Context) (any, error) {
		return "cached", nil
	})

	m := NewMutator(cache)
	if err := m.Do(context.Background(), func(ctx context.Context) error {
		return nil
	}, Key{"vessels"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cache.Get(Key{"vessels"}); ok {
		t.Errorf("successful mutation left the key cached")
	}
}
