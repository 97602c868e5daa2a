package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gdys/internal/auth"
	"gdys/internal/blob"
	"gdys/internal/config"
	"gdys/internal/server/handlers"
	"gdys/internal/store"
	"gdys/internal/store/memory"
	"gdys/pkg/api"
)

type testEnv struct {
	store  *memory.Store
	server *httptest.Server
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memory.New()
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		MaxUploadBytes: 1 << 20,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := handlers.New(st, blob.NewMemory(), cfg, log)
	srv := New(":0", h, cfg, log, nil, nil)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{store: st, server: ts, cfg: cfg}
}

// addUser creates an account and returns a minted bearer token for it.
func (e *testEnv) addUser(t *testing.T, email string, role store.Role, vesselID string) (*store.User, string) {
	t.Helper()

	salt, err := auth.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	hash, err := auth.HashPassword("password", salt)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &store.User{
		Email:        email,
		Name:         email,
		Role:         role,
		VesselID:     vesselID,
		PasswordHash: hash,
		PasswordSalt: salt,
	}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, _, err := auth.IssueToken(e.cfg.JWTSecret, u, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}

func (e *testEnv) addVessel(t *testing.T, name string) *store.Vessel {
	t.Helper()
	v := &store.Vessel{Name: name, IMONumber: fmt.Sprintf("9%06d", len(name)), VesselType: "BULK_CARRIER", Flag: "MT"}
	if err := e.store.CreateVessel(context.Background(), v); err != nil {
		t.Fatalf("create vessel: %v", err)
	}
	return v
}

// request performs an authenticated JSON request and decodes the envelope.
func (e *testEnv) request(t *testing.T, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		var envelope api.Envelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if envelope.Data != nil {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
		}
	}
	return resp
}

func TestLogin_IssuesToken(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@test", store.RoleSystemAdmin, "")

	var out api.LoginResponse
	resp := env.request(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "admin@test",
		Password: "password",
	}, &out)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	if out.Token == "" {
		t.Fatal("no token returned")
	}
	claims, err := auth.VerifyToken(env.cfg.JWTSecret, out.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if claims.Role != string(store.RoleSystemAdmin) {
		t.Errorf("claims role = %q", claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@test", store.RoleSystemAdmin, "")

	resp := env.request(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "admin@test",
		Password: "wrong",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/vessels", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestVessels_WriteRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Test")
	_, officer := env.addUser(t, "officer@test", store.RoleOfficer, v.ID)
	_, admin := env.addUser(t, "admin@test", store.RoleSystemAdmin, "")

	body := api.CreateVesselRequest{Name: "MV New", IMONumber: "9111111", VesselType: "TANKER", Flag: "TR"}

	resp := env.request(t, http.MethodPost, "/api/vessels", officer, body, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("officer create status = %d, want 403", resp.StatusCode)
	}

	var created store.Vessel
	resp = env.request(t, http.MethodPost, "/api/vessels", admin, body, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create status = %d, want 201", resp.StatusCode)
	}
	if created.ID == "" || created.Status != "ACTIVE" {
		t.Errorf("unexpected vessel: %+v", created)
	}
}

func TestScope_CrewCannotReadOtherVessel(t *testing.T) {
	env := newTestEnv(t)
	mine := env.addVessel(t, "MV Mine")
	other := env.addVessel(t, "MV Other")
	_, officer := env.addUser(t, "officer@test", store.RoleOfficer, mine.ID)

	resp := env.request(t, http.MethodGet, "/api/vessels/"+other.ID, officer, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign vessel status = %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/vessels/"+mine.ID, officer, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("own vessel status = %d, want 200", resp.StatusCode)
	}
}

func TestDocuments_ApproveWorkflow(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Docs")
	_, admin := env.addUser(t, "dpa@test", store.RoleDPAOffice, "")

	var doc store.Document
	resp := env.request(t, http.MethodPost, "/api/documents", admin, api.CreateDocumentRequest{
		VesselID: v.ID,
		Title:    "SMS Manual",
	}, &doc)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	if doc.Status != store.DocumentDraft {
		t.Fatalf("new document status = %q, want DRAFT", doc.Status)
	}

	// Approving a draft fails; it must be submitted first.
	resp = env.request(t, http.MethodPost, "/api/documents/"+doc.ID+"/approve", admin, nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("approve draft status = %d, want 409", resp.StatusCode)
	}

	pending := string(store.DocumentPendingApproval)
	resp = env.request(t, http.MethodPut, "/api/documents/"+doc.ID, admin, api.UpdateDocumentRequest{
		Status: &pending,
	}, &doc)
	if resp.StatusCode != http.StatusOK || doc.Status != store.DocumentPendingApproval {
		t.Fatalf("submit: status = %d, doc status = %q", resp.StatusCode, doc.Status)
	}

	resp = env.request(t, http.MethodPost, "/api/documents/"+doc.ID+"/approve", admin, nil, &doc)
	if resp.StatusCode != http.StatusOK || doc.Status != store.DocumentApproved {
		t.Fatalf("approve: status = %d, doc status = %q", resp.StatusCode, doc.Status)
	}

	// Approved documents cannot be approved again.
	resp = env.request(t, http.MethodPost, "/api/documents/"+doc.ID+"/approve", admin, nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("re-approve status = %d, want 409", resp.StatusCode)
	}
}

func TestInventory_TransactionInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Stock")
	_, chief := env.addUser(t, "chief@test", store.RoleChiefEngineer, v.ID)

	var item store.InventoryItem
	resp := env.request(t, http.MethodPost, "/api/inventory/items", chief, api.CreateInventoryItemRequest{
		Name:     "Fuel filter",
		Quantity: 3,
	}, &item)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item status = %d", resp.StatusCode)
	}
	if item.VesselID != v.ID {
		t.Fatalf("item not pinned to caller's vessel: %q", item.VesselID)
	}

	resp = env.request(t, http.MethodPost, "/api/inventory/transactions", chief, api.CreateTransactionRequest{
		ItemID:          item.ID,
		TransactionType: store.TransactionOut,
		Quantity:        5,
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("overdraw status = %d, want 400", resp.StatusCode)
	}

	var tx store.InventoryTransaction
	resp = env.request(t, http.MethodPost, "/api/inventory/transactions", chief, api.CreateTransactionRequest{
		ItemID:          item.ID,
		TransactionType: store.TransactionOut,
		Quantity:        2,
	}, &tx)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("issue status = %d", resp.StatusCode)
	}

	var after store.InventoryItem
	env.request(t, http.MethodGet, "/api/inventory/items/"+item.ID, chief, nil, &after)
	if after.Quantity != 1 {
		t.Errorf("quantity after failed overdraw and issue of 2 = %d, want 1", after.Quantity)
	}
}

func TestLogbook_SignIsCaptainOnlyAndFinal(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Log")
	_, officer := env.addUser(t, "officer@test", store.RoleOfficer, v.ID)
	_, captain := env.addUser(t, "captain@test", store.RoleCaptain, v.ID)

	var entry store.LogbookEntry
	resp := env.request(t, http.MethodPost, "/api/logbook", officer, api.CreateLogbookEntryRequest{
		Latitude:  36.8,
		Longitude: 28.2,
		Speed:     12.5,
	}, &entry)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPost, "/api/logbook/"+entry.ID+"/sign", officer, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("officer sign status = %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, http.MethodPost, "/api/logbook/"+entry.ID+"/sign", captain, nil, &entry)
	if resp.StatusCode != http.StatusOK || entry.SignedAt == nil {
		t.Fatalf("captain sign: status = %d, signedAt = %v", resp.StatusCode, entry.SignedAt)
	}

	resp = env.request(t, http.MethodPost, "/api/logbook/"+entry.ID+"/sign", captain, nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("double sign status = %d, want 409", resp.StatusCode)
	}

	remarks := "edited"
	resp = env.request(t, http.MethodPut, "/api/logbook/"+entry.ID, officer, api.UpdateLogbookEntryRequest{
		Remarks: &remarks,
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("update signed entry status = %d, want 409", resp.StatusCode)
	}
}

func TestMaintenance_CompleteCreatesWorkOrderAndFollowUp(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Wrench")
	_, chief := env.addUser(t, "chief@test", store.RoleChiefEngineer, v.ID)

	due := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	var task store.MaintenanceTask
	resp := env.request(t, http.MethodPost, "/api/maintenance/tasks", chief, api.CreateMaintenanceTaskRequest{
		Equipment:    "Main engine",
		Title:        "Injector overhaul",
		DueDate:      due,
		IntervalDays: 90,
	}, &task)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task status = %d", resp.StatusCode)
	}

	var order store.WorkOrder
	resp = env.request(t, http.MethodPost, "/api/maintenance/tasks/"+task.ID+"/complete", chief, api.CompleteTaskRequest{
		LaborHours: 6,
		Notes:      "all injectors replaced",
	}, &order)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d", resp.StatusCode)
	}
	if order.TaskID != task.ID || order.LaborHours != 6 {
		t.Errorf("unexpected work order: %+v", order)
	}

	var tasks []store.MaintenanceTask
	env.request(t, http.MethodGet, "/api/maintenance/tasks", chief, nil, &tasks)

	var followUp *store.MaintenanceTask
	for i := range tasks {
		if tasks[i].ID != task.ID {
			followUp = &tasks[i]
		}
	}
	if followUp == nil {
		t.Fatal("no follow-up task scheduled")
	}
	wantDue := task.DueDate.AddDate(0, 0, 90)
	if !followUp.DueDate.Equal(wantDue) {
		t.Errorf("follow-up due %v, want %v", followUp.DueDate, wantDue)
	}
}

func TestIncidents_PhotoUpload(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Photo")
	_, officer := env.addUser(t, "officer@test", store.RoleOfficer, v.ID)

	var incident store.Incident
	resp := env.request(t, http.MethodPost, "/api/incidents", officer, api.CreateIncidentRequest{
		IncidentType: "NEAR_MISS",
		Description:  "mooring line parted",
	}, &incident)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create incident status = %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "deck.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("jpeg-bytes"))
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, env.server.URL+"/api/incidents/"+incident.ID+"/photos", &buf)
	req.Header.Set("Authorization", "Bearer "+officer)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	uploadResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	defer uploadResp.Body.Close()
	if uploadResp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", uploadResp.StatusCode)
	}

	var after store.Incident
	env.request(t, http.MethodGet, "/api/incidents/"+incident.ID, officer, nil, &after)
	if len(after.PhotoKeys) != 1 {
		t.Errorf("photo keys = %v, want one entry", after.PhotoKeys)
	}
}

func TestAnalytics_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	v := env.addVessel(t, "MV Numbers")
	_, admin := env.addUser(t, "admin@test", store.RoleSystemAdmin, "")

	ctx := context.Background()
	env.store.CreateCertificate(ctx, &store.Certificate{
		VesselID:   v.ID,
		Name:       "SMC",
		ExpiryDate: time.Now().UTC().AddDate(0, 0, 10),
	})
	env.store.CreateMaintenanceTask(ctx, &store.MaintenanceTask{
		VesselID:  v.ID,
		Equipment: "Aux engine",
		Title:     "Oil change",
		DueDate:   time.Now().UTC().AddDate(0, 0, -3),
	})
	env.store.CreateIncident(ctx, &store.Incident{
		VesselID:     v.ID,
		IncidentType: "INJURY",
	})

	var out api.DashboardAnalytics
	resp := env.request(t, http.MethodGet, "/api/analytics/dashboard", admin, nil, &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", resp.StatusCode)
	}
	if out.Vessels != 1 || out.ExpiringCertificates != 1 || out.OverdueTasks != 1 || out.OpenIncidents != 1 {
		t.Errorf("unexpected dashboard: %+v", out)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(env.server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}
