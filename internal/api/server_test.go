package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spoorwerk/locoreg/internal/auth"
	"github.com/spoorwerk/locoreg/internal/infrastructure/config"
	"github.com/spoorwerk/locoreg/internal/infrastructure/logging"
	"github.com/spoorwerk/locoreg/internal/inventory"
)

const (
	testReadKey  = "reader-secret"
	testAdminKey = "admin-secret"
)

// testServer creates a Server with an empty repository and known access keys.
func testServer(t *testing.T) (*Server, *inventory.Repository) {
	t.Helper()

	repo := inventory.NewRepository()
	gate := auth.NewGate(testReadKey, testAdminKey)
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		Logger:  log,
		Repo:    repo,
		Gate:    gate,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	return srv, repo
}

// doRequest performs a request against the router with an optional
// Authorization header value.
func doRequest(t *testing.T, router http.Handler, method, path, authHeader, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRecord(t *testing.T, data []byte) inventory.Locomotive {
	t.Helper()

	var loco inventory.Locomotive
	if err := json.Unmarshal(data, &loco); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	return loco
}

// ─── Health Endpoint Tests ─────────────────────────────────────────

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/healthz", "", "")

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

// ─── Auth Tier Tests ───────────────────────────────────────────────

func TestListRecords_NoToken(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/records", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListRecords_UnknownToken(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/records", "Bearer wrong", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListRecords_BareTokenAccepted(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	// The Authorization value may be the bare secret, no scheme prefix.
	w := doRequest(t, router, http.MethodGet, "/records", testReadKey, "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCreateRecord_ReaderTokenForbidden(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"series":"NS 1300","category":"Elektrisch"}`
	w := doRequest(t, router, http.MethodPost, "/records", "Bearer "+testReadKey, body)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d (reader on admin route)", w.Code, http.StatusForbidden)
	}
}

func TestCreateRecord_NoTokenUnauthorized(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"series":"NS 1300","category":"Elektrisch"}`
	w := doRequest(t, router, http.MethodPost, "/records", "", body)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUpdateAndDelete_ReaderTokenForbidden(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1300", Category: "Elektrisch"})

	w := doRequest(t, router, http.MethodPut, "/records/1", "Bearer "+testReadKey, `{"maxSpeed":140}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("PUT status = %d, want %d", w.Code, http.StatusForbidden)
	}

	w = doRequest(t, router, http.MethodDelete, "/records/1", "Bearer "+testReadKey, "")
	if w.Code != http.StatusForbidden {
		t.Errorf("DELETE status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// ─── List / Get Tests ──────────────────────────────────────────────

func TestListRecords_EmptyIsJSONArray(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/records", "Bearer "+testReadKey, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want %q", got, "[]")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

func TestListRecords_ReturnsAll(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1100", Category: "Elektrisch"})
	repo.Add(inventory.NewLocomotive{Series: "NS 2200", Category: "Diesel"})

	w := doRequest(t, router, http.MethodGet, "/records", "Bearer "+testReadKey, "")

	var locos []inventory.Locomotive
	if err := json.Unmarshal(w.Body.Bytes(), &locos); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(locos) != 2 {
		t.Fatalf("len = %d, want 2", len(locos))
	}
	if locos[0].Series != "NS 1100" || locos[1].Series != "NS 2200" {
		t.Errorf("order = %q, %q; want NS 1100, NS 2200", locos[0].Series, locos[1].Series)
	}
}

func TestGetRecord(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1300", Category: "Elektrisch"})

	w := doRequest(t, router, http.MethodGet, "/records/1", "Bearer "+testAdminKey, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	loco := decodeRecord(t, w.Body.Bytes())
	if loco.ID != 1 || loco.Series != "NS 1300" {
		t.Errorf("record = %+v, want id 1 series NS 1300", loco)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/records/42", "Bearer "+testReadKey, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetRecord_NonIntegerID(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/records/abc", "Bearer "+testReadKey, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Create Tests ──────────────────────────────────────────────────

func TestCreateRecord(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"series":"NS 1300","category":"Elektrisch","manufacturer":"Alsthom","yearBuilt":1952,"maxSpeed":135}`
	w := doRequest(t, router, http.MethodPost, "/records", "Bearer "+testAdminKey, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	loco := decodeRecord(t, w.Body.Bytes())
	if loco.ID != 1 {
		t.Errorf("ID = %d, want 1", loco.ID)
	}
	if loco.TrackGauge != inventory.DefaultTrackGauge {
		t.Errorf("TrackGauge = %d, want default %d", loco.TrackGauge, inventory.DefaultTrackGauge)
	}
	if loco.YearBuilt != 1952 {
		t.Errorf("YearBuilt = %d, want 1952", loco.YearBuilt)
	}
}

func TestCreateRecord_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing series", body: `{"category":"Elektrisch"}`},
		{name: "missing category", body: `{"series":"NS 1300"}`},
		{name: "empty series", body: `{"series":"","category":"Elektrisch"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testServer(t)
			router := srv.buildRouter()

			w := doRequest(t, router, http.MethodPost, "/records", "Bearer "+testAdminKey, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreateRecord_InvalidJSON(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodPost, "/records", "Bearer "+testAdminKey, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateRecord_StringNumbersCoerced(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"series":"NS 1300","category":"Elektrisch","maxSpeed":"135","trackGauge":"1000","yearBuilt":"geen idee"}`
	w := doRequest(t, router, http.MethodPost, "/records", "Bearer "+testAdminKey, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	loco := decodeRecord(t, w.Body.Bytes())
	if loco.MaxSpeed != 135 {
		t.Errorf("MaxSpeed = %d, want 135", loco.MaxSpeed)
	}
	if loco.TrackGauge != 1000 {
		t.Errorf("TrackGauge = %d, want 1000", loco.TrackGauge)
	}
	if loco.YearBuilt != 0 {
		t.Errorf("YearBuilt = %d, want 0 (garbage coerces to zero)", loco.YearBuilt)
	}
}

// ─── Update Tests ──────────────────────────────────────────────────

func TestUpdateRecord_PartialPatch(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{
		Series:   "NS 2200",
		Category: "Diesel",
		MaxSpeed: inventory.FlexInt(130),
	})

	w := doRequest(t, router, http.MethodPut, "/records/1", "Bearer "+testAdminKey, `{"tractionCode":"D"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	loco := decodeRecord(t, w.Body.Bytes())
	if loco.TractionCode != "D" {
		t.Errorf("TractionCode = %q, want %q", loco.TractionCode, "D")
	}
	if loco.MaxSpeed != 130 {
		t.Errorf("MaxSpeed = %d, want 130 (absent fields untouched)", loco.MaxSpeed)
	}
}

func TestUpdateRecord_IDNotPatchable(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1300", Category: "Elektrisch"})

	w := doRequest(t, router, http.MethodPut, "/records/1", "Bearer "+testAdminKey, `{"id":99,"maxSpeed":140}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	loco := decodeRecord(t, w.Body.Bytes())
	if loco.ID != 1 {
		t.Errorf("ID = %d, want 1 (id must be immutable)", loco.ID)
	}

	// The record is still reachable under its original id.
	w = doRequest(t, router, http.MethodGet, "/records/1", "Bearer "+testReadKey, "")
	if w.Code != http.StatusOK {
		t.Errorf("GET /records/1 status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestUpdateRecord_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodPut, "/records/999", "Bearer "+testAdminKey, `{"series":"X"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d (update never upserts)", w.Code, http.StatusNotFound)
	}
}

func TestUpdateRecord_InvalidJSON(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1300", Category: "Elektrisch"})

	w := doRequest(t, router, http.MethodPut, "/records/1", "Bearer "+testAdminKey, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// ─── Delete Tests ──────────────────────────────────────────────────

func TestDeleteRecord(t *testing.T) {
	srv, repo := testServer(t)
	router := srv.buildRouter()
	repo.Add(inventory.NewLocomotive{Series: "NS 1300", Category: "Elektrisch"})

	w := doRequest(t, router, http.MethodDelete, "/records/1", "Bearer "+testAdminKey, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	loco := decodeRecord(t, w.Body.Bytes())
	if loco.Series != "NS 1300" {
		t.Errorf("removed.Series = %q, want %q", loco.Series, "NS 1300")
	}

	w = doRequest(t, router, http.MethodGet, "/records/1", "Bearer "+testReadKey, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteRecord_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodDelete, "/records/7", "Bearer "+testAdminKey, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID_Generated(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, http.MethodGet, "/healthz", "", "")

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestRequestID_ClientProvided(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-id-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-id-123")
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodOptions, "/records", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want origin echoed", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

// ─── End-to-end Scenario ───────────────────────────────────────────

func TestRecords_Scenario(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()
	admin := "Bearer " + testAdminKey

	// Create
	w := doRequest(t, router, http.MethodPost, "/records", admin, `{"series":"NS 1300","category":"Elektrisch"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d", w.Code, http.StatusCreated)
	}
	created := decodeRecord(t, w.Body.Bytes())
	if created.ID != 1 {
		t.Fatalf("created.ID = %d, want 1", created.ID)
	}

	// Read back
	w = doRequest(t, router, http.MethodGet, "/records/1", admin, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", w.Code, http.StatusOK)
	}

	// Patch
	w = doRequest(t, router, http.MethodPut, "/records/1", admin, `{"maxSpeed":140}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", w.Code, http.StatusOK)
	}
	if loco := decodeRecord(t, w.Body.Bytes()); loco.MaxSpeed != 140 {
		t.Errorf("MaxSpeed = %d, want 140", loco.MaxSpeed)
	}

	// Delete, then the id is gone
	w = doRequest(t, router, http.MethodDelete, "/records/1", admin, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want %d", w.Code, http.StatusOK)
	}
	w = doRequest(t, router, http.MethodGet, "/records/1", admin, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Updating a never-assigned id misses too
	w = doRequest(t, router, http.MethodPut, "/records/999", admin, `{"series":"X"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("PUT /records/999 status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
