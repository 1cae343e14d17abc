package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/zsketch/zsketch/pkg/pipeline"
	"github.com/zsketch/zsketch/pkg/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{
		Runner: pipeline.NewRunner(nil, logger),
		Store:  store.NewMemoryStore(),
		Logger: logger,
	})
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRenderGetSchematic(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/v1/schematic?expression=R0-p(R1,C1)", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestRenderGetInvalidExpression(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/v1/schematic?expression=R0-p(R1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Error.Code != "MALFORMED_GROUP" {
		t.Errorf("error code = %q, want MALFORMED_GROUP", resp.Error.Code)
	}
}

func TestRenderGetMissingExpression(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/v1/schematic", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderPostSchematic(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/v1/schematic", pipeline.Options{
		Expression: "R0-X9-C1",
		Formats:    []string{"svg", "json"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RunID     string            `json:"run_id"`
		Kind      string            `json:"kind"`
		Warnings  []string          `json:"warnings"`
		Artifacts map[string][]byte `json:"artifacts"`
	}
	decodeJSON(t, rec, &resp)

	if resp.RunID == "" {
		t.Error("run_id empty")
	}
	if resp.Kind != "schematic" {
		t.Errorf("kind = %q", resp.Kind)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "X9") {
		t.Errorf("warnings = %v, want one X9 warning", resp.Warnings)
	}
	if !strings.Contains(string(resp.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
	if len(resp.Artifacts["json"]) == 0 {
		t.Error("json artifact missing")
	}
}

func TestRenderPostBadBody(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/bode", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCircuitCRUD(t *testing.T) {
	s := testServer(t)

	// Create.
	rec := do(t, s, http.MethodPost, "/v1/circuits", map[string]interface{}{
		"title":      "Randles",
		"expression": "R0-p(R1,C1)",
		"parameters": []float64{100, 250, 1e-6},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created store.Circuit
	decodeJSON(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created circuit has no ID")
	}
	if created.Sweep != store.DefaultSweep {
		t.Errorf("sweep = %+v, want defaults", created.Sweep)
	}

	// Fetch.
	rec = do(t, s, http.MethodGet, "/v1/circuits/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched store.Circuit
	decodeJSON(t, rec, &fetched)
	if fetched.Expression != "R0-p(R1,C1)" {
		t.Errorf("expression = %q", fetched.Expression)
	}

	// Update.
	rec = do(t, s, http.MethodPut, "/v1/circuits/"+created.ID, map[string]interface{}{
		"title":      "Randles v2",
		"expression": "R0-p(R1,C1)-W1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated store.Circuit
	decodeJSON(t, rec, &updated)
	if updated.Title != "Randles v2" || updated.Expression != "R0-p(R1,C1)-W1" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	// List.
	rec = do(t, s, http.MethodGet, "/v1/circuits", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Circuits []store.Circuit `json:"circuits"`
	}
	decodeJSON(t, rec, &list)
	if len(list.Circuits) != 1 {
		t.Errorf("list = %d circuits, want 1", len(list.Circuits))
	}

	// Delete.
	rec = do(t, s, http.MethodDelete, "/v1/circuits/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/v1/circuits/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", rec.Code)
	}
}

func TestCreateCircuitRejectsInvalid(t *testing.T) {
	rec := do(t, testServer(t), http.MethodPost, "/v1/circuits", map[string]interface{}{
		"expression": "R0-p(R1,p(R2,C2))",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetCircuitNotFound(t *testing.T) {
	rec := do(t, testServer(t), http.MethodGet, "/v1/circuits/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Error.Code != "CIRCUIT_NOT_FOUND" {
		t.Errorf("error code = %q, want CIRCUIT_NOT_FOUND", resp.Error.Code)
	}
}
