package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// createTestServer creates a server backed by the fake board driver.
func createTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := NewConfig()
	cfg.Driver = "fake"
	cfg.Solenoid.ControlPin = "GPIO17"
	cfg.Solenoid.PWMPin = "GPIO18"

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	t.Cleanup(server.Close)

	return server
}

func decodeResponse(t *testing.T, body string) jsonResponse {
	t.Helper()
	var resp jsonResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", body, err)
	}
	return resp
}

func TestGetPositionHandler(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/position", nil)
	server.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /position status = %d, want 200", w.Code)
	}
	resp := decodeResponse(t, w.Body.String())
	if resp.Status != "ok" {
		t.Errorf("status = %s, want ok", resp.Status)
	}

	data, _ := json.Marshal(resp.Data)
	var pos positionData
	if err := json.Unmarshal(data, &pos); err != nil {
		t.Fatalf("failed to decode position data: %v", err)
	}
	if pos.Position != 0 {
		t.Errorf("initial position = %d, want 0", pos.Position)
	}
}

func TestSetPositionHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantCode     int
		wantStatus   string
		wantPosition int
	}{
		{
			name:         "set position 1",
			body:         `{"position": 1}`,
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPosition: 1,
		},
		{
			name:         "set position 0",
			body:         `{"position": 0}`,
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPosition: 0,
		},
		{
			name:       "position out of range",
			body:       `{"position": 5}`,
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name:       "negative position",
			body:       `{"position": -1}`,
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name:       "missing position field",
			body:       `{}`,
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
		{
			name:       "malformed json",
			body:       `{position`,
			wantCode:   http.StatusBadRequest,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(t)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/position", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			server.Routes().ServeHTTP(w, r)

			if w.Code != tt.wantCode {
				t.Fatalf("POST /position status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			resp := decodeResponse(t, w.Body.String())
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", resp.Status, tt.wantStatus)
			}

			if tt.wantCode == http.StatusOK {
				if got := server.sol.GetPosition(); got != tt.wantPosition {
					t.Errorf("solenoid position = %d, want %d", got, tt.wantPosition)
				}
			}
		})
	}
}

func TestSetPositionFailureLeavesStateUnchanged(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/position", strings.NewReader(`{"position": 9}`))
	server.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := server.sol.GetPosition(); got != 0 {
		t.Errorf("position after rejected request = %d, want 0", got)
	}
}

func TestGetPositionsHandler(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/positions", nil)
	server.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /positions status = %d, want 200", w.Code)
	}
	resp := decodeResponse(t, w.Body.String())

	data, _ := json.Marshal(resp.Data)
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		t.Fatalf("failed to decode positions data: %v", err)
	}
	if counts["positions"] != 2 {
		t.Errorf("positions = %d, want 2", counts["positions"])
	}
}

func TestStatusHandler(t *testing.T) {
	server := createTestServer(t)

	// Flip the switch on so status reflects live state.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/position", strings.NewReader(`{"position": 1}`))
	server.Routes().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /position status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/status", nil)
	server.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /status status = %d, want 200", w.Code)
	}
	resp := decodeResponse(t, w.Body.String())

	data, _ := json.Marshal(resp.Data)
	var status statusData
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("failed to decode status data: %v", err)
	}
	if status.Position != 1 {
		t.Errorf("status position = %d, want 1", status.Position)
	}
	if status.Positions != 2 {
		t.Errorf("status positions = %d, want 2", status.Positions)
	}
	if status.Variant != "pwm" {
		t.Errorf("status variant = %s, want pwm", status.Variant)
	}
	if status.Driver != "fake" {
		t.Errorf("status driver = %s, want fake", status.Driver)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := createTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/position", nil)
	server.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /position status = %d, want 405", w.Code)
	}
}
