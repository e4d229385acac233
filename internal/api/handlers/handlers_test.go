package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kkrishnan90/mmt-live-api/internal/audit"
)

func seededSink(t *testing.T, n int) *audit.Sink {
	t.Helper()
	sink := audit.NewSink(50)
	for i := 0; i < n; i++ {
		sink.Append(audit.Record{Operation: "get_account_details", Status: "SUCCESS"})
	}
	return sink
}

func TestGetLogs(t *testing.T) {
	tests := []struct {
		name       string
		seeded     int
		query      string
		wantStatus int
		wantCount  int
	}{
		{"all records", 4, "", http.StatusOK, 4},
		{"limited", 4, "?limit=2", http.StatusOK, 2},
		{"limit zero", 4, "?limit=0", http.StatusOK, 0},
		{"empty sink", 0, "", http.StatusOK, 0},
		{"bad limit", 4, "?limit=abc", http.StatusBadRequest, -1},
		{"negative limit", 4, "?limit=-1", http.StatusBadRequest, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLogsHandler(seededSink(t, tt.seeded), zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/api/logs"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.GetLogs(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCount < 0 {
				return
			}
			var records []audit.Record
			if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if len(records) != tt.wantCount {
				t.Errorf("returned %d records, want %d", len(records), tt.wantCount)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler("1.0.0")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "1.0.0" {
		t.Errorf("body = %v, want status ok and version 1.0.0", body)
	}
}
