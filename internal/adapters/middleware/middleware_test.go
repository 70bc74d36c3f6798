package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestLog_GeneratesRequestID(t *testing.T) {
	var seen string
	h := RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	if seen == "" {
		t.Fatal("expected a request id in the handler context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("expected header %q, got %q", seen, got)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected the handler status to pass through, got %d", rec.Code)
	}
}

func TestRequestLog_ReusesIncomingID(t *testing.T) {
	var seen string
	h := RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.Header.Set(RequestIDHeader, "desk-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "desk-42" {
		t.Errorf("expected incoming id 'desk-42', got %q", seen)
	}
}

func TestRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestID(req.Context()); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}

func TestMetrics_Instrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := m.Instrument("POST /rooms", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/rooms", nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("POST /rooms", "post", "409"))
	if got != 2 {
		t.Errorf("expected 2 counted requests, got %v", got)
	}

	count, err := testutil.GatherAndCount(reg, "hotel_http_request_duration_seconds")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one duration series, got %d", count)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{name: "disabled", method: http.MethodGet, origin: "https://desk.example.com", wantStatus: http.StatusOK},
		{
			name:       "allowed_origin",
			allowed:    []string{"https://desk.example.com"},
			method:     http.MethodGet,
			origin:     "https://desk.example.com",
			wantOrigin: "https://desk.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "other_origin",
			allowed:    []string{"https://desk.example.com"},
			method:     http.MethodGet,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard_echoes_origin",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight",
			allowed:    []string{"https://desk.example.com"},
			method:     http.MethodOptions,
			origin:     "https://desk.example.com",
			preflight:  true,
			wantOrigin: "https://desk.example.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/rooms", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected allow origin %q, got %q", tt.wantOrigin, got)
			}
			if tt.preflight && rec.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("expected allowed methods on preflight")
			}
		})
	}
}
