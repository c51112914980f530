package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedHandler(apiKey string) http.Handler {
	return APIKeyAuth(apiKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// TestAPIKeyAuth covers the three header states and the disabled mode.
func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		want       int
	}{
		{"no key configured passes through", "", "", http.StatusOK},
		{"valid key", "secret", "secret", http.StatusOK},
		{"missing key", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "nope", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()
			protectedHandler(tt.configured).ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

// TestAuthOnMutationsOnly verifies reads stay open while mutations demand the
// key.
func TestAuthOnMutationsOnly(t *testing.T) {
	s, _ := testServer(t)
	srv := New(s.store, s.engine, s.backend, "secret", s.log)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/days", nil)
	if w.Code != http.StatusOK {
		t.Errorf("read without key: status = %d, want 200", w.Code)
	}

	w = doRequest(t, srv, http.MethodDelete, "/api/v1/days/2024-06-03", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("mutation without key: status = %d, want 401", w.Code)
	}
}

// TestCORSPreflight answers OPTIONS directly with the permissive headers.
func TestCORSPreflight(t *testing.T) {
	s, _ := testServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/days", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Allow-Headers not set")
	}
}
