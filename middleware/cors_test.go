package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"https://travel.example.com", "http://localhost"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://travel.example.com", true},
		{"http://localhost:3000", true},
		{"https://evil.example.net", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := OriginAllowed(tt.origin, allowed); got != tt.want {
			t.Errorf("OriginAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestWithCORSEchoesAllowedOrigin(t *testing.T) {
	handler := WithCORS([]string{"https://travel.example.com"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://travel.example.com")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://travel.example.com" {
		t.Errorf("allowed origin not echoed, got %q", got)
	}
}

func TestWithCORSPreflight(t *testing.T) {
	called := false
	handler := WithCORS(nil, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the wrapped handler")
	}
}
