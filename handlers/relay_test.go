package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relayOrigin = "https://travel.example.com"

func newTestRelay(upstreamURL string) *Relay {
	return NewRelay(upstreamURL, "sk-secret", []string{relayOrigin}, "Travel Guide")
}

func TestRelayForwardsWithCredential(t *testing.T) {
	var gotAuth, gotReferer, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer upstream.Close()

	rel := newTestRelay(upstream.URL)
	body := `{"model":"anthropic/claude-3.5-sonnet","messages":[{"role":"user","content":"hi"}],"max_tokens":100}`
	req := httptest.NewRequest(http.MethodPost, "/relay/completions", strings.NewReader(body))
	req.Header.Set("Origin", relayOrigin)
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer sk-secret", gotAuth)
	assert.Equal(t, relayOrigin, gotReferer)
	// The body passes through verbatim, extra fields included
	assert.JSONEq(t, body, gotBody)
	assert.Equal(t, relayOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRelayMirrorsUpstreamErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer upstream.Close()

	rel := newTestRelay(upstream.URL)
	req := httptest.NewRequest(http.MethodPost, "/relay/completions",
		strings.NewReader(`{"model":"m","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Origin", relayOrigin)
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "slow down")
}

func TestRelayPreflight(t *testing.T) {
	rel := newTestRelay("http://unused")
	req := httptest.NewRequest(http.MethodOptions, "/relay/completions", nil)
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRelayRejectsNonPost(t *testing.T) {
	rel := newTestRelay("http://unused")
	req := httptest.NewRequest(http.MethodGet, "/relay/completions", nil)
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRelayRejectsDisallowedOrigin(t *testing.T) {
	rel := newTestRelay("http://unused")
	req := httptest.NewRequest(http.MethodPost, "/relay/completions",
		strings.NewReader(`{"model":"m","messages":[]}`))
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRelayRejectsMissingFields(t *testing.T) {
	rel := newTestRelay("http://unused")

	for _, body := range []string{
		`{"messages":[{"role":"user","content":"hi"}]}`,
		`{"model":"m"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/relay/completions", strings.NewReader(body))
		req.Header.Set("Origin", relayOrigin)
		rec := httptest.NewRecorder()

		rel.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestRelayRequiresConfiguredCredential(t *testing.T) {
	rel := NewRelay("http://unused", "", []string{relayOrigin}, "")
	req := httptest.NewRequest(http.MethodPost, "/relay/completions",
		strings.NewReader(`{"model":"m","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Origin", relayOrigin)
	rec := httptest.NewRecorder()

	rel.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// The credential problem is reported without leaking configuration details
	assert.Contains(t, rec.Body.String(), "Server configuration error")
}
