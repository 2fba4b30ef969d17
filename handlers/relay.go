package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"travelguide/middleware"
)

// Relay forwards completion requests from browser clients to the upstream
// service, injecting the server-held credential. The credential never reaches
// the caller; the relay is the only place besides the server's own completion
// client that sees it.
type Relay struct {
	UpstreamURL    string
	APIKey         string
	AllowedOrigins []string
	AppTitle       string
	Client         *http.Client
}

func NewRelay(upstreamURL, apiKey string, allowedOrigins []string, appTitle string) *Relay {
	return &Relay{
		UpstreamURL:    upstreamURL,
		APIKey:         apiKey,
		AllowedOrigins: allowedOrigins,
		AppTitle:       appTitle,
		Client:         &http.Client{Timeout: 120 * time.Second},
	}
}

// relayBody is validated before forwarding; unknown fields pass through untouched
type relayBody struct {
	Model    string          `json:"model"`
	Messages json.RawMessage `json:"messages"`
}

func (rel *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	origin := r.Header.Get("Origin")
	if !middleware.OriginAllowed(origin, rel.AllowedOrigins) {
		log.Warn().Str("origin", origin).Msg("relay blocked disallowed origin")
		http.Error(w, "Forbidden - invalid origin", http.StatusForbidden)
		return
	}

	if rel.APIKey == "" {
		log.Error().Msg("relay has no upstream credential configured")
		rel.writeJSON(w, origin, http.StatusInternalServerError,
			map[string]string{"error": "Server configuration error"})
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		rel.writeJSON(w, origin, http.StatusBadRequest,
			map[string]string{"error": "Could not read request body"})
		return
	}

	var body relayBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Model == "" || len(body.Messages) == 0 {
		rel.writeJSON(w, origin, http.StatusBadRequest,
			map[string]string{"error": "Missing required fields: model and messages"})
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, rel.UpstreamURL, bytes.NewReader(raw))
	if err != nil {
		rel.writeJSON(w, origin, http.StatusInternalServerError,
			map[string]string{"error": "Internal server error"})
		return
	}
	upstream.Header.Set("Authorization", "Bearer "+rel.APIKey)
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("HTTP-Referer", origin)
	if rel.AppTitle != "" {
		upstream.Header.Set("X-Title", rel.AppTitle)
	}

	resp, err := rel.Client.Do(upstream)
	if err != nil {
		log.Error().Err(err).Msg("relay upstream request failed")
		rel.writeJSON(w, origin, http.StatusBadGateway,
			map[string]string{"error": "Upstream request failed"})
		return
	}
	defer resp.Body.Close()

	// Mirror the upstream status and body with CORS scoped to the caller
	rel.corsHeaders(w, origin)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Err(err).Msg("relay response copy interrupted")
	}
}

func (rel *Relay) corsHeaders(w http.ResponseWriter, origin string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "86400")
}

func (rel *Relay) writeJSON(w http.ResponseWriter, origin string, status int, v interface{}) {
	rel.corsHeaders(w, origin)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
