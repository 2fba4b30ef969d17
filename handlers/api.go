package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"travelguide/extract"
	"travelguide/llm"
	"travelguide/models"
	"travelguide/prompts"
	"travelguide/session"
)

// PreferenceBackend is the durable preference surface the handlers need
type PreferenceBackend interface {
	Load(ctx context.Context, playerID string) (*models.PreferenceSet, error)
	SetPersonaKey(ctx context.Context, playerID, key string) error
	SetModel(ctx context.Context, playerID, model string) error
	SaveCustomPersona(ctx context.Context, playerID string, persona models.Persona) error
}

// Reverser resolves coordinates to a locality name
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// API wires the game manager, preference store, and completion client into
// HTTP handlers.
type API struct {
	sessions  *session.Manager
	prefs     PreferenceBackend
	completer session.Completer
	reverser  Reverser
}

func NewAPI(sessions *session.Manager, prefs PreferenceBackend, completer session.Completer, reverser Reverser) *API {
	return &API{sessions: sessions, prefs: prefs, completer: completer, reverser: reverser}
}

// errorResponse is the uniform failure payload: a machine-readable kind plus
// a hint the UI can show as a notification.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Hint  string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message, hint string) {
	writeJSON(w, status, errorResponse{Error: message, Kind: kind, Hint: hint})
}

// writePipelineError maps an explore/guess pipeline failure onto the error
// taxonomy with a category-specific hint.
func writePipelineError(w http.ResponseWriter, err error) {
	var (
		authErr      *llm.AuthError
		rateErr      *llm.RateLimitError
		quotaErr     *llm.QuotaError
		parseErr     *extract.ParseError
		transportErr *llm.TransportError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, "auth", err.Error(),
			"Your API credential was rejected. Update it and try again.")
	case errors.As(err, &rateErr):
		writeError(w, http.StatusTooManyRequests, "rate_limit", err.Error(),
			"The completion service is throttling requests. Wait a moment before retrying.")
	case errors.As(err, &quotaErr):
		writeError(w, http.StatusPaymentRequired, "quota", err.Error(),
			"Your account balance looks insufficient. Check it before retrying.")
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadGateway, "parse", err.Error(),
			"The generated guide could not be read. Try a different search term.")
	case errors.Is(err, llm.ErrTokenBudget):
		writeError(w, http.StatusBadRequest, "transport", err.Error(),
			"The request was too large for the configured token budget.")
	case errors.Is(err, session.ErrSuperseded):
		writeError(w, http.StatusConflict, "transport", err.Error(),
			"A newer exploration replaced this one.")
	case errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, "transport", err.Error(),
			"Could not reach the content service. Please try again.")
	default:
		writeError(w, http.StatusBadGateway, "transport", err.Error(),
			"Something went wrong generating the guide. Please try again.")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// resolveVoice picks the persona and model for a request, falling back to the
// player's saved preferences when the request leaves them blank.
func (a *API) resolveVoice(ctx context.Context, playerID, personaKey, model string) (models.Persona, string) {
	var prefs *models.PreferenceSet
	if a.prefs != nil {
		prefs, _ = a.prefs.Load(ctx, playerID)
	}

	var custom map[string]models.Persona
	if prefs != nil {
		custom = prefs.CustomPersonas
		if personaKey == "" {
			personaKey = prefs.PersonaKey
		}
		if model == "" {
			model = prefs.Model
		}
	}

	return prompts.ResolvePersona(personaKey, custom), model
}
