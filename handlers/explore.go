package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"travelguide/session"
)

type CreateSessionRequest struct {
	PlayerID string `json:"player_id,omitempty"`
}

type CreateSessionResponse struct {
	SessionID  string `json:"session_id"`
	PlayerID   string `json:"player_id"`
	Score      int    `json:"score"`
	PersonaKey string `json:"persona_key,omitempty"`
	Model      string `json:"model,omitempty"`
}

// CreateSessionHandler starts a new game session seeded with the player's
// persisted score and preferences.
func (a *API) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.NewString()
	}

	score := 0
	personaKey := ""
	model := ""
	if a.prefs != nil {
		if prefs, err := a.prefs.Load(r.Context(), req.PlayerID); err == nil {
			score = prefs.Score
			personaKey = prefs.PersonaKey
			model = prefs.Model
		}
	}

	sess := a.sessions.Create(req.PlayerID, score)

	writeJSON(w, http.StatusOK, CreateSessionResponse{
		SessionID:  sess.ID,
		PlayerID:   req.PlayerID,
		Score:      score,
		PersonaKey: personaKey,
		Model:      model,
	})
}

type ExploreRequest struct {
	SessionID string `json:"session_id"`
	Place     string `json:"place"`
	Persona   string `json:"persona,omitempty"`
	Model     string `json:"model,omitempty"`
}

// ExploreHandler runs the full generation pipeline for a place and returns
// the guide, breadcrumb, map view, and score.
func (a *API) ExploreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExploreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Place == "" {
		http.Error(w, "place is required", http.StatusBadRequest)
		return
	}

	sess, ok := a.sessions.Get(req.SessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	persona, model := a.resolveVoice(r.Context(), sess.PlayerID, req.Persona, req.Model)

	result, err := a.sessions.Explore(r.Context(), sess, req.Place, persona, model)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type NavigateRequest struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
	Persona   string `json:"persona,omitempty"`
	Model     string `json:"model,omitempty"`
}

// NavigateHandler jumps back to a breadcrumb entry, discarding deeper history
func (a *API) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NavigateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok := a.sessions.Get(req.SessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	persona, model := a.resolveVoice(r.Context(), sess.PlayerID, req.Persona, req.Model)

	result, err := a.sessions.NavigateBreadcrumb(r.Context(), sess, req.Index, persona, model)
	if err != nil {
		if err == session.ErrBadIndex {
			http.Error(w, "Invalid breadcrumb index", http.StatusBadRequest)
			return
		}
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type HomeRequest struct {
	SessionID string `json:"session_id"`
}

// HomeHandler resets the session to the search screen
func (a *API) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req HomeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok := a.sessions.Get(req.SessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	a.sessions.GoHome(sess)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": sess.State().String(),
		"score": sess.Score(),
	})
}
