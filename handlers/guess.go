package handlers

import (
	"math/rand"
	"net/http"

	"travelguide/session"
)

type GuessRequest struct {
	SessionID     string `json:"session_id"`
	CategoryIndex int    `json:"category_index"`
	ItemIndex     int    `json:"item_index"`
	GuessedIsLie  bool   `json:"guessed_is_lie"`
	Persona       string `json:"persona,omitempty"`
}

type GuessResponse struct {
	*session.GuessResult
	Feedback string `json:"persona_feedback,omitempty"`
}

// GuessHandler reveals one item and scores the guess. Revealing an already
// revealed item is a no-op that reports the current state.
func (a *API) GuessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GuessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, ok := a.sessions.Get(req.SessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	result, err := a.sessions.Guess(r.Context(), sess, req.CategoryIndex, req.ItemIndex, req.GuessedIsLie)
	if err != nil {
		switch err {
		case session.ErrNotReady:
			http.Error(w, "No place is currently displayed", http.StatusConflict)
		case session.ErrNoSuchItem:
			http.Error(w, "No such item", http.StatusBadRequest)
		default:
			writePipelineError(w, err)
		}
		return
	}

	response := GuessResponse{GuessResult: result}
	if !result.AlreadyRevealed {
		persona, _ := a.resolveVoice(r.Context(), sess.PlayerID, req.Persona, "")
		if len(persona.Feedback) > 0 {
			response.Feedback = persona.Feedback[rand.Intn(len(persona.Feedback))]
		}
	}

	writeJSON(w, http.StatusOK, response)
}
