package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelguide/extract"
	"travelguide/models"
	"travelguide/prompts"
)

const personaMaxTokens = 1000

type PersonasResponse struct {
	Personas []models.Persona `json:"personas"`
}

// ListPersonasHandler returns built-in voices plus the player's custom ones
func (a *API) ListPersonasHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	personas := prompts.BuiltinPersonas()

	playerID := r.URL.Query().Get("player_id")
	if playerID != "" && a.prefs != nil {
		if prefs, err := a.prefs.Load(r.Context(), playerID); err == nil {
			for _, persona := range prefs.CustomPersonas {
				persona.Custom = true
				personas = append(personas, persona)
			}
		}
	}

	writeJSON(w, http.StatusOK, PersonasResponse{Personas: personas})
}

type CreatePersonaRequest struct {
	PlayerID    string `json:"player_id"`
	Description string `json:"description"`
	Model       string `json:"model,omitempty"`
}

// CreatePersonaHandler generates a custom voice from a free-form description
// and persists it for reuse. Generation goes through the same completion
// client as guides, so relay routing and the failure taxonomy apply here too.
func (a *API) CreatePersonaHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreatePersonaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	prompt := prompts.BuildPersonaPrompt(req.Description)
	raw, err := a.completer.Complete(r.Context(), req.Model, prompt, personaMaxTokens)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	region, err := extract.FirstJSONObject(raw)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	var persona models.Persona
	if err := json.Unmarshal([]byte(region), &persona); err != nil {
		writePipelineError(w, &extract.ParseError{Reason: "persona JSON does not match the expected shape: " + err.Error()})
		return
	}
	if strings.TrimSpace(persona.Name) == "" || strings.TrimSpace(persona.Prompt) == "" {
		writePipelineError(w, &extract.ParseError{Reason: "generated persona is missing a name or prompt"})
		return
	}

	persona.Key = "custom-" + uuid.NewString()[:8]
	persona.Custom = true

	if a.prefs != nil {
		if err := a.prefs.SaveCustomPersona(r.Context(), req.PlayerID, persona); err != nil {
			log.Warn().Err(err).Str("player", req.PlayerID).Msg("failed to persist custom persona")
		}
	}

	writeJSON(w, http.StatusOK, persona)
}
