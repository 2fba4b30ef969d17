package handlers

import (
	"net/http"
	"strconv"
)

// GetPreferencesHandler returns the player's preference set, including the
// recent-lookup list.
func (a *API) GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	prefs, err := a.prefs.Load(r.Context(), playerID)
	if err != nil {
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

type UpdatePreferencesRequest struct {
	PlayerID   string `json:"player_id"`
	PersonaKey string `json:"persona_key,omitempty"`
	Model      string `json:"model,omitempty"`
}

// UpdatePreferencesHandler writes the fields present in the request. Each
// field is an independent durable write, matching the storage contract.
func (a *API) UpdatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdatePreferencesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}

	if req.PersonaKey != "" {
		if err := a.prefs.SetPersonaKey(r.Context(), req.PlayerID, req.PersonaKey); err != nil {
			http.Error(w, "Failed to save persona selection", http.StatusInternalServerError)
			return
		}
	}
	if req.Model != "" {
		if err := a.prefs.SetModel(r.Context(), req.PlayerID, req.Model); err != nil {
			http.Error(w, "Failed to save model selection", http.StatusInternalServerError)
			return
		}
	}

	prefs, err := a.prefs.Load(r.Context(), req.PlayerID)
	if err != nil {
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// WhereIsHandler reverse-geocodes coordinates to a locality name
func (a *API) WhereIsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	locality, err := a.reverser.Reverse(r.Context(), lat, lon)
	if err != nil {
		http.Error(w, "Could not resolve coordinates", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": locality})
}
