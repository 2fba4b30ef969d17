package handlers

import "net/http"

// Starter chips shown before the first exploration
var suggestions = []string{
	"Paris",
	"Kyoto",
	"Machu Picchu",
	"The Louvre",
	"Serengeti National Park",
	"Petra",
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestionsHandler returns the static starter-place list
func (a *API) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}
