package models

import (
	"strings"
	"time"
)

// MaxRecentLookups bounds the persisted recent-exploration list
const MaxRecentLookups = 10

// RecentLookup records one explored place in the recent list
type RecentLookup struct {
	Name      string       `json:"name" bson:"name"`
	Type      LocationType `json:"type,omitempty" bson:"type,omitempty"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
}

// PreferenceSet is the only cross-session state. Each field is read and
// written independently; there are no cross-key invariants to protect.
type PreferenceSet struct {
	PlayerID       string             `json:"player_id" bson:"_id"`
	Score          int                `json:"score" bson:"score"`
	PersonaKey     string             `json:"persona_key,omitempty" bson:"persona_key,omitempty"`
	Model          string             `json:"model,omitempty" bson:"model,omitempty"`
	RecentLookups  []RecentLookup     `json:"recent_lookups,omitempty" bson:"recent_lookups,omitempty"`
	CustomPersonas map[string]Persona `json:"custom_personas,omitempty" bson:"custom_personas,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// PushRecent prepends entry to the recent list, dropping any earlier entry
// with the same name (case-insensitive) and capping the result at
// MaxRecentLookups, newest first.
func PushRecent(list []RecentLookup, entry RecentLookup) []RecentLookup {
	out := make([]RecentLookup, 0, len(list)+1)
	out = append(out, entry)
	for _, existing := range list {
		if strings.EqualFold(existing.Name, entry.Name) {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > MaxRecentLookups {
		out = out[:MaxRecentLookups]
	}
	return out
}
