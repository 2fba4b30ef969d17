package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelguide/models"
	"travelguide/prompts"
)

const preferencesCollection = "preferences"

// PreferenceStore persists the per-player preference document: score,
// selected persona and model, the recent-lookup list, and custom personas.
// Each field is updated independently; there is no cross-field transaction.
type PreferenceStore struct {
	col *mongo.Collection
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{col: GetCollection(preferencesCollection)}
}

// Load returns the player's preference set, or a fresh default one when the
// player has never saved anything.
func (s *PreferenceStore) Load(ctx context.Context, playerID string) (*models.PreferenceSet, error) {
	var prefs models.PreferenceSet
	err := s.col.FindOne(ctx, bson.M{"_id": playerID}).Decode(&prefs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.PreferenceSet{
			PlayerID:   playerID,
			PersonaKey: prompts.DefaultPersonaKey,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if prefs.PersonaKey == "" {
		prefs.PersonaKey = prompts.DefaultPersonaKey
	}
	return &prefs, nil
}

// SaveScore writes the running score
func (s *PreferenceStore) SaveScore(ctx context.Context, playerID string, score int) error {
	return s.setFields(ctx, playerID, bson.M{"score": score})
}

// SetPersonaKey writes the selected persona
func (s *PreferenceStore) SetPersonaKey(ctx context.Context, playerID, key string) error {
	return s.setFields(ctx, playerID, bson.M{"persona_key": key})
}

// SetModel writes the selected model identifier
func (s *PreferenceStore) SetModel(ctx context.Context, playerID, model string) error {
	return s.setFields(ctx, playerID, bson.M{"model": model})
}

// RecordLookup pushes a place onto the recent list, newest first,
// de-duplicated by name and capped at models.MaxRecentLookups.
func (s *PreferenceStore) RecordLookup(ctx context.Context, playerID, place string, locType models.LocationType) error {
	prefs, err := s.Load(ctx, playerID)
	if err != nil {
		return err
	}
	recent := models.PushRecent(prefs.RecentLookups, models.RecentLookup{
		Name:      place,
		Type:      locType,
		Timestamp: time.Now(),
	})
	return s.setFields(ctx, playerID, bson.M{"recent_lookups": recent})
}

// SaveCustomPersona stores a generated persona under its key
func (s *PreferenceStore) SaveCustomPersona(ctx context.Context, playerID string, persona models.Persona) error {
	return s.setFields(ctx, playerID, bson.M{"custom_personas." + persona.Key: persona})
}

func (s *PreferenceStore) setFields(ctx context.Context, playerID string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": playerID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	return err
}
