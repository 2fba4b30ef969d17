package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"travelguide/mapview"
	"travelguide/models"
)

// State is the game session lifecycle
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

type guessKey struct {
	category int
	item     int
}

// Session owns the currently displayed place, the navigation history, the
// per-item guess state, and the running score. Guess and bonus state is
// discarded and rebuilt on every successful navigation; history and score
// survive failures.
type Session struct {
	ID       string
	PlayerID string

	mu          sync.Mutex
	state       State
	content     *models.PlaceContent
	mapView     *mapview.View
	history     []string
	guesses     map[guessKey]bool
	trioAwarded map[int]bool
	pageAwarded bool
	score       int
	lastError   string

	// generation plus cancel implement cancellation for in-flight explores:
	// a newer explore cancels the older pipeline and its result is dropped
	// even if the network call still completes.
	generation uint64
	cancel     context.CancelFunc
}

func newSession(playerID string, score int) *Session {
	return &Session{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		state:       StateIdle,
		guesses:     make(map[guessKey]bool),
		trioAwarded: make(map[int]bool),
		score:       score,
	}
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the running score
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Breadcrumb returns a copy of the navigation history, oldest first
func (s *Session) Breadcrumb() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Content returns the displayed place. After a failed explore the previous
// content is still here: the old view persists under the error notification.
func (s *Session) Content() *models.PlaceContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// LastError returns the surfaced message from the most recent failed explore
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
