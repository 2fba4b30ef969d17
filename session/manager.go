package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"travelguide/extract"
	"travelguide/mapview"
	"travelguide/models"
	"travelguide/prompts"
)

// Scoring scheme: one point per guess, with bonuses for sweeping a whole
// category or page. Negative totals are allowed.
const (
	guessDelta = 1
	trioBonus  = 5
	pageBonus  = 10

	completionMaxTokens = 4000
	maxMentionedPlaces  = 10
)

var (
	// ErrNotReady means a guess or similar action arrived outside the Ready state
	ErrNotReady = errors.New("no place is currently displayed")
	// ErrNoSuchItem means the guess referenced an item outside the displayed content
	ErrNoSuchItem = errors.New("no such item")
	// ErrBadIndex means a breadcrumb jump referenced a history entry that does not exist
	ErrBadIndex = errors.New("breadcrumb index out of range")
	// ErrSuperseded means a newer explore started before this one finished;
	// its result was dropped.
	ErrSuperseded = errors.New("superseded by a newer exploration")
)

// Completer sends one prompt to the completion service
type Completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Geocoder resolves place names, best-effort
type Geocoder interface {
	Search(ctx context.Context, name string) (*models.Coordinates, error)
	Batch(ctx context.Context, names []string) []models.MentionedPlace
}

// PreferenceStore receives the durable side effects of game progress
type PreferenceStore interface {
	SaveScore(ctx context.Context, playerID string, score int) error
	RecordLookup(ctx context.Context, playerID, place string, locType models.LocationType) error
}

// Manager owns all live sessions and runs the explore pipeline: prompt
// construction, completion, extraction, linkification, geocoding, map view.
type Manager struct {
	registry  *registry
	completer Completer
	geocoder  Geocoder
	prefs     PreferenceStore
}

func NewManager(completer Completer, geocoder Geocoder, prefs PreferenceStore) *Manager {
	return &Manager{
		registry:  newRegistry(),
		completer: completer,
		geocoder:  geocoder,
		prefs:     prefs,
	}
}

// Create registers a new session seeded with the player's persisted score
func (m *Manager) Create(playerID string, score int) *Session {
	s := newSession(playerID, score)
	m.registry.add(s)
	return s
}

// Get looks up a live session
func (m *Manager) Get(id string) (*Session, bool) {
	return m.registry.get(id)
}

// Remove drops a session from the registry
func (m *Manager) Remove(id string) {
	m.registry.remove(id)
}

// ExploreResult is everything the presentation layer needs after a navigation
type ExploreResult struct {
	Place      *models.PlaceContent `json:"place"`
	MapView    *mapview.View        `json:"map_view,omitempty"`
	Breadcrumb []string             `json:"breadcrumb"`
	Score      int                  `json:"score"`
}

// Explore navigates the session to a place. The name is pushed onto the
// breadcrumb (context stripped) before the pipeline runs, so a failed attempt
// still shows up in the trail. A newer explore cancels this one; the loser's
// result is discarded rather than applied late.
func (m *Manager) Explore(ctx context.Context, s *Session, place string, persona models.Persona, model string) (*ExploreResult, error) {
	name := extract.StripContext(place)
	if name == "" {
		return nil, ErrNoSuchItem
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	pipelineCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	generation := s.generation
	s.state = StateLoading
	s.history = append(s.history, name)
	trail := append([]string(nil), s.history...)
	s.mu.Unlock()

	content, view, err := m.runPipeline(pipelineCtx, place, name, persona, model, trail)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil, ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.state = StateError
		s.lastError = err.Error()
		log.Warn().Err(err).Str("session", s.ID).Str("place", name).Msg("explore failed")
		return nil, err
	}

	s.state = StateReady
	s.lastError = ""
	s.content = content
	s.mapView = view
	s.guesses = make(map[guessKey]bool)
	s.trioAwarded = make(map[int]bool)
	s.pageAwarded = false

	if m.prefs != nil {
		if err := m.prefs.RecordLookup(context.WithoutCancel(ctx), s.PlayerID, name, content.Type); err != nil {
			log.Warn().Err(err).Str("player", s.PlayerID).Msg("failed to record recent lookup")
		}
	}

	return &ExploreResult{
		Place:      content,
		MapView:    view,
		Breadcrumb: append([]string(nil), s.history...),
		Score:      s.score,
	}, nil
}

func (m *Manager) runPipeline(ctx context.Context, place, name string, persona models.Persona, model string, trail []string) (*models.PlaceContent, *mapview.View, error) {
	locType := prompts.ClassifyLocation(name)
	categories := prompts.CategoriesFor(locType)
	prompt := prompts.BuildGuidePrompt(place, persona, locType, categories)

	raw, err := m.completer.Complete(ctx, model, prompt, completionMaxTokens)
	if err != nil {
		return nil, nil, err
	}

	content, err := extract.Extract(raw)
	if err != nil {
		return nil, nil, err
	}
	if content.Type == "" {
		content.Type = locType
	}

	// Generators sometimes omit coordinates; geocode the place itself so the
	// map still renders
	if content.Coordinates == nil && m.geocoder != nil {
		coords, err := m.geocoder.Search(ctx, name)
		if err != nil {
			log.Debug().Err(err).Str("place", name).Msg("coordinate fallback lookup failed")
		} else {
			content.Coordinates = coords
		}
	}

	// Candidate names are collected before linkification rewrites the markup
	mentioned := extract.MentionedPlaces(content, maxMentionedPlaces)
	extract.LinkifyItems(content, trail)

	var places []models.MentionedPlace
	if m.geocoder != nil && len(mentioned) > 0 {
		places = m.geocoder.Batch(ctx, mentioned)
	}

	return content, mapview.Compute(content, places), nil
}

// NavigateBreadcrumb truncates the trail to index entries and re-explores the
// entry that was there, so the trail ends up index+1 long with the target last.
func (m *Manager) NavigateBreadcrumb(ctx context.Context, s *Session, index int, persona models.Persona, model string) (*ExploreResult, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.history) {
		s.mu.Unlock()
		return nil, ErrBadIndex
	}
	target := s.history[index]
	s.history = s.history[:index]
	s.mu.Unlock()

	return m.Explore(ctx, s, target, persona, model)
}

// GoHome resets the session to Idle and clears the trail. Any in-flight
// exploration is cancelled and orphaned.
func (m *Manager) GoHome(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.state = StateIdle
	s.content = nil
	s.mapView = nil
	s.history = nil
	s.lastError = ""
	s.guesses = make(map[guessKey]bool)
	s.trioAwarded = make(map[int]bool)
	s.pageAwarded = false
}

// GuessResult reports the outcome of one reveal
type GuessResult struct {
	AlreadyRevealed bool `json:"already_revealed,omitempty"`
	Correct         bool `json:"correct"`
	IsLie           bool `json:"is_lie"`
	Delta           int  `json:"delta"`
	TrioBonus       int  `json:"trio_bonus,omitempty"`
	PageBonus       int  `json:"page_bonus,omitempty"`
	Score           int  `json:"score"`
}

// Guess reveals one item. Valid only in Ready; repeat guesses on a revealed
// item are no-ops that report the current score. Bonuses are awarded at most
// once per category and once per page.
func (m *Manager) Guess(ctx context.Context, s *Session, category, item int, guessedIsLie bool) (*GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.content == nil {
		return nil, ErrNotReady
	}
	if category < 0 || category >= len(s.content.Categories) {
		return nil, ErrNoSuchItem
	}
	items := s.content.Categories[category].Items
	if item < 0 || item >= len(items) {
		return nil, ErrNoSuchItem
	}

	key := guessKey{category: category, item: item}
	actual := items[item].IsLie

	if recorded, revealed := s.guesses[key]; revealed {
		return &GuessResult{
			AlreadyRevealed: true,
			Correct:         recorded == actual,
			IsLie:           actual,
			Score:           s.score,
		}, nil
	}

	s.guesses[key] = guessedIsLie
	correct := guessedIsLie == actual

	result := &GuessResult{Correct: correct, IsLie: actual}
	if correct {
		result.Delta = guessDelta
	} else {
		result.Delta = -guessDelta
	}
	s.score += result.Delta

	if !s.trioAwarded[category] && s.categoryRevealed(category) {
		s.trioAwarded[category] = true
		result.TrioBonus = s.sweepBonus(s.categoryGuessKeys(category), trioBonus)
		s.score += result.TrioBonus
	}

	if !s.pageAwarded && s.pageRevealed() {
		s.pageAwarded = true
		result.PageBonus = s.sweepBonus(s.allGuessKeys(), pageBonus)
		s.score += result.PageBonus
	}

	result.Score = s.score

	if m.prefs != nil {
		if err := m.prefs.SaveScore(context.WithoutCancel(ctx), s.PlayerID, s.score); err != nil {
			log.Warn().Err(err).Str("player", s.PlayerID).Msg("failed to persist score")
		}
	}

	return result, nil
}

func (s *Session) categoryRevealed(category int) bool {
	for i := range s.content.Categories[category].Items {
		if _, ok := s.guesses[guessKey{category: category, item: i}]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) pageRevealed() bool {
	for c := range s.content.Categories {
		if !s.categoryRevealed(c) {
			return false
		}
	}
	return true
}

func (s *Session) categoryGuessKeys(category int) []guessKey {
	keys := make([]guessKey, 0, len(s.content.Categories[category].Items))
	for i := range s.content.Categories[category].Items {
		keys = append(keys, guessKey{category: category, item: i})
	}
	return keys
}

func (s *Session) allGuessKeys() []guessKey {
	var keys []guessKey
	for c := range s.content.Categories {
		for i := range s.content.Categories[c].Items {
			keys = append(keys, guessKey{category: c, item: i})
		}
	}
	return keys
}

// sweepBonus returns +bonus when every listed guess was correct, -bonus when
// every one was wrong, and 0 for a mixed record.
func (s *Session) sweepBonus(keys []guessKey, bonus int) int {
	allCorrect := true
	allWrong := true
	for _, key := range keys {
		guessed := s.guesses[key]
		if guessed == s.content.Categories[key.category].Items[key.item].IsLie {
			allWrong = false
		} else {
			allCorrect = false
		}
	}
	switch {
	case allCorrect:
		return bonus
	case allWrong:
		return -bonus
	default:
		return 0
	}
}
