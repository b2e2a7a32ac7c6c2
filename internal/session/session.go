package session

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"recipe-finder/internal/fetch"
	"recipe-finder/internal/ingredients"
	"recipe-finder/internal/recipes"
	"recipe-finder/internal/shared/telemetry"
)

var (
	ErrFetchInProgress = errors.New("fetch already in progress")
	ErrSuperseded      = errors.New("fetch superseded")
	ErrClosed          = errors.New("session closed")
)

// Fetcher performs one fetch attempt for the given ingredients.
type Fetcher interface {
	FetchRecipes(ctx context.Context, list *ingredients.List) (recipes.ResultSet, error)
}

// State is a copy of the session state for rendering.
type State struct {
	Input       string
	Ingredients []ingredients.Ingredient
	Recipes     recipes.ResultSet
	Loading     bool
}

// Session is the state behind one home screen: the pending input, the ingredient
// list, the last result set and the in-flight fetch.
type Session struct {
	fetcher Fetcher

	mu      sync.Mutex
	input   string
	list    *ingredients.List
	results recipes.ResultSet
	loading bool
	closed  bool
	// token identifies the current fetch; a response is applied only if its token is current.
	token  uint64
	cancel context.CancelFunc
}

// New returns an empty session backed by fetcher.
func New(fetcher Fetcher) *Session {
	return &Session{
		fetcher: fetcher,
		list:    ingredients.NewList(),
		results: recipes.ResultSet{},
	}
}

// SetInput replaces the pending input, truncated to the maximum ingredient length.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = truncate(text, ingredients.MaxLength)
}

// Input returns the pending input.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SubmitInput adds the pending input to the list and clears it on success.
func (s *Session) SubmitInput() (ingredients.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, err := s.list.Add(s.input)
	if err != nil {
		return "", err
	}
	s.input = ""
	return ing, nil
}

// Add sets the input to raw and submits it.
func (s *Session) Add(raw string) (ingredients.Ingredient, error) {
	s.SetInput(raw)
	return s.SubmitInput()
}

// Remove drops an ingredient from the list. Absent ingredients are ignored.
func (s *Session) Remove(ingredient string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Remove(ingredient)
}

// Fetch runs one fetch attempt and, if it is still current when it completes,
// replaces the result set. On failure the previous results are kept.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loading {
		s.mu.Unlock()
		return ErrFetchInProgress
	}
	if s.list.Len() == 0 {
		s.mu.Unlock()
		return fetch.ErrNoIngredients
	}

	snapshot := s.list.Clone()
	s.token++
	token := s.token
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	s.mu.Unlock()

	got, err := s.fetcher.FetchRecipes(fetchCtx, snapshot)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		telemetry.Info("session.fetch.discarded", map[string]any{"token": token, "current": s.token})
		return ErrSuperseded
	}
	s.loading = false
	s.cancel = nil
	if err != nil {
		return err
	}
	s.results = got
	return nil
}

// Cancel supersedes the in-flight fetch, if any. Its response will be discarded.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
}

// Close ends the session. Any in-flight response is discarded and later fetches fail.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.closed = true
}

func (s *Session) supersedeLocked() {
	if !s.loading {
		return
	}
	s.token++
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Loading reports whether a fetch is outstanding.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make(recipes.ResultSet, len(s.results))
	copy(results, s.results)
	return State{
		Input:       s.input,
		Ingredients: s.list.Items(),
		Recipes:     results,
		Loading:     s.loading,
	}
}

func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}
