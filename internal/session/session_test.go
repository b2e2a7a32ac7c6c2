package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"recipe-finder/internal/fetch"
	"recipe-finder/internal/ingredients"
	"recipe-finder/internal/recipes"
)

type result struct {
	recipes recipes.ResultSet
	err     error
}

// stubFetcher returns queued results. When block is set it waits for release
// and ignores context cancellation, like a response that still resolves.
type stubFetcher struct {
	mu      sync.Mutex
	results []result
	calls   int
	lastArg []string
	started chan struct{}
	release chan struct{}
}

func (f *stubFetcher) FetchRecipes(ctx context.Context, list *ingredients.List) (recipes.ResultSet, error) {
	f.mu.Lock()
	f.calls++
	f.lastArg = list.Strings()
	var r result
	if len(f.results) > 0 {
		r = f.results[0]
		f.results = f.results[1:]
	}
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return r.recipes, r.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func soup() recipes.ResultSet {
	return recipes.ResultSet{{Name: "Soup", Instructions: []string{"Boil"}}}
}

func TestSubmitInputClearsBufferOnSuccess(t *testing.T) {
	s := New(&stubFetcher{})
	s.SetInput("  Chicken ")
	ing, err := s.SubmitInput()
	if err != nil {
		t.Fatalf("SubmitInput: %v", err)
	}
	if ing != "chicken" {
		t.Fatalf("unexpected ingredient %q", ing)
	}
	if s.Input() != "" {
		t.Fatalf("expected input cleared, got %q", s.Input())
	}

	s.SetInput("chicken")
	_, err = s.SubmitInput()
	if !errors.Is(err, ingredients.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
	if s.Input() != "chicken" {
		t.Fatalf("input must be kept on failure, got %q", s.Input())
	}
	if n := NoticeFor(err); n.Title != "Duplicate Ingredient" {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestSetInputTruncates(t *testing.T) {
	s := New(&stubFetcher{})
	s.SetInput(strings.Repeat("x", 45))
	if got := len(s.Input()); got != ingredients.MaxLength {
		t.Fatalf("expected input truncated to %d, got %d", ingredients.MaxLength, got)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := New(&stubFetcher{})
	if _, err := s.Add("egg"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Remove("milk")
	if got := s.Snapshot().Ingredients; len(got) != 1 || got[0] != "egg" {
		t.Fatalf("unexpected ingredients %v", got)
	}
	s.Remove("egg")
	if got := s.Snapshot().Ingredients; len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestFetchEmptyListSkipsFetcher(t *testing.T) {
	f := &stubFetcher{}
	s := New(f)
	err := s.Fetch(context.Background())
	if !errors.Is(err, fetch.ErrNoIngredients) {
		t.Fatalf("expected ErrNoIngredients, got %v", err)
	}
	if f.callCount() != 0 {
		t.Fatalf("fetcher must not be called")
	}
	if n := NoticeFor(err); n.Title != "No Ingredients" {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestFetchReplacesResultsAndKeepsThemOnFailure(t *testing.T) {
	f := &stubFetcher{results: []result{
		{recipes: soup()},
		{err: &fetch.ApplicationError{Message: "no matches"}},
	}}
	s := New(f)
	if _, err := s.Add("water"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if got := s.Snapshot().Recipes; len(got) != 1 || got[0].Name != "Soup" {
		t.Fatalf("unexpected recipes %+v", got)
	}

	err := s.Fetch(context.Background())
	var appErr *fetch.ApplicationError
	if !errors.As(err, &appErr) || appErr.Message != "no matches" {
		t.Fatalf("expected ApplicationError, got %v", err)
	}
	if got := s.Snapshot().Recipes; len(got) != 1 || got[0].Name != "Soup" {
		t.Fatalf("previous results must be kept, got %+v", got)
	}
	if s.Loading() {
		t.Fatalf("loading must be cleared after failure")
	}
	if n := NoticeFor(err); n.Title != "Error" || n.Message != "Failed to get recipes: no matches" {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestFetchRejectsReentry(t *testing.T) {
	f := &stubFetcher{
		results: []result{{recipes: soup()}},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(f)
	_, _ = s.Add("rice")

	done := make(chan error, 1)
	go func() { done <- s.Fetch(context.Background()) }()
	<-f.started

	if !s.Loading() {
		t.Fatalf("expected loading while fetch is outstanding")
	}
	if err := s.Fetch(context.Background()); !errors.Is(err, ErrFetchInProgress) {
		t.Fatalf("expected ErrFetchInProgress, got %v", err)
	}

	close(f.release)
	if err := <-done; err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if f.callCount() != 1 {
		t.Fatalf("expected single fetcher call, got %d", f.callCount())
	}
}

func TestCanceledFetchResponseIsDiscarded(t *testing.T) {
	f := &stubFetcher{
		results: []result{{recipes: soup()}, {recipes: recipes.ResultSet{{Name: "Salad"}}}},
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	s := New(f)
	_, _ = s.Add("lettuce")

	first := make(chan error, 1)
	go func() { first <- s.Fetch(context.Background()) }()
	<-f.started

	s.Cancel()
	if s.Loading() {
		t.Fatalf("cancel must clear loading")
	}

	second := make(chan error, 1)
	go func() { second <- s.Fetch(context.Background()) }()
	<-f.started

	close(f.release)
	if err := <-first; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded for first fetch, got %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	got := s.Snapshot().Recipes
	if len(got) != 1 || got[0].Name != "Salad" {
		t.Fatalf("expected only the current fetch to apply, got %+v", got)
	}
	if n := NoticeFor(ErrSuperseded); !n.IsZero() {
		t.Fatalf("superseded fetch must not produce a notice")
	}
}

func TestCloseDiscardsInFlightAndRejectsLaterFetches(t *testing.T) {
	f := &stubFetcher{
		results: []result{{recipes: soup()}},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(f)
	_, _ = s.Add("egg")

	done := make(chan error, 1)
	go func() { done <- s.Fetch(context.Background()) }()
	<-f.started
	s.Close()
	close(f.release)

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fetch did not return")
	}
	if got := s.Snapshot().Recipes; len(got) != 0 {
		t.Fatalf("closed session must not apply results, got %+v", got)
	}
	if err := s.Fetch(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestFetchUsesSnapshotOfIngredients(t *testing.T) {
	f := &stubFetcher{
		results: []result{{recipes: soup()}},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(f)
	_, _ = s.Add("egg")
	_, _ = s.Add("milk")

	done := make(chan error, 1)
	go func() { done <- s.Fetch(context.Background()) }()
	<-f.started
	_, _ = s.Add("flour")
	close(f.release)
	if err := <-done; err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	f.mu.Lock()
	arg := strings.Join(f.lastArg, ",")
	f.mu.Unlock()
	if arg != "egg,milk" {
		t.Fatalf("expected fetch with ingredients at trigger time, got %q", arg)
	}
}

func TestNoticeForServerUnavailable(t *testing.T) {
	n := NoticeFor(fetch.ErrServerUnavailable)
	if n.Message != "Unable to connect to the server. Please check your connection and try again." {
		t.Fatalf("unexpected notice %+v", n)
	}
}
