package cardcache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cardpal/internal/ygoprodeck"
)

// Fetcher is the slice of the YGOPRODeck client the cache needs.
type Fetcher interface {
	Staples() ([]ygoprodeck.Card, error)
	ByArchetype(archetype string) ([]ygoprodeck.Card, error)
}

// Stats exposes lightweight observability data.
type Stats struct {
	Cards        int
	LastRefresh  time.Time
	RefreshErrs  int
	Lookups      int
	LookupMisses int
}

// Service caches the card pool the guessing game and autocomplete draw
// from, so a game start does not hit the remote API every time. One
// refresh replaces the whole pool; readers only ever see a complete one.
type Service struct {
	mu        sync.RWMutex
	fetcher   Fetcher
	archetype string // limits the pool when set, staples otherwise

	pool   []ygoprodeck.Card
	byName map[string]*ygoprodeck.Card

	lastRefresh  time.Time
	refreshErrs  int
	lookups      int
	lookupMisses int
}

// New creates a cache over fetcher. archetype limits the pool when
// non-empty; otherwise the staple list is used.
func New(fetcher Fetcher, archetype string) *Service {
	return &Service{
		fetcher:   fetcher,
		archetype: archetype,
		byName:    make(map[string]*ygoprodeck.Card),
	}
}

// Refresh rebuilds the pool from the API. On failure the previous pool
// stays in place.
func (s *Service) Refresh() error {
	var (
		cards []ygoprodeck.Card
		err   error
	)
	if s.archetype != "" {
		cards, err = s.fetcher.ByArchetype(s.archetype)
	} else {
		cards, err = s.fetcher.Staples()
	}
	if err != nil {
		s.mu.Lock()
		s.refreshErrs++
		s.mu.Unlock()
		return fmt.Errorf("card pool refresh failed: %w", err)
	}
	if len(cards) == 0 {
		s.mu.Lock()
		s.refreshErrs++
		s.mu.Unlock()
		return fmt.Errorf("card pool refresh returned no cards: %w", ygoprodeck.ErrFetch)
	}

	// Build indexes off to the side, then swap.
	byName := make(map[string]*ygoprodeck.Card, len(cards))
	for i := range cards {
		byName[strings.ToLower(cards[i].Name)] = &cards[i]
	}

	s.mu.Lock()
	s.pool = cards
	s.byName = byName
	s.lastRefresh = time.Now()
	s.mu.Unlock()
	return nil
}

// Pool returns a copy of the cached cards.
func (s *Service) Pool() []ygoprodeck.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ygoprodeck.Card, len(s.pool))
	copy(out, s.pool)
	return out
}

// Lookup finds a cached card by exact name, case-insensitively.
func (s *Service) Lookup(name string) *ygoprodeck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	card, ok := s.byName[strings.ToLower(name)]
	if !ok {
		s.lookupMisses++
		return nil
	}
	return card
}

// Suggest returns up to limit cached card names containing the query,
// for slash command autocomplete.
func (s *Service) Suggest(query string, limit int) []string {
	query = strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, c := range s.pool {
		if strings.Contains(strings.ToLower(c.Name), query) {
			names = append(names, c.Name)
			if len(names) >= limit {
				break
			}
		}
	}
	return names
}

// Stats reports cache health for the status command.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Cards:        len(s.pool),
		LastRefresh:  s.lastRefresh,
		RefreshErrs:  s.refreshErrs,
		Lookups:      s.lookups,
		LookupMisses: s.lookupMisses,
	}
}
