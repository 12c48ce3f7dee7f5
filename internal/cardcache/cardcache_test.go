package cardcache

import (
	"errors"
	"testing"

	"cardpal/internal/ygoprodeck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	staples  []ygoprodeck.Card
	byArch   map[string][]ygoprodeck.Card
	err      error
	staplesN int
	byArchN  int
}

func (f *fakeFetcher) Staples() ([]ygoprodeck.Card, error) {
	f.staplesN++
	return f.staples, f.err
}

func (f *fakeFetcher) ByArchetype(archetype string) ([]ygoprodeck.Card, error) {
	f.byArchN++
	return f.byArch[archetype], f.err
}

func testCards() []ygoprodeck.Card {
	return []ygoprodeck.Card{
		{Name: "Dark Magician", Type: "Normal Monster"},
		{Name: "Dark Magician Girl", Type: "Effect Monster"},
		{Name: "Pot of Greed", Type: "Spell Card"},
	}
}

func TestRefreshAndLookup(t *testing.T) {
	f := &fakeFetcher{staples: testCards()}
	s := New(f, "")

	require.NoError(t, s.Refresh())
	assert.Equal(t, 1, f.staplesN)
	assert.Zero(t, f.byArchN)

	assert.Len(t, s.Pool(), 3)

	card := s.Lookup("dark magician")
	require.NotNil(t, card)
	assert.Equal(t, "Dark Magician", card.Name)

	assert.Nil(t, s.Lookup("Blue-Eyes"))

	stats := s.Stats()
	assert.Equal(t, 3, stats.Cards)
	assert.Equal(t, 2, stats.Lookups)
	assert.Equal(t, 1, stats.LookupMisses)
	assert.False(t, stats.LastRefresh.IsZero())
}

func TestRefreshByArchetype(t *testing.T) {
	f := &fakeFetcher{byArch: map[string][]ygoprodeck.Card{
		"Blue-Eyes": {{Name: "Blue-Eyes White Dragon", Type: "Normal Monster"}},
	}}
	s := New(f, "Blue-Eyes")

	require.NoError(t, s.Refresh())
	assert.Equal(t, 1, f.byArchN)
	assert.Len(t, s.Pool(), 1)
}

func TestRefreshFailureKeepsOldPool(t *testing.T) {
	f := &fakeFetcher{staples: testCards()}
	s := New(f, "")
	require.NoError(t, s.Refresh())

	f.err = errors.New("api down")
	require.Error(t, s.Refresh())

	// Old pool survives the failed refresh.
	assert.Len(t, s.Pool(), 3)
	assert.Equal(t, 1, s.Stats().RefreshErrs)
}

func TestRefreshEmptyPoolIsError(t *testing.T) {
	f := &fakeFetcher{}
	s := New(f, "")
	err := s.Refresh()
	require.Error(t, err)
	assert.ErrorIs(t, err, ygoprodeck.ErrFetch)
}

func TestSuggest(t *testing.T) {
	f := &fakeFetcher{staples: testCards()}
	s := New(f, "")
	require.NoError(t, s.Refresh())

	names := s.Suggest("dark", 10)
	assert.Equal(t, []string{"Dark Magician", "Dark Magician Girl"}, names)

	names = s.Suggest("dark", 1)
	assert.Equal(t, []string{"Dark Magician"}, names)

	assert.Empty(t, s.Suggest("exodia", 10))
}
