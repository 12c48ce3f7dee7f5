package trivia

import (
	"path/filepath"
	"testing"
	"time"

	"cardpal/internal/cardcache"
	"cardpal/internal/config"
	"cardpal/internal/database"
	"cardpal/internal/ygoprodeck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	cards []ygoprodeck.Card
}

func (f *stubFetcher) Staples() ([]ygoprodeck.Card, error) {
	return f.cards, nil
}

func (f *stubFetcher) ByArchetype(string) ([]ygoprodeck.Card, error) {
	return nil, nil
}

func newTestService(t *testing.T, cards []ygoprodeck.Card) *TriviaService {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "trivia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cache := cardcache.New(&stubFetcher{cards: cards}, "")
	require.NoError(t, cache.Refresh())

	return NewTriviaService(config.NewMockConfig(nil), db, cache, ygoprodeck.NewClient(""))
}

func testCards() []ygoprodeck.Card {
	return []ygoprodeck.Card{
		{Name: "Pot of Greed", Type: "Spell Card", Desc: "Draw 2 cards."},
	}
}

func TestRoundLifecycle(t *testing.T) {
	svc := newTestService(t, testCards())

	card, err := svc.StartRound("chan-1")
	require.NoError(t, err)
	assert.Equal(t, "Pot of Greed", card.Name)

	// Only one open round per channel.
	_, err = svc.StartRound("chan-1")
	assert.ErrorIs(t, err, ErrRoundActive)

	// Wrong answer leaves the round open and resets the streak.
	correct, streak, err := svc.ScoreAnswer("chan-1", "user-1", "Dark Magician")
	require.NoError(t, err)
	assert.False(t, correct)
	require.NotNil(t, streak)
	assert.Equal(t, 0, streak.Current)
	assert.NotNil(t, svc.CurrentCard("chan-1"))

	// Correct answer closes the round and extends the streak.
	correct, streak, err = svc.ScoreAnswer("chan-1", "user-2", "pot of greed")
	require.NoError(t, err)
	assert.True(t, correct)
	require.NotNil(t, streak)
	assert.Equal(t, 1, streak.Current)
	assert.Nil(t, svc.CurrentCard("chan-1"))

	// Answers after the round closed are rejected.
	_, _, err = svc.ScoreAnswer("chan-1", "user-3", "Pot of Greed")
	assert.ErrorIs(t, err, ErrNoRound)

	// The win also lands on the profile.
	profile, err := svc.db.GetProfile("user-2")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.TriviaWins)
}

func TestSweepStaleRounds(t *testing.T) {
	svc := newTestService(t, testCards())

	_, err := svc.StartRound("chan-1")
	require.NoError(t, err)

	svc.mu.Lock()
	svc.rounds["chan-1"].startedAt = time.Now().Add(-roundTTL - time.Second)
	svc.mu.Unlock()

	require.NoError(t, svc.SweepStaleRounds())
	assert.Nil(t, svc.CurrentCard("chan-1"))
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		guess string
		name  string
		want  bool
	}{
		{"Pot of Greed", "Pot of Greed", true},
		{"  pot of greed ", "Pot of Greed", true},
		{"Blue Eyes White Dragon", "Blue-Eyes White Dragon", true},
		{"Gorz the Emissary of Darkness", "Gorz the Emissary of Darkness", true},
		{"Pot of Greed!", "Pot of Greed", true},
		{"Pot of Desires", "Pot of Greed", false},
		{"", "Pot of Greed", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, namesMatch(tt.guess, tt.name), "%q vs %q", tt.guess, tt.name)
	}
}

func TestRedactName(t *testing.T) {
	got := redactName("Special Summon 1 \"Stardust Dragon\" from your hand. Stardust Dragon gains 500 ATK.", "Stardust Dragon")
	assert.NotContains(t, got, "Stardust Dragon")
	assert.Contains(t, got, "█████")

	// Text that never mentions the name passes through untouched.
	assert.Equal(t, "Draw 2 cards.", redactName("Draw 2 cards.", "Pot of Greed"))
}
