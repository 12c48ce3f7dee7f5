package guessgame

import (
	"testing"
	"time"

	"cardpal/internal/cardcache"
	"cardpal/internal/config"
	"cardpal/internal/guess"
	"cardpal/internal/ygoprodeck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	cards []ygoprodeck.Card
	calls int
}

func (f *stubFetcher) Staples() ([]ygoprodeck.Card, error) {
	f.calls++
	return f.cards, nil
}

func (f *stubFetcher) ByArchetype(string) ([]ygoprodeck.Card, error) {
	return nil, nil
}

func intp(v int) *int { return &v }

func testPool() []ygoprodeck.Card {
	return []ygoprodeck.Card{
		{Name: "Dark Magician", Type: "Normal Monster", Attribute: "DARK", Race: "Spellcaster", Level: intp(7), ATK: intp(2500), DEF: intp(2100)},
		{Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Attribute: "LIGHT", Race: "Dragon", Level: intp(8), ATK: intp(3000), DEF: intp(2500)},
		{Name: "Pot of Greed", Type: "Spell Card", Race: "Normal"},
		{Name: "Mirror Force", Type: "Trap Card", Race: "Normal"},
	}
}

func testBank() []guess.Question {
	return []guess.Question{
		{Prompt: "Is it a Spell Card?", Field: guess.FieldType, Expected: "Spell"},
		{Prompt: "Is it a Trap Card?", Field: guess.FieldType, Expected: "Trap"},
		{Prompt: "Is it a DARK monster?", Field: guess.FieldAttribute, Expected: "DARK"},
		{Prompt: "Is it a Dragon?", Field: guess.FieldRace, Expected: "Dragon"},
	}
}

func newTestService(t *testing.T, fetcher *stubFetcher) *GuessService {
	t.Helper()
	cfg := config.NewMockConfig(nil)
	cache := cardcache.New(fetcher, "")
	registry := guess.NewRegistry(guess.Options{
		MaxSessions:    4,
		AnswerTimeout:  time.Minute,
		QuestionBudget: 8,
	})
	return NewGuessService(cfg, nil, cache, registry, testBank())
}

func TestStartGameRefreshesColdCache(t *testing.T) {
	fetcher := &stubFetcher{cards: testPool()}
	svc := newTestService(t, fetcher)

	session, prompt, err := svc.StartGame("chan-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	require.NotNil(t, prompt)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, len(testPool()), prompt.Remaining)

	// A second game in the same channel is rejected while the first runs.
	_, _, err = svc.StartGame("chan-1")
	assert.ErrorIs(t, err, guess.ErrSessionActive)

	// The warm cache is not refetched for other channels.
	_, _, err = svc.StartGame("chan-2")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestStartGameEmptyPool(t *testing.T) {
	svc := newTestService(t, &stubFetcher{})

	_, _, err := svc.StartGame("chan-1")
	assert.Error(t, err)
	assert.Nil(t, svc.SessionFor("chan-1"))
}

func TestPlayThroughToFound(t *testing.T) {
	svc := newTestService(t, &stubFetcher{cards: testPool()})

	session, prompt, err := svc.StartGame("chan-1")
	require.NoError(t, err)
	require.NotNil(t, prompt)

	// Answer honestly for Blue-Eyes White Dragon.
	target := candidateFromCard(testPool()[1])
	for prompt != nil {
		answer := guess.AnswerNo
		if guess.Matches(target, prompt.Question) {
			answer = guess.AnswerYes
		}
		var conclusion *guess.Conclusion
		prompt, conclusion, err = session.SubmitAnswer(prompt.Turn, answer)
		require.NoError(t, err)
		if conclusion != nil {
			require.Equal(t, guess.OutcomeFound, conclusion.Outcome)
			assert.Equal(t, "Blue-Eyes White Dragon", conclusion.Guess.Name)
			break
		}
	}

	// The slot frees up once the game concludes.
	assert.Nil(t, svc.SessionFor("chan-1"))
}

func TestSweepExpiredSessionsWithoutDiscord(t *testing.T) {
	svc := newTestService(t, &stubFetcher{cards: testPool()})

	session, _, err := svc.StartGame("chan-1")
	require.NoError(t, err)
	require.NotNil(t, session)

	// No session hydrated yet; the sweep must still reap overdue games.
	require.True(t, session.ExpireIfOverdue(time.Now().Add(2*time.Minute)))
	require.NoError(t, svc.SweepExpiredSessions())
	assert.Nil(t, svc.SessionFor("chan-1"))
}

func TestCandidateFromCard(t *testing.T) {
	c := candidateFromCard(testPool()[0])
	assert.Equal(t, "Dark Magician", c.Name)
	assert.True(t, c.HasLevel)
	assert.Equal(t, 7, c.Level)
	assert.True(t, c.HasATK)
	assert.Equal(t, 2500, c.ATK)

	spell := candidateFromCard(testPool()[2])
	assert.False(t, spell.HasLevel)
	assert.False(t, spell.HasATK)
	assert.False(t, spell.HasDEF)
}

func TestParseAnswerID(t *testing.T) {
	tests := []struct {
		id     string
		answer guess.Answer
		turn   int
		ok     bool
	}{
		{"guess:yes:3", guess.AnswerYes, 3, true},
		{"guess:no:0", guess.AnswerNo, 0, true},
		{"guess:idk:12", guess.AnswerDontKnow, 12, true},
		{"guess:maybe:1", 0, 0, false},
		{"guess:yes:x", 0, 0, false},
		{"trivia:yes:1", 0, 0, false},
		{"guess:yes", 0, 0, false},
	}

	for _, tt := range tests {
		answer, turn, ok := parseAnswerID(tt.id)
		assert.Equal(t, tt.ok, ok, tt.id)
		if tt.ok {
			assert.Equal(t, tt.answer, answer, tt.id)
			assert.Equal(t, tt.turn, turn, tt.id)
		}
	}
}
