package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileLifecycle(t *testing.T) {
	db := newTestDB(t)

	p, err := db.GetProfile("user1")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, db.SetFavoriteCard("user1", "Dark Magician"))
	require.NoError(t, db.IncrementGuessWins("user1"))
	require.NoError(t, db.IncrementGuessWins("user1"))
	require.NoError(t, db.IncrementTriviaWins("user1"))

	p, err = db.GetProfile("user1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Dark Magician", p.FavoriteCard)
	assert.Equal(t, 2, p.GuessWins)
	assert.Equal(t, 1, p.TriviaWins)
}

func TestTriviaStreaks(t *testing.T) {
	db := newTestDB(t)

	s, err := db.RecordTriviaResult("user1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.Best)

	s, err = db.RecordTriviaResult("user1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 2, s.Best)

	// A miss resets the run but keeps the best.
	s, err = db.RecordTriviaResult("user1", false)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 2, s.Best)

	s, err = db.RecordTriviaResult("user1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 2, s.Best)
}

func TestTriviaLeaderboardOrder(t *testing.T) {
	db := newTestDB(t)

	_, err := db.RecordTriviaResult("low", true)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = db.RecordTriviaResult("high", true)
		require.NoError(t, err)
	}

	board, err := db.GetTriviaLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "high", board[0].UserID)
	assert.Equal(t, 3, board[0].Best)
	assert.Equal(t, "low", board[1].UserID)
}

func TestTournamentSchedule(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	id, err := db.AddTournament("guild1", "Locals", now.Add(30*time.Minute), "mod1")
	require.NoError(t, err)
	_, err = db.AddTournament("guild1", "Regionals", now.Add(48*time.Hour), "mod1")
	require.NoError(t, err)
	_, err = db.AddTournament("guild2", "Other guild", now.Add(time.Hour), "mod2")
	require.NoError(t, err)

	upcoming, err := db.ListUpcomingTournaments("guild1", now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Locals", upcoming[0].Name)
	assert.Equal(t, "Regionals", upcoming[1].Name)

	// Only the one starting within the window is due, and only once.
	due, err := db.DueTournamentReminders(now, time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 2) // guild1 Locals + guild2 Other guild
	require.NoError(t, db.MarkTournamentReminded(due[0].ID))

	due, err = db.DueTournamentReminders(now, time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, db.DeleteTournament(id, "guild1"))
	assert.Error(t, db.DeleteTournament(id, "guild1"))
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.IncrementGuessWins("user1"))
	_, err := db.RecordTriviaResult("user1", true)
	require.NoError(t, err)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["profiles"])
	assert.Equal(t, 1, stats["streaks"])
	assert.Equal(t, 0, stats["tournaments"])
}
