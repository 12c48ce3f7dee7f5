package tournament

import (
	"path/filepath"
	"testing"
	"time"

	"cardpal/internal/config"
	"cardpal/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TournamentService {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "tournament.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.NewMockConfig(map[string]interface{}{
		"tournament_channel_id": "chan-reminders",
	})
	return NewTournamentService(cfg, db)
}

func TestRemindUpcomingRequiresSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.db.AddTournament("guild-1", "Locals", time.Now().Add(30*time.Minute), "user-1")
	require.NoError(t, err)

	// Without a hydrated Discord session the reminder is a no-op and the
	// tournament stays unreminded for the next run.
	require.NoError(t, svc.RemindUpcoming())

	due, err := svc.db.DueTournamentReminders(time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestHourFuncsWired(t *testing.T) {
	svc := newTestService(t)
	assert.Nil(t, svc.MinuteFuncs())
	assert.Len(t, svc.HourFuncs(), 1)
}
