package tournament

import (
	"fmt"
	"time"

	"cardpal/internal/commands/types"
	"cardpal/internal/config"
	"cardpal/internal/database"
)

// reminderWindow is how far ahead the hourly reminder looks.
const reminderWindow = time.Hour

// TournamentService posts reminders for events starting soon.
type TournamentService struct {
	types.BaseService
	cfg *config.Config
	db  *database.DB
}

// NewTournamentService creates a new tournament service
func NewTournamentService(cfg *config.Config, db *database.DB) *TournamentService {
	return &TournamentService{cfg: cfg, db: db}
}

// RemindUpcoming announces tournaments starting within the next hour to
// the configured tournament channel, once per tournament. Runs on the
// hourly scheduler.
func (svc *TournamentService) RemindUpcoming() error {
	if svc.db == nil || svc.Session == nil {
		return nil
	}
	channelID := svc.cfg.GetTournamentChannelID()
	if channelID == "" {
		return nil
	}

	due, err := svc.db.DueTournamentReminders(time.Now(), reminderWindow)
	if err != nil {
		return fmt.Errorf("failed to load due tournament reminders: %w", err)
	}

	for _, t := range due {
		if _, err := svc.Session.ChannelMessageSendEmbed(channelID, newReminderEmbed(t)); err != nil {
			svc.cfg.Logger.Warnf("failed to post tournament reminder for %q: %v", t.Name, err)
			continue
		}
		if err := svc.db.MarkTournamentReminded(t.ID); err != nil {
			svc.cfg.Logger.Warnf("failed to mark tournament %d reminded: %v", t.ID, err)
		}
	}
	return nil
}

// MinuteFuncs returns nil; reminders are hourly.
func (svc *TournamentService) MinuteFuncs() []func() error {
	return nil
}

// HourFuncs returns the reminder check for the scheduler.
func (svc *TournamentService) HourFuncs() []func() error {
	return []func() error{svc.RemindUpcoming}
}
