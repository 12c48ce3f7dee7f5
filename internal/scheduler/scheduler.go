package scheduler

import (
	"fmt"

	"cardpal/internal/config"
	"cardpal/internal/database"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the bot's recurring tasks on cron schedules. Modules
// register their tasks through RegisterNewMinuteFunc/RegisterNewHourFunc;
// anything else goes through RegisterFunc with an explicit cron spec.
type Scheduler struct {
	session *discordgo.Session
	config  *config.Config
	db      *database.DB
	cron    *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(session *discordgo.Session, cfg *config.Config, db *database.DB) *Scheduler {
	return &Scheduler{
		session: session,
		config:  cfg,
		db:      db,
		cron:    cron.New(),
	}
}

// RegisterFunc schedules fn on a cron spec (e.g. "@hourly", "* * * * *").
// The name is only used for logging; a panicking or failing task never
// takes the scheduler down.
func (s *Scheduler) RegisterFunc(spec, name string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.config.Logger.Errorf("Scheduled task %q panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled task %q failed: %v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %q: %w", name, err)
	}
	return nil
}

// RegisterNewMinuteFunc schedules fn to run every minute.
func (s *Scheduler) RegisterNewMinuteFunc(fn func() error) {
	if err := s.RegisterFunc("* * * * *", "minute-task", fn); err != nil {
		s.config.Logger.Errorf("Failed to register minute task: %v", err)
	}
}

// RegisterNewHourFunc schedules fn to run every hour.
func (s *Scheduler) RegisterNewHourFunc(fn func() error) {
	if err := s.RegisterFunc("@hourly", "hour-task", fn); err != nil {
		s.config.Logger.Errorf("Failed to register hour task: %v", err)
	}
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.config.Logger.Info("Scheduler started")
	s.cron.Start()
}

// Stop halts the scheduler and waits for running tasks to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.config.Logger.Info("Scheduler stopped")
}
