package guessgame

import (
	"fmt"
	"time"

	"cardpal/internal/cardcache"
	"cardpal/internal/commands/types"
	"cardpal/internal/config"
	"cardpal/internal/database"
	"cardpal/internal/guess"
	"cardpal/internal/ygoprodeck"
)

// GuessService owns the bridge between Discord channels and guessing
// game sessions: pool fetching, session lifecycle and the timeout sweep.
type GuessService struct {
	types.BaseService
	cfg      *config.Config
	db       *database.DB
	cache    *cardcache.Service
	registry *guess.Registry
	bank     []guess.Question
}

// NewGuessService creates a new guess service
func NewGuessService(cfg *config.Config, db *database.DB, cache *cardcache.Service, registry *guess.Registry, bank []guess.Question) *GuessService {
	return &GuessService{
		cfg:      cfg,
		db:       db,
		cache:    cache,
		registry: registry,
		bank:     bank,
	}
}

// StartGame fetches the candidate pool and opens a session for the
// channel. A cold cache is refreshed once; a fetch failure is terminal
// for this game, never played through on an empty pool.
func (svc *GuessService) StartGame(channelID string) (*guess.Session, *guess.Prompt, error) {
	pool := svc.cache.Pool()
	if len(pool) == 0 {
		if err := svc.cache.Refresh(); err != nil {
			return nil, nil, fmt.Errorf("could not fetch the card pool: %w", err)
		}
		pool = svc.cache.Pool()
	}
	if len(pool) == 0 {
		return nil, nil, guess.ErrNoCandidates
	}

	candidates := make([]guess.Candidate, 0, len(pool))
	for _, c := range pool {
		candidates = append(candidates, candidateFromCard(c))
	}

	session, err := svc.registry.Start(channelID, candidates, svc.bank)
	if err != nil {
		return nil, nil, err
	}

	prompt, conclusion := session.NextPrompt()
	if conclusion != nil {
		// A pool the bank cannot split at all concludes immediately.
		return session, nil, nil
	}
	return session, prompt, nil
}

// SessionFor returns the live session for a channel, nil when none.
func (svc *GuessService) SessionFor(channelID string) *guess.Session {
	return svc.registry.Get(channelID)
}

// RecordWin credits the player who saw the game to a found card.
func (svc *GuessService) RecordWin(userID string) {
	if svc.db == nil {
		return
	}
	if err := svc.db.IncrementGuessWins(userID); err != nil {
		svc.cfg.Logger.Warnf("failed to record guess win for %s: %v", userID, err)
	}
}

// SweepExpiredSessions abandons timed-out games and tells their channels.
// Runs on the minute scheduler.
func (svc *GuessService) SweepExpiredSessions() error {
	expired := svc.registry.Sweep(time.Now())
	for _, session := range expired {
		if svc.Session == nil {
			continue
		}
		embed := newTimeoutEmbed()
		if _, err := svc.Session.ChannelMessageSendEmbed(session.Key(), embed); err != nil {
			svc.cfg.Logger.Warnf("failed to announce expired guess session in %s: %v", session.Key(), err)
		}
	}
	return nil
}

// MinuteFuncs returns the timeout sweep for the scheduler.
func (svc *GuessService) MinuteFuncs() []func() error {
	return []func() error{svc.SweepExpiredSessions}
}

// HourFuncs returns nil; the guess service has no hourly work.
func (svc *GuessService) HourFuncs() []func() error {
	return nil
}

// candidateFromCard maps an API card onto the typed candidate record the
// guessing core filters on.
func candidateFromCard(c ygoprodeck.Card) guess.Candidate {
	out := guess.Candidate{
		Name:      c.Name,
		Type:      c.Type,
		Attribute: c.Attribute,
		Race:      c.Race,
		Archetype: c.Archetype,
	}
	if c.Level != nil {
		out.Level = *c.Level
		out.HasLevel = true
	}
	if c.ATK != nil {
		out.ATK = *c.ATK
		out.HasATK = true
	}
	if c.DEF != nil {
		out.DEF = *c.DEF
		out.HasDEF = true
	}
	return out
}
