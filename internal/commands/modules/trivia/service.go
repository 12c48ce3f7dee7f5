package trivia

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"cardpal/internal/cardcache"
	"cardpal/internal/commands/types"
	"cardpal/internal/config"
	"cardpal/internal/database"
	"cardpal/internal/ygoprodeck"
)

const roundTTL = 5 * time.Minute

// ErrRoundActive is returned when a channel already has an open round.
var ErrRoundActive = errors.New("trivia: a round is already running in this channel")

// ErrNoRound is returned for answers to a channel with no open round.
var ErrNoRound = errors.New("trivia: no round is running in this channel")

// round is one open "name the card" challenge in a channel.
type round struct {
	card      ygoprodeck.Card
	startedAt time.Time
}

// TriviaService keeps the open rounds and scores answers against the
// card database. Rounds are per channel, first correct answer wins.
type TriviaService struct {
	types.BaseService
	cfg    *config.Config
	db     *database.DB
	cache  *cardcache.Service
	client *ygoprodeck.Client

	mu     sync.Mutex
	rounds map[string]*round
}

// NewTriviaService creates a new trivia service
func NewTriviaService(cfg *config.Config, db *database.DB, cache *cardcache.Service, client *ygoprodeck.Client) *TriviaService {
	return &TriviaService{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		client: client,
		rounds: make(map[string]*round),
	}
}

// StartRound opens a round in the channel and returns the card to
// describe. The cached pool is preferred; a cold cache falls back to the
// API's random card endpoint.
func (svc *TriviaService) StartRound(channelID string) (*ygoprodeck.Card, error) {
	card, err := svc.pickCard()
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if r, ok := svc.rounds[channelID]; ok && time.Since(r.startedAt) < roundTTL {
		return nil, ErrRoundActive
	}
	svc.rounds[channelID] = &round{card: *card, startedAt: time.Now()}
	return card, nil
}

// CurrentCard returns the card of the open round, nil when none.
func (svc *TriviaService) CurrentCard(channelID string) *ygoprodeck.Card {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if r, ok := svc.rounds[channelID]; ok {
		card := r.card
		return &card
	}
	return nil
}

// ScoreAnswer checks a guess against the open round. A correct answer
// closes the round and extends the player's streak; a wrong answer
// resets it but leaves the round open for other players. The updated
// streak is returned either way.
func (svc *TriviaService) ScoreAnswer(channelID, userID, answer string) (bool, *database.Streak, error) {
	svc.mu.Lock()
	r, ok := svc.rounds[channelID]
	if !ok {
		svc.mu.Unlock()
		return false, nil, ErrNoRound
	}
	correct := namesMatch(answer, r.card.Name)
	if correct {
		delete(svc.rounds, channelID)
	}
	svc.mu.Unlock()

	if svc.db == nil {
		return correct, nil, nil
	}

	streak, err := svc.db.RecordTriviaResult(userID, correct)
	if err != nil {
		return correct, nil, err
	}
	if correct {
		if err := svc.db.IncrementTriviaWins(userID); err != nil {
			svc.cfg.Logger.Warnf("failed to record trivia win for %s: %v", userID, err)
		}
	}
	return correct, streak, nil
}

// Leaderboard returns the top streaks.
func (svc *TriviaService) Leaderboard(limit int) ([]database.Streak, error) {
	if svc.db == nil {
		return nil, nil
	}
	return svc.db.GetTriviaLeaderboard(limit)
}

// SweepStaleRounds reveals and closes rounds nobody solved in time.
// Runs on the minute scheduler.
func (svc *TriviaService) SweepStaleRounds() error {
	now := time.Now()

	svc.mu.Lock()
	var expired []string
	cards := make(map[string]ygoprodeck.Card)
	for channelID, r := range svc.rounds {
		if now.Sub(r.startedAt) >= roundTTL {
			expired = append(expired, channelID)
			cards[channelID] = r.card
			delete(svc.rounds, channelID)
		}
	}
	svc.mu.Unlock()

	for _, channelID := range expired {
		if svc.Session == nil {
			continue
		}
		card := cards[channelID]
		if _, err := svc.Session.ChannelMessageSendEmbed(channelID, newRoundExpiredEmbed(&card)); err != nil {
			svc.cfg.Logger.Warnf("failed to announce expired trivia round in %s: %v", channelID, err)
		}
	}
	return nil
}

// MinuteFuncs returns the stale round sweep for the scheduler.
func (svc *TriviaService) MinuteFuncs() []func() error {
	return []func() error{svc.SweepStaleRounds}
}

// HourFuncs returns nil; the trivia service has no hourly work.
func (svc *TriviaService) HourFuncs() []func() error {
	return nil
}

// pickCard draws a random card with usable text, preferring the cache.
func (svc *TriviaService) pickCard() (*ygoprodeck.Card, error) {
	pool := svc.cache.Pool()
	for attempts := 0; attempts < 10 && len(pool) > 0; attempts++ {
		card := pool[rand.IntN(len(pool))]
		if strings.TrimSpace(card.Desc) != "" {
			return &card, nil
		}
	}
	return svc.client.RandomCard()
}

// namesMatch compares a player's guess against the card name, ignoring
// case, surrounding space and common punctuation differences.
func namesMatch(guess, name string) bool {
	return normalizeName(guess) == normalizeName(name)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer("-", " ", "'", "", "’", "", ".", "", ",", "", "!", "", "?", "")
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// redactName hides the card's own name inside its text so the card
// text doesn't give the answer away.
func redactName(text, name string) string {
	if name == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(name)

	var b strings.Builder
	for {
		idx := strings.Index(lowerText, lowerName)
		if idx < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:idx])
		b.WriteString("█████")
		text = text[idx+len(name):]
		lowerText = lowerText[idx+len(lowerName):]
	}
}
