package guess

import (
	"sync"
	"time"
)

const (
	defaultMaxSessions    = 64
	defaultAnswerTimeout  = 90 * time.Second
	defaultQuestionBudget = 12
)

// Options tunes a Registry. Zero values take the defaults above.
type Options struct {
	MaxSessions    int
	AnswerTimeout  time.Duration
	QuestionBudget int
}

// Registry owns the live sessions, keyed by channel. Insertion happens in
// Start, removal happens when a session concludes (including cancel and
// timeout), so the map never accumulates finished games.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
}

// NewRegistry creates an empty session registry.
func NewRegistry(opts Options) *Registry {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.AnswerTimeout <= 0 {
		opts.AnswerTimeout = defaultAnswerTimeout
	}
	if opts.QuestionBudget <= 0 {
		opts.QuestionBudget = defaultQuestionBudget
	}
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Start creates a session for key over a snapshot of pool. It fails with
// ErrSessionActive while a session for the same key is still live,
// ErrNoCandidates for an empty pool, and ErrRegistryFull at the cap.
func (r *Registry) Start(key string, pool []Candidate, bank []Question) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}
	if len(bank) == 0 {
		return nil, ErrNoCandidates
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, active := r.sessions[key]; active {
		return nil, ErrSessionActive
	}
	if len(r.sessions) >= r.opts.MaxSessions {
		return nil, ErrRegistryFull
	}

	candidates := make([]Candidate, len(pool))
	copy(candidates, pool)
	bankCopy := make([]Question, len(bank))
	copy(bankCopy, bank)

	s := &Session{
		key:        key,
		candidates: candidates,
		bank:       bankCopy,
		used:       make([]bool, len(bankCopy)),
		state:      StateAwaitingQuestion,
		budget:     r.opts.QuestionBudget,
		timeout:    r.opts.AnswerTimeout,
	}
	s.release = func() { r.remove(key, s) }

	r.sessions[key] = s
	return s, nil
}

// Get returns the live session for key, or nil.
func (r *Registry) Get(key string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[key]
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep abandons every session whose answer deadline has passed and
// returns them so the host can notify the channel. Meant to run on the
// minute scheduler.
func (r *Registry) Sweep(now time.Time) []*Session {
	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	var expired []*Session
	for _, s := range live {
		if s.ExpireIfOverdue(now) {
			expired = append(expired, s)
		}
	}
	return expired
}

// remove deletes a session slot, guarding against a stale callback
// removing a newer session that reused the key.
func (r *Registry) remove(key string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[key] == s {
		delete(r.sessions, key)
	}
}
