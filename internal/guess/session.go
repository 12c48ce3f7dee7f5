package guess

import (
	"sync"
	"time"
)

// State is the session's position in its lifecycle.
type State int

const (
	StateAwaitingQuestion State = iota
	StateAwaitingAnswer
	StateConcluded
)

// Answer is a player's reply to the pending question.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerDontKnow
)

// Outcome classifies how a session ended.
type Outcome int

const (
	// OutcomeFound means exactly one candidate survived the filters.
	OutcomeFound Outcome = iota
	// OutcomeAmbiguous means the question budget (or the bank) ran out
	// with more than one candidate still matching every answer.
	OutcomeAmbiguous
	// OutcomeNotFound means an answer eliminated every candidate; the
	// real answer was never in the pool, or an earlier reply was wrong.
	OutcomeNotFound
	// OutcomeAbandoned means the session was cancelled or timed out.
	OutcomeAbandoned
)

// Conclusion is the terminal result of a session.
type Conclusion struct {
	Outcome   Outcome
	Guess     *Candidate  // set for OutcomeFound
	Remaining []Candidate // set for OutcomeAmbiguous
}

// Step is one (question, answer) pair applied to the candidate set.
type Step struct {
	Question Question
	Answer   Answer
}

// Prompt is a question presented to the player. Turn must be echoed back
// with the answer; a mismatched turn is rejected, which serializes racing
// inputs onto one question at a time.
type Prompt struct {
	Question  Question
	Turn      int
	Remaining int // candidates still in play
	Asked     int // questions asked so far, including this one
	Budget    int
}

// Session is one play-through of the guessing game: a candidate pool
// snapshot, a spent-question set, and an ordered answer log. Invariant:
// every candidate still in the pool is consistent with every yes/no step
// in the log; don't-know steps impose no constraint.
type Session struct {
	mu sync.Mutex

	key        string
	candidates []Candidate
	bank       []Question
	used       []bool

	state    State
	pending  *Question
	turn     int
	asked    int
	budget   int
	log      []Step
	deadline time.Time
	timeout  time.Duration

	conclusion *Conclusion
	release    func() // removes the session from its registry
}

// Key returns the session's registry key.
func (s *Session) Key() string { return s.key }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Candidates returns a copy of the surviving candidate set.
func (s *Session) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Steps returns a copy of the (question, answer) log.
func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Step, len(s.log))
	copy(out, s.log)
	return out
}

// Conclusion returns the terminal result, or nil while the session runs.
func (s *Session) Conclusion() *Conclusion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conclusion
}

// NextPrompt advances the session to the next question. It returns either
// a prompt or a conclusion, never both. Calling it while an answer is
// pending re-presents the same prompt.
func (s *Session) NextPrompt() (*Prompt, *Conclusion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateConcluded:
		return nil, s.conclusion
	case StateAwaitingAnswer:
		return s.promptLocked(), nil
	}
	return s.advanceLocked()
}

// SubmitAnswer applies the player's answer to the pending question and
// returns the next prompt or the conclusion. The turn must match the
// prompt the answer is for; stale or duplicate answers get ErrStaleAnswer.
func (s *Session) SubmitAnswer(turn int, a Answer) (*Prompt, *Conclusion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateConcluded {
		return nil, s.conclusion, ErrConcluded
	}
	if s.state != StateAwaitingAnswer || s.pending == nil || turn != s.turn {
		return nil, nil, ErrStaleAnswer
	}

	q := *s.pending
	s.pending = nil
	s.log = append(s.log, Step{Question: q, Answer: a})

	switch a {
	case AnswerYes:
		yes, _ := Split(s.candidates, q)
		s.candidates = yes
	case AnswerNo:
		_, no := Split(s.candidates, q)
		s.candidates = no
	case AnswerDontKnow:
		// No constraint; the question stays consumed so the session
		// keeps moving instead of re-asking what the player can't answer.
	}

	if len(s.candidates) == 0 {
		// Contradiction: report not-found rather than guessing.
		return nil, s.concludeLocked(OutcomeNotFound), nil
	}

	s.state = StateAwaitingQuestion
	p, c := s.advanceLocked()
	return p, c, nil
}

// Cancel ends the session with an abandoned outcome. Safe to call on an
// already-concluded session.
func (s *Session) Cancel() *Conclusion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConcluded {
		return s.conclusion
	}
	return s.concludeLocked(OutcomeAbandoned)
}

// Deadline returns the answer deadline, zero unless awaiting an answer.
func (s *Session) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer {
		return time.Time{}
	}
	return s.deadline
}

// ExpireIfOverdue abandons the session when its answer deadline has
// passed. Reports whether it expired the session.
func (s *Session) ExpireIfOverdue(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer || now.Before(s.deadline) {
		return false
	}
	s.concludeLocked(OutcomeAbandoned)
	return true
}

// advanceLocked moves from AwaitingQuestion to either AwaitingAnswer or
// Concluded. Caller holds s.mu.
func (s *Session) advanceLocked() (*Prompt, *Conclusion) {
	if len(s.candidates) <= 1 || s.asked >= s.budget {
		return nil, s.concludeLocked(outcomeForRemaining(s.candidates))
	}

	q := SelectNext(s.candidates, s.availableLocked())
	if q == nil {
		// Nothing splits the survivors any further.
		return nil, s.concludeLocked(outcomeForRemaining(s.candidates))
	}

	s.markUsedLocked(*q)
	s.pending = q
	s.turn++
	s.asked++
	s.deadline = time.Now().Add(s.timeout)
	s.state = StateAwaitingAnswer
	return s.promptLocked(), nil
}

func (s *Session) promptLocked() *Prompt {
	return &Prompt{
		Question:  *s.pending,
		Turn:      s.turn,
		Remaining: len(s.candidates),
		Asked:     s.asked,
		Budget:    s.budget,
	}
}

// availableLocked returns the unspent questions in bank order.
func (s *Session) availableLocked() []Question {
	avail := make([]Question, 0, len(s.bank))
	for i, q := range s.bank {
		if !s.used[i] {
			avail = append(avail, q)
		}
	}
	return avail
}

func (s *Session) markUsedLocked(q Question) {
	for i := range s.bank {
		if !s.used[i] && s.bank[i] == q {
			s.used[i] = true
			return
		}
	}
}

func (s *Session) concludeLocked(o Outcome) *Conclusion {
	c := &Conclusion{Outcome: o}
	switch o {
	case OutcomeFound:
		guess := s.candidates[0]
		c.Guess = &guess
	case OutcomeAmbiguous:
		c.Remaining = make([]Candidate, len(s.candidates))
		copy(c.Remaining, s.candidates)
	}
	s.conclusion = c
	s.state = StateConcluded
	s.pending = nil
	if s.release != nil {
		// Free the registry slot so a new session can start. The
		// callback takes the registry lock; s.mu is never taken while
		// holding it, so the order here is safe.
		release := s.release
		s.release = nil
		release()
	}
	return c
}

func outcomeForRemaining(candidates []Candidate) Outcome {
	switch len(candidates) {
	case 0:
		return OutcomeNotFound
	case 1:
		return OutcomeFound
	}
	return OutcomeAmbiguous
}
