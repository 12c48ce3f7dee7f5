package guess

import "errors"

var (
	// ErrNoCandidates means the candidate pool was empty or could not be
	// fetched. Non-retryable within a session; the player starts over.
	ErrNoCandidates = errors.New("guess: no candidates available")

	// ErrSessionActive means a session already exists for the key.
	ErrSessionActive = errors.New("guess: a session is already active for this key")

	// ErrStaleAnswer means an answer arrived for a question the session
	// has already moved past, or while no question was pending.
	ErrStaleAnswer = errors.New("guess: answer does not match the pending question")

	// ErrConcluded means the session already reached a terminal state.
	ErrConcluded = errors.New("guess: session has concluded")

	// ErrRegistryFull means the cap on concurrent sessions was hit.
	ErrRegistryFull = errors.New("guess: too many active sessions")
)
