package guess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(Options{})
}

// Spec'd scenario: three cards, one question with a 2/1 split. Answering
// yes leaves two candidates and no further question, so the session ends
// ambiguous.
func TestSessionYesEndsAmbiguous(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Start("chan1", smallPool(), []Question{monsterQuestion()})
	require.NoError(t, err)

	p, c := s.NextPrompt()
	require.Nil(t, c)
	require.NotNil(t, p)
	assert.Equal(t, "Is it a Monster card?", p.Question.Prompt)
	assert.Equal(t, 3, p.Remaining)

	p2, c2, err := s.SubmitAnswer(p.Turn, AnswerYes)
	require.NoError(t, err)
	assert.Nil(t, p2)
	require.NotNil(t, c2)
	assert.Equal(t, OutcomeAmbiguous, c2.Outcome)
	require.Len(t, c2.Remaining, 2)
	assert.Equal(t, "A", c2.Remaining[0].Name)
	assert.Equal(t, "C", c2.Remaining[1].Name)
}

func TestSessionNoEndsFound(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Start("chan1", smallPool(), []Question{monsterQuestion()})
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)

	_, c, err := s.SubmitAnswer(p.Turn, AnswerNo)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeFound, c.Outcome)
	require.NotNil(t, c.Guess)
	assert.Equal(t, "B", c.Guess.Name)
}

func TestSessionContradictionEndsNotFound(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster"},
		{Name: "B", Type: "Monster", Attribute: "DARK"},
	}
	bank := []Question{
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)

	// Eliminate B, leaving only A (a Monster)...
	p, c, err := s.SubmitAnswer(p.Turn, AnswerNo)
	require.NoError(t, err)
	// ...with one candidate left the session must already conclude.
	require.Nil(t, p)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeFound, c.Outcome)
}

// The splitter never presents a question with a trivial split, so honest
// play cannot empty the set. The guard still matters for a pending
// question whose split went trivial underneath it (the player's earlier
// answer was mistaken); exercise it directly.
func TestSessionEmptyAfterAnswerIsNotFound(t *testing.T) {
	q := Question{Prompt: "trap?", Field: FieldType, Expected: "Trap"}
	s := &Session{
		key:        "chan1",
		candidates: []Candidate{{Name: "A", Type: "Monster"}, {Name: "B", Type: "Spell"}},
		bank:       []Question{q},
		used:       []bool{true},
		state:      StateAwaitingAnswer,
		pending:    &q,
		turn:       1,
		asked:      1,
		budget:     12,
		timeout:    time.Minute,
	}

	p, c, err := s.SubmitAnswer(1, AnswerYes)
	require.NoError(t, err)
	assert.Nil(t, p)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeNotFound, c.Outcome)
}

// Contradictory input must end in NotFound, not a crash.
func TestSessionContradictoryAnswers(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "DARK", Race: "Dragon"},
		{Name: "C", Type: "Spell"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)
	assert.Equal(t, "monster?", p.Question.Prompt)

	// Monsters only: A and B survive, both DARK.
	p, c, err := s.SubmitAnswer(p.Turn, AnswerYes)
	require.NoError(t, err)
	// dark? cannot split A from B, so no question remains that splits;
	// with DontKnow unreachable the session concludes ambiguous.
	require.Nil(t, p)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeAmbiguous, c.Outcome)
}

func TestSessionDontKnowLeavesCandidatesUntouched(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Spell"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)
	before := s.Candidates()

	p2, c, err := s.SubmitAnswer(p.Turn, AnswerDontKnow)
	require.NoError(t, err)
	require.Nil(t, c)
	require.NotNil(t, p2)

	// Candidate set unchanged, but the first question is spent.
	assert.Equal(t, before, s.Candidates())
	assert.NotEqual(t, p.Question.Prompt, p2.Question.Prompt)
	assert.Len(t, s.Steps(), 1)
}

// A question, once asked, never comes back in the same session.
func TestSessionNeverRepeatsQuestions(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK", Race: "Dragon"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT", Race: "Spellcaster"},
		{Name: "C", Type: "Spell"},
		{Name: "D", Type: "Trap"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
		{Prompt: "dragon?", Field: FieldRace, Expected: "Dragon"},
		{Prompt: "spell?", Field: FieldType, Expected: "Spell"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	seen := map[string]bool{}
	p, c := s.NextPrompt()
	for c == nil {
		require.NotNil(t, p)
		require.False(t, seen[p.Question.Prompt], "question %q repeated", p.Question.Prompt)
		seen[p.Question.Prompt] = true
		p, c, err = s.SubmitAnswer(p.Turn, AnswerDontKnow)
		require.NoError(t, err)
	}
	require.NotNil(t, c)
}

// Consistency invariant: every surviving candidate agrees with every
// yes/no step in the log.
func TestSessionInvariantAfterAnswerSequences(t *testing.T) {
	pool := []Candidate{
		{Name: "Dark Magician", Type: "Normal Monster", Attribute: "DARK", Race: "Spellcaster", Level: 7, HasLevel: true, ATK: 2500, HasATK: true},
		{Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Attribute: "LIGHT", Race: "Dragon", Level: 8, HasLevel: true, ATK: 3000, HasATK: true},
		{Name: "Mirror Force", Type: "Trap"},
		{Name: "Pot of Greed", Type: "Spell"},
		{Name: "Kuriboh", Type: "Effect Monster", Attribute: "DARK", Race: "Fiend", Level: 1, HasLevel: true, ATK: 300, HasATK: true},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
		{Prompt: "dragon?", Field: FieldRace, Expected: "Dragon"},
		{Prompt: "trap?", Field: FieldType, Expected: "Trap"},
	}

	sequences := [][]Answer{
		{AnswerYes, AnswerYes},
		{AnswerYes, AnswerNo},
		{AnswerNo, AnswerYes},
		{AnswerNo, AnswerNo},
		{AnswerDontKnow, AnswerYes, AnswerNo},
	}

	for _, seq := range sequences {
		r := newTestRegistry()
		s, err := r.Start("chan1", pool, bank)
		require.NoError(t, err)

		p, c := s.NextPrompt()
		for _, a := range seq {
			if c != nil {
				break
			}
			require.NotNil(t, p)
			p, c, err = s.SubmitAnswer(p.Turn, a)
			require.NoError(t, err)
			assertConsistent(t, s)
		}
	}
}

func assertConsistent(t *testing.T, s *Session) {
	t.Helper()
	for _, c := range s.Candidates() {
		for _, step := range s.Steps() {
			switch step.Answer {
			case AnswerYes:
				assert.True(t, Matches(c, step.Question),
					"candidate %q inconsistent with yes on %q", c.Name, step.Question.Prompt)
			case AnswerNo:
				assert.False(t, Matches(c, step.Question),
					"candidate %q inconsistent with no on %q", c.Name, step.Question.Prompt)
			}
		}
	}
}

// Monotonic shrink: yes/no never grows the set, and a presented question
// always has a non-trivial split so it strictly shrinks it.
func TestSessionMonotonicShrink(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Spell"},
		{Name: "D", Type: "Trap"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
		{Prompt: "spell?", Field: FieldType, Expected: "Spell"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	prev := len(s.Candidates())
	p, c := s.NextPrompt()
	for c == nil {
		require.NotNil(t, p)
		p, c, err = s.SubmitAnswer(p.Turn, AnswerYes)
		require.NoError(t, err)
		cur := len(s.Candidates())
		assert.Less(t, cur, prev, "yes on a presented question must strictly shrink the set")
		prev = cur
	}
}

// Termination: when every pair of candidates is separated by some
// question, yes/no play narrows to at most one within |bank| rounds.
func TestSessionTerminates(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Spell"},
		{Name: "D", Type: "Trap"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
		{Prompt: "spell?", Field: FieldType, Expected: "Spell"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	rounds := 0
	p, c := s.NextPrompt()
	for c == nil {
		require.NotNil(t, p)
		rounds++
		require.LessOrEqual(t, rounds, len(bank))
		// Always answer truthfully for candidate A.
		a := AnswerNo
		if Matches(pool[0], p.Question) {
			a = AnswerYes
		}
		p, c, err = s.SubmitAnswer(p.Turn, a)
		require.NoError(t, err)
	}

	require.NotNil(t, c)
	assert.Equal(t, OutcomeFound, c.Outcome)
	assert.Equal(t, "A", c.Guess.Name)
}

func TestSessionBudgetExhaustionIsAmbiguous(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Spell"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
	}

	r := NewRegistry(Options{QuestionBudget: 1})
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)

	_, c, err := s.SubmitAnswer(p.Turn, AnswerYes)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeAmbiguous, c.Outcome)
	assert.Len(t, c.Remaining, 2)
}

func TestSessionStaleAnswerRejected(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Spell"},
	}
	bank := []Question{
		{Prompt: "monster?", Field: FieldType, Expected: "Monster"},
		{Prompt: "dark?", Field: FieldAttribute, Expected: "DARK"},
	}

	r := newTestRegistry()
	s, err := r.Start("chan1", pool, bank)
	require.NoError(t, err)

	p, _ := s.NextPrompt()
	require.NotNil(t, p)

	p2, _, err := s.SubmitAnswer(p.Turn, AnswerYes)
	require.NoError(t, err)
	require.NotNil(t, p2)

	// Replaying the first turn's answer must not advance the session.
	_, _, err = s.SubmitAnswer(p.Turn, AnswerNo)
	assert.ErrorIs(t, err, ErrStaleAnswer)
	assert.Equal(t, StateAwaitingAnswer, s.State())
}

func TestSessionCancelIsAbandoned(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Start("chan1", smallPool(), []Question{monsterQuestion()})
	require.NoError(t, err)

	s.NextPrompt()
	c := s.Cancel()
	require.NotNil(t, c)
	assert.Equal(t, OutcomeAbandoned, c.Outcome)

	// Cancel is idempotent.
	assert.Equal(t, c, s.Cancel())

	// Slot released: the same channel can start again.
	_, err = r.Start("chan1", smallPool(), []Question{monsterQuestion()})
	assert.NoError(t, err)
}

func TestSessionDeadlineExpiry(t *testing.T) {
	r := NewRegistry(Options{AnswerTimeout: time.Minute})
	s, err := r.Start("chan1", smallPool(), []Question{monsterQuestion()})
	require.NoError(t, err)

	// No deadline before a question is pending.
	assert.False(t, s.ExpireIfOverdue(time.Now().Add(time.Hour)))

	s.NextPrompt()
	assert.False(t, s.ExpireIfOverdue(time.Now()))
	assert.True(t, s.ExpireIfOverdue(time.Now().Add(2*time.Minute)))

	c := s.Conclusion()
	require.NotNil(t, c)
	assert.Equal(t, OutcomeAbandoned, c.Outcome)
	assert.Equal(t, 0, r.Len())
}
