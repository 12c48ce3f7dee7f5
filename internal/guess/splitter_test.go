package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monsterQuestion() Question {
	return Question{Prompt: "Is it a Monster card?", Field: FieldType, Expected: "Monster"}
}

func smallPool() []Candidate {
	return []Candidate{
		{Name: "A", Type: "Monster"},
		{Name: "B", Type: "Spell"},
		{Name: "C", Type: "Monster"},
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		question  Question
		want      bool
	}{
		{
			name:      "substring match is case-insensitive",
			candidate: Candidate{Name: "Dark Magician", Type: "Normal Monster"},
			question:  Question{Prompt: "q", Field: FieldType, Expected: "monster"},
			want:      true,
		},
		{
			name:      "absent string field never matches",
			candidate: Candidate{Name: "Pot of Greed", Type: "Spell"},
			question:  Question{Prompt: "q", Field: FieldAttribute, Expected: "DARK"},
			want:      false,
		},
		{
			name:      "numeric field with explicit presence",
			candidate: Candidate{Name: "Kuriboh", Type: "Monster", Level: 1, HasLevel: true},
			question:  Question{Prompt: "q", Field: FieldLevel, Expected: "1"},
			want:      true,
		},
		{
			name:      "zero ATK matches only when present",
			candidate: Candidate{Name: "statless", Type: "Monster"},
			question:  Question{Prompt: "q", Field: FieldATK, Expected: "0"},
			want:      false,
		},
		{
			name:      "unknown field never matches",
			candidate: Candidate{Name: "A", Type: "Monster"},
			question:  Question{Prompt: "q", Field: Field("banlist"), Expected: "x"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.candidate, tt.question))
		})
	}
}

func TestSplit(t *testing.T) {
	yes, no := Split(smallPool(), monsterQuestion())
	require.Len(t, yes, 2)
	require.Len(t, no, 1)
	assert.Equal(t, "A", yes[0].Name)
	assert.Equal(t, "C", yes[1].Name)
	assert.Equal(t, "B", no[0].Name)
}

func TestSelectNextPicksMinimaxSplit(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Monster", Attribute: "LIGHT"},
		{Name: "C", Type: "Monster", Attribute: "DARK"},
		{Name: "D", Type: "Spell"},
	}
	bank := []Question{
		// 3/1 split, worst case 3
		{Prompt: "Is it a Monster card?", Field: FieldType, Expected: "Monster"},
		// 2/2 split, worst case 2 -- the minimax pick
		{Prompt: "Is it a DARK card?", Field: FieldAttribute, Expected: "DARK"},
	}

	got := SelectNext(pool, bank)
	require.NotNil(t, got)
	assert.Equal(t, "Is it a DARK card?", got.Prompt)
}

func TestSelectNextSkipsTrivialSplits(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster"},
		{Name: "B", Type: "Monster"},
	}
	bank := []Question{
		// Everyone agrees: no information, must be skipped.
		{Prompt: "Is it a Monster card?", Field: FieldType, Expected: "Monster"},
		// Nobody matches: same.
		{Prompt: "Is it a Trap card?", Field: FieldType, Expected: "Trap"},
	}

	assert.Nil(t, SelectNext(pool, bank))
}

func TestSelectNextTieBreaksByBankOrder(t *testing.T) {
	pool := []Candidate{
		{Name: "A", Type: "Monster", Attribute: "DARK"},
		{Name: "B", Type: "Spell", Attribute: "LIGHT"},
	}
	// Both questions produce a 1/1 split; the first one in bank order wins.
	bank := []Question{
		{Prompt: "first", Field: FieldType, Expected: "Monster"},
		{Prompt: "second", Field: FieldAttribute, Expected: "DARK"},
	}

	got := SelectNext(pool, bank)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Prompt)
}

func TestSelectNextEmptyInputs(t *testing.T) {
	assert.Nil(t, SelectNext(nil, []Question{monsterQuestion()}))
	assert.Nil(t, SelectNext(smallPool(), nil))
}
