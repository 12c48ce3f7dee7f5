package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBank(t *testing.T) {
	raw := []byte(`
questions:
  - prompt: "Is it a Monster card?"
    field: type
    expected: Monster
  - prompt: "Is it DARK?"
    field: attribute
    expected: DARK
`)

	bank, err := ParseBank(raw)
	require.NoError(t, err)
	require.Len(t, bank, 2)
	assert.Equal(t, "Is it a Monster card?", bank[0].Prompt)
	assert.Equal(t, FieldType, bank[0].Field)
	assert.Equal(t, "Monster", bank[0].Expected)
	assert.Equal(t, FieldAttribute, bank[1].Field)
}

func TestParseBankValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "empty bank",
			raw:  `questions: []`,
		},
		{
			name: "missing prompt",
			raw: `
questions:
  - field: type
    expected: Monster
`,
		},
		{
			name: "missing expected",
			raw: `
questions:
  - prompt: "Is it a Monster card?"
    field: type
`,
		},
		{
			name: "unknown field",
			raw: `
questions:
  - prompt: "Is it banned?"
    field: banlist
    expected: "yes"
`,
		},
		{
			name: "not yaml",
			raw:  `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
