package guess

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Question is a yes/no filter over one candidate field. Questions are
// immutable once loaded; a session tracks which ones it has spent.
type Question struct {
	Prompt   string `mapstructure:"prompt"`
	Field    Field  `mapstructure:"field"`
	Expected string `mapstructure:"expected"`
}

// LoadBank reads a question bank from a YAML file. The bank is
// configuration, not runtime state: any missing or malformed entry
// fails the whole load.
func LoadBank(path string) ([]Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return ParseBank(raw)
}

// ParseBank parses and validates YAML question bank contents.
func ParseBank(raw []byte) ([]Question, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	var bank struct {
		Questions []Question `mapstructure:"questions"`
	}
	if err := v.Unmarshal(&bank); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}

	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	for i, q := range bank.Questions {
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d: missing prompt", i)
		}
		if q.Expected == "" {
			return nil, fmt.Errorf("question %d (%q): missing expected value", i, q.Prompt)
		}
		if !KnownField(q.Field) {
			return nil, fmt.Errorf("question %d (%q): unknown field %q", i, q.Prompt, q.Field)
		}
	}

	return bank.Questions, nil
}
