package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRequiresBotToken(t *testing.T) {
	t.Setenv("CARDPAL_BOT_TOKEN", "")
	t.Setenv("CARDPAL_LOG_DIR", t.TempDir())

	_, err := NewConfig()
	require.Error(t, err)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("CARDPAL_BOT_TOKEN", "test_token")
	t.Setenv("CARDPAL_LOG_DIR", t.TempDir())

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.GetBotToken())
	// Defaults kick in for everything else.
	assert.Equal(t, "./cardpal.db", cfg.GetDatabasePath())
	assert.Equal(t, "./questions.yaml", cfg.GetQuestionBankPath())
	assert.Equal(t, "https://db.ygoprodeck.com/api/v7", cfg.GetYGOProDeckBaseURL())
	assert.Equal(t, 12, cfg.GetGuessQuestionBudget())
	assert.Equal(t, 90*time.Second, cfg.GetGuessAnswerTimeout())
	assert.Equal(t, 64, cfg.GetGuessMaxSessions())
}

func TestNewMockConfig(t *testing.T) {
	cfg := NewMockConfig(map[string]interface{}{
		"bot_token":             "mock",
		"guess_question_budget": 5,
	})

	assert.Equal(t, "mock", cfg.GetBotToken())
	assert.Equal(t, 5, cfg.GetGuessQuestionBudget())
	require.NotNil(t, cfg.Logger)
}
