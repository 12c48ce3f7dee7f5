package config

import "time"

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

func (c *Config) GetDatabasePath() string {
	return c.v.GetString("database_path")
}

func (c *Config) GetLogDir() string {
	return c.v.GetString("log_dir")
}

// GetLogChannelID returns the channel where bot activity embeds are mirrored.
func (c *Config) GetLogChannelID() string {
	return c.v.GetString("log_channel_id")
}

func (c *Config) GetServerID() string {
	return c.v.GetString("server_id")
}

// GetSuperAdmins returns the user IDs allowed to use owner-level commands.
func (c *Config) GetSuperAdmins() []string {
	superAdmins := c.v.GetStringSlice("super_admins")
	if len(superAdmins) == 0 {
		return nil
	}
	return superAdmins
}

// GetTournamentChannelID returns the channel for tournament reminders.
func (c *Config) GetTournamentChannelID() string {
	return c.v.GetString("tournament_channel_id")
}

// Guessing game
// -----

func (c *Config) GetQuestionBankPath() string {
	return c.v.GetString("question_bank_path")
}

func (c *Config) GetGuessQuestionBudget() int {
	return c.v.GetInt("guess_question_budget")
}

func (c *Config) GetGuessAnswerTimeout() time.Duration {
	return c.v.GetDuration("guess_answer_timeout")
}

func (c *Config) GetGuessMaxSessions() int {
	return c.v.GetInt("guess_max_sessions")
}

// Card data
// -----

func (c *Config) GetYGOProDeckBaseURL() string {
	return c.v.GetString("ygoprodeck_base_url")
}

func (c *Config) GetCardCacheRefreshInterval() time.Duration {
	return c.v.GetDuration("card_cache_refresh_interval")
}

// GetGuessArchetype limits the guessing pool to one archetype when set;
// an unbounded pool makes twenty questions hopeless.
func (c *Config) GetGuessArchetype() string {
	return c.v.GetString("guess_archetype")
}

func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
	if err := c.v.WriteConfig(); err != nil {
		c.Logger.Warnf("failed to write config for key %s: %v", key, err)
	}
}

// GetString returns the string value for a given config key
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}
