package config

import (
	"slices"

	"cardpal/internal/commands/types"
	"cardpal/internal/config"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// ConfigModule implements the CommandModule interface for the config command
type ConfigModule struct {
	config *config.Config
}

// New creates a new config module
func New(deps *types.Dependencies) *ConfigModule {
	return &ConfigModule{config: deps.Config}
}

// Register adds the config command to the command map
func (m *ConfigModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator

	cmds["config"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "config",
			Description:              "Bot configuration commands (SuperAdmin only)",
			DefaultMemberPermissions: &adminPerms,
			Contexts:                 &[]discordgo.InteractionContextType{discordgo.InteractionContextBotDM, discordgo.InteractionContextPrivateChannel},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set a configuration value",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Configuration key",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "value",
							Description: "Configuration value",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list-keys",
					Description: "List all available configuration keys",
				},
			},
		},
		HandlerFunc: m.handleConfig,
	}
}

func (m *ConfigModule) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := ""
	if i.User != nil {
		userID = i.User.ID
	} else if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}

	if !utils.IsSuperAdmin(userID, m.config) {
		_ = utils.RespondEphemeral(s, i, "❌ You do not have permission to use this command.")
		return
	}

	for _, option := range i.ApplicationCommandData().Options {
		switch option.Name {
		case "set":
			var key, value string
			for _, subOption := range option.Options {
				switch subOption.Name {
				case "key":
					key = subOption.StringValue()
				case "value":
					value = subOption.StringValue()
				}
			}
			m.handleConfigSet(s, i, key, value)
		case "list-keys":
			m.handleConfigListKeys(s, i)
		}
	}
}

func (m *ConfigModule) handleConfigSet(s *discordgo.Session, i *discordgo.InteractionCreate, key, value string) {
	if key == "" || value == "" {
		_ = utils.RespondEphemeral(s, i, "❌ Invalid key or value provided.")
		return
	}

	forbiddenKeys := []string{"super_admins", "bot_token"}
	if slices.Contains(forbiddenKeys, key) {
		_ = utils.RespondEphemeral(s, i, "❌ You cannot modify this configuration key.")
		return
	}

	// Set the configuration value
	m.config.Set(key, value)

	_ = utils.RespondEphemeral(s, i, "✅ Configuration updated successfully.")
}

func (m *ConfigModule) handleConfigListKeys(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// List of configuration keys with their current values
	// Note: sensitive keys like tokens are excluded from showing values

	type configItem struct {
		key       string
		showValue bool
	}

	configItems := []configItem{
		{"bot_token", false},    // Token, don't show value
		{"super_admins", false}, // Sensitive, don't show value
		{"server_id", true},
		{"log_channel_id", true},
		{"tournament_channel_id", true},
		{"database_path", true},
		{"log_dir", true},
		{"question_bank_path", true},
		{"ygoprodeck_base_url", true},
		{"guess_archetype", true},
		{"guess_question_budget", true},
		{"guess_answer_timeout", true},
		{"guess_max_sessions", true},
		{"card_cache_refresh_interval", true},
	}

	// Format the keys into a readable list
	var keysList string
	for _, item := range configItems {
		if item.showValue {
			value := m.config.GetString(item.key)
			if value == "" {
				value = "(not set)"
			}
			keysList += "• `" + item.key + "`: `" + value + "`\n"
		} else {
			keysList += "• `" + item.key + "`: *(hidden)*\n"
		}
	}

	content := "📋 **Available Configuration Keys:**\n\n" + keysList + "\n*Use `/config set <key> <value>` to modify any of these keys.*"

	_ = utils.RespondEphemeral(s, i, content)
}

// Service returns nil as this module has no services requiring initialization
func (m *ConfigModule) Service() types.ModuleService {
	return nil
}
