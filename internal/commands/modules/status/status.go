package status

import (
	"fmt"
	"time"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// StatusModule provides /status for mods: update the bot's presence
// text, or show bot/database/cache health.
type StatusModule struct {
	deps *types.Dependencies
}

// New creates a new status module
func New(deps *types.Dependencies) *StatusModule { return &StatusModule{deps: deps} }

// Register registers /status.
func (m *StatusModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator

	cmds["status"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "status",
			Description:              "Bot status (mod only)",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Update the bot's presence text",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "Status text to display (activity)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show bot, database and card cache health",
				},
			},
		},
		HandlerFunc: m.handleStatus,
	}
}

// Service returns nil; this module has no background services
func (m *StatusModule) Service() types.ModuleService { return nil }

func (m *StatusModule) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "set":
		m.handleSet(s, i, options[0].Options)
	case "info":
		m.handleInfo(s, i)
	}
}

// handleSet updates the presence text.
func (m *StatusModule) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var text string
	for _, opt := range opts {
		if opt.Name == "text" {
			text = opt.StringValue()
			break
		}
	}

	if text == "" {
		_ = utils.RespondEphemeral(s, i, "❌ You must provide status text.")
		return
	}

	if len([]rune(text)) > 128 { // Discord activity name limit safeguard
		_ = utils.RespondEphemeral(s, i, "❌ Status text must be 128 characters or fewer.")
		return
	}

	// Log the attempt and who requested it
	mentionText := "Member"
	if i.Member != nil {
		mentionText = i.Member.User.Mention()
	}
	m.deps.Config.Logger.Infof("Updating status to: %s (requested by: %s)", text, mentionText)

	if err := s.UpdateGameStatus(0, text); err != nil {
		_ = utils.RespondEphemeral(s, i, "❌ Failed to update status: "+err.Error())
		return
	}

	_ = utils.RespondEphemeral(s, i, "✅ Status updated successfully.")
}

// handleInfo shows bot, database and card cache health in one embed.
func (m *StatusModule) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "📊 CardPal status",
		Color: utils.Colors.Info(),
	}

	cacheStats := m.deps.CardCache.Stats()
	lastRefresh := "never"
	if !cacheStats.LastRefresh.IsZero() {
		lastRefresh = fmt.Sprintf("<t:%d:R>", cacheStats.LastRefresh.Unix())
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Card cache",
		Value: fmt.Sprintf("%d cards • refreshed %s • %d lookups (%d misses) • %d refresh errors",
			cacheStats.Cards, lastRefresh, cacheStats.Lookups, cacheStats.LookupMisses, cacheStats.RefreshErrs),
		Inline: false,
	})

	if m.deps.DB != nil {
		dbStats, err := m.deps.DB.GetStats()
		if err != nil {
			m.deps.Config.Logger.Warnf("failed to load database stats: %v", err)
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "Database", Value: "unavailable", Inline: false,
			})
		} else {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "Database",
				Value: fmt.Sprintf("%v profiles • %v trivia streaks • %v tournaments",
					dbStats["profiles"], dbStats["streaks"], dbStats["tournaments"]),
				Inline: false,
			})
		}
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Database", Value: "not connected", Inline: false,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Games",
		Value:  fmt.Sprintf("%d guessing games in progress", m.deps.GuessSessions.Len()),
		Inline: false,
	})

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "Checked " + time.Now().UTC().Format(time.RFC1123),
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
