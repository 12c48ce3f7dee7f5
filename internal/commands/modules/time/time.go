package time

import (
	"fmt"
	"strings"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// TimeModule converts natural-language dates into Discord timestamps.
// Handy for announcing duels and locals across timezones.
type TimeModule struct{}

// New creates a new time module
func New(deps *types.Dependencies) *TimeModule {
	return &TimeModule{}
}

// Register adds the time command to the command map
func (m *TimeModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["time"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "time",
			Description: "Convert a date/time to Discord timestamps",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "datetime",
					Description: "Natural language date/time",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "full",
					Description: "Show all timestamp format options",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleTime,
	}
}

// Service returns nil; this module has no background services
func (m *TimeModule) Service() types.ModuleService { return nil }

// handleTime handles the /time command
func (m *TimeModule) handleTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 || options[0].StringValue() == "" {
		_ = utils.RespondEphemeral(s, i, "❌ Please provide a date/time to parse.")
		return
	}
	dateString := options[0].StringValue()

	fullOutput := false
	if len(options) > 1 {
		fullOutput = options[1].BoolValue()
	}

	parsedUnixTime, err := utils.ParseUnixTimestamp(dateString)
	if err != nil {
		embed := &discordgo.MessageEmbed{
			Title:       "❌ Parse Error",
			Description: fmt.Sprintf("Failed to parse date/time: `%s`", dateString),
			Color:       utils.Colors.Error(),
			Fields: []*discordgo.MessageEmbedField{
				{
					Name: "📋 Supported Formats",
					Value: "• `15:04 MDT` (time only, assumes today)\n" +
						"• `3:04 PM PDT` (time only, assumes today)\n" +
						"• `2006-01-02 15:04:05 EST`\n" +
						"• `next saturday 7pm`\n" +
						"• `in 2 hours`\n" +
						"• `January 2, 2006 3:04 PM PDT`",
					Inline: false,
				},
			},
		}
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
				Flags:  discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	// Create different Discord timestamp formats
	discordTimestamps := map[string]string{
		"Default":         fmt.Sprintf("<t:%d>", parsedUnixTime),
		"Short Time":      fmt.Sprintf("<t:%d:t>", parsedUnixTime),
		"Long Time":       fmt.Sprintf("<t:%d:T>", parsedUnixTime),
		"Short Date":      fmt.Sprintf("<t:%d:d>", parsedUnixTime),
		"Long Date":       fmt.Sprintf("<t:%d:D>", parsedUnixTime),
		"Short Date/Time": fmt.Sprintf("<t:%d:f>", parsedUnixTime),
		"Long Date/Time":  fmt.Sprintf("<t:%d:F>", parsedUnixTime),
		"Relative Time":   fmt.Sprintf("<t:%d:R>", parsedUnixTime),
	}

	if !fullOutput {
		msgBody := fmt.Sprintf("\"`%s`\" is %s at %s\n",
			dateString,
			discordTimestamps["Relative Time"],
			discordTimestamps["Long Date/Time"])
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: msgBody},
		})
		return
	}

	embed := utils.NewEmbed()
	embed.Title = "🕰️ Timestamp conversion"
	embed.Description = fmt.Sprintf("%s is %s\n_Converted from `%s`_",
		discordTimestamps["Long Date/Time"],
		discordTimestamps["Relative Time"],
		dateString)

	formatOrder := []string{"Default", "Short Time", "Long Time", "Short Date", "Long Date", "Short Date/Time", "Long Date/Time", "Relative Time"}
	var formatsList strings.Builder
	for _, format := range formatOrder {
		formatsList.WriteString(fmt.Sprintf("• **%s**: `%s` → %s\n", format, discordTimestamps[format], discordTimestamps[format]))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📋 Available Discord Timestamp Formats",
		Value:  formatsList.String(),
		Inline: false,
	})

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}
