package help

import (
	"cardpal/internal/utils"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

// helpCommandsEmbed creates the main help embed showing all available commands
func helpCommandsEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🃏 CardPal - Help",
		Description: "A Yu-Gi-Oh! companion for your server: card lookups, guessing games and trivia.",
		Color:       utils.Colors.Info(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🤖 Available Commands:",
				Inline: false,
			},
			{
				Name:   "/ping",
				Value:  "Check if the bot is responsive",
				Inline: false,
			},
			{
				Name:   "/card",
				Value:  "Look up a Yu-Gi-Oh! card\n• Use `/card name:CardName` to search (with autocomplete)",
				Inline: false,
			},
			{
				Name: "/guess",
				Value: heredoc.Doc(`
					Think of a card and I'll guess it in 20 questions or fewer
					• Answer with the Yes / No / Don't know buttons
					• One game per channel at a time; Give up ends it
				`),
				Inline: false,
			},
			{
				Name: "/trivia",
				Value: heredoc.Doc(`
					Name the card from its text
					• Use ` + "`/trivia play`" + ` to start a round
					• Use ` + "`/trivia leaderboard`" + ` for the top streaks
				`),
				Inline: false,
			},
			{
				Name: "/tournament",
				Value: heredoc.Doc(`
					Manage the community tournament schedule
					• ` + "`/tournament add name:X when:\"next saturday 7pm\"`" + `
					• ` + "`/tournament list`" + ` and ` + "`/tournament remove id:N`" + `
				`),
				Inline: false,
			},
			{
				Name:   "/profile",
				Value:  "Show a player's stats with `/profile show`, set your favorite card with `/profile favorite`",
				Inline: false,
			},
			{
				Name:   "/time",
				Value:  "Convert a date/time to Discord timestamps\n• Use `/time datetime:\"next saturday 7pm\"`",
				Inline: false,
			},
			{
				Name:   "/help",
				Value:  "Show this help message",
				Inline: false,
			},
			{
				Name:   "🛠️ Moderator Commands:",
				Inline: false,
			},
			{
				Name:   "/status",
				Value:  "Update the bot's presence with `/status set`, or check health with `/status info`",
				Inline: false,
			},
			{
				Name:   "/config",
				Value:  "View and update bot configuration (SuperAdmin only)",
				Inline: false,
			},
			{
				Name:   "💡 Tip",
				Value:  "Mention a card inline with `<<Card Name>>` in any message and I'll post it.",
				Inline: false,
			},
		},
	}
}
