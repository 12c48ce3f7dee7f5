package trivia

import (
	"fmt"
	"strings"

	"cardpal/internal/database"
	"cardpal/internal/utils"
	"cardpal/internal/ygoprodeck"

	"github.com/bwmarrin/discordgo"
)

// newRoundEmbed shows the card text with the name censored.
func newRoundEmbed(card *ygoprodeck.Card) *discordgo.MessageEmbed {
	text := redactName(card.Desc, card.Name)
	if len(text) > 1024 {
		text = text[:1021] + "..."
	}
	return &discordgo.MessageEmbed{
		Title:       "🧠 Name the card",
		Description: fmt.Sprintf("Which card has this text?\n\n>>> %s", text),
		Color:       utils.Colors.Fancy(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "First correct answer wins • rounds expire after 5 minutes",
		},
	}
}

// newCorrectEmbed announces the winner and their streak.
func newCorrectEmbed(userID, answer string, streak *database.Streak) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("<@%s> got it: **%s**!", userID, answer)
	if streak != nil {
		desc += fmt.Sprintf("\n\n🔥 Streak: **%d** (best: %d)", streak.Current, streak.Best)
	}
	return &discordgo.MessageEmbed{
		Title:       "✅ Correct!",
		Description: desc,
		Color:       utils.Colors.Ok(),
	}
}

// newRoundExpiredEmbed reveals the answer of an unsolved round.
func newRoundExpiredEmbed(card *ygoprodeck.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "⏰ Time's up!",
		Description: fmt.Sprintf("Nobody named the card. It was **%s**.", card.Name),
		Color:       utils.Colors.Info(),
	}
	if url := card.ImageURL(); url != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
	}
	return embed
}

// newLeaderboardEmbed renders the top streaks.
func newLeaderboardEmbed(streaks []database.Streak) *discordgo.MessageEmbed {
	if len(streaks) == 0 {
		return utils.NewNoResultsEmbed("Nobody has played trivia yet. Be the first with `/trivia play`!")
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for idx, s := range streaks {
		rank := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			rank = medals[idx]
		}
		fmt.Fprintf(&b, "%s <@%s> — best streak **%d**, current %d\n", rank, s.UserID, s.Best, s.Current)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Trivia leaderboard",
		Description: b.String(),
		Color:       utils.Colors.Fancy(),
	}
}
