package profile

import (
	"fmt"

	"cardpal/internal/database"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

func newProfileEmbed(userID string, p *database.Profile, streak *database.Streak) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "👤 Player profile",
		Description: fmt.Sprintf("Stats for <@%s>", userID),
		Color:       utils.Colors.Fancy(),
	}

	if p == nil && streak == nil {
		embed.Description += "\n\nNothing here yet. Play `/guess` or `/trivia play` to get on the board!"
		return embed
	}

	guessWins, triviaWins := 0, 0
	favorite := "—"
	if p != nil {
		guessWins = p.GuessWins
		triviaWins = p.TriviaWins
		if p.FavoriteCard != "" {
			favorite = p.FavoriteCard
		}
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Guess wins", Value: fmt.Sprintf("%d", guessWins), Inline: true},
		{Name: "Trivia wins", Value: fmt.Sprintf("%d", triviaWins), Inline: true},
		{Name: "Favorite card", Value: favorite, Inline: true},
	}
	if streak != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Trivia streak",
			Value:  fmt.Sprintf("current %d, best %d", streak.Current, streak.Best),
			Inline: true,
		})
	}
	return embed
}
