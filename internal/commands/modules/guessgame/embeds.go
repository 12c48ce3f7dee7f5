package guessgame

import (
	"fmt"
	"strings"

	"cardpal/internal/guess"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// newQuestionEmbed renders the pending question with progress info.
func newQuestionEmbed(p *guess.Prompt) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔮 Guess the card",
		Description: p.Question.Prompt,
		Color:       utils.Colors.Fancy(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Question %d of %d • %d cards still possible", p.Asked, p.Budget, p.Remaining),
		},
	}
}

// answerButtons builds the component row for a prompt. The turn is baked
// into each custom ID so a click for an old question can be rejected.
func answerButtons(turn int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("guess:yes:%d", turn),
				},
				discordgo.Button{
					Label:    "No",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("guess:no:%d", turn),
				},
				discordgo.Button{
					Label:    "Don't know",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("guess:idk:%d", turn),
				},
				discordgo.Button{
					Label:    "Give up",
					Style:    discordgo.SecondaryButton,
					CustomID: "guess:stop",
				},
			},
		},
	}
}

// newConclusionEmbed renders a terminal outcome.
func newConclusionEmbed(c *guess.Conclusion) *discordgo.MessageEmbed {
	switch c.Outcome {
	case guess.OutcomeFound:
		return &discordgo.MessageEmbed{
			Title:       "✨ Got it!",
			Description: fmt.Sprintf("Your card is **%s**.", c.Guess.Name),
			Color:       utils.Colors.Ok(),
		}
	case guess.OutcomeAmbiguous:
		names := make([]string, 0, len(c.Remaining))
		for idx, cand := range c.Remaining {
			if idx == 5 {
				names = append(names, fmt.Sprintf("…and %d more", len(c.Remaining)-idx))
				break
			}
			names = append(names, "**"+cand.Name+"**")
		}
		return &discordgo.MessageEmbed{
			Title: "🤔 Best guess",
			Description: fmt.Sprintf("I couldn't narrow it down to one card. My top pick is %s, but these still match:\n%s",
				names[0], strings.Join(names, "\n")),
			Color: utils.Colors.Warning(),
		}
	case guess.OutcomeNotFound:
		return &discordgo.MessageEmbed{
			Title:       "💀 You got me",
			Description: "No card matches all of your answers. Either it isn't in my pool, or one of the answers was off.",
			Color:       utils.Colors.Error(),
		}
	default:
		return newTimeoutEmbed()
	}
}

// newTimeoutEmbed covers abandoned and timed-out games.
func newTimeoutEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏰ Game over",
		Description: "The guessing game was abandoned. Start a new one with `/guess`.",
		Color:       utils.Colors.Info(),
	}
}
