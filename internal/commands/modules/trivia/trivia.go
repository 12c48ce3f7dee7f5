package trivia

import (
	"errors"
	"fmt"
	"strings"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	answerButtonID = "trivia:answer"
	guessModalID   = "trivia:guess"
	guessInputID   = "trivia:input"
)

// TriviaModule implements "name the card from its text" rounds with
// per-user streaks and a leaderboard.
type TriviaModule struct {
	deps    *types.Dependencies
	service *TriviaService
}

// New creates a new trivia module
func New(deps *types.Dependencies) *TriviaModule {
	return &TriviaModule{
		deps:    deps,
		service: NewTriviaService(deps.Config, deps.DB, deps.CardCache, deps.CardClient),
	}
}

// Register adds the trivia command to the command map
func (m *TriviaModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["trivia"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "trivia",
			Description: "Yu-Gi-Oh! card trivia",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "play",
					Description: "Start a round: name the card from its text",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the top trivia streaks",
				},
			},
		},
		HandlerFunc: m.handleTrivia,
	}
}

// Service returns the trivia service for scheduling and hydration
func (m *TriviaModule) Service() types.ModuleService {
	return m.service
}

func (m *TriviaModule) handleTrivia(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "play":
		m.handlePlay(s, i)
	case "leaderboard":
		m.handleLeaderboard(s, i)
	}
}

func (m *TriviaModule) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Drawing a card can hit the API on a cold cache, so defer.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.deps.Config.Logger.Errorf("failed to defer trivia response: %v", err)
		return
	}

	card, err := m.service.StartRound(i.ChannelID)
	if err != nil {
		msg := "I couldn't draw a card. Try again later."
		if errors.Is(err, ErrRoundActive) {
			msg = "A round is already running in this channel. Answer it first!"
		}
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{utils.NewErrorEmbed("Can't start trivia", msg)},
		})
		return
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{newRoundEmbed(card)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "I know it!",
						Style:    discordgo.PrimaryButton,
						CustomID: answerButtonID,
					},
				},
			},
		},
	}); err != nil {
		m.deps.Config.Logger.Errorf("failed to send trivia round: %v", err)
	}
}

func (m *TriviaModule) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	streaks, err := m.service.Leaderboard(10)
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to load trivia leaderboard: %v", err)
		_ = utils.RespondEphemeral(s, i, "❌ Couldn't load the leaderboard.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{newLeaderboardEmbed(streaks)},
		},
	})
}

// HandleComponent opens the answer modal for the "I know it!" button.
func (m *TriviaModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.MessageComponentData().CustomID != answerButtonID {
		return
	}

	if m.service.CurrentCard(i.ChannelID) == nil {
		_ = utils.RespondEphemeral(s, i, "That round is over. Start a new one with `/trivia play`.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: guessModalID,
			Title:    "Name the card",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    guessInputID,
							Label:       "Card name",
							Style:       discordgo.TextInputShort,
							Placeholder: "e.g. Dark Magician",
							Required:    true,
							MaxLength:   120,
						},
					},
				},
			},
		},
	})
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to open trivia modal: %v", err)
	}
}

// HandleModalSubmit scores the submitted card name.
func (m *TriviaModule) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ModalSubmitData().CustomID != guessModalID {
		return
	}

	answer := strings.TrimSpace(modalInputValue(i, guessInputID))
	if answer == "" {
		_ = utils.RespondEphemeral(s, i, "❌ Card name required.")
		return
	}

	userID := interactionUserID(i)
	correct, streak, err := m.service.ScoreAnswer(i.ChannelID, userID, answer)
	if err != nil {
		if errors.Is(err, ErrNoRound) {
			_ = utils.RespondEphemeral(s, i, "Too late, that round is already over.")
			return
		}
		m.deps.Config.Logger.Errorf("failed to score trivia answer: %v", err)
	}

	if !correct {
		msg := fmt.Sprintf("❌ **%s** is not it. Your streak is back to zero.", answer)
		if streak == nil {
			msg = fmt.Sprintf("❌ **%s** is not it. Try again!", answer)
		}
		_ = utils.RespondEphemeral(s, i, msg)
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{newCorrectEmbed(userID, answer, streak)},
		},
	})
}

// modalInputValue extracts a text input value from a modal submission.
// Handles both value and pointer forms of ActionsRow.
func modalInputValue(i *discordgo.InteractionCreate, inputID string) string {
	for _, comp := range i.ModalSubmitData().Components {
		var row *discordgo.ActionsRow
		switch v := comp.(type) {
		case discordgo.ActionsRow:
			row = &v
		case *discordgo.ActionsRow:
			row = v
		default:
			continue
		}
		for _, inner := range row.Components {
			if ti, ok := inner.(*discordgo.TextInput); ok && ti.CustomID == inputID {
				return ti.Value
			}
		}
	}
	return ""
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
