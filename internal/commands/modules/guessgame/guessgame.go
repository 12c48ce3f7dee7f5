package guessgame

import (
	"errors"
	"strconv"
	"strings"

	"cardpal/internal/commands/types"
	"cardpal/internal/guess"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// GuessModule implements the "think of a card" guessing game. The bot
// asks yes/no questions about the card the player has in mind and
// narrows the pool with every answer.
type GuessModule struct {
	deps    *types.Dependencies
	service *GuessService
}

// New creates a new guess game module
func New(deps *types.Dependencies) *GuessModule {
	return &GuessModule{
		deps:    deps,
		service: NewGuessService(deps.Config, deps.DB, deps.CardCache, deps.GuessSessions, deps.QuestionBank),
	}
}

// Register adds the guess command to the command map
func (m *GuessModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["guess"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "guess",
			Description: "Think of a Yu-Gi-Oh! card and I'll try to guess it",
		},
		HandlerFunc: m.handleGuess,
	}
}

// Service returns the guess service for scheduling and hydration
func (m *GuessModule) Service() types.ModuleService {
	return m.service
}

func (m *GuessModule) handleGuess(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Fetching the pool can hit the API on a cold cache, so defer.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.deps.Config.Logger.Errorf("failed to defer guess response: %v", err)
		return
	}

	session, prompt, err := m.service.StartGame(i.ChannelID)
	if err != nil {
		embed := utils.NewErrorEmbed("Can't start a game", startErrorMessage(err))
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		})
		return
	}

	if prompt == nil {
		// Degenerate pool: the game concluded before the first question.
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{newConclusionEmbed(session.Conclusion())},
		})
		return
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{newQuestionEmbed(prompt)},
		Components: answerButtons(prompt.Turn),
	}); err != nil {
		m.deps.Config.Logger.Errorf("failed to send guess prompt: %v", err)
		session.Cancel()
	}
}

// HandleComponent handles the yes/no/don't-know/give-up buttons. Custom
// IDs carry the turn the buttons were rendered for, so clicks on an
// outdated message are rejected instead of answering the wrong question.
func (m *GuessModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	session := m.service.SessionFor(i.ChannelID)
	if session == nil {
		_ = utils.RespondEphemeral(s, i, "That game is over. Start a new one with `/guess`.")
		return
	}

	customID := i.MessageComponentData().CustomID
	if customID == "guess:stop" {
		conclusion := session.Cancel()
		m.updateMessage(s, i, newConclusionEmbed(conclusion), nil)
		return
	}

	answer, turn, ok := parseAnswerID(customID)
	if !ok {
		_ = utils.RespondEphemeral(s, i, "I didn't understand that button.")
		return
	}

	prompt, conclusion, err := session.SubmitAnswer(turn, answer)
	if err != nil {
		if errors.Is(err, guess.ErrStaleAnswer) {
			_ = utils.RespondEphemeral(s, i, "That question has already been answered.")
		} else {
			_ = utils.RespondEphemeral(s, i, "Something went wrong with that answer.")
		}
		return
	}

	if conclusion != nil {
		if conclusion.Outcome == guess.OutcomeFound {
			m.service.RecordWin(interactionUserID(i))
		}
		m.updateMessage(s, i, newConclusionEmbed(conclusion), nil)
		return
	}

	m.updateMessage(s, i, newQuestionEmbed(prompt), answerButtons(prompt.Turn))
}

// updateMessage replaces the game message in place; nil components clear
// the buttons on a concluded game.
func (m *GuessModule) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to update guess message: %v", err)
	}
}

// parseAnswerID decodes "guess:<answer>:<turn>" button IDs.
func parseAnswerID(customID string) (guess.Answer, int, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != "guess" {
		return 0, 0, false
	}
	turn, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	switch parts[1] {
	case "yes":
		return guess.AnswerYes, turn, true
	case "no":
		return guess.AnswerNo, turn, true
	case "idk":
		return guess.AnswerDontKnow, turn, true
	}
	return 0, 0, false
}

// startErrorMessage maps session errors onto player-facing text.
func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, guess.ErrSessionActive):
		return "There's already a game running in this channel. Finish it or give up first."
	case errors.Is(err, guess.ErrRegistryFull):
		return "Too many games are running right now. Try again in a minute."
	case errors.Is(err, guess.ErrNoCandidates):
		return "I don't have any cards to guess from right now. Try again later."
	default:
		return "I couldn't fetch the card pool. Try again later."
	}
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
