package profile

import (
	"fmt"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// ProfileModule shows per-user stats (guess wins, trivia streaks,
// favorite card) and lets users set their favorite card.
type ProfileModule struct {
	deps *types.Dependencies
}

// New creates a new profile module
func New(deps *types.Dependencies) *ProfileModule {
	return &ProfileModule{deps: deps}
}

// Register adds the profile command to the command map
func (m *ProfileModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["profile"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "profile",
			Description: "Player profiles and stats",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show a player's profile",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Whose profile to show (defaults to you)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "favorite",
					Description: "Set your favorite card",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "card",
							Description: "The card's name",
							Required:    true,
						},
					},
				},
			},
		},
		HandlerFunc: m.handleProfile,
	}
}

// Service returns nil; this module has no background services
func (m *ProfileModule) Service() types.ModuleService { return nil }

func (m *ProfileModule) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if m.deps.DB == nil {
		_ = utils.RespondEphemeral(s, i, "❌ Profiles are unavailable right now.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "show":
		m.handleShow(s, i, options[0].Options)
	case "favorite":
		m.handleFavorite(s, i, options[0].Options)
	}
}

func (m *ProfileModule) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	userID := interactionUserID(i)
	for _, opt := range opts {
		if opt.Name == "user" {
			userID = opt.UserValue(nil).ID
		}
	}

	profile, err := m.deps.DB.GetProfile(userID)
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to load profile for %s: %v", userID, err)
		_ = utils.RespondEphemeral(s, i, "❌ Couldn't load that profile.")
		return
	}
	streak, err := m.deps.DB.GetStreak(userID)
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to load streak for %s: %v", userID, err)
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{newProfileEmbed(userID, profile, streak)},
		},
	})
}

func (m *ProfileModule) handleFavorite(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(opts) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing card name.")
		return
	}
	cardName := opts[0].StringValue()

	// Canonicalize against the card database when we can.
	if card := m.deps.CardCache.Lookup(cardName); card != nil {
		cardName = card.Name
	}

	userID := interactionUserID(i)
	if err := m.deps.DB.SetFavoriteCard(userID, cardName); err != nil {
		m.deps.Config.Logger.Errorf("failed to set favorite card for %s: %v", userID, err)
		_ = utils.RespondEphemeral(s, i, "❌ Couldn't save your favorite card.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Favorite card set to **%s**.", cardName))
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
