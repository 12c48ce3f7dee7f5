package tournament

import (
	"time"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// TournamentModule manages the community tournament schedule: add with
// free-text dates, list upcoming events, remove by ID.
type TournamentModule struct {
	deps    *types.Dependencies
	service *TournamentService
}

// New creates a new tournament module
func New(deps *types.Dependencies) *TournamentModule {
	return &TournamentModule{
		deps:    deps,
		service: NewTournamentService(deps.Config, deps.DB),
	}
}

// Register adds the tournament command to the command map
func (m *TournamentModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["tournament"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "tournament",
			Description: "Manage the community tournament schedule",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Schedule a tournament",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Tournament name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "when",
							Description: "Start time (e.g. 'next saturday 7pm', 'in 2 hours', '2026-10-01 19:00')",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show upcoming tournaments",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a scheduled tournament",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Tournament ID from /tournament list",
							Required:    true,
							MinValue:    utils.Float64Ptr(1),
						},
					},
				},
			},
		},
		HandlerFunc: m.handleTournament,
	}
}

// Service returns the tournament service for scheduling and hydration
func (m *TournamentModule) Service() types.ModuleService {
	return m.service
}

func (m *TournamentModule) handleTournament(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if m.deps.DB == nil {
		_ = utils.RespondEphemeral(s, i, "❌ The tournament schedule is unavailable right now.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "add":
		m.handleAdd(s, i, options[0].Options)
	case "list":
		m.handleList(s, i)
	case "remove":
		m.handleRemove(s, i, options[0].Options)
	}
}

func (m *TournamentModule) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var name, when string
	for _, opt := range opts {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "when":
			when = opt.StringValue()
		}
	}

	ts, err := utils.ParseUnixTimestamp(when)
	if err != nil {
		_ = utils.RespondEphemeral(s, i, "❌ I couldn't make sense of that date. Try something like `next saturday 7pm` or `2026-10-01 19:00`.")
		return
	}
	startsAt := time.Unix(ts, 0)
	if startsAt.Before(time.Now()) {
		_ = utils.RespondEphemeral(s, i, "❌ That time is in the past.")
		return
	}

	id, err := m.deps.DB.AddTournament(i.GuildID, name, startsAt, interactionUserID(i))
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to add tournament: %v", err)
		_ = utils.RespondEphemeral(s, i, "❌ Couldn't save the tournament.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{newAddedEmbed(id, name, startsAt)},
		},
	})
}

func (m *TournamentModule) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	tournaments, err := m.deps.DB.ListUpcomingTournaments(i.GuildID, time.Now())
	if err != nil {
		m.deps.Config.Logger.Errorf("failed to list tournaments: %v", err)
		_ = utils.RespondEphemeral(s, i, "❌ Couldn't load the schedule.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{newScheduleEmbed(tournaments)},
		},
	})
}

func (m *TournamentModule) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !utils.HasAdminPermissions(s, i) {
		_ = utils.RespondEphemeral(s, i, "❌ Only moderators can remove tournaments.")
		return
	}
	if len(opts) == 0 {
		_ = utils.RespondEphemeral(s, i, "❌ Missing tournament ID.")
		return
	}
	id := opts[0].IntValue()

	if err := m.deps.DB.DeleteTournament(id, i.GuildID); err != nil {
		_ = utils.RespondEphemeral(s, i, "❌ No tournament with that ID on this server.")
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{utils.NewOKEmbed("Removed", "The tournament was taken off the schedule.")},
		},
	})
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
