package card

import (
	"fmt"
	"strings"

	"cardpal/internal/commands/types"
	"cardpal/internal/utils"
	"cardpal/internal/ygoprodeck"

	"github.com/bwmarrin/discordgo"
)

// CardModule implements the CommandModule interface for the card command
type CardModule struct {
	deps *types.Dependencies
}

// New creates a new card module
func New(deps *types.Dependencies) *CardModule {
	return &CardModule{deps: deps}
}

// Register adds the card command to the command map
func (m *CardModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	m.deps = deps

	cmds["card"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "card",
			Description: "Look up a Yu-Gi-Oh! card",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "name",
					Description:  "The name of the card to search for",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		HandlerFunc: m.handleCard,
	}
}

// handleCard handles the card lookup slash command
func (m *CardModule) handleCard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Acknowledge the interaction immediately; the API call can be slow
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	commandOptions := i.ApplicationCommandData().Options
	if len(commandOptions) == 0 {
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: utils.StringPtr("❌ Please provide a card name to search for."),
		})
		return
	}

	cardName := strings.TrimSpace(commandOptions[0].StringValue())
	if cardName == "" {
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: utils.StringPtr("❌ Please provide a valid card name to search for."),
		})
		return
	}

	found, suggestions, err := m.lookupCard(cardName)
	if err != nil {
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{utils.NewErrorEmbed("Card lookup failed",
				fmt.Sprintf("Encountered an error while searching for card: `%s`", cardName))},
		})
		return
	}
	if found == nil && len(suggestions) == 0 {
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{utils.NewNoResultsEmbed(fmt.Sprintf("No cards found matching: **%s**", cardName))},
		})
		return
	}
	if found == nil {
		// Close-but-not-exact: show the first suggestion with a note
		embed := newCardEmbed(suggestions[0])
		embed.Description = fmt.Sprintf("Closest match for **%s**:\n\n%s", cardName, embed.Description)
		_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		})
		return
	}

	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{newCardEmbed(*found)},
	})
}

// lookupCard tries the cache first, then the API: exact name, then fuzzy.
func (m *CardModule) lookupCard(name string) (*ygoprodeck.Card, []ygoprodeck.Card, error) {
	if cached := m.deps.CardCache.Lookup(name); cached != nil {
		return cached, nil, nil
	}

	exact, err := m.deps.CardClient.ByName(name)
	if err != nil {
		return nil, nil, err
	}
	if exact != nil {
		return exact, nil, nil
	}

	fuzzy, err := m.deps.CardClient.SearchByName(name)
	if err != nil {
		return nil, nil, err
	}
	for idx := range fuzzy {
		if strings.EqualFold(fuzzy[idx].Name, name) {
			return &fuzzy[idx], nil, nil
		}
	}
	return nil, fuzzy, nil
}

// HandleAutocomplete serves card name suggestions from the cache.
func (m *CardModule) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" && opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	names := m.deps.CardCache.Suggest(query, 25)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// Service returns nil as this module has no services requiring initialization
func (m *CardModule) Service() types.ModuleService {
	return nil
}
