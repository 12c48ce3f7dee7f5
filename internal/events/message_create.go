package events

import (
	"regexp"
	"strings"

	"cardpal/internal/cardcache"
	"cardpal/internal/config"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// inlineCardPattern matches <<Card Name>> mentions inside a message.
var inlineCardPattern = regexp.MustCompile(`<<([^<>]{2,120})>>`)

// maxInlineCards caps how many cards one message can pull up.
const maxInlineCards = 3

// OnMessageCreate handles message events
func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, cache *cardcache.Service) {
	// Ignore messages from bots (including ourselves)
	if m.Author.Bot {
		return
	}

	// Check if the bot is mentioned in the message & react
	for _, mention := range m.Mentions {
		if mention.ID == s.State.User.ID {
			err := s.MessageReactionAdd(m.ChannelID, m.ID, "🃏")
			if err != nil {
				cfg.Logger.Errorf("Error adding card reaction: %v", err)
			}
			break
		}
	}

	// Inline lookups are scoped to the home server when one is configured
	if home := cfg.GetServerID(); home != "" && m.GuildID != home {
		return
	}

	handleInlineCardMentions(s, m, cfg, cache)
}

// handleInlineCardMentions posts an embed for every <<Card Name>> in the
// message that resolves against the cached pool.
func handleInlineCardMentions(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, cache *cardcache.Service) {
	if cache == nil {
		return
	}

	matches := inlineCardPattern.FindAllStringSubmatch(m.Content, maxInlineCards)
	seen := make(map[string]bool)
	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		card := cache.Lookup(name)
		if card == nil {
			continue
		}

		embed := utils.NewEmbed()
		embed.Title = "🃏 " + card.Name
		embed.Description = card.Desc
		if len(embed.Description) > 300 {
			embed.Description = embed.Description[:297] + "..."
		}
		if url := card.ImageURL(); url != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
		}

		if _, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
			cfg.Logger.Errorf("Error posting inline card embed: %v", err)
		}
	}
}
