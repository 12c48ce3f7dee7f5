package card

import (
	"fmt"
	"strings"

	"cardpal/internal/utils"
	"cardpal/internal/ygoprodeck"

	"github.com/bwmarrin/discordgo"
)

// newCardEmbed renders one card as a Discord embed.
func newCardEmbed(c ygoprodeck.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🃏 %s", c.Name),
		Color: utils.Colors.Fancy(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "CardPal • Data from YGOPRODeck",
		},
	}

	if c.Desc != "" {
		desc := c.Desc
		if len(desc) > 1024 {
			desc = desc[:1021] + "..."
		}
		embed.Description = desc
	}

	if url := c.ImageURL(); url != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Type",
		Value:  c.Type,
		Inline: true,
	})
	if c.Attribute != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Attribute",
			Value:  c.Attribute,
			Inline: true,
		})
	}
	if c.Race != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Race",
			Value:  c.Race,
			Inline: true,
		})
	}
	if c.Archetype != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Archetype",
			Value:  c.Archetype,
			Inline: true,
		})
	}
	if c.Level != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Level",
			Value:  fmt.Sprintf("%d", *c.Level),
			Inline: true,
		})
	}
	if c.ATK != nil || c.DEF != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "ATK / DEF",
			Value:  formatStats(c),
			Inline: true,
		})
	}

	return embed
}

func formatStats(c ygoprodeck.Card) string {
	var parts []string
	if c.ATK != nil {
		parts = append(parts, fmt.Sprintf("%d", *c.ATK))
	} else {
		parts = append(parts, "?")
	}
	if c.DEF != nil {
		parts = append(parts, fmt.Sprintf("%d", *c.DEF))
	} else {
		parts = append(parts, "?")
	}
	return strings.Join(parts, " / ")
}
