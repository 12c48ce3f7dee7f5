package tournament

import (
	"fmt"
	"strings"
	"time"

	"cardpal/internal/database"
	"cardpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// newAddedEmbed confirms a scheduled tournament. Discord renders the
// <t:...> timestamps in the reader's local timezone.
func newAddedEmbed(id int64, name string, startsAt time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏟️ Tournament scheduled",
		Description: fmt.Sprintf("**%s** starts <t:%d:F> (<t:%d:R>).\nID `%d` — remove with `/tournament remove`.",
			name, startsAt.Unix(), startsAt.Unix(), id),
		Color: utils.Colors.Ok(),
	}
}

// newScheduleEmbed lists upcoming tournaments.
func newScheduleEmbed(tournaments []database.Tournament) *discordgo.MessageEmbed {
	if len(tournaments) == 0 {
		return utils.NewNoResultsEmbed("Nothing on the schedule. Add one with `/tournament add`!")
	}

	var b strings.Builder
	for _, t := range tournaments {
		fmt.Fprintf(&b, "`%d` **%s** — <t:%d:F> (<t:%d:R>)\n", t.ID, t.Name, t.StartsAt.Unix(), t.StartsAt.Unix())
	}

	return &discordgo.MessageEmbed{
		Title:       "📅 Upcoming tournaments",
		Description: b.String(),
		Color:       utils.Colors.Info(),
	}
}

// newReminderEmbed announces a tournament starting within the hour.
func newReminderEmbed(t database.Tournament) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏳ Starting soon",
		Description: fmt.Sprintf("**%s** starts <t:%d:R>! Get your decks ready.", t.Name, t.StartsAt.Unix()),
		Color:       utils.Colors.Warning(),
	}
}
