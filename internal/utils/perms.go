package utils

import (
	"cardpal/internal/config"

	"github.com/bwmarrin/discordgo"
)

// IsSuperAdmin checks the user against the configured super admin list.
func IsSuperAdmin(userID string, cfg *config.Config) bool {
	for _, id := range cfg.GetSuperAdmins() {
		if id == userID {
			return true
		}
	}
	return false
}

// HasAdminPermissions checks if the user has administrator permissions
func HasAdminPermissions(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Get the member's permissions
	permissions, err := s.UserChannelPermissions(i.Member.User.ID, i.ChannelID)
	if err != nil {
		return false
	}

	// Check for administrator permission
	return permissions&discordgo.PermissionAdministrator != 0
}
