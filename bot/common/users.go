package common

import (
	"regexp"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			if member.User.GlobalName != "" {
				return member.User.GlobalName
			}
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}

var userMentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// ParseUserMention accepts <@id>, <@!id> or a raw snowflake
func ParseUserMention(arg string) (int64, bool) {
	if m := userMentionPattern.FindStringSubmatch(arg); m != nil {
		arg = m[1]
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// IsUserAdmin checks if a user has administrator permissions in a guild
func IsUserAdmin(s *discordgo.Session, guildID, userID string) bool {
	if guild, err := s.State.Guild(guildID); err == nil && guild.OwnerID == userID {
		return true
	}

	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.Errorf("Failed to get guild member: %v", err)
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	roles, err := guildRoles(s, guildID)
	if err != nil {
		log.Errorf("Failed to get guild roles: %v", err)
		return false
	}
	return HasAdminRole(roles, member.Roles)
}

// HasAdminRole reports whether any of the member's role ids carries Administrator
func HasAdminRole(roles []*discordgo.Role, memberRoleIDs []string) bool {
	held := make(map[string]bool, len(memberRoleIDs))
	for _, id := range memberRoleIDs {
		held[id] = true
	}
	for _, role := range roles {
		if held[role.ID] && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

func guildRoles(s *discordgo.Session, guildID string) ([]*discordgo.Role, error) {
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
		return guild.Roles, nil
	}
	return s.GuildRoles(guildID)
}
