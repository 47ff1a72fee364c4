package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"gachabot/application"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

var roleMentionPattern = regexp.MustCompile(`^<@&(\d+)>$`)

// DiscordRoleGateway applies role effects through the Discord REST API.
// Role references may be a name, a <@&id> mention or an id. Names match
// exactly, except ticket names which ignore case.
type DiscordRoleGateway struct {
	session *discordgo.Session
}

var _ application.RoleGateway = (*DiscordRoleGateway)(nil)

// NewDiscordRoleGateway creates a gateway over an open session
func NewDiscordRoleGateway(session *discordgo.Session) *DiscordRoleGateway {
	return &DiscordRoleGateway{session: session}
}

// HasRole reports whether the member currently holds the role. An unknown
// role is simply not held.
func (g *DiscordRoleGateway) HasRole(ctx context.Context, guildID, discordID int64, roleRef string) (bool, error) {
	return g.holds(ctx, guildID, discordID, roleRef, false)
}

// HasTicket is HasRole with the ticket name matched ignoring case
func (g *DiscordRoleGateway) HasTicket(ctx context.Context, guildID, discordID int64, ticket string) (bool, error) {
	return g.holds(ctx, guildID, discordID, ticket, true)
}

func (g *DiscordRoleGateway) holds(ctx context.Context, guildID, discordID int64, roleRef string, foldCase bool) (bool, error) {
	role, err := g.resolve(guildID, roleRef, foldCase)
	if errors.Is(err, entities.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	member, err := g.session.GuildMember(formatID(guildID), formatID(discordID), discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to get member %d: %w", discordID, mapRESTError(err))
	}
	for _, id := range member.Roles {
		if id == role.ID {
			return true, nil
		}
	}
	return false, nil
}

// GrantRole adds the role to the member
func (g *DiscordRoleGateway) GrantRole(ctx context.Context, guildID, discordID int64, roleRef string) error {
	role, err := g.resolve(guildID, roleRef, false)
	if err != nil {
		return err
	}
	if err := g.session.GuildMemberRoleAdd(formatID(guildID), formatID(discordID), role.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add role %s: %w", role.Name, mapRESTError(err))
	}
	return nil
}

// RevokeTicket removes the spent ticket role from the member
func (g *DiscordRoleGateway) RevokeTicket(ctx context.Context, guildID, discordID int64, ticket string) error {
	role, err := g.resolve(guildID, ticket, true)
	if err != nil {
		return err
	}
	if err := g.session.GuildMemberRoleRemove(formatID(guildID), formatID(discordID), role.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to remove role %s: %w", role.Name, mapRESTError(err))
	}
	return nil
}

func (g *DiscordRoleGateway) resolve(guildID int64, roleRef string, foldCase bool) (*discordgo.Role, error) {
	gid := formatID(guildID)

	var roles []*discordgo.Role
	if guild, err := g.session.State.Guild(gid); err == nil {
		roles = guild.Roles
	}
	if role := MatchRole(roles, roleRef, foldCase); role != nil {
		return role, nil
	}

	// state may be stale or disabled
	fetched, err := g.session.GuildRoles(gid)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles of guild %d: %w", guildID, mapRESTError(err))
	}
	if role := MatchRole(fetched, roleRef, foldCase); role != nil {
		return role, nil
	}
	return nil, fmt.Errorf("role %q: %w", roleRef, entities.ErrNotFound)
}

// MatchRole finds a role by mention, id or name. An exact name wins; with
// foldCase a name differing only in case is accepted when none matches exactly.
func MatchRole(roles []*discordgo.Role, roleRef string, foldCase bool) *discordgo.Role {
	ref := strings.TrimSpace(roleRef)
	if ref == "" {
		return nil
	}
	if m := roleMentionPattern.FindStringSubmatch(ref); m != nil {
		ref = m[1]
	}

	if _, err := strconv.ParseUint(ref, 10, 64); err == nil {
		for _, role := range roles {
			if role.ID == ref {
				return role
			}
		}
	}

	ref = strings.TrimPrefix(ref, "@")
	for _, role := range roles {
		if role.Name == ref {
			return role
		}
	}
	if !foldCase {
		return nil
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, ref) {
			return role
		}
	}
	return nil
}

// mapRESTError turns Discord permission refusals into ErrPermissionDenied
// and unknown roles or members into ErrNotFound
func mapRESTError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return fmt.Errorf("%w: %s", entities.ErrPermissionDenied, restErr.Message.Message)
		case discordgo.ErrCodeUnknownRole, discordgo.ErrCodeUnknownMember:
			return fmt.Errorf("%w: %s", entities.ErrNotFound, restErr.Message.Message)
		}
	}
	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", entities.ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", entities.ErrNotFound, err)
		}
	}
	return err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
