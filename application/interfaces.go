package application

import (
	"context"
)

// RoleGateway applies role effects on the chat platform. Implementations
// return entities.ErrPermissionDenied when the platform refuses the change.
// roleRef is a role name, a <@&id> mention or a raw id. Item and exchange
// roles match names exactly; ticket names are matched ignoring case.
type RoleGateway interface {
	HasRole(ctx context.Context, guildID, discordID int64, roleRef string) (bool, error)
	GrantRole(ctx context.Context, guildID, discordID int64, roleRef string) error
	HasTicket(ctx context.Context, guildID, discordID int64, ticket string) (bool, error)
	RevokeTicket(ctx context.Context, guildID, discordID int64, ticket string) error
}

// guildOwnership answers ownership questions for one guild through the gateway
type guildOwnership struct {
	roles   RoleGateway
	guildID int64
}

func (o guildOwnership) Owns(ctx context.Context, discordID int64, roleRef string) (bool, error) {
	return o.roles.HasRole(ctx, o.guildID, discordID, roleRef)
}
