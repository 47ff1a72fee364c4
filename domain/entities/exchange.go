package entities

// ExchangeRule converts tokens into a reward
type ExchangeRule struct {
	GuildID      int64       `db:"guild_id"`
	ExchangeID   int         `db:"exchange_id"`
	RewardName   string      `db:"reward_name"`
	Price        PriceVector `db:"-"` // Stored as one column per tier
	RoleOnRedeem *string     `db:"role_on_redeem"`
}

// HasRole checks if redeeming grants a role
func (r *ExchangeRule) HasRole() bool {
	return r.RoleOnRedeem != nil && *r.RoleOnRedeem != ""
}
