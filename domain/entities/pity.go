package entities

import "time"

// PityThreshold is the draw count at which a top-tier result is forced.
const PityThreshold = 90

// PityState tracks a user's draws since the last SSR and the promotional guarantee
type PityState struct {
	GuildID               int64     `db:"guild_id"`
	DiscordID             int64     `db:"discord_id"`
	Counter               int       `db:"counter"`
	GuaranteedPromotional bool      `db:"guaranteed_promotional"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// DrawsUntilGuaranteed returns how many more draws force an SSR.
func (p PityState) DrawsUntilGuaranteed() int {
	remaining := PityThreshold - p.Counter
	if remaining < 1 {
		return 1
	}
	return remaining
}
