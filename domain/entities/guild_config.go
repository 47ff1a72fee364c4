package entities

const (
	DefaultTicketRole   = "Ticket"
	DefaultTicketRole10 = "Ticket x10"
	DefaultCurrency     = "🪙"
)

// GuildGachaConfig represents per-guild gacha settings
type GuildGachaConfig struct {
	GuildID       int64   `db:"guild_id"`
	TicketRole    *string `db:"ticket_role"`    // Nullable - falls back to DefaultTicketRole
	TicketRole10  *string `db:"ticket_role_10"` // Nullable - falls back to DefaultTicketRole10
	PullGif       *string `db:"pull_gif"`
	SSRGif        *string `db:"ssr_gif"`
	CurrencyEmoji *string `db:"currency_emoji"`
}

// TicketRoleFor returns the role required to spin count times.
func (c *GuildGachaConfig) TicketRoleFor(count int) string {
	if count >= 10 {
		return valueOr(c.TicketRole10, DefaultTicketRole10)
	}
	return valueOr(c.TicketRole, DefaultTicketRole)
}

// LoadingGif picks the animation shown before a result, empty when none is set.
func (c *GuildGachaConfig) LoadingGif(special bool) string {
	if special {
		if gif := valueOr(c.SSRGif, ""); gif != "" {
			return gif
		}
	}
	return valueOr(c.PullGif, "")
}

// Currency returns the emoji used when showing token balances.
func (c *GuildGachaConfig) Currency() string {
	return valueOr(c.CurrencyEmoji, DefaultCurrency)
}

func valueOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
