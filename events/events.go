package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeDrawCompleted    EventType = "draw_completed"
	EventTypeTokensChanged    EventType = "tokens_changed"
	EventTypeExchangeRedeemed EventType = "exchange_redeemed"
	EventTypePoolChanged      EventType = "pool_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DrawCompletedEvent is published once per drawn item
type DrawCompletedEvent struct {
	GuildID       int64
	UserID        int64
	ItemName      string
	Rarity        string
	IsDuplicate   bool
	IsPromotional bool
	Forced        bool
	PityCounter   int
	TokensAwarded int64
}

func (e DrawCompletedEvent) Type() EventType {
	return EventTypeDrawCompleted
}

// TokensChangedEvent records a change to one token tier of a user
type TokensChangedEvent struct {
	GuildID int64
	UserID  int64
	Rarity  string
	Delta   int64
	Reason  string
}

func (e TokensChangedEvent) Type() EventType {
	return EventTypeTokensChanged
}

// ExchangeRedeemedEvent is published after tokens are spent on an exchange
type ExchangeRedeemedEvent struct {
	GuildID    int64
	UserID     int64
	ExchangeID int
	RewardName string
	Price      map[string]int64
}

func (e ExchangeRedeemedEvent) Type() EventType {
	return EventTypeExchangeRedeemed
}

// PoolChangedEvent is published whenever a guild's item definitions change
type PoolChangedEvent struct {
	GuildID  int64
	ItemName string // Empty for bulk changes
	Action   string
}

func (e PoolChangedEvent) Type() EventType {
	return EventTypePoolChanged
}

const (
	ReasonDuplicate = "duplicate"
	ReasonAdmin     = "admin"
	ReasonExchange  = "exchange"
	ReasonReset     = "reset"

	PoolActionCreated  = "created"
	PoolActionUpdated  = "updated"
	PoolActionDeleted  = "deleted"
	PoolActionReset    = "reset"
	PoolActionImported = "imported"
)
