package interfaces

import (
	"context"

	"gachabot/domain/entities"
	"gachabot/domain/gacha"
)

// GachaService defines the interface for drawing from a guild's pool
type GachaService interface {
	// Spin draws count items in sequence, persists pity, tokens and collection,
	// and reports which roles should be granted once the transaction commits
	Spin(ctx context.Context, discordID int64, count int, ownership gacha.OwnershipChecker) (*entities.SpinReport, error)

	// GetPity returns the user's current pity state
	GetPity(ctx context.Context, discordID int64) (*entities.PityState, error)
}

// ItemService defines the interface for administering the prize pool
type ItemService interface {
	// GetPool returns every item in draw order
	GetPool(ctx context.Context) ([]*entities.Item, error)

	// FindItem resolves a partial name to exactly one item
	FindItem(ctx context.Context, query string) (*entities.Item, error)

	// CreateItem adds an item with default settings
	CreateItem(ctx context.Context, name string, secret bool) (*entities.Item, error)

	// EditItem changes one field of the item matched by query
	EditItem(ctx context.Context, query, field, value string) (*entities.Item, error)

	// DeleteItem removes an item by exact name
	DeleteItem(ctx context.Context, name string) error

	// ResetItems removes every item along with all collections and pity
	ResetItems(ctx context.Context) (*ResetSummary, error)

	// ImportItems upserts items by name
	ImportItems(ctx context.Context, items []*entities.Item) (created, updated int, err error)
}

// ResetSummary reports what a pool reset removed
type ResetSummary struct {
	Items       int64
	Collections int64
	PityRows    int64
}

// TokenService defines the interface for token balances
type TokenService interface {
	GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error)

	// AddTokens credits one tier and returns the new balance
	AddTokens(ctx context.Context, discordID int64, rarity entities.Rarity, amount int64) (entities.TokenBalance, error)

	// RemoveTokens debits one tier, failing with ErrInsufficientFunds when short
	RemoveTokens(ctx context.Context, discordID int64, rarity entities.Rarity, amount int64) (entities.TokenBalance, error)

	// ResetTokens clears every balance in the guild
	ResetTokens(ctx context.Context) (int64, error)
}

// ExchangeService defines the interface for exchange rules and redemption
type ExchangeService interface {
	ListExchanges(ctx context.Context) ([]*entities.ExchangeRule, error)

	CreateExchange(ctx context.Context, rewardName string) (*entities.ExchangeRule, error)

	EditPrice(ctx context.Context, exchangeID int, price entities.PriceVector) (*entities.ExchangeRule, error)

	// EditRole sets the role granted on redeem. An empty role clears it
	EditRole(ctx context.Context, exchangeID int, role string) (*entities.ExchangeRule, error)

	ResetExchanges(ctx context.Context) (int64, error)

	// Redeem debits the rule's price atomically. Role grants are left to the caller
	Redeem(ctx context.Context, discordID int64, exchangeID int) (*entities.ExchangeResult, error)
}

// CollectionService defines the interface for collectable progress
type CollectionService interface {
	// Inventory lists persona and object items the user owns
	Inventory(ctx context.Context, discordID int64) ([]entities.InventoryLine, error)

	// ResetCollectable clears one user's copies of the item matched by query
	ResetCollectable(ctx context.Context, discordID int64, query string) (*entities.Item, error)
}

// GuildConfigService defines the interface for per-guild gacha settings
type GuildConfigService interface {
	GetConfig(ctx context.Context) (*entities.GuildGachaConfig, error)

	// SetTicketRole sets the role required for single (count 1) or ten (count 10) spins
	SetTicketRole(ctx context.Context, count int, role string) (*entities.GuildGachaConfig, error)

	// SetLoadingGif sets or clears (empty url) the pull animation
	SetLoadingGif(ctx context.Context, ssr bool, url string) (*entities.GuildGachaConfig, error)

	SetCurrency(ctx context.Context, emoji string) (*entities.GuildGachaConfig, error)
}
