package interfaces

import (
	"context"

	"gachabot/domain/entities"
	"gachabot/events"
)

// ItemRepository defines the interface for prize definitions of one guild
type ItemRepository interface {
	// GetPool returns every item ordered by id, which is the draw order
	GetPool(ctx context.Context) ([]*entities.Item, error)

	// GetByName retrieves an item by exact, case-sensitive name. Returns nil when missing
	GetByName(ctx context.Context, name string) (*entities.Item, error)

	// Create inserts a new item and fills in its ID and CreatedAt
	Create(ctx context.Context, item *entities.Item) error

	// Update writes every mutable field of an existing item
	Update(ctx context.Context, item *entities.Item) error

	// Upsert creates or updates an item by name. Returns true when it was created
	Upsert(ctx context.Context, item *entities.Item) (bool, error)

	// Delete removes an item by ID
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every item of the guild and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)
}

// PityRepository defines the interface for per-user pity state
type PityRepository interface {
	// GetForUpdate returns the user's pity row, creating it if needed, and
	// locks it until the surrounding transaction ends
	GetForUpdate(ctx context.Context, discordID int64) (*entities.PityState, error)

	// Get returns the user's pity state without locking. Missing rows read as zero
	Get(ctx context.Context, discordID int64) (*entities.PityState, error)

	// Save persists counter and guarantee flag
	Save(ctx context.Context, state *entities.PityState) error

	// DeleteAll clears pity for every user of the guild
	DeleteAll(ctx context.Context) (int64, error)
}

// TokenRepository defines the interface for per-user token balances
type TokenRepository interface {
	// GetBalance returns every tier the user holds
	GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error)

	// Adjust adds delta to one tier. A negative delta that would take the tier
	// below zero fails with entities.ErrInsufficientFunds and changes nothing
	Adjust(ctx context.Context, discordID int64, rarity entities.Rarity, delta int64) error

	// DeleteAll clears every balance of the guild
	DeleteAll(ctx context.Context) (int64, error)
}

// CollectionRepository defines the interface for owned copies per item
type CollectionRepository interface {
	// GetCopies returns how many copies of an item the user owns
	GetCopies(ctx context.Context, discordID int64, itemName string) (int, error)

	// Increment adds copies and returns the new count
	Increment(ctx context.Context, discordID int64, itemName string, by int) (int, error)

	// ListByUser returns every entry with at least one copy
	ListByUser(ctx context.Context, discordID int64) ([]*entities.CollectionEntry, error)

	// Reset removes one entry. Returns false when the user had none
	Reset(ctx context.Context, discordID int64, itemName string) (bool, error)

	// DeleteByItem removes the item from every user's collection
	DeleteByItem(ctx context.Context, itemName string) (int64, error)

	// DeleteAll clears the collections of the guild
	DeleteAll(ctx context.Context) (int64, error)
}

// ExchangeRepository defines the interface for exchange rules
type ExchangeRepository interface {
	// List returns the rules ordered by exchange id
	List(ctx context.Context) ([]*entities.ExchangeRule, error)

	// Get returns one rule or nil when it does not exist
	Get(ctx context.Context, exchangeID int) (*entities.ExchangeRule, error)

	// Create adds a free rule with the next sequential id
	Create(ctx context.Context, rewardName string) (*entities.ExchangeRule, error)

	// UpdatePrice replaces the whole price vector
	UpdatePrice(ctx context.Context, exchangeID int, price entities.PriceVector) error

	// UpdateRole sets or clears the role granted on redeem
	UpdateRole(ctx context.Context, exchangeID int, role *string) error

	// DeleteAll removes every rule of the guild
	DeleteAll(ctx context.Context) (int64, error)
}

// GuildConfigRepository defines the interface for per-guild gacha settings
type GuildConfigRepository interface {
	// GetOrCreate returns the guild's config, inserting an empty row on first use
	GetOrCreate(ctx context.Context) (*entities.GuildGachaConfig, error)

	// Update persists every field of the config
	Update(ctx context.Context, config *entities.GuildGachaConfig) error

	// ListGuildIDs returns every guild that has a config row
	ListGuildIDs(ctx context.Context) ([]int64, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
