package application

import (
	"context"

	"gachabot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and releases queued events
	Commit() error

	// Rollback rolls back the transaction and drops queued events
	Rollback() error

	ItemRepository() interfaces.ItemRepository
	PityRepository() interfaces.PityRepository
	TokenRepository() interfaces.TokenRepository
	CollectionRepository() interfaces.CollectionRepository
	ExchangeRepository() interfaces.ExchangeRepository
	GuildConfigRepository() interfaces.GuildConfigRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}

// TransactionalEventPublisher queues events until the surrounding transaction ends
type TransactionalEventPublisher interface {
	interfaces.EventPublisher

	// Flush hands every queued event to the underlying publisher
	Flush(ctx context.Context) error

	// Discard drops every queued event
	Discard()
}
