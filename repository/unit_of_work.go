package repository

import (
	"context"
	"errors"
	"fmt"

	"gachabot/application"
	"gachabot/database"
	"gachabot/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const errNotStarted = "unit of work not started - call Begin() first"

// unitOfWork implements application.UnitOfWork on a single pgx transaction
type unitOfWork struct {
	db       *database.DB
	tx       pgx.Tx
	ctx      context.Context
	guildID  int64
	eventBus interfaces.EventPublisher

	itemRepo        interfaces.ItemRepository
	pityRepo        interfaces.PityRepository
	tokenRepo       interfaces.TokenRepository
	collectionRepo  interfaces.CollectionRepository
	exchangeRepo    interfaces.ExchangeRepository
	guildConfigRepo interfaces.GuildConfigRepository
}

// UnitOfWorkFactory creates guild-scoped units of work
type UnitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

// CreateForGuildWithPublisher creates a UnitOfWork whose EventBus is the given publisher
func (f *UnitOfWorkFactory) CreateForGuildWithPublisher(guildID int64, eventBus interfaces.EventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:       f.db,
		guildID:  guildID,
		eventBus: eventBus,
	}
}

// Begin starts a new transaction and binds every repository to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.itemRepo = NewItemRepositoryScoped(tx, u.guildID)
	u.pityRepo = NewPityRepositoryScoped(tx, u.guildID)
	u.tokenRepo = NewTokenRepositoryScoped(tx, u.guildID)
	u.collectionRepo = NewCollectionRepositoryScoped(tx, u.guildID)
	u.exchangeRepo = NewExchangeRepositoryScoped(tx, u.guildID)
	u.guildConfigRepo = NewGuildConfigRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil
	return nil
}

// Rollback rolls back the transaction. Safe to call after Commit
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	u.tx = nil
	return nil
}

func (u *unitOfWork) ItemRepository() interfaces.ItemRepository {
	if u.itemRepo == nil {
		panic(errNotStarted)
	}
	return u.itemRepo
}

func (u *unitOfWork) PityRepository() interfaces.PityRepository {
	if u.pityRepo == nil {
		panic(errNotStarted)
	}
	return u.pityRepo
}

func (u *unitOfWork) TokenRepository() interfaces.TokenRepository {
	if u.tokenRepo == nil {
		panic(errNotStarted)
	}
	return u.tokenRepo
}

func (u *unitOfWork) CollectionRepository() interfaces.CollectionRepository {
	if u.collectionRepo == nil {
		panic(errNotStarted)
	}
	return u.collectionRepo
}

func (u *unitOfWork) ExchangeRepository() interfaces.ExchangeRepository {
	if u.exchangeRepo == nil {
		panic(errNotStarted)
	}
	return u.exchangeRepo
}

func (u *unitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	if u.guildConfigRepo == nil {
		panic(errNotStarted)
	}
	return u.guildConfigRepo
}

// EventBus returns the publisher events should be queued on
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.eventBus
}
