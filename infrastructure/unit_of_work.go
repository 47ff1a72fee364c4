package infrastructure

import (
	"context"

	"gachabot/application"
	"gachabot/domain/interfaces"
)

// unitOfWork ties event delivery to the outcome of the repository transaction
type unitOfWork struct {
	inner     application.UnitOfWork
	publisher *TransactionalPublisher
	ctx       context.Context
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction, then flushes queued events
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		return err
	}

	ctx := u.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	// Flush only logs failures; the commit already happened
	_ = u.publisher.Flush(ctx)
	return nil
}

// Rollback drops queued events and rolls back the transaction
func (u *unitOfWork) Rollback() error {
	u.publisher.Discard()
	return u.inner.Rollback()
}

func (u *unitOfWork) ItemRepository() interfaces.ItemRepository {
	return u.inner.ItemRepository()
}

func (u *unitOfWork) PityRepository() interfaces.PityRepository {
	return u.inner.PityRepository()
}

func (u *unitOfWork) TokenRepository() interfaces.TokenRepository {
	return u.inner.TokenRepository()
}

func (u *unitOfWork) CollectionRepository() interfaces.CollectionRepository {
	return u.inner.CollectionRepository()
}

func (u *unitOfWork) ExchangeRepository() interfaces.ExchangeRepository {
	return u.inner.ExchangeRepository()
}

func (u *unitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	return u.inner.GuildConfigRepository()
}

func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.publisher
}
