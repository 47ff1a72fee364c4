package infrastructure

import (
	"gachabot/application"
	"gachabot/database"
	"gachabot/domain/interfaces"
	"gachabot/events"
	"gachabot/repository"
)

// UnitOfWorkFactory implements application.UnitOfWorkFactory. Each unit of
// work queues its events and forwards them only after a successful commit.
type UnitOfWorkFactory struct {
	repoFactory    *repository.UnitOfWorkFactory
	eventPublisher interfaces.EventPublisher
	poolCache      *PoolCache
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory. poolCache may be nil
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher, poolCache *PoolCache) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
		poolCache:      poolCache,
	}
}

// RegisterLocalHandler registers a handler run in-process after commit
func (f *UnitOfWorkFactory) RegisterLocalHandler(eventType events.EventType, handler EventHandler) {
	if natsPublisher, ok := f.eventPublisher.(*NATSEventPublisher); ok {
		natsPublisher.RegisterLocalHandler(eventType, handler)
	}
}

// CreateForGuild creates a new UnitOfWork with its own transactional publisher
func (f *UnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	publisher := NewTransactionalPublisher(f.eventPublisher)
	inner := f.repoFactory.CreateForGuildWithPublisher(guildID, publisher)

	uow := &unitOfWork{
		inner:     inner,
		publisher: publisher,
	}
	if f.poolCache == nil {
		return uow
	}
	return &cachedUnitOfWork{unitOfWork: uow, cache: f.poolCache, guildID: guildID}
}

// cachedUnitOfWork reads the item pool through the pool cache
type cachedUnitOfWork struct {
	*unitOfWork
	cache   *PoolCache
	guildID int64
}

func (u *cachedUnitOfWork) ItemRepository() interfaces.ItemRepository {
	return NewCachedItemRepository(u.unitOfWork.ItemRepository(), u.cache, u.guildID)
}
