package infrastructure

import (
	"context"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
)

// CachedItemRepository serves GetPool from the pool cache and delegates
// everything else to the wrapped repository.
type CachedItemRepository struct {
	interfaces.ItemRepository
	cache   *PoolCache
	guildID int64
}

// NewCachedItemRepository wraps repo with a read-through pool cache
func NewCachedItemRepository(repo interfaces.ItemRepository, cache *PoolCache, guildID int64) *CachedItemRepository {
	return &CachedItemRepository{
		ItemRepository: repo,
		cache:          cache,
		guildID:        guildID,
	}
}

// GetPool returns the cached pool, loading and caching it on a miss. The
// generation is taken before the database read so a change committed during
// the load invalidates what this call stores.
func (r *CachedItemRepository) GetPool(ctx context.Context) ([]*entities.Item, error) {
	pool, generation, ok := r.cache.Get(ctx, r.guildID)
	if ok {
		return pool, nil
	}

	pool, err := r.ItemRepository.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, r.guildID, generation, pool)
	return pool, nil
}
