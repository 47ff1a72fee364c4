package infrastructure

import (
	"context"
	"testing"
	"time"

	"gachabot/domain/entities"
	"gachabot/domain/testhelpers"
	"gachabot/events"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *PoolCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
			Labels: map[string]string{
				"test":      "gachabot-infrastructure",
				"test-name": t.Name(),
				"cleanup":   "auto",
			},
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	cache, err := ConnectPoolCache(ctx, "redis://"+endpoint, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestPoolCache_ReadThrough(t *testing.T) {
	t.Parallel()
	cache := setupRedis(t)
	ctx := context.Background()
	const guildID int64 = 42

	role := "Phantom Thief"
	pool := []*entities.Item{
		{ID: 1, GuildID: guildID, Name: "Joker", Weight: 1, Rarity: entities.RaritySSR, RoleOnAcquire: &role, IsPromotional: true},
		{ID: 2, GuildID: guildID, Name: "Coin", Weight: 90, Rarity: entities.RarityR},
	}

	repo := new(testhelpers.MockItemRepository)
	repo.On("GetPool", ctx).Return(pool, nil).Once()

	cached := NewCachedItemRepository(repo, cache, guildID)

	first, err := cached.GetPool(ctx)
	require.NoError(t, err)
	second, err := cached.GetPool(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetPool", 1)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, entities.RaritySSR, second[0].Rarity)
	require.NotNil(t, second[0].RoleOnAcquire)
	assert.Equal(t, role, *second[0].RoleOnAcquire)
	assert.True(t, second[0].IsPromotional)

	require.NoError(t, cache.HandlePoolChanged(ctx, events.PoolChangedEvent{GuildID: guildID, Action: events.PoolActionUpdated}))
	_, _, ok := cache.Get(ctx, guildID)
	assert.False(t, ok)
}

func TestPoolCache_ChangeDuringLoadIsNotCached(t *testing.T) {
	t.Parallel()
	cache := setupRedis(t)
	ctx := context.Background()
	const guildID int64 = 43

	before := []*entities.Item{
		{ID: 1, GuildID: guildID, Name: "Keep", Weight: 1, Rarity: entities.RarityR},
		{ID: 2, GuildID: guildID, Name: "Deleted", Weight: 1, Rarity: entities.RaritySSR},
	}
	after := before[:1]

	// the admin's delete commits and invalidates while the first load is in flight
	repo := new(testhelpers.MockItemRepository)
	repo.On("GetPool", ctx).Return(before, nil).Once().Run(func(mock.Arguments) {
		cache.Invalidate(ctx, guildID)
	})
	repo.On("GetPool", ctx).Return(after, nil).Once()

	cached := NewCachedItemRepository(repo, cache, guildID)

	stale, err := cached.GetPool(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	fresh, err := cached.GetPool(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Keep", fresh[0].Name)
	repo.AssertNumberOfCalls(t, "GetPool", 2)

	// the fresh load is cached
	pool, _, ok := cache.Get(ctx, guildID)
	require.True(t, ok)
	assert.Len(t, pool, 1)
}

func TestPoolCache_StaleGenerationIsNeverServed(t *testing.T) {
	t.Parallel()
	cache := setupRedis(t)
	ctx := context.Background()
	const guildID int64 = 44

	_, generation, ok := cache.Get(ctx, guildID)
	require.False(t, ok)
	require.Equal(t, int64(0), generation)

	cache.Invalidate(ctx, guildID)
	cache.Set(ctx, guildID, generation, []*entities.Item{{ID: 1, Name: "Old", Weight: 1}})

	_, current, ok := cache.Get(ctx, guildID)
	assert.False(t, ok)
	assert.Equal(t, int64(1), current)
}

func TestPoolCache_GuildsAreSeparate(t *testing.T) {
	t.Parallel()
	cache := setupRedis(t)
	ctx := context.Background()

	cache.Set(ctx, 1, 0, []*entities.Item{{ID: 1, Name: "A", Weight: 1}})

	_, _, ok := cache.Get(ctx, 2)
	assert.False(t, ok)

	pool, _, ok := cache.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "A", pool[0].Name)
}

func TestPoolCache_HandlePoolChangedRejectsOtherEvents(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache(redis.NewClient(&redis.Options{Addr: "localhost:0"}), time.Minute)
	err := cache.HandlePoolChanged(context.Background(), events.DrawCompletedEvent{})
	assert.Error(t, err)
}
