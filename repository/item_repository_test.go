package repository

import (
	"context"
	"testing"

	"gachabot/domain/entities"
	"gachabot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGuildID int64 = 987654321

func TestItemRepository_GetPool(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewItemRepository(testDB.DB, testGuildID)
	other := NewItemRepository(testDB.DB, testGuildID+1)
	ctx := context.Background()

	t.Run("empty pool", func(t *testing.T) {
		pool, err := other.GetPool(ctx)
		require.NoError(t, err)
		assert.Empty(t, pool)
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		names := []string{"Zeta", "Alpha", "Mid"}
		for _, name := range names {
			require.NoError(t, repo.Create(ctx, testutil.CreateTestItem(testGuildID, name, entities.RarityR, 3)))
		}

		pool, err := repo.GetPool(ctx)
		require.NoError(t, err)
		require.Len(t, pool, 3)
		for i, name := range names {
			assert.Equal(t, name, pool[i].Name)
			assert.Equal(t, testGuildID, pool[i].GuildID)
		}
	})

	t.Run("pool is guild scoped", func(t *testing.T) {
		pool, err := other.GetPool(ctx)
		require.NoError(t, err)
		assert.Empty(t, pool)
	})
}

func TestItemRepository_CreateAndUpdate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewItemRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	item := testutil.CreateTestCollectable(testGuildID, "Joker", "Phantom Thief", 3)
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	t.Run("duplicate name fails", func(t *testing.T) {
		err := repo.Create(ctx, testutil.CreateTestItem(testGuildID, "Joker", entities.RarityR, 1))
		assert.Error(t, err)
	})

	t.Run("round trip of optional fields", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "Joker")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.RoleOnAcquire)
		assert.Equal(t, "Phantom Thief", *found.RoleOnAcquire)
		require.NotNil(t, found.CollectableThreshold)
		assert.Equal(t, 3, *found.CollectableThreshold)
		assert.Equal(t, entities.ObjectTypePersona, found.ObjectType)
		assert.Equal(t, entities.RaritySR, found.Rarity)
	})

	t.Run("name lookup is case sensitive", func(t *testing.T) {
		found, err := repo.GetByName(ctx, "joker")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update", func(t *testing.T) {
		item.Weight = 25
		item.Rarity = entities.RaritySSR
		item.RoleOnAcquire = nil
		require.NoError(t, repo.Update(ctx, item))

		found, err := repo.GetByName(ctx, "Joker")
		require.NoError(t, err)
		assert.Equal(t, int64(25), found.Weight)
		assert.Equal(t, entities.RaritySSR, found.Rarity)
		assert.Nil(t, found.RoleOnAcquire)
	})

	t.Run("update missing item", func(t *testing.T) {
		missing := testutil.CreateTestItem(testGuildID, "Ghost", entities.RarityR, 1)
		missing.ID = 999999
		err := repo.Update(ctx, missing)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestItemRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewItemRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	first := testutil.CreateTestItem(testGuildID, "First", entities.RarityR, 10)
	second := testutil.CreateTestItem(testGuildID, "Second", entities.RarityUR, 5)

	created, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.True(t, created)

	updatedFirst := testutil.CreateTestItem(testGuildID, "First", entities.RaritySSR, 1)
	created, err = repo.Upsert(ctx, updatedFirst)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, updatedFirst.ID)

	pool, err := repo.GetPool(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "First", pool[0].Name, "upsert keeps the original position")
	assert.Equal(t, entities.RaritySSR, pool[0].Rarity)
}

func TestItemRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewItemRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	item := testutil.CreateTestItem(testGuildID, "Temp", entities.RarityR, 1)
	require.NoError(t, repo.Create(ctx, item))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestItem(testGuildID, "Other", entities.RarityR, 1)))

	require.NoError(t, repo.Delete(ctx, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), entities.ErrNotFound)

	count, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
