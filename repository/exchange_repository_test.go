package repository

import (
	"context"
	"testing"

	"gachabot/domain/entities"
	"gachabot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRepository_SequentialIDs(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewExchangeRepository(testDB.DB, testGuildID)
	other := NewExchangeRepository(testDB.DB, testGuildID+1)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Custom role")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Nickname change")
	require.NoError(t, err)
	otherFirst, err := other.Create(ctx, "Elsewhere")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ExchangeID)
	assert.Equal(t, 2, second.ExchangeID)
	assert.Equal(t, 1, otherFirst.ExchangeID, "ids are per guild")
	assert.True(t, first.Price.IsFree())

	count, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	again, err := repo.Create(ctx, "Fresh start")
	require.NoError(t, err)
	assert.Equal(t, 1, again.ExchangeID)
}

func TestExchangeRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewExchangeRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	rule, err := repo.Create(ctx, "VIP")
	require.NoError(t, err)

	price := entities.PriceVector{entities.RaritySSR: 1, entities.RarityR: 40}
	require.NoError(t, repo.UpdatePrice(ctx, rule.ExchangeID, price))

	role := "VIP"
	require.NoError(t, repo.UpdateRole(ctx, rule.ExchangeID, &role))

	found, err := repo.Get(ctx, rule.ExchangeID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, price, found.Price)
	require.NotNil(t, found.RoleOnRedeem)
	assert.Equal(t, "VIP", *found.RoleOnRedeem)

	require.NoError(t, repo.UpdateRole(ctx, rule.ExchangeID, nil))
	found, err = repo.Get(ctx, rule.ExchangeID)
	require.NoError(t, err)
	assert.Nil(t, found.RoleOnRedeem)

	missing, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.UpdatePrice(ctx, 42, price), entities.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateRole(ctx, 42, &role), entities.ErrNotFound)
}
