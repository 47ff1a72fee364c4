package services

import (
	"context"
	"testing"

	"gachabot/domain/entities"
	"gachabot/domain/testhelpers"
	"gachabot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemService_CreateItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		itemName  string
		secret    bool
		setupMock func(*testhelpers.MockItemRepository, *testhelpers.MockEventPublisher)
		wantErr   error
	}{
		{
			name:     "creates item with defaults",
			itemName: "Joker",
			setupMock: func(repo *testhelpers.MockItemRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("GetByName", mock.Anything, "Joker").Return(nil, nil)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(i *entities.Item) bool {
					return i.Name == "Joker" && i.Weight == 1 && i.Rarity == entities.RarityR &&
						i.Reply == entities.DefaultItemReply && !i.IsSecret
				})).Return(nil)
				pub.On("Publish", events.PoolChangedEvent{
					GuildID:  testGuildID,
					ItemName: "Joker",
					Action:   events.PoolActionCreated,
				}).Return(nil)
			},
		},
		{
			name:     "secret flag is kept",
			itemName: "Shadow",
			secret:   true,
			setupMock: func(repo *testhelpers.MockItemRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("GetByName", mock.Anything, "Shadow").Return(nil, nil)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(i *entities.Item) bool {
					return i.IsSecret
				})).Return(nil)
				pub.On("Publish", mock.Anything).Return(nil)
			},
		},
		{
			name:     "duplicate name is rejected",
			itemName: "Joker",
			setupMock: func(repo *testhelpers.MockItemRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("GetByName", mock.Anything, "Joker").Return(&entities.Item{Name: "Joker"}, nil)
			},
			wantErr: entities.ErrInvalidArgument,
		},
		{
			name:      "blank name is rejected",
			itemName:  "   ",
			setupMock: func(*testhelpers.MockItemRepository, *testhelpers.MockEventPublisher) {},
			wantErr:   entities.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := new(testhelpers.MockItemRepository)
			pub := new(testhelpers.MockEventPublisher)
			tt.setupMock(repo, pub)

			svc := NewItemService(testGuildID, repo, new(testhelpers.MockPityRepository), new(testhelpers.MockCollectionRepository), pub)
			item, err := svc.CreateItem(context.Background(), tt.itemName, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itemName, item.Name)
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestItemService_EditItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   string
		value   string
		check   func(t *testing.T, item *entities.Item)
		wantErr error
	}{
		{
			name: "reply", field: "reply", value: "https://example.com/joker.gif",
			check: func(t *testing.T, i *entities.Item) { assert.Equal(t, "https://example.com/joker.gif", i.Reply) },
		},
		{
			name: "chance", field: "chance", value: "25",
			check: func(t *testing.T, i *entities.Item) { assert.Equal(t, int64(25), i.Weight) },
		},
		{name: "chance must be positive", field: "chance", value: "0", wantErr: entities.ErrInvalidArgument},
		{
			name: "rarity", field: "rarity", value: "ssr",
			check: func(t *testing.T, i *entities.Item) { assert.Equal(t, entities.RaritySSR, i.Rarity) },
		},
		{name: "bad rarity", field: "rarity", value: "legendary", wantErr: entities.ErrInvalidArgument},
		{
			name: "tokens accepts si", field: "tokens", value: "si",
			check: func(t *testing.T, i *entities.Item) { assert.True(t, i.GivesTokens) },
		},
		{
			name: "role-given", field: "role-given", value: "<@&555>",
			check: func(t *testing.T, i *entities.Item) {
				require.NotNil(t, i.RoleOnAcquire)
				assert.Equal(t, "<@&555>", *i.RoleOnAcquire)
			},
		},
		{
			name: "role-given none clears", field: "role-given", value: "none",
			check: func(t *testing.T, i *entities.Item) { assert.Nil(t, i.RoleOnAcquire) },
		},
		{
			name: "object accepts legacy name", field: "object", value: "objeto",
			check: func(t *testing.T, i *entities.Item) { assert.Equal(t, entities.ObjectTypeObject, i.ObjectType) },
		},
		{
			name: "promo", field: "PROMO", value: "yes",
			check: func(t *testing.T, i *entities.Item) { assert.True(t, i.IsPromotional) },
		},
		{
			name: "collectable", field: "collectable", value: "5",
			check: func(t *testing.T, i *entities.Item) {
				require.NotNil(t, i.CollectableThreshold)
				assert.Equal(t, 5, *i.CollectableThreshold)
			},
		},
		{
			name: "collectable zero clears", field: "collectable", value: "0",
			check: func(t *testing.T, i *entities.Item) { assert.Nil(t, i.CollectableThreshold) },
		},
		{
			name: "secret", field: "secret", value: "true",
			check: func(t *testing.T, i *entities.Item) { assert.True(t, i.IsSecret) },
		},
		{name: "bad boolean", field: "secret", value: "maybe", wantErr: entities.ErrInvalidArgument},
		{name: "unknown field", field: "colour", value: "red", wantErr: entities.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := new(testhelpers.MockItemRepository)
			pub := new(testhelpers.MockEventPublisher)

			pool := []*entities.Item{
				{ID: 1, Name: "Joker", Weight: 1, Rarity: entities.RarityR, Reply: "hi", ObjectType: entities.ObjectTypeCharacter},
				{ID: 2, Name: "Mask", Weight: 1, Rarity: entities.RarityR, Reply: "hi", ObjectType: entities.ObjectTypeCharacter},
			}
			repo.On("GetPool", mock.Anything).Return(pool, nil)
			if tt.wantErr == nil {
				repo.On("Update", mock.Anything, pool[0]).Return(nil)
				pub.On("Publish", mock.Anything).Return(nil)
			}

			svc := NewItemService(testGuildID, repo, new(testhelpers.MockPityRepository), new(testhelpers.MockCollectionRepository), pub)
			item, err := svc.EditItem(context.Background(), "jok", tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, item)
			repo.AssertExpectations(t)
		})
	}
}

func TestItemService_DeleteItem_NotFound(t *testing.T) {
	t.Parallel()

	repo := new(testhelpers.MockItemRepository)
	repo.On("GetByName", mock.Anything, "Ghost").Return(nil, nil)

	svc := NewItemService(testGuildID, repo, new(testhelpers.MockPityRepository), new(testhelpers.MockCollectionRepository), new(testhelpers.MockEventPublisher))
	err := svc.DeleteItem(context.Background(), "Ghost")
	assert.ErrorIs(t, err, entities.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestItemService_ResetItems(t *testing.T) {
	t.Parallel()

	repo := new(testhelpers.MockItemRepository)
	pity := new(testhelpers.MockPityRepository)
	collections := new(testhelpers.MockCollectionRepository)
	pub := new(testhelpers.MockEventPublisher)

	repo.On("DeleteAll", mock.Anything).Return(int64(4), nil)
	collections.On("DeleteAll", mock.Anything).Return(int64(9), nil)
	pity.On("DeleteAll", mock.Anything).Return(int64(3), nil)
	pub.On("Publish", events.PoolChangedEvent{GuildID: testGuildID, Action: events.PoolActionReset}).Return(nil)

	svc := NewItemService(testGuildID, repo, pity, collections, pub)
	summary, err := svc.ResetItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Items)
	assert.Equal(t, int64(9), summary.Collections)
	assert.Equal(t, int64(3), summary.PityRows)
	pub.AssertExpectations(t)
}

func TestItemService_DeleteItem_RemovesCollections(t *testing.T) {
	t.Parallel()

	repo := new(testhelpers.MockItemRepository)
	collections := new(testhelpers.MockCollectionRepository)
	pub := new(testhelpers.MockEventPublisher)

	repo.On("GetByName", mock.Anything, "Joker").Return(&entities.Item{ID: 7, Name: "Joker"}, nil)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)
	collections.On("DeleteByItem", mock.Anything, "Joker").Return(int64(2), nil)
	pub.On("Publish", events.PoolChangedEvent{GuildID: testGuildID, ItemName: "Joker", Action: events.PoolActionDeleted}).Return(nil)

	svc := NewItemService(testGuildID, repo, new(testhelpers.MockPityRepository), collections, pub)
	require.NoError(t, svc.DeleteItem(context.Background(), "Joker"))

	repo.AssertExpectations(t)
	collections.AssertExpectations(t)
	pub.AssertExpectations(t)
}
