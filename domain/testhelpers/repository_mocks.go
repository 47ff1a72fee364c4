package testhelpers

import (
	"context"

	"gachabot/domain/entities"
	"gachabot/events"

	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetPool(ctx context.Context) ([]*entities.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemRepository) GetByName(ctx context.Context, name string) (*entities.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Upsert(ctx context.Context, item *entities.Item) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPityRepository is a mock implementation of PityRepository
type MockPityRepository struct {
	mock.Mock
}

func (m *MockPityRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.PityState, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PityState), args.Error(1)
}

func (m *MockPityRepository) Get(ctx context.Context, discordID int64) (*entities.PityState, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PityState), args.Error(1)
}

func (m *MockPityRepository) Save(ctx context.Context, state *entities.PityState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockPityRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRepository is a mock implementation of TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.TokenBalance), args.Error(1)
}

func (m *MockTokenRepository) Adjust(ctx context.Context, discordID int64, rarity entities.Rarity, delta int64) error {
	args := m.Called(ctx, discordID, rarity, delta)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCollectionRepository is a mock implementation of CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) GetCopies(ctx context.Context, discordID int64, itemName string) (int, error) {
	args := m.Called(ctx, discordID, itemName)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionRepository) Increment(ctx context.Context, discordID int64, itemName string, by int) (int, error) {
	args := m.Called(ctx, discordID, itemName, by)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionRepository) ListByUser(ctx context.Context, discordID int64) ([]*entities.CollectionEntry, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CollectionEntry), args.Error(1)
}

func (m *MockCollectionRepository) Reset(ctx context.Context, discordID int64, itemName string) (bool, error) {
	args := m.Called(ctx, discordID, itemName)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectionRepository) DeleteByItem(ctx context.Context, itemName string) (int64, error) {
	args := m.Called(ctx, itemName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockExchangeRepository is a mock implementation of ExchangeRepository
type MockExchangeRepository struct {
	mock.Mock
}

func (m *MockExchangeRepository) List(ctx context.Context) ([]*entities.ExchangeRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ExchangeRule), args.Error(1)
}

func (m *MockExchangeRepository) Get(ctx context.Context, exchangeID int) (*entities.ExchangeRule, error) {
	args := m.Called(ctx, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExchangeRule), args.Error(1)
}

func (m *MockExchangeRepository) Create(ctx context.Context, rewardName string) (*entities.ExchangeRule, error) {
	args := m.Called(ctx, rewardName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExchangeRule), args.Error(1)
}

func (m *MockExchangeRepository) UpdatePrice(ctx context.Context, exchangeID int, price entities.PriceVector) error {
	args := m.Called(ctx, exchangeID, price)
	return args.Error(0)
}

func (m *MockExchangeRepository) UpdateRole(ctx context.Context, exchangeID int, role *string) error {
	args := m.Called(ctx, exchangeID, role)
	return args.Error(0)
}

func (m *MockExchangeRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context) (*entities.GuildGachaConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildGachaConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Update(ctx context.Context, config *entities.GuildGachaConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) ListGuildIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockOwnershipChecker is a mock implementation of gacha.OwnershipChecker
type MockOwnershipChecker struct {
	mock.Mock
}

func (m *MockOwnershipChecker) Owns(ctx context.Context, discordID int64, roleRef string) (bool, error) {
	args := m.Called(ctx, discordID, roleRef)
	return args.Bool(0), args.Error(1)
}
