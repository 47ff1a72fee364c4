package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/events"
)

// Editable item fields accepted by EditItem
const (
	FieldReply       = "reply"
	FieldChance      = "chance"
	FieldRarity      = "rarity"
	FieldTokens      = "tokens"
	FieldRoleGiven   = "role-given"
	FieldObject      = "object"
	FieldPromo       = "promo"
	FieldCollectable = "collectable"
	FieldSecret      = "secret"
)

// EditableFields lists the fields in help order.
var EditableFields = []string{
	FieldReply, FieldChance, FieldRarity, FieldTokens, FieldRoleGiven,
	FieldObject, FieldPromo, FieldCollectable, FieldSecret,
}

// itemService implements the ItemService interface
type itemService struct {
	guildID        int64
	itemRepo       interfaces.ItemRepository
	pityRepo       interfaces.PityRepository
	collectionRepo interfaces.CollectionRepository
	eventPublisher interfaces.EventPublisher
}

// NewItemService creates a new item service
func NewItemService(
	guildID int64,
	itemRepo interfaces.ItemRepository,
	pityRepo interfaces.PityRepository,
	collectionRepo interfaces.CollectionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ItemService {
	return &itemService{
		guildID:        guildID,
		itemRepo:       itemRepo,
		pityRepo:       pityRepo,
		collectionRepo: collectionRepo,
		eventPublisher: eventPublisher,
	}
}

// GetPool returns every item in draw order
func (s *itemService) GetPool(ctx context.Context) ([]*entities.Item, error) {
	pool, err := s.itemRepo.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load item pool: %w", err)
	}
	return pool, nil
}

// FindItem resolves a partial name to exactly one item
func (s *itemService) FindItem(ctx context.Context, query string) (*entities.Item, error) {
	pool, err := s.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	return resolveItem(pool, query)
}

// CreateItem adds an item with default settings
func (s *itemService) CreateItem(ctx context.Context, name string, secret bool) (*entities.Item, error) {
	name = strings.TrimSpace(name)
	item := entities.NewItem(s.guildID, name, secret)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing item: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an item named %q already exists", entities.ErrInvalidArgument, name)
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	publishEvent(s.eventPublisher, events.PoolChangedEvent{
		GuildID:  s.guildID,
		ItemName: item.Name,
		Action:   events.PoolActionCreated,
	})
	return item, nil
}

// EditItem changes one field of the item matched by query
func (s *itemService) EditItem(ctx context.Context, query, field, value string) (*entities.Item, error) {
	item, err := s.FindItem(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := applyItemField(item, strings.ToLower(field), strings.TrimSpace(value)); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	publishEvent(s.eventPublisher, events.PoolChangedEvent{
		GuildID:  s.guildID,
		ItemName: item.Name,
		Action:   events.PoolActionUpdated,
	})
	return item, nil
}

func applyItemField(item *entities.Item, field, value string) error {
	switch field {
	case FieldReply:
		if value == "" {
			return fmt.Errorf("%w: reply cannot be empty", entities.ErrInvalidArgument)
		}
		item.Reply = value
	case FieldChance:
		weight, err := strconv.ParseInt(value, 10, 64)
		if err != nil || weight <= 0 {
			return fmt.Errorf("%w: chance must be a positive whole number", entities.ErrInvalidArgument)
		}
		item.Weight = weight
	case FieldRarity:
		rarity, err := entities.ParseRarity(value)
		if err != nil {
			return err
		}
		item.Rarity = rarity
	case FieldTokens:
		b, err := ParseBool(value)
		if err != nil {
			return err
		}
		item.GivesTokens = b
	case FieldRoleGiven:
		if isClearValue(value) {
			item.RoleOnAcquire = nil
		} else {
			item.RoleOnAcquire = &value
		}
	case FieldObject:
		objectType, err := entities.ParseObjectType(value)
		if err != nil {
			return err
		}
		item.ObjectType = objectType
	case FieldPromo:
		b, err := ParseBool(value)
		if err != nil {
			return err
		}
		item.IsPromotional = b
	case FieldCollectable:
		if isClearValue(value) || value == "0" {
			item.CollectableThreshold = nil
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: collectable must be a positive whole number", entities.ErrInvalidArgument)
		}
		item.CollectableThreshold = &n
	case FieldSecret:
		b, err := ParseBool(value)
		if err != nil {
			return err
		}
		item.IsSecret = b
	default:
		return fmt.Errorf("%w: unknown field %q (expected one of %s)",
			entities.ErrInvalidArgument, field, strings.Join(EditableFields, ", "))
	}
	return nil
}

// ParseBool accepts true|yes|si and false|no, case-insensitively.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "si", "sí":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not true/yes/si or false/no", entities.ErrInvalidArgument, value)
}

func isClearValue(value string) bool {
	switch strings.ToLower(value) {
	case "", "none", "remove":
		return true
	}
	return false
}

// DeleteItem removes an item by exact name
func (s *itemService) DeleteItem(ctx context.Context, name string) error {
	item, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("item %q: %w", name, entities.ErrNotFound)
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if _, err := s.collectionRepo.DeleteByItem(ctx, item.Name); err != nil {
		return fmt.Errorf("failed to delete collections of item: %w", err)
	}

	publishEvent(s.eventPublisher, events.PoolChangedEvent{
		GuildID:  s.guildID,
		ItemName: item.Name,
		Action:   events.PoolActionDeleted,
	})
	return nil
}

// ResetItems removes every item along with all collections and pity
func (s *itemService) ResetItems(ctx context.Context) (*interfaces.ResetSummary, error) {
	items, err := s.itemRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete items: %w", err)
	}
	collections, err := s.collectionRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete collections: %w", err)
	}
	pity, err := s.pityRepo.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete pity state: %w", err)
	}

	publishEvent(s.eventPublisher, events.PoolChangedEvent{
		GuildID: s.guildID,
		Action:  events.PoolActionReset,
	})
	return &interfaces.ResetSummary{Items: items, Collections: collections, PityRows: pity}, nil
}

// ImportItems upserts items by name
func (s *itemService) ImportItems(ctx context.Context, items []*entities.Item) (int, int, error) {
	var created, updated int
	for _, item := range items {
		item.GuildID = s.guildID
		if err := item.Validate(); err != nil {
			return created, updated, fmt.Errorf("item %q: %w", item.Name, err)
		}
		isNew, err := s.itemRepo.Upsert(ctx, item)
		if err != nil {
			return created, updated, fmt.Errorf("failed to import item %q: %w", item.Name, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	publishEvent(s.eventPublisher, events.PoolChangedEvent{
		GuildID: s.guildID,
		Action:  events.PoolActionImported,
	})
	return created, updated, nil
}
