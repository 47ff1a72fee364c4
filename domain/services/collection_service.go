package services

import (
	"context"
	"fmt"
	"sort"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
)

// collectionService implements the CollectionService interface
type collectionService struct {
	itemRepo       interfaces.ItemRepository
	collectionRepo interfaces.CollectionRepository
}

// NewCollectionService creates a new collection service
func NewCollectionService(itemRepo interfaces.ItemRepository, collectionRepo interfaces.CollectionRepository) interfaces.CollectionService {
	return &collectionService{
		itemRepo:       itemRepo,
		collectionRepo: collectionRepo,
	}
}

// Inventory lists persona and object items the user owns, best rarity first
func (s *collectionService) Inventory(ctx context.Context, discordID int64) ([]entities.InventoryLine, error) {
	entries, err := s.collectionRepo.ListByUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	pool, err := s.itemRepo.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load item pool: %w", err)
	}
	byName := make(map[string]*entities.Item, len(pool))
	for _, item := range pool {
		byName[item.Name] = item
	}

	var lines []entities.InventoryLine
	for _, entry := range entries {
		item, ok := byName[entry.ItemName]
		if !ok || entry.Copies <= 0 || !item.ObjectType.IsCollectable() {
			continue
		}
		lines = append(lines, entities.InventoryLine{Item: item, Copies: entry.Copies})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Item.Rarity != lines[j].Item.Rarity {
			return lines[i].Item.Rarity > lines[j].Item.Rarity
		}
		return lines[i].Item.Name < lines[j].Item.Name
	})
	return lines, nil
}

// ResetCollectable clears one user's copies of the item matched by query
func (s *collectionService) ResetCollectable(ctx context.Context, discordID int64, query string) (*entities.Item, error) {
	pool, err := s.itemRepo.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load item pool: %w", err)
	}
	item, err := resolveItem(pool, query)
	if err != nil {
		return nil, err
	}

	removed, err := s.collectionRepo.Reset(ctx, discordID, item.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to reset collectable: %w", err)
	}
	if !removed {
		return nil, fmt.Errorf("user has no copies of %q: %w", item.Name, entities.ErrNotFound)
	}
	return item, nil
}
