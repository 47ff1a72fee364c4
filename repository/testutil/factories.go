package testutil

import (
	"gachabot/domain/entities"
)

// CreateTestItem returns an unsaved item with the given rarity and weight
func CreateTestItem(guildID int64, name string, rarity entities.Rarity, weight int64) *entities.Item {
	item := entities.NewItem(guildID, name, false)
	item.Rarity = rarity
	item.Weight = weight
	return item
}

// CreateTestPromoItem returns an unsaved promotional item
func CreateTestPromoItem(guildID int64, name string, rarity entities.Rarity, weight int64) *entities.Item {
	item := CreateTestItem(guildID, name, rarity, weight)
	item.IsPromotional = true
	return item
}

// CreateTestCollectable returns an unsaved persona with a role gated on threshold copies
func CreateTestCollectable(guildID int64, name, role string, threshold int) *entities.Item {
	item := CreateTestItem(guildID, name, entities.RaritySR, 1)
	item.ObjectType = entities.ObjectTypePersona
	item.RoleOnAcquire = &role
	item.CollectableThreshold = &threshold
	return item
}
