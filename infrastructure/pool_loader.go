package infrastructure

import (
	"fmt"
	"os"

	"gachabot/domain/entities"

	"gopkg.in/yaml.v3"
)

// PoolFile is the YAML document accepted by the import-pool command
type PoolFile struct {
	Items []PoolFileItem `yaml:"items"`
}

// PoolFileItem describes one item. Omitted fields take the createitem defaults
type PoolFileItem struct {
	Name        string  `yaml:"name"`
	Weight      *int64  `yaml:"weight"`
	Rarity      string  `yaml:"rarity"`
	Reply       *string `yaml:"reply"`
	GivesTokens bool    `yaml:"tokens"`
	Role        string  `yaml:"role"`
	Object      string  `yaml:"object"`
	Promo       bool    `yaml:"promo"`
	Secret      bool    `yaml:"secret"`
	Collectable int     `yaml:"collectable"`
}

// LoadPoolFile reads and validates a pool file
func LoadPoolFile(path string, guildID int64) ([]*entities.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file: %w", err)
	}
	return ParsePool(data, guildID)
}

// ParsePool converts a YAML pool document into items for guildID
func ParsePool(data []byte, guildID int64) ([]*entities.Item, error) {
	var file PoolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pool file: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("%w: pool file has no items", entities.ErrInvalidArgument)
	}

	seen := make(map[string]bool, len(file.Items))
	items := make([]*entities.Item, 0, len(file.Items))
	for i, entry := range file.Items {
		item, err := entry.toItem(guildID)
		if err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i+1, entry.Name, err)
		}
		if seen[item.Name] {
			return nil, fmt.Errorf("%w: item %q is listed twice", entities.ErrInvalidArgument, item.Name)
		}
		seen[item.Name] = true
		items = append(items, item)
	}
	return items, nil
}

func (e PoolFileItem) toItem(guildID int64) (*entities.Item, error) {
	item := entities.NewItem(guildID, e.Name, e.Secret)

	if e.Weight != nil {
		item.Weight = *e.Weight
	}
	if e.Rarity != "" {
		rarity, err := entities.ParseRarity(e.Rarity)
		if err != nil {
			return nil, err
		}
		item.Rarity = rarity
	}
	if e.Reply != nil {
		item.Reply = *e.Reply
	}
	if e.Object != "" {
		objectType, err := entities.ParseObjectType(e.Object)
		if err != nil {
			return nil, err
		}
		item.ObjectType = objectType
	}
	if e.Role != "" {
		role := e.Role
		item.RoleOnAcquire = &role
	}
	if e.Collectable > 0 {
		threshold := e.Collectable
		item.CollectableThreshold = &threshold
	}
	item.GivesTokens = e.GivesTokens
	item.IsPromotional = e.Promo

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}
