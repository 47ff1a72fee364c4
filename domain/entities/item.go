package entities

import (
	"fmt"
	"strings"
	"time"
)

// ObjectType controls how duplicates of an item are rewarded.
type ObjectType string

const (
	ObjectTypeCharacter ObjectType = "character"
	ObjectTypePersona   ObjectType = "persona"
	ObjectTypeObject    ObjectType = "object"
)

// ParseObjectType accepts the English names plus the legacy "personaje" and "objeto".
func ParseObjectType(s string) (ObjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "character", "personaje":
		return ObjectTypeCharacter, nil
	case "persona":
		return ObjectTypePersona, nil
	case "object", "objeto":
		return ObjectTypeObject, nil
	}
	return "", fmt.Errorf("%w: unknown object type %q (expected character, persona or object)", ErrInvalidArgument, s)
}

// IsCollectable reports whether copies of the type are tracked in the inventory view.
func (t ObjectType) IsCollectable() bool {
	return t == ObjectTypePersona || t == ObjectTypeObject
}

// Item is a prize definition in a guild's pool
type Item struct {
	ID                   int64      `db:"id"`
	GuildID              int64      `db:"guild_id"`
	Name                 string     `db:"name"`
	Weight               int64      `db:"weight"`
	Rarity               Rarity     `db:"rarity"`
	Reply                string     `db:"reply"`
	GivesTokens          bool       `db:"gives_tokens"`
	RoleOnAcquire        *string    `db:"role_on_acquire"` // Nullable - role name, mention or id
	ObjectType           ObjectType `db:"object_type"`
	IsPromotional        bool       `db:"is_promotional"`
	IsSecret             bool       `db:"is_secret"`
	CollectableThreshold *int       `db:"collectable_threshold"` // Nullable - copies needed before the role is granted
	CreatedAt            time.Time  `db:"created_at"`
}

const (
	DefaultItemWeight = 1
	DefaultItemReply  = "Prize obtained"
)

// NewItem returns an item with the defaults used by createitem.
func NewItem(guildID int64, name string, secret bool) *Item {
	return &Item{
		GuildID:    guildID,
		Name:       name,
		Weight:     DefaultItemWeight,
		Rarity:     RarityR,
		Reply:      DefaultItemReply,
		ObjectType: ObjectTypeCharacter,
		IsSecret:   secret,
	}
}

// HasRole checks if acquiring the item is tied to a role
func (i *Item) HasRole() bool {
	return i.RoleOnAcquire != nil && *i.RoleOnAcquire != ""
}

// HasThreshold checks if the item's role is gated on a copy count
func (i *Item) HasThreshold() bool {
	return i.CollectableThreshold != nil && *i.CollectableThreshold > 0
}

// AlwaysGivesTokens reports whether every draw of the item pays a token
// instead of counting as an acquisition.
func (i *Item) AlwaysGivesTokens() bool {
	return i.ObjectType == ObjectTypePersona && i.GivesTokens
}

// Validate checks the invariants enforced by the items table.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalidArgument)
	}
	if i.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidArgument)
	}
	if !i.Rarity.Valid() {
		return fmt.Errorf("%w: invalid rarity", ErrInvalidArgument)
	}
	if i.CollectableThreshold != nil && *i.CollectableThreshold <= 0 {
		return fmt.Errorf("%w: collectable threshold must be positive", ErrInvalidArgument)
	}
	return nil
}

// TotalWeight sums the weights of a pool.
func TotalWeight(pool []*Item) int64 {
	var total int64
	for _, item := range pool {
		total += item.Weight
	}
	return total
}
