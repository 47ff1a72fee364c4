package gacha

import (
	"gachabot/domain/entities"
)

// seqRNG replays a fixed list of values, repeating the last one.
type seqRNG struct {
	values []float64
	pos    int
}

func (s *seqRNG) Float64() float64 {
	if s.pos >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

func constRNG(v float64) *seqRNG { return &seqRNG{values: []float64{v}} }

func item(id int64, name string, weight int64, rarity entities.Rarity) *entities.Item {
	return &entities.Item{
		ID:         id,
		GuildID:    1,
		Name:       name,
		Weight:     weight,
		Rarity:     rarity,
		ObjectType: entities.ObjectTypeCharacter,
	}
}

func promo(i *entities.Item) *entities.Item {
	i.IsPromotional = true
	return i
}

func withRole(i *entities.Item, role string) *entities.Item {
	i.RoleOnAcquire = &role
	return i
}

func withThreshold(i *entities.Item, n int) *entities.Item {
	i.CollectableThreshold = &n
	return i
}
