package gacha

import (
	"testing"

	"gachabot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		item   *entities.Item
		owned  bool
		copies int
		want   entities.DrawOutcome
	}{
		{
			name:   "held role makes the draw a duplicate",
			item:   withRole(item(1, "Joker", 1, entities.RaritySR), "RoleX"),
			owned:  true,
			copies: 1,
			want: entities.DrawOutcome{
				IsDuplicate:   true,
				TokensAwarded: 1,
				TokenRarity:   entities.RaritySR,
				CopiesOwned:   1,
			},
		},
		{
			name:  "new role item grants the role and counts a copy",
			item:  withRole(item(1, "Joker", 1, entities.RaritySR), "RoleX"),
			owned: false,
			want: entities.DrawOutcome{
				TokenRarity: entities.RaritySR,
				GrantRole:   "RoleX",
				CopiesOwned: 1,
			},
		},
		{
			name:   "item without a role is never a duplicate",
			item:   item(1, "Coin", 1, entities.RarityR),
			copies: 4,
			want: entities.DrawOutcome{
				TokenRarity: entities.RarityR,
				CopiesOwned: 5,
			},
		},
		{
			name: "persona that gives tokens always pays a token",
			item: func() *entities.Item {
				i := item(1, "Mask", 1, entities.RarityUR)
				i.ObjectType = entities.ObjectTypePersona
				i.GivesTokens = true
				return i
			}(),
			copies: 2,
			want: entities.DrawOutcome{
				TokensAwarded: 1,
				TokenRarity:   entities.RarityUR,
				CopiesOwned:   2,
			},
		},
		{
			name: "gives tokens on a character only matters for duplicates",
			item: func() *entities.Item {
				i := item(1, "Hero", 1, entities.RarityUR)
				i.GivesTokens = true
				return i
			}(),
			want: entities.DrawOutcome{
				TokenRarity: entities.RarityUR,
				CopiesOwned: 1,
			},
		},
		{
			name:   "threshold withholds the role below the count",
			item:   withThreshold(withRole(item(1, "Shard", 1, entities.RarityR), "Collector"), 3),
			copies: 1,
			want: entities.DrawOutcome{
				TokenRarity: entities.RarityR,
				CopiesOwned: 2,
			},
		},
		{
			name:   "reaching the threshold is a milestone and grants the role",
			item:   withThreshold(withRole(item(1, "Shard", 1, entities.RarityR), "Collector"), 3),
			copies: 2,
			want: entities.DrawOutcome{
				TokenRarity: entities.RarityR,
				GrantRole:   "Collector",
				CopiesOwned: 3,
				Milestone:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Resolve(tt.item, tt.owned, tt.copies))
		})
	}
}

func TestResolveBatch_RoleGrantedEarlierCountsAsOwned(t *testing.T) {
	t.Parallel()

	joker := withRole(item(1, "Joker", 1, entities.RaritySSR), "RoleX")
	coin := item(2, "Coin", 1, entities.RarityR)
	selections := []Selection{
		{Item: joker, Pity: entities.PityState{Counter: 0}},
		{Item: coin, Pity: entities.PityState{Counter: 1}},
		{Item: joker, Pity: entities.PityState{Counter: 0}},
		{Item: coin, Pity: entities.PityState{Counter: 1}},
	}

	results, final := ResolveBatch(selections, Holdings{})

	assert.False(t, results[0].Outcome.IsDuplicate)
	assert.Equal(t, "RoleX", results[0].Outcome.GrantRole)
	assert.True(t, results[2].Outcome.IsDuplicate)
	assert.Empty(t, results[2].Outcome.GrantRole)
	assert.Equal(t, int64(1), results[2].Outcome.TokensAwarded)
	assert.Equal(t, 2, results[3].Outcome.CopiesOwned)

	assert.Equal(t, map[string]int{"Joker": 1, "Coin": 2}, final.Copies)
	assert.True(t, final.Roles["RoleX"])
	assert.Equal(t, map[entities.Rarity]int64{entities.RaritySSR: 1}, TokensEarned(results))
}

func TestResolveBatch_DoesNotMutateStartingHoldings(t *testing.T) {
	t.Parallel()

	start := Holdings{
		Roles:  map[string]bool{},
		Copies: map[string]int{"Coin": 1},
	}
	_, _ = ResolveBatch([]Selection{{Item: item(1, "Coin", 1, entities.RarityR)}}, start)

	assert.Equal(t, 1, start.Copies["Coin"])
}
