// Package gacha holds the pure draw, reward and exchange rules. Nothing in
// here touches storage or the chat platform; callers load state, run the
// functions below and persist what comes back.
package gacha

import (
	"gachabot/domain/entities"
)

// Selection is one drawn item together with the pity state after the draw.
type Selection struct {
	Item    *entities.Item
	Pity    entities.PityState
	Forced  bool
	WonFlip *bool // nil when no 50/50 was rolled
}

// Draw selects one item from pool and advances pity.
//
// Items are walked in slice order, which callers must keep stable
// (ascending id). Reordering the pool changes which item a given random
// value lands on.
func Draw(pool []*entities.Item, pity entities.PityState, rng RandomSource) (Selection, error) {
	if len(pool) == 0 || entities.TotalWeight(pool) <= 0 {
		return Selection{}, entities.ErrEmptyPool
	}

	next := pity
	next.Counter++

	var (
		picked *entities.Item
		forced bool
	)
	if next.Counter >= entities.PityThreshold {
		picked = weightedPick(filterRarity(pool, highestRarity(pool)), rng)
		forced = true
	} else {
		picked = weightedPick(pool, rng)
	}

	sel := Selection{Item: picked, Forced: forced}
	if picked.Rarity != entities.RaritySSR {
		sel.Pity = next
		return sel, nil
	}

	next.Counter = 0
	ssr := filterRarity(pool, entities.RaritySSR)

	if next.GuaranteedPromotional {
		if promo := filterPromotional(ssr, true); len(promo) > 0 {
			picked = weightedPick(promo, rng)
		}
		// the guarantee is spent even when no promotional SSR exists
		next.GuaranteedPromotional = false
	} else {
		wantPromo := rng.Float64() < 0.5
		if preferred := filterPromotional(ssr, wantPromo); len(preferred) > 0 && picked.IsPromotional != wantPromo {
			picked = weightedPick(preferred, rng)
		}
		won := picked.IsPromotional
		sel.WonFlip = &won
		// losing the flip carries a guarantee to the next SSR
		next.GuaranteedPromotional = !won
	}

	sel.Item = picked
	sel.Pity = next
	return sel, nil
}

// DrawBatch folds Draw n times over the pity state. Each draw sees the state
// left by the previous one.
func DrawBatch(pool []*entities.Item, pity entities.PityState, n int, rng RandomSource) ([]Selection, entities.PityState, error) {
	out := make([]Selection, 0, n)
	state := pity
	for i := 0; i < n; i++ {
		sel, err := Draw(pool, state, rng)
		if err != nil {
			return nil, pity, err
		}
		out = append(out, sel)
		state = sel.Pity
	}
	return out, state, nil
}

// weightedPick walks items accumulating weight and returns the first whose
// running total exceeds r in [0, total).
func weightedPick(items []*entities.Item, rng RandomSource) *entities.Item {
	total := entities.TotalWeight(items)
	r := rng.Float64() * float64(total)

	var cumulative float64
	for _, item := range items {
		cumulative += float64(item.Weight)
		if cumulative > r {
			return item
		}
	}
	return items[len(items)-1]
}

func highestRarity(pool []*entities.Item) entities.Rarity {
	best := entities.RarityR
	for _, item := range pool {
		if item.Rarity > best {
			best = item.Rarity
		}
	}
	return best
}

func filterRarity(pool []*entities.Item, rarity entities.Rarity) []*entities.Item {
	var out []*entities.Item
	for _, item := range pool {
		if item.Rarity == rarity {
			out = append(out, item)
		}
	}
	return out
}

func filterPromotional(pool []*entities.Item, promotional bool) []*entities.Item {
	var out []*entities.Item
	for _, item := range pool {
		if item.IsPromotional == promotional {
			out = append(out, item)
		}
	}
	return out
}
