package gacha

import (
	"context"

	"gachabot/domain/entities"
)

// OwnershipChecker decides whether a user already owns the thing an item
// represents. The default implementation asks the chat platform whether the
// user holds the item's role; a persisted "ever acquired" flag could replace
// it without touching Draw or Resolve.
type OwnershipChecker interface {
	Owns(ctx context.Context, discordID int64, roleRef string) (bool, error)
}

// Resolve classifies one drawn item.
//
// owned reports whether the user holds the item's role, copies is the
// collection count before this draw.
func Resolve(item *entities.Item, owned bool, copies int) entities.DrawOutcome {
	duplicate := item.HasRole() && owned

	if duplicate || item.AlwaysGivesTokens() {
		return entities.DrawOutcome{
			IsDuplicate:   duplicate,
			TokensAwarded: 1,
			TokenRarity:   item.Rarity,
			CopiesOwned:   copies,
		}
	}

	out := entities.DrawOutcome{
		TokenRarity: item.Rarity,
		CopiesOwned: copies + 1,
	}
	if !item.HasRole() {
		return out
	}
	if !item.HasThreshold() {
		out.GrantRole = *item.RoleOnAcquire
		return out
	}
	threshold := *item.CollectableThreshold
	if out.CopiesOwned >= threshold {
		out.GrantRole = *item.RoleOnAcquire
		out.Milestone = out.CopiesOwned == threshold
	}
	return out
}

// Holdings is what a user owns going into a batch: roles held, keyed by role
// reference, and copies per item name.
type Holdings struct {
	Roles  map[string]bool
	Copies map[string]int
}

func (h Holdings) clone() Holdings {
	out := Holdings{
		Roles:  make(map[string]bool, len(h.Roles)),
		Copies: make(map[string]int, len(h.Copies)),
	}
	for k, v := range h.Roles {
		out.Roles[k] = v
	}
	for k, v := range h.Copies {
		out.Copies[k] = v
	}
	return out
}

// ResolveBatch folds Resolve over a batch of selections. A role granted by
// an earlier draw counts as held for later draws of the same batch, and
// copies accumulate.
func ResolveBatch(selections []Selection, start Holdings) ([]entities.DrawResult, Holdings) {
	state := start.clone()
	results := make([]entities.DrawResult, 0, len(selections))

	for _, sel := range selections {
		item := sel.Item
		owned := false
		if item.HasRole() {
			owned = state.Roles[*item.RoleOnAcquire]
		}

		outcome := Resolve(item, owned, state.Copies[item.Name])
		state.Copies[item.Name] = outcome.CopiesOwned
		if outcome.GrantRole != "" {
			state.Roles[outcome.GrantRole] = true
		}

		results = append(results, entities.DrawResult{
			Item:    item,
			Outcome: outcome,
			Pity:    sel.Pity,
			Forced:  sel.Forced,
			WonFlip: sel.WonFlip,
		})
	}
	return results, state
}

// TokensEarned totals the tokens awarded across results, per tier.
func TokensEarned(results []entities.DrawResult) map[entities.Rarity]int64 {
	earned := make(map[entities.Rarity]int64)
	for _, r := range results {
		if r.Outcome.TokensAwarded > 0 {
			earned[r.Outcome.TokenRarity] += r.Outcome.TokensAwarded
		}
	}
	return earned
}
