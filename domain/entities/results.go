package entities

// DrawOutcome is the reward decision for a single drawn item.
type DrawOutcome struct {
	IsDuplicate    bool
	TokensAwarded  int64
	TokenRarity    Rarity
	GrantRole      string // Empty when no role should be granted
	CopiesOwned    int    // Collection count after the draw
	Milestone      bool
}

// DrawResult is one resolved draw, ready for presentation.
type DrawResult struct {
	Item    *Item
	Outcome DrawOutcome
	Pity    PityState // Snapshot after this draw
	Forced  bool      // Selected by the pity threshold
	WonFlip *bool     // Nil when no 50/50 took place
}

// SpinReport is the result of one spin command (1 or 10 draws).
type SpinReport struct {
	Draws    []DrawResult
	Balance  TokenBalance
	Warnings []string
}

// Best returns the index of the highest-rarity draw. Ties are broken by pick,
// which receives the number of tied candidates and returns one of them.
func (s *SpinReport) Best(pick func(n int) int) int {
	if len(s.Draws) == 0 {
		return -1
	}
	best := s.Draws[0].Item.Rarity
	for _, d := range s.Draws[1:] {
		if d.Item.Rarity > best {
			best = d.Item.Rarity
		}
	}
	var tied []int
	for i, d := range s.Draws {
		if d.Item.Rarity == best {
			tied = append(tied, i)
		}
	}
	if len(tied) == 1 || pick == nil {
		return tied[0]
	}
	return tied[pick(len(tied))]
}

// ExchangeResult is the outcome of a successful redemption.
type ExchangeResult struct {
	Rule    *ExchangeRule
	Balance TokenBalance
	// GrantRole is the role to give after commit, empty for none
	GrantRole string
	Warnings  []string
}
