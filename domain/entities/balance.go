package entities

import "fmt"

// TokenBalance maps each tier to a non-negative token amount.
// Missing tiers are zero.
type TokenBalance map[Rarity]int64

// Get returns the amount held for a tier.
func (b TokenBalance) Get(r Rarity) int64 {
	return b[r]
}

// CanAfford reports whether every positive entry of price is covered.
// Tiers with a zero price are not checked.
func (b TokenBalance) CanAfford(price PriceVector) bool {
	for tier, amount := range price {
		if amount > 0 && b[tier] < amount {
			return false
		}
	}
	return true
}

// Shortfall returns the missing amount per tier for price, empty when affordable.
func (b TokenBalance) Shortfall(price PriceVector) map[Rarity]int64 {
	missing := make(map[Rarity]int64)
	for tier, amount := range price {
		if amount > 0 && b[tier] < amount {
			missing[tier] = amount - b[tier]
		}
	}
	return missing
}

// Debit returns a new balance with price subtracted, or ErrInsufficientFunds
// without touching any tier.
func (b TokenBalance) Debit(price PriceVector) (TokenBalance, error) {
	if !b.CanAfford(price) {
		return nil, ErrInsufficientFunds
	}
	out := b.Clone()
	for tier, amount := range price {
		if amount > 0 {
			out[tier] -= amount
		}
	}
	return out, nil
}

// Credit returns a new balance with amount added to tier.
func (b TokenBalance) Credit(tier Rarity, amount int64) TokenBalance {
	out := b.Clone()
	out[tier] += amount
	return out
}

func (b TokenBalance) Clone() TokenBalance {
	out := make(TokenBalance, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether no tier holds tokens.
func (b TokenBalance) IsEmpty() bool {
	for _, v := range b {
		if v > 0 {
			return false
		}
	}
	return true
}

// PriceVector is the token cost of an exchange, per tier.
type PriceVector map[Rarity]int64

// IsFree reports whether no tier carries a positive price.
func (p PriceVector) IsFree() bool {
	for _, v := range p {
		if v > 0 {
			return false
		}
	}
	return true
}

// String renders the price as "1SSR 3SR" in display order, or "free".
func (p PriceVector) String() string {
	out := ""
	for _, tier := range DisplayOrder {
		if p[tier] > 0 {
			if out != "" {
				out += " "
			}
			out += fmt.Sprintf("%d%s", p[tier], tier)
		}
	}
	if out == "" {
		return "free"
	}
	return out
}

// ParsePriceVector parses arguments like ["1SSR", "3SR", "10UR"].
// A repeated tier keeps the last value.
func ParsePriceVector(args []string) (PriceVector, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: price needs at least one amount like 1SSR", ErrInvalidArgument)
	}
	price := make(PriceVector, len(args))
	for _, arg := range args {
		tier, amount, err := ParseTokenAmount(arg)
		if err != nil {
			return nil, err
		}
		price[tier] = amount
	}
	return price, nil
}
