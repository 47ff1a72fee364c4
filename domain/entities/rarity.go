package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rarity is the tier of an item and of the token earned from it.
// Values are ordered ascending so comparisons follow R < UR < SR < SSR.
type Rarity int

const (
	RarityR Rarity = iota
	RarityUR
	RaritySR
	RaritySSR
)

// AllRarities lists tiers in ascending order.
var AllRarities = []Rarity{RarityR, RarityUR, RaritySR, RaritySSR}

// DisplayOrder lists tiers the way they are shown to users, best first.
var DisplayOrder = []Rarity{RaritySSR, RaritySR, RarityUR, RarityR}

func (r Rarity) String() string {
	switch r {
	case RarityR:
		return "R"
	case RarityUR:
		return "UR"
	case RaritySR:
		return "SR"
	case RaritySSR:
		return "SSR"
	default:
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
}

// Valid reports whether r is one of the four known tiers.
func (r Rarity) Valid() bool {
	return r >= RarityR && r <= RaritySSR
}

// Stars is the star decoration used next to item names.
func (r Rarity) Stars() string {
	switch r {
	case RaritySSR:
		return "★★★★★"
	case RaritySR:
		return "★★★★"
	case RarityUR:
		return "★★★"
	default:
		return "★★"
	}
}

// ParseRarity parses a tier name, case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return RarityR, nil
	case "UR":
		return RarityUR, nil
	case "SR":
		return RaritySR, nil
	case "SSR":
		return RaritySSR, nil
	}
	return 0, fmt.Errorf("%w: unknown rarity %q (expected R, UR, SR or SSR)", ErrInvalidArgument, s)
}

var tokenAmountPattern = regexp.MustCompile(`(?i)^(\d+)(SSR|SR|UR|R)$`)

// ParseTokenAmount parses admin arguments such as "5SSR" or "40r".
func ParseTokenAmount(s string) (Rarity, int64, error) {
	m := tokenAmountPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q is not an amount like 5SSR", ErrInvalidArgument, s)
	}
	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: amount %q out of range", ErrInvalidArgument, m[1])
	}
	rarity, err := ParseRarity(m[2])
	if err != nil {
		return 0, 0, err
	}
	return rarity, amount, nil
}
