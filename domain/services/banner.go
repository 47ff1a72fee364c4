package services

import (
	"sort"
	"strings"

	"gachabot/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BannerLine is one listed item and its chance per draw.
type BannerLine struct {
	Item    *entities.Item
	Percent decimal.Decimal
}

// BannerTier groups the lines of one rarity.
type BannerTier struct {
	Rarity   entities.Rarity
	Lines    []BannerLine
	Subtotal decimal.Decimal
}

// Banner is the odds table shown to users.
type Banner struct {
	Tiers       []BannerTier
	TotalWeight int64
}

// IsEmpty reports whether the banner lists no items.
func (b Banner) IsEmpty() bool {
	return len(b.Tiers) == 0
}

// BuildBanner lists either the public items (secret=false) or only the
// secret ones. Percentages are computed against the whole pool, hidden items
// included, so they are the real per-draw odds.
func BuildBanner(pool []*entities.Item, secret bool) Banner {
	total := entities.TotalWeight(pool)
	banner := Banner{TotalWeight: total}
	if total <= 0 {
		return banner
	}

	byTier := make(map[entities.Rarity][]BannerLine)
	for _, item := range pool {
		if item.IsSecret != secret {
			continue
		}
		byTier[item.Rarity] = append(byTier[item.Rarity], BannerLine{
			Item:    item,
			Percent: rawPercent(item.Weight, total),
		})
	}

	for _, rarity := range entities.DisplayOrder {
		lines := byTier[rarity]
		if len(lines) == 0 {
			continue
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return strings.ToLower(lines[i].Item.Name) < strings.ToLower(lines[j].Item.Name)
		})

		subtotal := decimal.Zero
		for i := range lines {
			subtotal = subtotal.Add(lines[i].Percent)
			lines[i].Percent = lines[i].Percent.Round(2)
		}
		banner.Tiers = append(banner.Tiers, BannerTier{
			Rarity:   rarity,
			Lines:    lines,
			Subtotal: subtotal.Round(2),
		})
	}
	return banner
}

// ItemPercent returns the chance of drawing item from pool, rounded to 2 places.
func ItemPercent(pool []*entities.Item, item *entities.Item) decimal.Decimal {
	total := entities.TotalWeight(pool)
	if total <= 0 {
		return decimal.Zero
	}
	return rawPercent(item.Weight, total).Round(2)
}

func rawPercent(weight, total int64) decimal.Decimal {
	return decimal.NewFromInt(weight).Mul(hundred).Div(decimal.NewFromInt(total))
}
