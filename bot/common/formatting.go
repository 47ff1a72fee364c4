package common

import (
	"fmt"
	"strings"

	"gachabot/domain/entities"

	"github.com/shopspring/decimal"
)

// FormatCount formats a count with thousand separators
func FormatCount(n int64) string {
	str := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	digits := len(str)
	if digits <= 3 {
		if negative {
			return "-" + str
		}
		return str
	}

	var result strings.Builder
	if negative {
		result.WriteRune('-')
	}
	for i, digit := range str {
		if i > 0 && (digits-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatPercent renders a chance with two decimals, e.g. "12.50%"
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// FormatItemName decorates an item name with its stars and the promo marker
func FormatItemName(item *entities.Item) string {
	name := fmt.Sprintf("%s %s", item.Rarity.Stars(), item.Name)
	if item.IsPromotional {
		name += " " + PromoMarker
	}
	return name
}

// FormatTokenBalance lists every tier in display order, zeros included
func FormatTokenBalance(balance entities.TokenBalance, currency string) string {
	lines := make([]string, 0, len(entities.DisplayOrder))
	for _, tier := range entities.DisplayOrder {
		lines = append(lines, fmt.Sprintf("%s **%s**: %s", currency, tier, FormatCount(balance.Get(tier))))
	}
	return strings.Join(lines, "\n")
}

// FormatProgress renders collectable progress as "count / threshold (pct%)" or "Completed"
func FormatProgress(line entities.InventoryLine) string {
	if !line.Item.HasThreshold() {
		return fmt.Sprintf("%d", line.Copies)
	}
	if line.Completed() {
		return fmt.Sprintf("%d / %d ✅ Completed", line.Copies, *line.Item.CollectableThreshold)
	}
	// floored so an unfinished collection never reads 100%
	threshold := int64(*line.Item.CollectableThreshold)
	pct := decimal.NewFromInt(int64(line.Copies) * 100).Div(decimal.NewFromInt(threshold)).Floor()
	return fmt.Sprintf("%d / %d (%s%%)", line.Copies, *line.Item.CollectableThreshold, pct.String())
}

// FormatPity renders the pity counter line
func FormatPity(p entities.PityState) string {
	return fmt.Sprintf("%d/%d", p.Counter, entities.PityThreshold)
}

// FormatRole renders a stored role reference, or "none"
func FormatRole(role *string) string {
	if role == nil || *role == "" {
		return "none"
	}
	return *role
}

// Truncate cuts s to max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
