package common

import (
	"testing"

	"gachabot/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected string
	}{
		{"Small", 999, "999"},
		{"Thousand", 1000, "1,000"},
		{"Million", 1234567, "1,234,567"},
		{"Negative", -1500, "-1,500"},
		{"Zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCount(tt.n))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPercent(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.33%", FormatPercent(decimal.RequireFromString("0.333")))
	assert.Equal(t, "100.00%", FormatPercent(decimal.NewFromInt(100)))
}

func TestFormatItemName(t *testing.T) {
	item := &entities.Item{Name: "Joker", Rarity: entities.RaritySSR, IsPromotional: true}
	assert.Equal(t, "★★★★★ Joker ⭐", FormatItemName(item))

	item = &entities.Item{Name: "Pebble", Rarity: entities.RarityR}
	assert.Equal(t, "★★ Pebble", FormatItemName(item))
}

func TestFormatTokenBalance(t *testing.T) {
	balance := entities.TokenBalance{entities.RaritySSR: 2, entities.RarityR: 1200}
	expected := "🪙 **SSR**: 2\n🪙 **SR**: 0\n🪙 **UR**: 0\n🪙 **R**: 1,200"
	assert.Equal(t, expected, FormatTokenBalance(balance, "🪙"))
}

func TestFormatProgress(t *testing.T) {
	threshold := 4
	item := &entities.Item{Name: "Mascot", CollectableThreshold: &threshold}

	assert.Equal(t, "1 / 4 (25%)", FormatProgress(entities.InventoryLine{Item: item, Copies: 1}))
	assert.Equal(t, "4 / 4 ✅ Completed", FormatProgress(entities.InventoryLine{Item: item, Copies: 4}))
	assert.Equal(t, "3", FormatProgress(entities.InventoryLine{Item: &entities.Item{Name: "Key"}, Copies: 3}))

	large := 200
	almost := &entities.Item{Name: "Trophy", CollectableThreshold: &large}
	assert.Equal(t, "199 / 200 (99%)", FormatProgress(entities.InventoryLine{Item: almost, Copies: 199}))
	assert.Equal(t, "1 / 200 (0%)", FormatProgress(entities.InventoryLine{Item: almost, Copies: 1}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ñañ…", Truncate("ñañaña", 4))
}

func TestFormatPityAndRole(t *testing.T) {
	assert.Equal(t, "37/90", FormatPity(entities.PityState{Counter: 37}))
	assert.Equal(t, "none", FormatRole(nil))
	role := "VIP"
	assert.Equal(t, "VIP", FormatRole(&role))
}
