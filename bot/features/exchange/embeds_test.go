package exchange

import (
	"testing"

	"gachabot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchangeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{"#12", 12, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseExchangeID(tt.arg)
		if tt.wantErr {
			assert.ErrorIs(t, err, entities.ErrInvalidArgument, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatRule(t *testing.T) {
	t.Parallel()

	role := "VIP"
	rule := &entities.ExchangeRule{
		ExchangeID:   3,
		RewardName:   "VIP Pass",
		Price:        entities.PriceVector{entities.RaritySSR: 1, entities.RaritySR: 2},
		RoleOnRedeem: &role,
	}
	assert.Equal(t, "**#3** VIP Pass - 1SSR 2SR (role: VIP)", FormatRule(rule))

	rule.RoleOnRedeem = nil
	rule.Price = nil
	assert.Equal(t, "**#3** VIP Pass - free", FormatRule(rule))
}

func TestBuildListEmbed_Empty(t *testing.T) {
	t.Parallel()

	embed := BuildListEmbed(nil, "!")
	assert.Equal(t, "No exchanges are available yet.", embed.Description)
	assert.Nil(t, embed.Footer)
}

func TestBuildRedeemEmbed_Warnings(t *testing.T) {
	t.Parallel()

	role := "VIP"
	result := &entities.ExchangeResult{
		Rule: &entities.ExchangeRule{
			ExchangeID:   1,
			RewardName:   "VIP Pass",
			Price:        entities.PriceVector{entities.RaritySSR: 5},
			RoleOnRedeem: &role,
		},
		Balance:   entities.TokenBalance{entities.RaritySSR: 1},
		GrantRole: role,
		Warnings:  []string{"Could not give the role VIP"},
	}

	embed := BuildRedeemEmbed(result, "💎")
	require.Len(t, embed.Fields, 3)
	assert.Contains(t, embed.Fields[0].Value, "💎 **SSR**: 1")
	assert.Equal(t, "VIP", embed.Fields[1].Value)
	assert.Equal(t, "Could not give the role VIP", embed.Fields[2].Value)
}
