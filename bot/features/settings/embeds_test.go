package settings

import (
	"testing"

	"gachabot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSettingsEmbed(t *testing.T) {
	t.Parallel()

	gif := "https://example.com/pull.gif"
	emoji := "💎"
	cfg := &entities.GuildGachaConfig{PullGif: &gif, CurrencyEmoji: &emoji}

	embed := BuildSettingsEmbed("⚙️ Gacha settings", cfg)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, entities.DefaultTicketRole, embed.Fields[0].Value)
	assert.Equal(t, entities.DefaultTicketRole10, embed.Fields[1].Value)
	assert.Equal(t, "💎", embed.Fields[2].Value)
	assert.Equal(t, gif, embed.Fields[3].Value)
	assert.Equal(t, "none", embed.Fields[4].Value)
}
