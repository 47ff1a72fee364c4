package banner

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePool() []*entities.Item {
	return []*entities.Item{
		{ID: 1, Name: "Joker", Weight: 1, Rarity: entities.RaritySSR, IsPromotional: true},
		{ID: 2, Name: "Crown", Weight: 9, Rarity: entities.RarityUR},
		{ID: 3, Name: "Pebble", Weight: 30, Rarity: entities.RarityR},
	}
}

func TestCardGenerator_Generate(t *testing.T) {
	t.Parallel()

	gen := NewCardGenerator()
	data, err := gen.Generate(services.BuildBanner(samplePool(), false), false)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, gen.style.Width, img.Bounds().Dx())
	// title block + 3 tier headers + 3 items
	assert.Equal(t, gen.style.Padding*2+40+6*gen.style.RowHeight, img.Bounds().Dy())
}

func TestCardGenerator_LayoutTruncates(t *testing.T) {
	t.Parallel()

	var pool []*entities.Item
	for i := 0; i < 60; i++ {
		pool = append(pool, &entities.Item{ID: int64(i + 1), Name: fmt.Sprintf("Item %02d", i), Weight: 1, Rarity: entities.RarityR})
	}

	gen := NewCardGenerator()
	rows := gen.layout(services.BuildBanner(pool, false))
	require.Len(t, rows, gen.style.MaxRows)
	assert.Equal(t, "… and 22 more", rows[len(rows)-1].left)
}

func TestBuildBannerEmbed(t *testing.T) {
	t.Parallel()

	embed := BuildBannerEmbed(services.BuildBanner(samplePool(), false), false)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "★★★★★ SSR (2.50%)", embed.Fields[0].Name)
	assert.Equal(t, "Joker ⭐ - 2.50%", embed.Fields[0].Value)
	assert.Equal(t, "★★ R (75.00%)", embed.Fields[2].Name)
}
