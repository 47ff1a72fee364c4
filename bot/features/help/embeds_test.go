package help

import (
	"fmt"
	"strings"
	"testing"

	"gachabot/bot/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommand(t *testing.T) {
	t.Parallel()

	cmd := &common.Command{Name: "tokens", Aliases: []string{"bal"}, Description: "Show your token balance"}
	assert.Equal(t, "`*tokens` (bal) - Show your token balance", FormatCommand("*", cmd))

	cmd = &common.Command{Name: "redeem", Usage: "<id>"}
	assert.Equal(t, "`*redeem <id>`", FormatCommand("*", cmd))
}

func TestHelpEmbed_SplitsAdmin(t *testing.T) {
	t.Parallel()

	cmds := []*common.Command{
		{Name: "spin", Description: "Draw"},
		{Name: "resetitems", Description: "Wipe", AdminOnly: true},
	}
	embed := HelpEmbed("!", cmds)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "🎲 Commands", embed.Fields[0].Name)
	assert.Equal(t, "`!spin` - Draw", embed.Fields[0].Value)
	assert.Equal(t, "🛠️ Admin", embed.Fields[1].Name)
}

func TestChunkLines(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("line %02d %s", i, strings.Repeat("x", 30)))
	}

	chunks := chunkLines(lines, 1024)
	require.Greater(t, len(chunks), 1)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 1024)
		total += len(strings.Split(chunk, "\n"))
	}
	assert.Equal(t, 100, total)
	assert.Empty(t, chunkLines(nil, 1024))
}
