package help

import (
	"fmt"
	"strings"

	"gachabot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// HelpEmbed lists the player commands first, then the admin ones. Long
// sections continue in extra fields.
func HelpEmbed(prefix string, cmds []*common.Command) *discordgo.MessageEmbed {
	var player, admin []string
	for _, cmd := range cmds {
		line := FormatCommand(prefix, cmd)
		if cmd.AdminOnly {
			admin = append(admin, line)
		} else {
			player = append(player, line)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📖 Gacha commands",
		Color:       common.ColorInfo,
		Description: fmt.Sprintf("Prefix: `%s`. %s marks promotional items.", prefix, common.PromoMarker),
	}
	addSection(embed, "🎲 Commands", player)
	addSection(embed, "🛠️ Admin", admin)
	return embed
}

// FormatCommand renders "`*tokens` (bal) - Show your token balance"
func FormatCommand(prefix string, cmd *common.Command) string {
	usage := prefix + cmd.Name
	if cmd.Usage != "" {
		usage += " " + cmd.Usage
	}
	line := "`" + usage + "`"
	if len(cmd.Aliases) > 0 {
		line += " (" + strings.Join(cmd.Aliases, ", ") + ")"
	}
	if cmd.Description != "" {
		line += " - " + cmd.Description
	}
	return line
}

func addSection(embed *discordgo.MessageEmbed, title string, lines []string) {
	for i, chunk := range chunkLines(lines, common.MaxEmbedFieldValue) {
		name := title
		if i > 0 {
			name = title + " (cont.)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: chunk})
	}
}

// chunkLines joins lines with newlines into pieces of at most max runes
func chunkLines(lines []string, max int) []string {
	var chunks []string
	var current strings.Builder
	size := 0
	for _, line := range lines {
		line = common.Truncate(line, max)
		n := len([]rune(line))
		if size > 0 && size+1+n > max {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		if size > 0 {
			current.WriteString("\n")
			size++
		}
		current.WriteString(line)
		size += n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
