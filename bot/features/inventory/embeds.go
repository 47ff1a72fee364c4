package inventory

import (
	"fmt"

	"gachabot/bot/common"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildInventoryEmbed shows one field per collectable, capped at the embed field limit
func BuildInventoryEmbed(displayName string, lines []entities.InventoryLine) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎒 Inventory of %s", displayName),
		Color: common.ColorInfo,
	}
	if len(lines) == 0 {
		embed.Description = "No collectables yet. Spin to start collecting!"
		return embed
	}

	completed := 0
	for _, line := range lines {
		if line.Completed() {
			completed++
		}
		if len(embed.Fields) < common.MaxEmbedFields {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   common.FormatItemName(line.Item),
				Value:  common.FormatProgress(line),
				Inline: true,
			})
		}
	}

	footer := fmt.Sprintf("%d collectable(s), %d completed", len(lines), completed)
	if hidden := len(lines) - len(embed.Fields); hidden > 0 {
		footer += fmt.Sprintf(" • %d not shown", hidden)
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

// BuildResetEmbed confirms a cleared collectable
func BuildResetEmbed(item *entities.Item, targetID int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🧹 Collectable reset",
		Color:       common.ColorReset,
		Description: fmt.Sprintf("%s no longer owns any **%s**.", common.GetUserMention(targetID), item.Name),
	}
}
