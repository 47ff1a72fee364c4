package settings

import (
	"gachabot/bot/common"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildSettingsEmbed lists the guild's gacha settings
func BuildSettingsEmbed(title string, cfg *entities.GuildGachaConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket role", Value: cfg.TicketRoleFor(1), Inline: true},
			{Name: "Ticket role x10", Value: cfg.TicketRoleFor(10), Inline: true},
			{Name: "Currency", Value: cfg.Currency(), Inline: true},
			{Name: "Pull GIF", Value: gifValue(cfg.PullGif)},
			{Name: "SSR pull GIF", Value: gifValue(cfg.SSRGif)},
		},
	}
}

func gifValue(gif *string) string {
	if gif == nil || *gif == "" {
		return "none"
	}
	return *gif
}
