package confirm

import (
	"fmt"

	"gachabot/application"
	"gachabot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// BuildOutcomeEmbed reports what a confirmation executed
func BuildOutcomeEmbed(outcome *application.ConfirmationOutcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Color: common.ColorReset}

	switch outcome.Kind {
	case application.KindDeleteItem:
		embed.Title = "🗑️ Item deleted"
		embed.Description = fmt.Sprintf("**%s** was removed from the pool together with every copy users owned.", outcome.ItemName)
	case application.KindResetItems:
		embed.Title = "🗑️ Items reset"
		summary := outcome.ItemsReset
		if summary == nil {
			embed.Description = "The pool was cleared."
			break
		}
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Items", Value: common.FormatCount(summary.Items), Inline: true},
			{Name: "Collections", Value: common.FormatCount(summary.Collections), Inline: true},
			{Name: "Pity counters", Value: common.FormatCount(summary.PityRows), Inline: true},
		}
	case application.KindResetTokens:
		embed.Title = "🗑️ Tokens reset"
		embed.Description = fmt.Sprintf("Cleared %s token balance row(s).", common.FormatCount(outcome.TokenRowsGone))
	default:
		embed.Title = "✅ Done"
	}
	return embed
}
