package tokens

import (
	"fmt"

	"gachabot/bot/common"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildBalanceEmbed lists the user's tokens per tier
func BuildBalanceEmbed(displayName string, balance entities.TokenBalance, currency string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Tokens of %s", currency, displayName),
		Color:       common.ColorInfo,
		Description: common.FormatTokenBalance(balance, currency),
	}
}

// BuildAdjustEmbed confirms an admin balance change
func BuildAdjustEmbed(targetID int64, tier entities.Rarity, delta int64, balance entities.TokenBalance, currency string) *discordgo.MessageEmbed {
	verb := "Added"
	color := common.ColorSuccess
	amount := delta
	if delta < 0 {
		verb = "Removed"
		color = common.ColorWarning
		amount = -delta
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Tokens updated", currency),
		Color:       color,
		Description: fmt.Sprintf("%s %s %s token(s) for %s.", verb, common.FormatCount(amount), tier, common.GetUserMention(targetID)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New balance", Value: common.FormatTokenBalance(balance, currency)},
		},
	}
}
