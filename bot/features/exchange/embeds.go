package exchange

import (
	"fmt"
	"strings"

	"gachabot/bot/common"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// FormatRule renders "**#3** VIP Pass - 1SSR 2SR (role: VIP)"
func FormatRule(rule *entities.ExchangeRule) string {
	line := fmt.Sprintf("**#%d** %s - %s", rule.ExchangeID, rule.RewardName, rule.Price.String())
	if rule.HasRole() {
		line += fmt.Sprintf(" (role: %s)", *rule.RoleOnRedeem)
	}
	return line
}

// BuildListEmbed lists every exchange in id order
func BuildListEmbed(rules []*entities.ExchangeRule, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🔁 Exchanges",
		Color: common.ColorPrimary,
	}
	if len(rules) == 0 {
		embed.Description = "No exchanges are available yet."
		return embed
	}

	lines := make([]string, len(rules))
	for i, rule := range rules {
		lines[i] = FormatRule(rule)
	}
	embed.Description = common.Truncate(strings.Join(lines, "\n"), 4000)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Use %sredeem <id> to trade", prefix)}
	return embed
}

// BuildRuleEmbed shows one exchange after an admin change
func BuildRuleEmbed(title string, rule *entities.ExchangeRule) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("%d", rule.ExchangeID), Inline: true},
			{Name: "Reward", Value: rule.RewardName, Inline: true},
			{Name: "Price", Value: rule.Price.String(), Inline: true},
			{Name: "Role", Value: common.FormatRole(rule.RoleOnRedeem), Inline: true},
		},
	}
}

// BuildRedeemEmbed shows the reward, the remaining balance and any role warnings
func BuildRedeemEmbed(result *entities.ExchangeResult, currency string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Exchange redeemed",
		Color:       common.ColorSuccess,
		Description: fmt.Sprintf("You received **%s** for %s.", result.Rule.RewardName, result.Rule.Price.String()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Remaining tokens", Value: common.FormatTokenBalance(result.Balance, currency)},
		},
	}
	if result.GrantRole != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Role",
			Value: result.GrantRole,
		})
	}
	if len(result.Warnings) > 0 {
		embed.Color = common.ColorWarning
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Warnings",
			Value: common.Truncate(strings.Join(result.Warnings, "\n"), common.MaxEmbedFieldValue),
		})
	}
	return embed
}

// BuildResetEmbed reports how many exchanges were removed
func BuildResetEmbed(removed int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🗑️ Exchanges reset",
		Color:       common.ColorReset,
		Description: fmt.Sprintf("Removed %s exchange(s).", common.FormatCount(removed)),
	}
}
