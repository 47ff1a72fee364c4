package banner

import (
	"fmt"
	"strings"

	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

// BuildBannerEmbed lists each tier, best first, with its subtotal
func BuildBannerEmbed(banner services.Banner, secret bool) *discordgo.MessageEmbed {
	title := "🎰 Banner"
	if secret {
		title = "🔒 Secret banner"
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: common.PromoMarker + " promotional item • odds are per draw",
		},
	}
	for _, tier := range banner.Tiers {
		if len(embed.Fields) == common.MaxEmbedFields {
			break
		}
		lines := make([]string, len(tier.Lines))
		for i, line := range tier.Lines {
			lines[i] = FormatBannerLine(line)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s (%s)", tier.Rarity.Stars(), tier.Rarity, common.FormatPercent(tier.Subtotal)),
			Value: common.Truncate(strings.Join(lines, "\n"), common.MaxEmbedFieldValue),
		})
	}
	return embed
}

// FormatBannerLine renders "Name ⭐ - 1.25%"
func FormatBannerLine(line services.BannerLine) string {
	name := line.Item.Name
	if line.Item.IsPromotional {
		name += " " + common.PromoMarker
	}
	return fmt.Sprintf("%s - %s", name, common.FormatPercent(line.Percent))
}

// BuildItemEmbed shows every setting of an item
func BuildItemEmbed(item *entities.Item, percent decimal.Decimal) *discordgo.MessageEmbed {
	threshold := "none"
	if item.HasThreshold() {
		threshold = fmt.Sprintf("%d copies", *item.CollectableThreshold)
	}

	return &discordgo.MessageEmbed{
		Title:       common.FormatItemName(item),
		Description: item.Reply,
		Color:       common.RarityColor(item.Rarity),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rarity", Value: item.Rarity.String(), Inline: true},
			{Name: "Chance", Value: common.FormatPercent(percent), Inline: true},
			{Name: "Weight", Value: fmt.Sprintf("%d", item.Weight), Inline: true},
			{Name: "Type", Value: string(item.ObjectType), Inline: true},
			{Name: "Role", Value: common.FormatRole(item.RoleOnAcquire), Inline: true},
			{Name: "Collectable", Value: threshold, Inline: true},
			{Name: "Gives tokens", Value: yesNo(item.GivesTokens), Inline: true},
			{Name: "Promotional", Value: yesNo(item.IsPromotional), Inline: true},
			{Name: "Secret", Value: yesNo(item.IsSecret), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("ID: %d", item.ID)},
	}
}

// BuildMatchesEmbed lists the candidates of an ambiguous search
func BuildMatchesEmbed(query string, matches []*entities.Item) *discordgo.MessageEmbed {
	lines := make([]string, len(matches))
	for i, item := range matches {
		lines[i] = fmt.Sprintf("**%d.** %s", i+1, item.Name)
	}
	return &discordgo.MessageEmbed{
		Title: "🔍 Several items match",
		Color: common.ColorPrimary,
		Description: fmt.Sprintf("Items starting with **%q**:\n\n%s\n\nUse the full name or more letters.",
			query, common.Truncate(strings.Join(lines, "\n"), 3500)),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
