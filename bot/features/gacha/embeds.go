package gacha

import (
	"fmt"
	"strings"

	"gachabot/bot/common"
	"gachabot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// DrawStatus is the "New" / "Duplicate" label of one draw
func DrawStatus(draw entities.DrawResult) string {
	out := draw.Outcome
	switch {
	case out.IsDuplicate:
		return fmt.Sprintf("Duplicate (+%d %s token)", out.TokensAwarded, out.TokenRarity)
	case out.TokensAwarded > 0:
		return fmt.Sprintf("+%d %s token", out.TokensAwarded, out.TokenRarity)
	case out.Milestone:
		return "New ✨ Collection completed"
	}
	return "New"
}

// BuildSingleDrawEmbed renders the result of a one-draw spin
func BuildSingleDrawEmbed(draw entities.DrawResult, displayName, currency string) *discordgo.MessageEmbed {
	item := draw.Item
	embed := &discordgo.MessageEmbed{
		Title:       common.FormatItemName(item),
		Description: item.Reply,
		Color:       common.RarityColor(item.Rarity),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rarity", Value: item.Rarity.String(), Inline: true},
			{Name: "Result", Value: DrawStatus(draw), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • Pity %s", displayName, common.FormatPity(draw.Pity)),
		},
	}

	if item.HasThreshold() {
		line := entities.InventoryLine{Item: item, Copies: draw.Outcome.CopiesOwned}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Collection", Value: common.FormatProgress(line), Inline: true,
		})
	}
	if note := flipNote(draw); note != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "50/50", Value: note})
	}
	if draw.Outcome.TokensAwarded > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Tokens",
			Value: fmt.Sprintf("%s +%d %s", currency, draw.Outcome.TokensAwarded, draw.Outcome.TokenRarity),
		})
	}
	return embed
}

// SummaryLine aggregates the draws of one item within a multi-draw spin
type SummaryLine struct {
	Item       *entities.Item
	Count      int
	New        int
	Tokens     int64
	Milestones int
}

// SummarizeDraws groups draws by item name in order of first appearance
func SummarizeDraws(draws []entities.DrawResult) []SummaryLine {
	index := make(map[string]int)
	var lines []SummaryLine
	for _, d := range draws {
		i, ok := index[d.Item.Name]
		if !ok {
			i = len(lines)
			index[d.Item.Name] = i
			lines = append(lines, SummaryLine{Item: d.Item})
		}
		line := &lines[i]
		line.Count++
		line.Tokens += d.Outcome.TokensAwarded
		if d.Outcome.TokensAwarded == 0 {
			line.New++
		}
		if d.Outcome.Milestone {
			line.Milestones++
		}
	}
	return lines
}

// FormatSummaryLine renders one grouped line, e.g. "★★★ Crown x3 (New, +2 UR tokens)"
func FormatSummaryLine(line SummaryLine) string {
	var parts []string
	if line.New > 0 {
		parts = append(parts, "New")
	}
	if line.Tokens > 0 {
		parts = append(parts, fmt.Sprintf("+%d %s token", line.Tokens, line.Item.Rarity))
	}
	if line.Milestones > 0 {
		parts = append(parts, "Collection completed")
	}

	text := common.FormatItemName(line.Item)
	if line.Count > 1 {
		text += fmt.Sprintf(" x%d", line.Count)
	}
	if len(parts) > 0 {
		text += " (" + strings.Join(parts, ", ") + ")"
	}
	return text
}

// BuildMultiDrawEmbed renders a ten-draw spin around its best item
func BuildMultiDrawEmbed(report *entities.SpinReport, best int, displayName, currency string) *discordgo.MessageEmbed {
	highlight := report.Draws[best]

	lines := SummarizeDraws(report.Draws)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = FormatSummaryLine(line)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Best pull: %s", common.FormatItemName(highlight.Item)),
		Description: highlight.Item.Reply,
		Color:       common.RarityColor(highlight.Item.Rarity),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("%d draws", len(report.Draws)),
				Value: common.Truncate(strings.Join(rendered, "\n"), common.MaxEmbedFieldValue),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • Pity %s", displayName, common.FormatPity(report.Draws[len(report.Draws)-1].Pity)),
		},
	}

	if earned := tokenSummary(report.Draws, currency); earned != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Tokens earned", Value: earned})
	}
	return embed
}

// BuildPityEmbed renders the pity command
func BuildPityEmbed(pity entities.PityState, displayName string) *discordgo.MessageEmbed {
	status := "50/50: the next SSR may or may not be promotional"
	if pity.GuaranteedPromotional {
		status = "Guaranteed: the next SSR will be promotional " + common.PromoMarker
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Pity of %s", displayName),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Counter", Value: common.FormatPity(pity), Inline: true},
			{Name: "SSR guaranteed in", Value: fmt.Sprintf("%d draw(s)", pity.DrawsUntilGuaranteed()), Inline: true},
			{Name: "Promotional", Value: status},
		},
	}
}

func flipNote(draw entities.DrawResult) string {
	switch {
	case draw.WonFlip == nil:
		return ""
	case *draw.WonFlip:
		return "Won the 50/50 " + common.PromoMarker
	}
	return "Lost the 50/50. Your next SSR is guaranteed promotional"
}

func tokenSummary(draws []entities.DrawResult, currency string) string {
	earned := make(map[entities.Rarity]int64)
	for _, d := range draws {
		earned[d.Outcome.TokenRarity] += d.Outcome.TokensAwarded
	}
	var parts []string
	for _, tier := range entities.DisplayOrder {
		if earned[tier] > 0 {
			parts = append(parts, fmt.Sprintf("%s +%d %s", currency, earned[tier], tier))
		}
	}
	return strings.Join(parts, "\n")
}

func appendWarnings(embed *discordgo.MessageEmbed, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "⚠️ Warnings",
		Value: common.Truncate(strings.Join(warnings, "\n"), common.MaxEmbedFieldValue),
	})
}
