package items

import (
	"fmt"
	"strings"

	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/bwmarrin/discordgo"
)

// FieldList renders the editable fields as inline code
func FieldList() string {
	quoted := make([]string, len(services.EditableFields))
	for i, f := range services.EditableFields {
		quoted[i] = "`" + f + "`"
	}
	return strings.Join(quoted, ", ")
}

// BuildCreatedEmbed confirms a new item and hints at edititem
func BuildCreatedEmbed(item *entities.Item, prefix string) *discordgo.MessageEmbed {
	kind := "Item"
	if item.IsSecret {
		kind = "Secret item"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✅ %s created", kind),
		Color:       common.ColorSuccess,
		Description: fmt.Sprintf("**%s** was added as %s with chance %d.", item.Name, item.Rarity, item.Weight),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Configure it with %sedititem %s <field> <value>", prefix, item.Name),
		},
	}
}

// BuildEditedEmbed shows the new value of the edited field
func BuildEditedEmbed(item *entities.Item, field string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✏️ Item updated",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("**%s** `%s` is now: %s",
			item.Name, strings.ToLower(field), common.Truncate(FieldValue(item, field), 1000)),
	}
}

// FieldValue renders the current value of one editable field
func FieldValue(item *entities.Item, field string) string {
	switch strings.ToLower(field) {
	case services.FieldReply:
		return item.Reply
	case services.FieldChance:
		return fmt.Sprintf("%d", item.Weight)
	case services.FieldRarity:
		return item.Rarity.String()
	case services.FieldTokens:
		return fmt.Sprintf("%t", item.GivesTokens)
	case services.FieldRoleGiven:
		return common.FormatRole(item.RoleOnAcquire)
	case services.FieldObject:
		return string(item.ObjectType)
	case services.FieldPromo:
		return fmt.Sprintf("%t", item.IsPromotional)
	case services.FieldCollectable:
		if !item.HasThreshold() {
			return "none"
		}
		return fmt.Sprintf("%d", *item.CollectableThreshold)
	case services.FieldSecret:
		return fmt.Sprintf("%t", item.IsSecret)
	}
	return "?"
}
