package common

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// BuildConfirmationPrompt asks the admin to confirm a destructive action
// within timeout
func BuildConfirmationPrompt(prefix, action string, timeout time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚠️ Confirmation required",
		Color: ColorWarning,
		Description: fmt.Sprintf("You are about to %s. This cannot be undone.\n\nType `%sconfirm` within %s to proceed or `%scancel` to abort.",
			action, prefix, FormatDuration(timeout), prefix),
	}
}

// FormatDuration renders whole seconds or minutes, e.g. "30 seconds"
func FormatDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	s := int(d.Round(time.Second) / time.Second)
	if s == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", s)
}
