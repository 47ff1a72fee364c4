package help

import (
	"gachabot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the command reference
type Feature struct {
	commands func() []*common.Command
}

// New creates the help feature. commands lists everything the router knows
func New(commands func() []*common.Command) *Feature {
	return &Feature{commands: commands}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "fixhelp",
			Aliases:     []string{"help"},
			Description: "Show this command reference",
			Run:         f.handleHelp,
		},
	}
}

// Embed builds the reference for prefix
func (f *Feature) Embed(prefix string) *discordgo.MessageEmbed {
	return HelpEmbed(prefix, f.commands())
}

func (f *Feature) handleHelp(c *common.CommandContext) error {
	return c.ReplyEmbed(f.Embed(c.Prefix))
}
