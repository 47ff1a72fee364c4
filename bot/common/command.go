package common

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Command is one prefix command exposed by a feature
type Command struct {
	Name        string
	Aliases     []string
	Usage       string // Arguments shown in help, without the prefix or name
	Description string
	AdminOnly   bool
	Run         func(c *CommandContext) error
}

// CommandContext carries one parsed message through a command handler
type CommandContext struct {
	Ctx     context.Context
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	GuildID int64
	UserID  int64
	Prefix  string
	Name    string
	Args    []string
}

// Rest joins the arguments from index from onwards
func (c *CommandContext) Rest(from int) string {
	if from >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[from:], " ")
}

// ChannelID returns the channel the command was sent in
func (c *CommandContext) ChannelID() string {
	return c.Message.ChannelID
}

// Reply answers the command message with plain text
func (c *CommandContext) Reply(content string) error {
	_, err := c.Session.ChannelMessageSendReply(c.Message.ChannelID, content, c.Message.Reference())
	return err
}

// ReplyEmbed answers the command message with an embed
func (c *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := c.Session.ChannelMessageSendEmbedReply(c.Message.ChannelID, embed, c.Message.Reference())
	return err
}

// Send posts a full message to the command's channel
func (c *CommandContext) Send(msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return c.Session.ChannelMessageSendComplex(c.Message.ChannelID, msg)
}

// SendEmbed posts an embed to the command's channel without replying
func (c *CommandContext) SendEmbed(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.Session.ChannelMessageSendEmbed(c.Message.ChannelID, embed)
}
