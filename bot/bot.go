package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/bot/features/banner"
	"gachabot/bot/features/confirm"
	"gachabot/bot/features/exchange"
	"gachabot/bot/features/gacha"
	"gachabot/bot/features/help"
	"gachabot/bot/features/inventory"
	"gachabot/bot/features/items"
	"gachabot/bot/features/settings"
	"gachabot/bot/features/tokens"
	"gachabot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// commandTimeout bounds one prefix command, animation included
const commandTimeout = 45 * time.Second

// Config holds bot configuration
type Config struct {
	Token              string
	Prefix             string
	SpinAnimationDelay time.Duration
	TicketDefaults     application.TicketDefaults
}

// feature is implemented by every bot/features package
type feature interface {
	Commands() []common.Command
}

// Bot manages the Discord session and routes prefix commands to features
type Bot struct {
	// Core components
	config        Config
	session       *discordgo.Session
	uowFactory    application.UnitOfWorkFactory
	confirmations *application.ConfirmationWorkflow
	workflow      *application.GachaWorkflow
	router        *Router

	help *help.Feature
}

// New creates the bot, opens the gateway connection and registers the slash commands
func New(config Config, uowFactory application.UnitOfWorkFactory, confirmations *application.ConfirmationWorkflow) (*Bot, error) {
	if config.Prefix == "" {
		return nil, fmt.Errorf("command prefix is required")
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	bot, err := newBot(config, dg, uowFactory, confirmations)
	if err != nil {
		return nil, err
	}

	// Register handlers
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleGuildCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithFields(log.Fields{
		"prefix":   config.Prefix,
		"commands": len(bot.router.Commands()),
	}).Info("Discord bot connected")
	return bot, nil
}

// newBot builds the features and the router around an existing session
func newBot(config Config, dg *discordgo.Session, uowFactory application.UnitOfWorkFactory, confirmations *application.ConfirmationWorkflow) (*Bot, error) {
	roles := NewDiscordRoleGateway(dg)
	workflow := application.NewGachaWorkflow(uowFactory, roles, nil, config.TicketDefaults)

	bot := &Bot{
		config:        config,
		session:       dg,
		uowFactory:    uowFactory,
		confirmations: confirmations,
		workflow:      workflow,
		router: NewRouter(func(c *common.CommandContext) bool {
			return common.IsUserAdmin(c.Session, c.Message.GuildID, c.Message.Author.ID)
		}),
	}
	bot.help = help.New(bot.router.Commands)

	// Create feature modules
	features := []feature{
		gacha.New(uowFactory, workflow, config.SpinAnimationDelay),
		banner.New(uowFactory),
		items.New(uowFactory, confirmations),
		exchange.New(uowFactory, workflow),
		tokens.New(uowFactory, workflow, confirmations),
		inventory.New(uowFactory),
		settings.New(uowFactory, workflow),
		confirm.New(confirmations),
		bot.help,
	}
	for _, f := range features {
		if err := bot.router.Register(f.Commands()...); err != nil {
			return nil, fmt.Errorf("failed to register commands: %w", err)
		}
	}
	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// GetConfig returns the bot configuration
func (b *Bot) GetConfig() Config {
	return b.config
}

// handleMessageCreate parses prefix commands and dispatches them
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	// Prefix commands only run inside guilds
	if m.GuildID == "" {
		return
	}

	name, args, ok := common.ParseCommand(m.Content, b.config.Prefix)
	if !ok {
		return
	}
	if _, known := b.router.Lookup(name); !known {
		return
	}

	guildID, err := strconv.ParseInt(m.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	userID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", m.Author.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	c := &common.CommandContext{
		Ctx:     ctx,
		Session: s,
		Message: m,
		GuildID: guildID,
		UserID:  userID,
		Prefix:  b.config.Prefix,
		Name:    name,
		Args:    args,
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  userID,
		"command": name,
		"args":    len(args),
	}).Debug("Dispatching command")

	if _, err := b.router.Dispatch(c); err != nil {
		common.HandleError(c, name, err)
	}
}

// handleGuildCreate creates the guild's gacha settings when the bot joins
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx := context.Background()

	guildID, err := strconv.ParseInt(g.ID, 10, 64)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	err = application.RunInTransaction(ctx, b.uowFactory, guildID, func(uow application.UnitOfWork) error {
		_, err := services.NewGuildConfigService(uow.GuildConfigRepository()).GetConfig(ctx)
		return err
	})
	if err != nil {
		log.Errorf("Failed to track new guild %s (%s): %v", g.Name, g.ID, err)
		return
	}

	log.Infof("Bot joined guild: %s (ID: %d)", g.Name, guildID)
}

// GetGuilds returns a list of guilds the bot is connected to
func (b *Bot) GetGuilds() []GuildInfo {
	if b.session == nil || b.session.State == nil {
		return nil
	}

	b.session.State.RLock()
	defer b.session.State.RUnlock()

	guilds := make([]GuildInfo, 0, len(b.session.State.Guilds))
	for _, g := range b.session.State.Guilds {
		guilds = append(guilds, GuildInfo{ID: g.ID, Name: g.Name})
	}
	return guilds
}
