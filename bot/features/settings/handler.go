package settings

import (
	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/interfaces"
	"gachabot/domain/services"

	log "github.com/sirupsen/logrus"
)

// update runs one settings change and replies with the resulting settings
func (f *Feature) update(c *common.CommandContext, setting string, change func(interfaces.GuildConfigService) error) error {
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		return change(services.NewGuildConfigService(uow.GuildConfigRepository()))
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": c.GuildID,
		"adminID": c.UserID,
		"setting": setting,
	}).Info("Guild setting changed")

	cfg, err := f.workflow.GuildConfig(c.Ctx, c.GuildID)
	if err != nil {
		return err
	}
	return c.ReplyEmbed(BuildSettingsEmbed("✅ Settings updated", cfg))
}

func (f *Feature) handleShow(c *common.CommandContext) error {
	cfg, err := f.workflow.GuildConfig(c.Ctx, c.GuildID)
	if err != nil {
		return err
	}
	return c.ReplyEmbed(BuildSettingsEmbed("⚙️ Gacha settings", cfg))
}

func (f *Feature) handleTicketRole(c *common.CommandContext, count int) error {
	role := c.Rest(0)
	if role == "" {
		return common.UsageError(c.Prefix, c.Name+" <role>")
	}
	return f.update(c, c.Name, func(svc interfaces.GuildConfigService) error {
		_, err := svc.SetTicketRole(c.Ctx, count, role)
		return err
	})
}

func (f *Feature) handleGif(c *common.CommandContext, ssr bool) error {
	if len(c.Args) != 1 {
		return common.UsageError(c.Prefix, c.Name+" <url|remove>")
	}
	return f.update(c, c.Name, func(svc interfaces.GuildConfigService) error {
		_, err := svc.SetLoadingGif(c.Ctx, ssr, c.Args[0])
		return err
	})
}

func (f *Feature) handleCurrency(c *common.CommandContext) error {
	if len(c.Args) != 1 {
		return common.UsageError(c.Prefix, "setcurrency <emoji>")
	}
	return f.update(c, c.Name, func(svc interfaces.GuildConfigService) error {
		_, err := svc.SetCurrency(c.Ctx, c.Args[0])
		return err
	})
}
