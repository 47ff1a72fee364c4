package tokens

import (
	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) currency(c *common.CommandContext) string {
	config, err := f.workflow.GuildConfig(c.Ctx, c.GuildID)
	if err != nil {
		log.WithError(err).Warn("Failed to load guild config, using default currency")
		return entities.DefaultCurrency
	}
	return config.Currency()
}

func (f *Feature) handleBalance(c *common.CommandContext) error {
	var balance entities.TokenBalance
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		tokenService := services.NewTokenService(c.GuildID, uow.TokenRepository(), uow.EventBus())
		var err error
		balance, err = tokenService.GetBalance(c.Ctx, c.UserID)
		return err
	})
	if err != nil {
		return err
	}

	displayName := common.GetDisplayName(c.Session, c.Message.GuildID, c.Message.Author.ID)
	return c.ReplyEmbed(BuildBalanceEmbed(displayName, balance, f.currency(c)))
}

// ParseAdjustArgs reads "<@user> <amount><tier>"
func ParseAdjustArgs(args []string) (int64, entities.Rarity, int64, bool) {
	if len(args) != 2 {
		return 0, 0, 0, false
	}
	userID, ok := common.ParseUserMention(args[0])
	if !ok {
		return 0, 0, 0, false
	}
	tier, amount, err := entities.ParseTokenAmount(args[1])
	if err != nil || amount <= 0 {
		return 0, 0, 0, false
	}
	return userID, tier, amount, true
}

func (f *Feature) handleAdjust(c *common.CommandContext, add bool) error {
	targetID, tier, amount, ok := ParseAdjustArgs(c.Args)
	if !ok {
		return common.UsageError(c.Prefix, c.Name+" <@user> <amount><tier> (e.g. 5SSR)")
	}

	var balance entities.TokenBalance
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		tokenService := services.NewTokenService(c.GuildID, uow.TokenRepository(), uow.EventBus())
		var err error
		if add {
			balance, err = tokenService.AddTokens(c.Ctx, targetID, tier, amount)
		} else {
			balance, err = tokenService.RemoveTokens(c.Ctx, targetID, tier, amount)
		}
		return err
	})
	if err != nil {
		return err
	}

	delta := amount
	if !add {
		delta = -amount
	}
	log.WithFields(log.Fields{
		"guildID":  c.GuildID,
		"adminID":  c.UserID,
		"targetID": targetID,
		"tier":     tier.String(),
		"delta":    delta,
	}).Info("Tokens adjusted by admin")

	return c.ReplyEmbed(BuildAdjustEmbed(targetID, tier, delta, balance, f.currency(c)))
}

func (f *Feature) handleReset(c *common.CommandContext) error {
	f.confirmations.RequestResetTokens(c.GuildID, c.UserID)
	return c.ReplyEmbed(common.BuildConfirmationPrompt(c.Prefix, "clear **every token balance** in this server", f.confirmations.Gate().Timeout()))
}
