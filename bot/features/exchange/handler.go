package exchange

import (
	"fmt"
	"strconv"
	"strings"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/domain/services"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) exchangeService(c *common.CommandContext, uow application.UnitOfWork) interfaces.ExchangeService {
	return services.NewExchangeService(c.GuildID, uow.ExchangeRepository(), uow.TokenRepository(), uow.EventBus())
}

// ParseExchangeID accepts a positive integer id
func ParseExchangeID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an exchange id", entities.ErrInvalidArgument, arg)
	}
	return id, nil
}

func (f *Feature) handleRedeem(c *common.CommandContext) error {
	if len(c.Args) != 1 {
		return common.UsageError(c.Prefix, c.Name+" <id>")
	}
	id, err := ParseExchangeID(c.Args[0])
	if err != nil {
		return err
	}

	result, err := f.workflow.Redeem(c.Ctx, c.GuildID, c.UserID, id)
	if err != nil {
		return err
	}

	config, err := f.workflow.GuildConfig(c.Ctx, c.GuildID)
	currency := entities.DefaultCurrency
	if err != nil {
		log.WithError(err).Warn("Failed to load guild config for redeem reply")
	} else {
		currency = config.Currency()
	}

	return c.ReplyEmbed(BuildRedeemEmbed(result, currency))
}

func (f *Feature) handleList(c *common.CommandContext) error {
	var rules []*entities.ExchangeRule
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		rules, err = f.exchangeService(c, uow).ListExchanges(c.Ctx)
		return err
	})
	if err != nil {
		return err
	}
	return c.ReplyEmbed(BuildListEmbed(rules, c.Prefix))
}

func (f *Feature) handleCreate(c *common.CommandContext) error {
	name := c.Rest(0)
	if name == "" {
		return common.UsageError(c.Prefix, "createexchange <reward name>")
	}

	var rule *entities.ExchangeRule
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		rule, err = f.exchangeService(c, uow).CreateExchange(c.Ctx, name)
		return err
	})
	if err != nil {
		return err
	}

	return c.ReplyEmbed(BuildRuleEmbed("✅ Exchange created", rule))
}

func (f *Feature) handleEdit(c *common.CommandContext) error {
	usage := common.UsageError(c.Prefix, "editexchange <id> price 1SSR 3SR 10UR 40R\n"+c.Prefix+"editexchange <id> role [role]")
	if len(c.Args) < 2 {
		return usage
	}
	id, err := ParseExchangeID(c.Args[0])
	if err != nil {
		return err
	}

	var edit func(svc interfaces.ExchangeService) (*entities.ExchangeRule, error)
	switch strings.ToLower(c.Args[1]) {
	case "price":
		price, err := entities.ParsePriceVector(c.Args[2:])
		if err != nil {
			return err
		}
		edit = func(svc interfaces.ExchangeService) (*entities.ExchangeRule, error) {
			return svc.EditPrice(c.Ctx, id, price)
		}
	case "role", "role-given":
		role := c.Rest(2)
		edit = func(svc interfaces.ExchangeService) (*entities.ExchangeRule, error) {
			return svc.EditRole(c.Ctx, id, role)
		}
	default:
		return usage
	}

	var rule *entities.ExchangeRule
	err = application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		rule, err = edit(f.exchangeService(c, uow))
		return err
	})
	if err != nil {
		return err
	}

	return c.ReplyEmbed(BuildRuleEmbed("✏️ Exchange updated", rule))
}

func (f *Feature) handleReset(c *common.CommandContext) error {
	var removed int64
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		removed, err = f.exchangeService(c, uow).ResetExchanges(c.Ctx)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": c.GuildID,
		"adminID": c.UserID,
		"removed": removed,
	}).Info("Exchanges reset")

	return c.ReplyEmbed(BuildResetEmbed(removed))
}
