package items

import (
	"fmt"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/domain/services"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) itemService(c *common.CommandContext, uow application.UnitOfWork) interfaces.ItemService {
	return services.NewItemService(
		c.GuildID,
		uow.ItemRepository(),
		uow.PityRepository(),
		uow.CollectionRepository(),
		uow.EventBus(),
	)
}

func (f *Feature) handleCreate(c *common.CommandContext, secret bool) error {
	name := c.Rest(0)
	if name == "" {
		return common.UsageError(c.Prefix, c.Name+" <name>")
	}

	var item *entities.Item
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		item, err = f.itemService(c, uow).CreateItem(c.Ctx, name, secret)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": c.GuildID,
		"adminID": c.UserID,
		"item":    item.Name,
		"secret":  secret,
	}).Info("Item created")

	return c.ReplyEmbed(BuildCreatedEmbed(item, c.Prefix))
}

func (f *Feature) handleEdit(c *common.CommandContext) error {
	query, field, value, ok := common.SplitAtKeyword(c.Args, services.EditableFields)
	if !ok || query == "" {
		return common.UsageError(c.Prefix, "edititem <name> <field> <value>\nFields: "+FieldList())
	}
	if value == "" {
		return common.UsageError(c.Prefix, fmt.Sprintf("edititem %s %s <value>", query, field))
	}

	var item *entities.Item
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		var err error
		item, err = f.itemService(c, uow).EditItem(c.Ctx, query, field, value)
		return err
	})
	if err != nil {
		return err
	}

	return c.ReplyEmbed(BuildEditedEmbed(item, field))
}

func (f *Feature) handleDelete(c *common.CommandContext) error {
	query := c.Rest(0)
	if query == "" {
		return common.UsageError(c.Prefix, "deleteitem <name>")
	}

	item, _, err := f.confirmations.RequestDeleteItem(c.Ctx, c.GuildID, c.UserID, query)
	if err != nil {
		return err
	}

	action := fmt.Sprintf("delete **%s** and every copy users own", item.Name)
	return c.ReplyEmbed(common.BuildConfirmationPrompt(c.Prefix, action, f.confirmations.Gate().Timeout()))
}

func (f *Feature) handleReset(c *common.CommandContext) error {
	f.confirmations.RequestResetItems(c.GuildID, c.UserID)
	timeout := f.confirmations.Gate().Timeout()
	return c.ReplyEmbed(common.BuildConfirmationPrompt(c.Prefix, "delete **every item**, collection and pity counter", timeout))
}
