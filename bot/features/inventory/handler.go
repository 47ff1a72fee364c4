package inventory

import (
	"strings"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleInventory(c *common.CommandContext) error {
	var lines []entities.InventoryLine
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		collectionService := services.NewCollectionService(uow.ItemRepository(), uow.CollectionRepository())
		var err error
		lines, err = collectionService.Inventory(c.Ctx, c.UserID)
		return err
	})
	if err != nil {
		return err
	}

	displayName := common.GetDisplayName(c.Session, c.Message.GuildID, c.Message.Author.ID)
	return c.ReplyEmbed(BuildInventoryEmbed(displayName, lines))
}

// ParseResetArgs splits "<item name...> <@user>", the user being the last argument
func ParseResetArgs(args []string) (string, int64, bool) {
	if len(args) < 2 {
		return "", 0, false
	}
	userID, ok := common.ParseUserMention(args[len(args)-1])
	if !ok {
		return "", 0, false
	}
	return strings.Join(args[:len(args)-1], " "), userID, true
}

func (f *Feature) handleReset(c *common.CommandContext) error {
	query, targetID, ok := ParseResetArgs(c.Args)
	if !ok {
		return common.UsageError(c.Prefix, "resetcollectable <item> <@user>")
	}

	var item *entities.Item
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		collectionService := services.NewCollectionService(uow.ItemRepository(), uow.CollectionRepository())
		var err error
		item, err = collectionService.ResetCollectable(c.Ctx, targetID, query)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID":  c.GuildID,
		"adminID":  c.UserID,
		"targetID": targetID,
		"item":     item.Name,
	}).Info("Collectable reset")

	return c.ReplyEmbed(BuildResetEmbed(item, targetID))
}
