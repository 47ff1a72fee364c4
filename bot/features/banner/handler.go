package banner

import (
	"bytes"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const cardFileName = "banner.png"

func (f *Feature) loadPool(c *common.CommandContext) ([]*entities.Item, error) {
	var pool []*entities.Item
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		itemService := services.NewItemService(
			c.GuildID,
			uow.ItemRepository(),
			uow.PityRepository(),
			uow.CollectionRepository(),
			uow.EventBus(),
		)
		var err error
		pool, err = itemService.GetPool(c.Ctx)
		return err
	})
	if err != nil {
		return nil, common.NewSystemError(err, "failed to load item pool")
	}
	return pool, nil
}

func (f *Feature) handleBanner(c *common.CommandContext, secret bool) error {
	pool, err := f.loadPool(c)
	if err != nil {
		return err
	}

	banner := services.BuildBanner(pool, secret)
	if banner.IsEmpty() {
		if secret {
			return common.NewUserError("There are no secret items.", "empty secret banner")
		}
		return entities.ErrEmptyPool
	}

	embed := BuildBannerEmbed(banner, secret)
	msg := &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Reference: c.Message.Reference(),
	}

	png, err := f.cards.Generate(banner, secret)
	if err != nil {
		log.WithError(err).Warn("Failed to render banner card")
	} else {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + cardFileName}
		msg.Files = []*discordgo.File{{
			Name:        cardFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}}
	}

	_, err = c.Send(msg)
	return err
}

func (f *Feature) handleItemInfo(c *common.CommandContext) error {
	query := c.Rest(0)
	if query == "" {
		return common.UsageError(c.Prefix, "iteminfo <name>")
	}

	pool, err := f.loadPool(c)
	if err != nil {
		return err
	}

	matches := services.SearchItems(pool, query)
	switch len(matches) {
	case 0:
		return common.NewUserError("No item starts with **"+query+"**.", "iteminfo miss")
	case 1:
		return c.ReplyEmbed(BuildItemEmbed(matches[0], services.ItemPercent(pool, matches[0])))
	}
	return c.ReplyEmbed(BuildMatchesEmbed(query, matches))
}
