package gacha

import (
	"time"

	"gachabot/application"
	"gachabot/bot/common"
	"gachabot/domain/entities"
	domaingacha "gachabot/domain/gacha"
	"gachabot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSpin(c *common.CommandContext, count int) error {
	result, err := f.workflow.Spin(c.Ctx, c.GuildID, c.UserID, count)
	if err != nil {
		return err
	}

	best := result.Best(func(n int) int { return domaingacha.Intn(f.rng, n) })
	highlight := result.Draws[best]

	special := highlight.Item.Rarity == entities.RaritySSR || highlight.Item.IsPromotional
	f.playAnimation(c, result.Config.LoadingGif(special))

	displayName := common.GetDisplayName(c.Session, c.Message.GuildID, c.Message.Author.ID)

	var embed *discordgo.MessageEmbed
	if count == 1 {
		embed = BuildSingleDrawEmbed(highlight, displayName, result.Config.Currency())
	} else {
		embed = BuildMultiDrawEmbed(result.SpinReport, best, displayName, result.Config.Currency())
	}
	appendWarnings(embed, result.Warnings)

	if err := c.ReplyEmbed(embed); err != nil {
		// the draw is already committed
		log.WithFields(log.Fields{
			"guildID": c.GuildID,
			"userID":  c.UserID,
			"count":   count,
			"error":   err,
		}).Error("Failed to send spin result")
	}
	return nil
}

// playAnimation shows the loading GIF, waits and deletes it. Failures only
// skip the animation.
func (f *Feature) playAnimation(c *common.CommandContext, gifURL string) {
	if gifURL == "" || f.animationDelay <= 0 {
		return
	}

	msg, err := c.SendEmbed(&discordgo.MessageEmbed{
		Color: common.ColorPrimary,
		Image: &discordgo.MessageEmbedImage{URL: gifURL},
	})
	if err != nil {
		log.WithError(err).Warn("Failed to send spin animation")
		return
	}

	select {
	case <-time.After(f.animationDelay):
	case <-c.Ctx.Done():
	}

	if err := c.Session.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
		log.WithError(err).Warn("Failed to delete spin animation")
	}
}

func (f *Feature) handlePity(c *common.CommandContext) error {
	var pity *entities.PityState
	err := application.RunInTransaction(c.Ctx, f.uowFactory, c.GuildID, func(uow application.UnitOfWork) error {
		gachaService := services.NewGachaService(
			c.GuildID,
			uow.ItemRepository(),
			uow.PityRepository(),
			uow.TokenRepository(),
			uow.CollectionRepository(),
			uow.EventBus(),
			f.rng,
		)
		var err error
		pity, err = gachaService.GetPity(c.Ctx, c.UserID)
		return err
	})
	if err != nil {
		return common.NewSystemError(err, "failed to load pity")
	}

	displayName := common.GetDisplayName(c.Session, c.Message.GuildID, c.Message.Author.ID)
	return c.ReplyEmbed(BuildPityEmbed(*pity, displayName))
}
