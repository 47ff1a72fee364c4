package confirm

import (
	"errors"

	"gachabot/application"
	"gachabot/bot/common"

	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleConfirm(c *common.CommandContext) error {
	outcome, err := f.confirmations.Confirm(c.Ctx, c.GuildID, c.UserID)
	if errors.Is(err, application.ErrNothingPending) {
		return common.NewUserError("You have nothing to confirm, or the request expired.", "confirm without pending request")
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": c.GuildID,
		"adminID": c.UserID,
		"kind":    outcome.Kind,
	}).Info("Confirmed destructive command")

	return c.ReplyEmbed(BuildOutcomeEmbed(outcome))
}

func (f *Feature) handleCancel(c *common.CommandContext) error {
	if err := f.confirmations.Cancel(c.GuildID, c.UserID); errors.Is(err, application.ErrNothingPending) {
		return common.NewUserError("You have nothing to cancel.", "cancel without pending request")
	}
	return c.Reply("❎ Cancelled.")
}
