package application

import (
	"context"
	"fmt"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/domain/services"
)

// ErrNothingPending is returned by Confirm and Cancel when the user has no live request
var ErrNothingPending = fmt.Errorf("no pending confirmation: %w", entities.ErrNotFound)

// ConfirmationOutcome describes what a confirm executed
type ConfirmationOutcome struct {
	Kind          ConfirmationKind
	ItemName      string                   // deleteitem
	ItemsReset    *interfaces.ResetSummary // resetitems
	TokenRowsGone int64                    // resettokens
}

// ConfirmationWorkflow guards the destructive admin commands behind the gate
type ConfirmationWorkflow struct {
	uowFactory UnitOfWorkFactory
	gate       *ConfirmationGate
}

// NewConfirmationWorkflow creates a new confirmation workflow
func NewConfirmationWorkflow(uowFactory UnitOfWorkFactory, gate *ConfirmationGate) *ConfirmationWorkflow {
	return &ConfirmationWorkflow{uowFactory: uowFactory, gate: gate}
}

// Gate returns the underlying confirmation gate
func (w *ConfirmationWorkflow) Gate() *ConfirmationGate {
	return w.gate
}

// RequestDeleteItem resolves query to one item and stores the pending delete.
// Unknown or ambiguous names are rejected here, before anything is pending.
func (w *ConfirmationWorkflow) RequestDeleteItem(ctx context.Context, guildID, discordID int64, query string) (*entities.Item, PendingConfirmation, error) {
	var item *entities.Item
	err := RunInTransaction(ctx, w.uowFactory, guildID, func(uow UnitOfWork) error {
		var err error
		item, err = w.itemService(guildID, uow).FindItem(ctx, query)
		return err
	})
	if err != nil {
		return nil, PendingConfirmation{}, err
	}

	pending := w.gate.Request(guildID, discordID, KindDeleteItem, item.Name)
	return item, pending, nil
}

// RequestResetItems stores a pending pool reset
func (w *ConfirmationWorkflow) RequestResetItems(guildID, discordID int64) PendingConfirmation {
	return w.gate.Request(guildID, discordID, KindResetItems, "")
}

// RequestResetTokens stores a pending token reset
func (w *ConfirmationWorkflow) RequestResetTokens(guildID, discordID int64) PendingConfirmation {
	return w.gate.Request(guildID, discordID, KindResetTokens, "")
}

// Confirm executes the user's first live pending request. Returns
// ErrNothingPending when nothing is pending or it already expired.
func (w *ConfirmationWorkflow) Confirm(ctx context.Context, guildID, discordID int64) (*ConfirmationOutcome, error) {
	pending, ok := w.gate.Take(guildID, discordID)
	if !ok {
		return nil, ErrNothingPending
	}

	outcome := &ConfirmationOutcome{Kind: pending.Kind}
	err := RunInTransaction(ctx, w.uowFactory, guildID, func(uow UnitOfWork) error {
		switch pending.Kind {
		case KindDeleteItem:
			outcome.ItemName = pending.Argument
			return w.itemService(guildID, uow).DeleteItem(ctx, pending.Argument)

		case KindResetItems:
			summary, err := w.itemService(guildID, uow).ResetItems(ctx)
			outcome.ItemsReset = summary
			return err

		case KindResetTokens:
			tokenService := services.NewTokenService(guildID, uow.TokenRepository(), uow.EventBus())
			count, err := tokenService.ResetTokens(ctx)
			outcome.TokenRowsGone = count
			return err
		}
		return fmt.Errorf("unknown confirmation kind %q", pending.Kind)
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Cancel drops the user's pending requests. Returns ErrNothingPending when none were live
func (w *ConfirmationWorkflow) Cancel(guildID, discordID int64) error {
	if w.gate.Cancel(guildID, discordID) == 0 {
		return ErrNothingPending
	}
	return nil
}

func (w *ConfirmationWorkflow) itemService(guildID int64, uow UnitOfWork) interfaces.ItemService {
	return services.NewItemService(
		guildID,
		uow.ItemRepository(),
		uow.PityRepository(),
		uow.CollectionRepository(),
		uow.EventBus(),
	)
}
