package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// RunInTransaction runs fn inside a guild-scoped unit of work and commits when
// fn succeeds. Any error rolls everything back, including queued events.
func RunInTransaction(ctx context.Context, factory UnitOfWorkFactory, guildID int64, fn func(uow UnitOfWork) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := uow.Rollback(); err != nil {
			log.WithFields(log.Fields{
				"guildID": guildID,
				"error":   err,
			}).Error("Failed to roll back transaction")
		}
	}()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
