package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"gachabot/application"
	"gachabot/cmd"
	"gachabot/config"
	"gachabot/database"
	"gachabot/domain/entities"
	"gachabot/domain/services"
	"gachabot/infrastructure"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		var err error
		handled := true
		switch os.Args[1] {
		case "migrate":
			err = handleMigrationCommand()
		case "import-pool":
			err = handleImportPool()
		case "grant-tokens":
			err = handleGrantTokens()
		default:
			handled = false
		}
		if handled {
			if err != nil {
				log.Fatalf("%s error: %v", os.Args[1], err)
			}
			return
		}
	}

	// Normal bot operation
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: gachabot migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// openAdminFactory connects for one-shot admin commands. Events only run
// local handlers, so nothing reaches NATS.
func openAdminFactory(ctx context.Context) (*database.DB, application.UnitOfWorkFactory, error) {
	cfg := config.Get()
	cmd.ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	publisher := infrastructure.NewNATSEventPublisher(nil, infrastructure.NewEventSubjectMapper())
	return db, infrastructure.NewUnitOfWorkFactory(db, publisher, nil), nil
}

func handleImportPool() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: gachabot import-pool <guild-id> <file.yaml>")
	}
	guildID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guild id %q: %w", os.Args[2], err)
	}

	items, err := infrastructure.LoadPoolFile(os.Args[3], guildID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, uowFactory, err := openAdminFactory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var created, updated int
	err = application.RunInTransaction(ctx, uowFactory, guildID, func(uow application.UnitOfWork) error {
		itemService := services.NewItemService(
			guildID,
			uow.ItemRepository(),
			uow.PityRepository(),
			uow.CollectionRepository(),
			uow.EventBus(),
		)
		var err error
		created, updated, err = itemService.ImportItems(ctx, items)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"created": created,
		"updated": updated,
	}).Info("Pool imported")
	return nil
}

func handleGrantTokens() error {
	if len(os.Args) < 5 {
		return fmt.Errorf("usage: gachabot grant-tokens <guild-id> <user-id> <amount><tier>")
	}
	guildID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid guild id %q: %w", os.Args[2], err)
	}
	userID, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", os.Args[3], err)
	}
	tier, amount, err := entities.ParseTokenAmount(os.Args[4])
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, uowFactory, err := openAdminFactory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var balance entities.TokenBalance
	err = application.RunInTransaction(ctx, uowFactory, guildID, func(uow application.UnitOfWork) error {
		tokenService := services.NewTokenService(guildID, uow.TokenRepository(), uow.EventBus())
		var err error
		balance, err = tokenService.AddTokens(ctx, userID, tier, amount)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  userID,
		"tier":    tier.String(),
		"balance": balance.Get(tier),
	}).Info("Tokens granted")
	return nil
}
