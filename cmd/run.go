package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"gachabot/application"
	"gachabot/bot"
	"gachabot/config"
	"gachabot/database"
	"gachabot/events"
	"gachabot/infrastructure"
	"gachabot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the configured level and picks JSON output in production
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.Info("Starting gacha bot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize metrics
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics, continuing without them")
	}

	// Initialize NATS (optional)
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()
	} else {
		log.Info("NATS_SERVERS not set, events stay in-process")
	}
	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		return fmt.Errorf("failed to ensure event stream: %w", err)
	}

	// Initialize the pool cache (optional)
	var poolCache *infrastructure.PoolCache
	if cfg.RedisURL != "" {
		poolCache, err = infrastructure.ConnectPoolCache(ctx, cfg.RedisURL, time.Duration(cfg.PoolCacheTTLSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer poolCache.Close()
	}

	// Initialize unit of work factory
	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher, poolCache)
	if poolCache != nil {
		uowFactory.RegisterLocalHandler(events.EventTypePoolChanged, poolCache.HandlePoolChanged)
	}

	// Confirmation gate and its sweeper
	gate := application.NewConfirmationGate(nil, time.Duration(cfg.ConfirmationTimeoutMs)*time.Millisecond)
	stopSweeper := application.StartConfirmationSweeper(ctx, gate, time.Minute)
	defer stopSweeper()
	confirmations := application.NewConfirmationWorkflow(uowFactory, gate)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:              cfg.DiscordToken,
		Prefix:             cfg.CommandPrefix,
		SpinAnimationDelay: time.Duration(cfg.SpinAnimationDelayMs) * time.Millisecond,
		TicketDefaults: application.TicketDefaults{
			Single: cfg.DefaultTicketRole,
			Ten:    cfg.DefaultTicketRole10,
		},
	}
	discordBot, err := bot.New(botConfig, uowFactory, confirmations)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Ops endpoints
	opsServer := bot.StartOpsAPI(cfg.OpsAPIAddr, bot.OpsDependencies{
		UnitOfWorkFactory: uowFactory,
		Confirmations:     gate,
		Guilds:            discordBot.GetGuilds,
	})

	probes := map[string]infrastructure.HealthProbe{
		"database": func(ctx context.Context) error { return db.Ping(ctx) },
	}
	if natsClient != nil {
		probes["nats"] = func(ctx context.Context) error {
			if !natsClient.IsConnected() {
				return fmt.Errorf("nats disconnected")
			}
			return nil
		}
	}
	if poolCache != nil {
		probes["redis"] = poolCache.Ping
	}
	healthServer := infrastructure.NewHealthServer(cfg.GRPCHealthAddr, probes)
	if err := healthServer.Start(ctx); err != nil {
		log.WithError(err).Warn("Failed to start gRPC health server")
		healthServer = nil
	}

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error stopping ops API: %v", err)
	}
	if healthServer != nil {
		healthServer.Stop()
	}
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.Errorf("Error shutting down metrics: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}
