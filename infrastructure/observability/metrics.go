package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gachabot/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// MetricsProvider manages OpenTelemetry metrics for the bot
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	commandsCounter      metric.Int64Counter
	commandDurationHist  metric.Float64Histogram
	drawsCounter         metric.Int64Counter
	forcedDrawsCounter   metric.Int64Counter
	tokensAwardedCounter metric.Int64Counter
	exchangesCounter     metric.Int64Counter
	roleFailuresCounter  metric.Int64Counter
	natsPublishedCounter metric.Int64Counter
	cacheLookupsCounter  metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{config: cfg}
}

// Initialize sets up the OpenTelemetry meter provider and instruments
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("gachabot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	if mp.commandsCounter, err = mp.meter.Int64Counter(CommandsTotal,
		metric.WithDescription("Commands handled, by command and outcome"),
	); err != nil {
		return fmt.Errorf("failed to create commands counter: %w", err)
	}

	if mp.commandDurationHist, err = mp.meter.Float64Histogram(CommandDuration,
		metric.WithDescription("Command handling latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	); err != nil {
		return fmt.Errorf("failed to create command duration histogram: %w", err)
	}

	if mp.drawsCounter, err = mp.meter.Int64Counter(DrawsTotal,
		metric.WithDescription("Items drawn, by rarity"),
	); err != nil {
		return fmt.Errorf("failed to create draws counter: %w", err)
	}

	if mp.forcedDrawsCounter, err = mp.meter.Int64Counter(ForcedDrawsTotal,
		metric.WithDescription("Draws forced by the pity threshold"),
	); err != nil {
		return fmt.Errorf("failed to create forced draws counter: %w", err)
	}

	if mp.tokensAwardedCounter, err = mp.meter.Int64Counter(TokensAwardedTotal,
		metric.WithDescription("Tokens awarded for duplicates, by rarity"),
	); err != nil {
		return fmt.Errorf("failed to create tokens counter: %w", err)
	}

	if mp.exchangesCounter, err = mp.meter.Int64Counter(ExchangesTotal,
		metric.WithDescription("Exchanges redeemed"),
	); err != nil {
		return fmt.Errorf("failed to create exchanges counter: %w", err)
	}

	if mp.roleFailuresCounter, err = mp.meter.Int64Counter(RoleGrantFailures,
		metric.WithDescription("Role grants or revocations that failed after commit"),
	); err != nil {
		return fmt.Errorf("failed to create role failures counter: %w", err)
	}

	if mp.natsPublishedCounter, err = mp.meter.Int64Counter(NATSMessagesPublishedTotal,
		metric.WithDescription("Domain events published to NATS"),
	); err != nil {
		return fmt.Errorf("failed to create NATS published counter: %w", err)
	}

	if mp.cacheLookupsCounter, err = mp.meter.Int64Counter(PoolCacheLookupsTotal,
		metric.WithDescription("Item pool cache lookups, by result"),
	); err != nil {
		return fmt.Errorf("failed to create cache lookups counter: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordCommand records one handled command
func (mp *MetricsProvider) RecordCommand(command, outcome string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelCommand, command),
		attribute.String(LabelOutcome, outcome),
	)
	mp.commandsCounter.Add(context.Background(), 1, attrs)
	mp.commandDurationHist.Record(context.Background(), duration.Seconds(), attrs)
}

// RecordDraw records one drawn item
func (mp *MetricsProvider) RecordDraw(rarity string, forced bool, tokens int64) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(attribute.String(LabelRarity, rarity))
	mp.drawsCounter.Add(context.Background(), 1, attrs)
	if forced {
		mp.forcedDrawsCounter.Add(context.Background(), 1, attrs)
	}
	if tokens > 0 {
		mp.tokensAwardedCounter.Add(context.Background(), tokens, attrs)
	}
}

// RecordExchange records a redeemed exchange
func (mp *MetricsProvider) RecordExchange() {
	if !mp.isEnabled() {
		return
	}
	mp.exchangesCounter.Add(context.Background(), 1)
}

// RecordRoleFailure records a role effect that failed after commit
func (mp *MetricsProvider) RecordRoleFailure() {
	if !mp.isEnabled() {
		return
	}
	mp.roleFailuresCounter.Add(context.Background(), 1)
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelEventType, eventType)),
	)
}

// RecordCacheLookup records a pool cache hit or miss
func (mp *MetricsProvider) RecordCacheLookup(result string) {
	if !mp.isEnabled() {
		return
	}

	mp.cacheLookupsCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String(LabelResult, result)),
	)
}

// MeasureCommand returns a function that records the command when called.
// Usage:
//
//	defer mp.MeasureCommand("spin")(&outcome)
func (mp *MetricsProvider) MeasureCommand(command string) func(outcome *string) {
	start := time.Now()
	return func(outcome *string) {
		mp.RecordCommand(command, *outcome, time.Since(start))
	}
}

// isEnabled reports whether instruments exist. A nil provider is disabled
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.config.OTelEnabled && mp.meter != nil
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider. It is nil until
// InitializeGlobalMetrics runs, and every Record method accepts a nil receiver.
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
