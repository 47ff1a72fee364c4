package observability

import (
	"context"
	"testing"
	"time"

	"gachabot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsProvider_NilIsSafe(t *testing.T) {
	t.Parallel()

	var mp *MetricsProvider
	assert.NotPanics(t, func() {
		mp.RecordDraw("SSR", true, 1)
		mp.RecordExchange()
		mp.RecordRoleFailure()
		mp.RecordCommand("spin", OutcomeOK, time.Millisecond)
		mp.RecordCacheLookup(CacheHit)
	})
}

func TestMetricsProvider_Disabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))

	assert.False(t, mp.isEnabled())
	assert.NotPanics(t, func() {
		outcome := OutcomeOK
		mp.MeasureCommand("banner")(&outcome)
	})
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown exporter type")
}

func TestMetricsProvider_Console(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "console"
	cfg.OTelServiceName = "gachabot-test"
	cfg.OTelExportIntervalMillis = 60000

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))
	assert.True(t, mp.isEnabled())

	mp.RecordDraw("SSR", true, 0)
	mp.RecordDraw("R", false, 1)
	require.NoError(t, mp.Shutdown(context.Background()))
}
