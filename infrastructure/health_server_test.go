package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthServer_Evaluate(t *testing.T) {
	t.Parallel()

	healthy := true
	server := NewHealthServer("127.0.0.1:0", map[string]HealthProbe{
		"database": func(ctx context.Context) error { return nil },
		"discord": func(ctx context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("gateway closed")
		},
	})
	ctx := context.Background()

	server.evaluate(ctx)
	resp, err := server.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	healthy = false
	server.evaluate(ctx)

	resp, err = server.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	resp, err = server.health.Check(ctx, &healthpb.HealthCheckRequest{Service: "database"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
