package infrastructure

import (
	"context"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthProbe reports whether one dependency is usable
type HealthProbe func(ctx context.Context) error

// HealthServer serves the standard gRPC health service. The overall status
// follows the probes, which are re-evaluated on every tick.
type HealthServer struct {
	addr     string
	server   *grpc.Server
	health   *health.Server
	probes   map[string]HealthProbe
	interval time.Duration
	stopChan chan struct{}
}

// NewHealthServer creates a health server listening on addr
func NewHealthServer(addr string, probes map[string]HealthProbe) *HealthServer {
	server := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	return &HealthServer{
		addr:     addr,
		server:   server,
		health:   hs,
		probes:   probes,
		interval: 15 * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start listens and serves in the background
func (s *HealthServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.evaluate(ctx)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.WithError(err).Error("gRPC health server stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evaluate(ctx)
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	log.WithField("addr", listener.Addr().String()).Info("gRPC health server started")
	return nil
}

// evaluate runs every probe and publishes the aggregate and per-probe status
func (s *HealthServer) evaluate(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING
	for name, probe := range s.probes {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := probe(probeCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
			log.WithFields(log.Fields{
				"probe": name,
				"error": err,
			}).Warn("Health probe failed")
		}
		s.health.SetServingStatus(name, status)
	}
	s.health.SetServingStatus("", overall)
}

// Stop stops probing and shuts the server down
func (s *HealthServer) Stop() {
	close(s.stopChan)
	s.health.Shutdown()
	s.server.GracefulStop()
}
