package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartConfirmationSweeper drops expired confirmations every interval until
// ctx ends or the returned stop function is called.
func StartConfirmationSweeper(ctx context.Context, gate *ConfirmationGate, interval time.Duration) func() {
	stopChan := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.WithField("interval", interval).Info("Confirmation sweeper started")
		for {
			select {
			case <-ctx.Done():
				log.Info("Confirmation sweeper shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Confirmation sweeper shutting down (stop requested)...")
				return
			case <-ticker.C:
				gate.Sweep()
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}
