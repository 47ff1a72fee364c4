package infrastructure

import (
	"context"
	"sync"

	"gachabot/domain/interfaces"
	"gachabot/events"

	log "github.com/sirupsen/logrus"
)

// TransactionalPublisher queues events while a unit of work is open. Flush
// forwards them once the transaction has committed; Discard drops them.
type TransactionalPublisher struct {
	realPublisher interfaces.EventPublisher
	mu            sync.Mutex
	pending       []events.Event
}

// NewTransactionalPublisher creates a publisher that forwards to realPublisher on Flush
func NewTransactionalPublisher(realPublisher interfaces.EventPublisher) *TransactionalPublisher {
	return &TransactionalPublisher{realPublisher: realPublisher}
}

// Publish queues the event
func (p *TransactionalPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = append(p.pending, event)
	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"pendingCount": len(p.pending),
	}).Debug("Queued event for publishing after commit")
	return nil
}

// Flush forwards every queued event in order. Failures are logged and do not
// stop the remaining events.
func (p *TransactionalPublisher) Flush(_ context.Context) error {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, event := range pending {
		if p.realPublisher == nil {
			continue
		}
		if err := p.realPublisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish event after commit")
		}
	}
	return nil
}

// Discard drops every queued event
func (p *TransactionalPublisher) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) > 0 {
		log.WithField("discardedCount", len(p.pending)).Debug("Discarded events after rollback")
	}
	p.pending = nil
}

// PendingCount returns how many events are waiting for Flush
func (p *TransactionalPublisher) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
