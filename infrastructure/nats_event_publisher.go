package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gachabot/events"
	"gachabot/infrastructure/observability"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// EventHandler handles a domain event inside the publishing process
type EventHandler func(context.Context, events.Event) error

// NATSEventPublisher runs local handlers for an event and then publishes it to
// NATS. With a nil client only the local handlers run.
type NATSEventPublisher struct {
	natsClient    *NATSClient
	subjectMapper *EventSubjectMapper
	mu            sync.RWMutex
	localHandlers map[events.EventType][]EventHandler
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(natsClient *NATSClient, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		natsClient:    natsClient,
		subjectMapper: subjectMapper,
		localHandlers: make(map[events.EventType][]EventHandler),
	}
}

// Publish invokes local handlers and publishes the event envelope to NATS
func (p *NATSEventPublisher) Publish(event events.Event) error {
	ctx := context.Background()
	eventType := event.Type()

	p.mu.RLock()
	handlers := p.localHandlers[eventType]
	p.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			// A failing handler never blocks the others or the NATS publish
			log.WithFields(log.Fields{
				"eventType": eventType,
				"error":     err,
			}).Error("Local event handler failed")
		}
	}

	if p.natsClient == nil {
		return nil
	}

	subject := p.subjectMapper.MapEventToSubject(event)
	data, eventID, err := EncodeEnvelope(event)
	if err != nil {
		return err
	}

	if err := p.natsClient.Publish(ctx, subject, data, eventID); err != nil {
		// no stream captures the subject
		if errors.Is(err, nats.ErrNoStreamResponse) {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	observability.GetMetrics().RecordNATSMessagePublished(string(eventType))
	log.WithFields(log.Fields{
		"eventType": eventType,
		"eventId":   eventID,
		"subject":   subject,
	}).Debug("Published event to NATS")
	return nil
}

// RegisterLocalHandler registers a handler invoked in-process for events of a type
func (p *NATSEventPublisher) RegisterLocalHandler(eventType events.EventType, handler EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.localHandlers[eventType] = append(p.localHandlers[eventType], handler)
	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(p.localHandlers[eventType]),
	}).Info("Registered local event handler")
}

// EnsureDomainEventStream creates the stream covering every published subject
func (p *NATSEventPublisher) EnsureDomainEventStream() error {
	if p.natsClient == nil {
		return nil
	}
	return p.natsClient.EnsureStream(DomainEventStream, p.subjectMapper.GetAllSubjects())
}
