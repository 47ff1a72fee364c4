package services

import (
	"gachabot/domain/interfaces"
	"gachabot/events"

	log "github.com/sirupsen/logrus"
)

// publishEvent hands an event to the transactional publisher. Events are only
// delivered after commit, so a failure here never fails the operation.
func publishEvent(publisher interfaces.EventPublisher, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(event); err != nil {
		log.WithError(err).WithField("event_type", event.Type()).Error("Failed to publish event")
	}
}
