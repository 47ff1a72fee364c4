package infrastructure

import (
	"fmt"

	"gachabot/events"
)

// DomainEventStream is the JetStream stream every gacha event lands in
const DomainEventStream = "gacha_events"

var eventSubjects = map[events.EventType]string{
	events.EventTypeDrawCompleted:    "gacha.draw.completed",
	events.EventTypeTokensChanged:    "gacha.tokens.changed",
	events.EventTypeExchangeRedeemed: "gacha.exchange.redeemed",
	events.EventTypePoolChanged:      "gacha.pool.changed",
}

// EventSubjectMapper maps domain events to NATS subjects and back
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject returns the subject an event is published on
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := eventSubjects[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("gacha.unknown.%s", event.Type())
}

// MapSubjectToEventType converts a subject back to its event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for eventType, s := range eventSubjects {
		if s == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns every subject the bot publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		eventSubjects[events.EventTypeDrawCompleted],
		eventSubjects[events.EventTypeTokensChanged],
		eventSubjects[events.EventTypeExchangeRedeemed],
		eventSubjects[events.EventTypePoolChanged],
	}
}
