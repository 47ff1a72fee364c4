package infrastructure

import (
	"encoding/json"
	"fmt"
	"time"

	"gachabot/events"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const sourceService = "gachabot"

// Envelope is the decoded form of an event published to NATS
type Envelope struct {
	EventID       string
	EventType     events.EventType
	Timestamp     time.Time
	SourceService string
	Payload       map[string]any
}

// EncodeEnvelope wraps an event in a protobuf Struct envelope and returns
// its protojson encoding together with the generated event id.
func EncodeEnvelope(event events.Event) ([]byte, string, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event payload: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", fmt.Errorf("failed to decode event payload: %w", err)
	}

	timestamp, err := protojson.Marshal(timestamppb.Now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode timestamp: %w", err)
	}

	eventID := uuid.New().String()
	envelope, err := structpb.NewStruct(map[string]any{
		"event_id":       eventID,
		"event_type":     string(event.Type()),
		"timestamp":      trimQuotes(string(timestamp)),
		"source_service": sourceService,
		"payload":        payload,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build event envelope: %w", err)
	}

	data, err := protojson.Marshal(envelope)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, eventID, nil
}

// DecodeEnvelope parses data produced by EncodeEnvelope
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var envelope structpb.Struct
	if err := protojson.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	fields := envelope.GetFields()
	out := &Envelope{
		EventID:       fields["event_id"].GetStringValue(),
		EventType:     events.EventType(fields["event_type"].GetStringValue()),
		SourceService: fields["source_service"].GetStringValue(),
		Payload:       fields["payload"].GetStructValue().AsMap(),
	}
	if out.EventID == "" || out.EventType == "" {
		return nil, fmt.Errorf("event envelope is missing its id or type")
	}

	var ts timestamppb.Timestamp
	if raw := fields["timestamp"].GetStringValue(); raw != "" {
		if err := protojson.Unmarshal([]byte(`"`+raw+`"`), &ts); err != nil {
			return nil, fmt.Errorf("failed to parse envelope timestamp: %w", err)
		}
		out.Timestamp = ts.AsTime()
	}
	return out, nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
