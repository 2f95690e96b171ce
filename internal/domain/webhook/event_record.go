package webhook

import (
	"time"

	"github.com/google/uuid"
)

// EventRecord is one row of the idempotency ledger. The uniqueness constraint
// on (provider, event_id) is what makes webhook processing exactly-once:
// inserting a duplicate key is a recognized no-op signal, never an error.
type EventRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider   string    `gorm:"size:32;not null;uniqueIndex:idx_webhook_provider_event,priority:1"`
	EventID    string    `gorm:"size:128;not null;uniqueIndex:idx_webhook_provider_event,priority:2"`
	EventType  string    `gorm:"size:64;not null;index"`
	Payload    []byte    `gorm:"type:bytes"`
	ReceivedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EventRecord) TableName() string {
	return "webhook_events"
}

// NewEventRecord creates a ledger entry for an inbound event
func NewEventRecord(provider, eventID, eventType string, payload []byte) *EventRecord {
	return &EventRecord{
		ID:         uuid.New(),
		Provider:   provider,
		EventID:    eventID,
		EventType:  eventType,
		Payload:    payload,
		ReceivedAt: time.Now(),
	}
}

// StableEventKey derives the ledger key for an event. The provider's own event
// id wins; when it is absent the key falls back to a composite of event type,
// primary resource id and the transport-level delivery id so redeliveries of
// the same notification still collide.
func StableEventKey(eventID, eventType, resourceID, transmissionID string) string {
	if eventID != "" {
		return eventID
	}
	return eventType + ":" + resourceID + ":" + transmissionID
}
