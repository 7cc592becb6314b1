package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventProfileCreated      EventType = "profile_created"
	EventProfileDeleted      EventType = "profile_deleted"
	EventJobCreated          EventType = "job_created"
	EventJobUpdated          EventType = "job_updated"
	EventJobDeleted          EventType = "job_deleted"
	EventApplicationRecorded EventType = "application_recorded"
)

// Event is a notification emitted after a committed mutation. Key is the id
// of the aggregate the event belongs to.
type Event struct {
	Type       EventType   `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
