package queue

import (
	"context"
	"time"
)

const (
	EventEmailGenerated   = "email.generated"
	EventEmailUpdated     = "email.updated"
	EventEmailRegenerated = "email.regenerated"
	EventEmailDeleted     = "email.deleted"
)

// EventTypes lists every event the service publishes. Each is also the
// routing key it is published with.
var EventTypes = []string{EventEmailGenerated, EventEmailUpdated, EventEmailRegenerated, EventEmailDeleted}

type EmailEvent struct {
	Type             string    `json:"type"`
	EmailID          int       `json:"email_id"`
	RecipientName    string    `json:"recipient_name,omitempty"`
	RecipientCompany string    `json:"recipient_company,omitempty"`
	BatchID          string    `json:"batch_id,omitempty"`
	Part             string    `json:"part,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event EmailEvent) error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, EmailEvent) error { return nil }
