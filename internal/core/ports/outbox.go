package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
)

// OutboxRepository stores integration events next to the state change that produced them.
type OutboxRepository interface {
	Add(ctx context.Context, event events.Event) error

	// ListUnpublished returns up to limit events, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]events.Event, error)

	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error
}

// MessagePublisher delivers one event to the message broker.
type MessagePublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
