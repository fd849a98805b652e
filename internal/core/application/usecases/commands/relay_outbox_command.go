package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRelayOutboxCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes up to BatchSize unpublished events, oldest first.
type RelayOutboxCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

// NewRelayOutboxCommand bounds the number of events relayed per run.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize < 1 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// BatchSize is the maximum number of events read per run.
func (c RelayOutboxCommand) BatchSize() int { return c.batchSize }

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// RelayOutboxCommandHandler moves events from the outbox table to the message broker.
//
// Delivery is at least once: an event is marked only after the broker accepted it, so a crash
// between the two steps publishes it again on the next run. The batch stops at the first
// publish failure to keep per-aggregate ordering.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
}

// NewRelayOutboxCommandHandler relays through publisher.
func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.MessagePublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many events were published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	outbox := h.uowFactory.Create().OutboxRepository()
	pending, err := outbox.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range pending {
		if err = h.publisher.Publish(ctx, event); err != nil {
			return published, fmt.Errorf("publish %s %s: %w", event.Type, event.ID, err)
		}
		if err = outbox.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			return published, err
		}
		published++
	}

	return published, nil
}
