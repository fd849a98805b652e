package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/order"
)

// UpdateDeliveryStatusCommandHandler lets the assigned worker mark an order DELIVERED or
// DELIVERY_FAILED. Suspended workers may still finish orders they already hold.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates the handler with the given unit of work factory.
func NewUpdateDeliveryStatusCommandHandler(uowFactory OrderUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the outcome and emits OrderStatusChanged in the same transaction.
func (h *UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	prev := o.Status()
	now := time.Now()
	if err = o.RecordDeliveryOutcome(cmd.WorkerID(), cmd.Status(), cmd.Notes(), now); err != nil {
		return nil, err
	}

	updated, err := orderRepo.UpdateStatus(ctx, o, prev)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: order %s is no longer %s", order.ErrInvalidTransition, o.ID(), prev)
	}

	event, err := events.NewOrderStatusChanged(o, prev, now)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
