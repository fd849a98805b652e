package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels PENDING or CONFIRMED orders.
// Only the customer who placed the order or an administrator may cancel it; guest
// orders have no owner and can be cancelled by administrators only.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates the handler with the given unit of work factory.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle writes CANCELLED conditionally on the status that was read. If the order moved
// on in between, the cancel loses and order.ErrInvalidState is returned.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if !cmd.IsAdmin() && !o.IsOwnedBy(cmd.RequesterID()) {
		return nil, fmt.Errorf("%w: order %s belongs to another customer", ErrForbidden, o.ID())
	}

	prev := o.Status()
	now := time.Now()
	if err = o.Cancel(now); err != nil {
		return nil, err
	}

	updated, err := orderRepo.UpdateStatus(ctx, o, prev)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: order %s is no longer %s", order.ErrInvalidState, o.ID(), prev)
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
