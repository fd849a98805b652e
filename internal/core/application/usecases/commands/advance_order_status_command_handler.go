package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/order"
)

// AdvanceOrderStatusCommandHandler moves an order one step along the forward transition
// table. The write is conditional on the status that was read.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderStatusCommandHandler creates the handler with the given unit of work factory.
func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the transition against the stored status and writes it conditionally.
// A concurrent status change makes the write miss and is reported as order.ErrInvalidTransition.
func (h *AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
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
	if err = o.Advance(cmd.Status(), now); err != nil {
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
