package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler persists a new order, its items and an order.placed event in
// one transaction. Any storage failure is reported as ErrPlacementFailed and leaves no rows.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPlaceOrderCommandHandler creates the handler with the given unit of work factory.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the placed order in PENDING with its computed total.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Contact(),
		cmd.Items(),
		now,
	)
	if err != nil {
		return nil, err
	}

	event, err := events.NewOrderPlaced(placed, now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlacementFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlacementFailed, err)
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlacementFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlacementFailed, err)
	}

	return placed, nil
}
