package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrClaimOrderCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a delivery worker taking an order for delivery.
//
// Example:
//
//	cmd, _ := NewClaimOrderCommand(orderID, workerID)
//	claimed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrOrderUnavailable) {
//	    // lost the race or the order moved on; refresh the list
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand validates both ids.
func NewClaimOrderCommand(orderID, workerID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		workerID.Validate(),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID:  orderID,
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order to claim.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the claiming worker.
func (c ClaimOrderCommand) WorkerID() kernel.UUID {
	return c.workerID
}
