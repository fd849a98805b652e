package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks to cancel an order on behalf of a customer or an administrator.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	isAdmin     bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand records who asks for the cancellation. Administrators may cancel
// any order; other requesters only their own.
func NewCancelOrderCommand(orderID, requesterID kernel.UUID, isAdmin bool) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		isAdmin: isAdmin,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		requesterID.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.requesterID = requesterID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the account asking for the cancellation.
func (c CancelOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// IsAdmin reports whether the requester bypasses the ownership check.
func (c CancelOrderCommand) IsAdmin() bool {
	return c.isAdmin
}
