package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrUpdateDeliveryStatusCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand records the outcome of a delivery by its assigned worker.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID
	status   order.Status
	notes    string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand validates the ids. Whether status is a delivery outcome
// is decided by the order itself.
func NewUpdateDeliveryStatusCommand(
	orderID, workerID kernel.UUID,
	status order.Status,
	notes string,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		workerID.Validate(),
		status.Validate(),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		orderID:  orderID,
		workerID: workerID,
		status:   status,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the order being reported on.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID { return c.orderID }
// WorkerID returns the reporting worker.
func (c UpdateDeliveryStatusCommand) WorkerID() kernel.UUID { return c.workerID }
// Status returns the reported outcome.
func (c UpdateDeliveryStatusCommand) Status() order.Status { return c.status }
// Notes returns the untrimmed delivery notes.
func (c UpdateDeliveryStatusCommand) Notes() string { return c.notes }
