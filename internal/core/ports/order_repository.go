// Package ports defines the contracts between the application core and its adapters:
// repositories, the unit of work and the event publisher.
package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrDuplicate is returned by a repository when a unique key already exists.
var ErrDuplicate = errors.New("record already exists")

// OrderRepository defines the persistence contract for order aggregates.
// Every status write is conditional on the row state the caller read, and reports
// through its bool result whether the row was actually changed.
type OrderRepository interface {
	// Add persists a new order together with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Returns errs.ErrObjectNotFound if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the aggregate's status and delivery notes only if the stored
	// status still equals expected (and, for assigned orders, the stored worker matches).
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// Claim writes the aggregate's worker and status only if the stored order is still
	// unassigned and in a claimable status.
	Claim(ctx context.Context, aggregate *order.Order) (bool, error)

	// Delete removes the order and its items. Returns errs.ErrObjectNotFound if absent.
	Delete(ctx context.Context, id kernel.UUID) error
}
