// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: a command value built and validated by its
// constructor, and a handler that runs the change inside one unit of work.
package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
)

var (
	// ErrPlacementFailed wraps any storage failure while placing an order. Nothing is persisted.
	ErrPlacementFailed = errors.New("order placement failed")

	// ErrForbidden is returned when the requester may not act on the order.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateIdentity is returned when the account or license number is already registered.
	ErrDuplicateIdentity = errors.New("delivery worker already registered")
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WorkerUoW manages transactions for the worker registry.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
		OutboxRepoFactory
	}

	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// UoW spans orders and workers. Used by claiming, which reads the worker and writes the order
	// in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   w, err := uow.WorkerRepository().Get(ctx, workerID)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// OutboxUoW is used by the relay, which reads and marks events without a transaction.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
