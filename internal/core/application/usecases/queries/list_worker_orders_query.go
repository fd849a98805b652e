package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"gorm.io/gorm"
)

// ErrListWorkerOrdersQueryIsNotConstructed is returned by Validate on a zero-value query.
var ErrListWorkerOrdersQueryIsNotConstructed = errors.New(
	"ListWorkerOrdersQuery must be created via NewListWorkerOrdersQuery constructor",
)

// ListWorkerOrdersQuery lists every order a delivery worker has claimed, newest first.
type ListWorkerOrdersQuery struct {
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewListWorkerOrdersQuery validates the worker id.
func NewListWorkerOrdersQuery(workerID kernel.UUID) (ListWorkerOrdersQuery, error) {
	if err := workerID.Validate(); err != nil {
		return ListWorkerOrdersQuery{}, err
	}
	return ListWorkerOrdersQuery{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

// WorkerID returns the assignee to filter on.
func (q ListWorkerOrdersQuery) WorkerID() kernel.UUID { return q.workerID }

// Validate ensures the query was created through the constructor.
func (q ListWorkerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkerOrdersQueryIsNotConstructed)
}

// ListWorkerOrdersQueryHandler lists every order ever assigned to a worker, newest first.
type ListWorkerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListWorkerOrdersQueryHandler reads from db outside any unit of work.
func NewListWorkerOrdersQueryHandler(db *gorm.DB) ListWorkerOrdersQueryHandler {
	return ListWorkerOrdersQueryHandler{db: db}
}

func (h ListWorkerOrdersQueryHandler) Handle(ctx context.Context, query ListWorkerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadOrders(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE worker_id = ?
		ORDER BY placed_at DESC, id
	`, query.WorkerID().Bytes())
}
