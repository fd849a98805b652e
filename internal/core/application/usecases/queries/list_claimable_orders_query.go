package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/guard"

	"gorm.io/gorm"
)

// ErrListClaimableOrdersQueryIsNotConstructed is returned by Validate on a zero-value query.
var ErrListClaimableOrdersQueryIsNotConstructed = errors.New(
	"ListClaimableOrdersQuery must be created via NewListClaimableOrdersQuery constructor",
)

// ListClaimableOrdersQuery is the pool a delivery worker picks orders from.
type ListClaimableOrdersQuery struct {
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewListClaimableOrdersQuery validates the worker id.
func NewListClaimableOrdersQuery(workerID kernel.UUID) (ListClaimableOrdersQuery, error) {
	if err := workerID.Validate(); err != nil {
		return ListClaimableOrdersQuery{}, err
	}
	return ListClaimableOrdersQuery{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

// WorkerID returns the worker asking for the pool.
func (q ListClaimableOrdersQuery) WorkerID() kernel.UUID { return q.workerID }

// Validate ensures the query was created through the constructor.
func (q ListClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListClaimableOrdersQueryIsNotConstructed)
}

// ListClaimableOrdersQueryHandler returns orders in a claimable status that are unassigned or
// already assigned to the asking worker, oldest first.
//
// The worker's status is read on every call: a worker that is pending, suspended or unknown
// gets an empty list.
type ListClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListClaimableOrdersQueryHandler reads from db outside any unit of work.
func NewListClaimableOrdersQueryHandler(db *gorm.DB) ListClaimableOrdersQueryHandler {
	return ListClaimableOrdersQueryHandler{db: db}
}

// Handle returns an empty list, not an error, for a worker that is unknown or not active.
func (h ListClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListClaimableOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var statuses []string
	if err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM delivery_workers
		WHERE id = ?
	`, query.WorkerID().Bytes()).Scan(&statuses).Error; err != nil {
		return nil, err
	}
	if len(statuses) == 0 || statuses[0] != worker.Active.String() {
		return make([]OrderView, 0), nil
	}

	claimable := make([]string, 0, len(order.ClaimableStatuses()))
	for _, s := range order.ClaimableStatuses() {
		claimable = append(claimable, s.String())
	}

	return loadOrders(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status IN ?
			AND (worker_id IS NULL OR worker_id = ?)
		ORDER BY placed_at ASC, id
	`, claimable, query.WorkerID().Bytes())
}
