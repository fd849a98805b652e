package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ListClaimable returns the orders the calling worker may claim. A worker that is not active
// gets an empty list rather than an error.
func (s *Service) ListClaimable(ctx context.Context, principal *Principal) ([]queries.OrderView, error) {
	if err := requireRole(principal, RoleDelivery); err != nil {
		return nil, err
	}

	query, err := queries.NewListClaimableOrdersQuery(principal.ID)
	if err != nil {
		return nil, err
	}
	return s.h.ListClaimableOrders.Handle(ctx, query)
}

// Claim assigns the order to the calling worker. It fails with services.ErrWorkerNotActive,
// services.ErrAlreadyClaimed or services.ErrOrderUnavailable.
func (s *Service) Claim(ctx context.Context, principal *Principal, orderID kernel.UUID) (queries.OrderView, error) {
	if err := requireRole(principal, RoleDelivery); err != nil {
		return queries.OrderView{}, err
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, principal.ID)
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := s.h.ClaimOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}
	return queries.NewOrderView(o), nil
}

// UpdateDeliveryStatus records DELIVERED or DELIVERY_FAILED for an order the caller holds.
// Suspended workers may still finish the orders they claimed.
func (s *Service) UpdateDeliveryStatus(
	ctx context.Context,
	principal *Principal,
	orderID kernel.UUID,
	status order.Status,
	notes string,
) (queries.OrderView, error) {
	if err := requireRole(principal, RoleDelivery); err != nil {
		return queries.OrderView{}, err
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, principal.ID, status, notes)
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := s.h.UpdateDeliveryStatus.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}
	return queries.NewOrderView(o), nil
}

// ListWorkerOrders returns every order assigned to the calling worker.
func (s *Service) ListWorkerOrders(ctx context.Context, principal *Principal) ([]queries.OrderView, error) {
	if err := s.requireRegisteredWorker(ctx, principal); err != nil {
		return nil, err
	}

	query, err := queries.NewListWorkerOrdersQuery(principal.ID)
	if err != nil {
		return nil, err
	}
	return s.h.ListWorkerOrders.Handle(ctx, query)
}

// WorkerStats summarises the calling worker's deliveries at the current time.
func (s *Service) WorkerStats(ctx context.Context, principal *Principal) (queries.WorkerStats, error) {
	if err := s.requireRegisteredWorker(ctx, principal); err != nil {
		return queries.WorkerStats{}, err
	}

	query, err := queries.NewGetWorkerStatsQuery(principal.ID, s.now())
	if err != nil {
		return queries.WorkerStats{}, err
	}
	return s.h.GetWorkerStats.Handle(ctx, query)
}

// requireRegisteredWorker lets pending and suspended workers look at their own history but
// rejects delivery accounts that never registered.
func (s *Service) requireRegisteredWorker(ctx context.Context, principal *Principal) error {
	if err := requireRole(principal, RoleDelivery); err != nil {
		return err
	}

	query, err := queries.NewGetWorkerQuery(principal.ID)
	if err != nil {
		return err
	}
	if _, err = s.h.Workers.Get(ctx, query); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: %s is not a registered delivery worker", services.ErrWorkerNotActive, principal.ID)
		}
		return err
	}
	return nil
}
