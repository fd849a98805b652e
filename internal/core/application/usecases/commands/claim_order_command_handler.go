package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ClaimOrderCommandHandler assigns an order to a delivery worker.
//
// The claim is one conditional update that also requires the worker to be active at write
// time. When it affects no rows the worker and then the order are read again to tell a
// worker that lost its approval (services.ErrWorkerNotActive) from a lost race
// (services.ErrAlreadyClaimed) and from an order that left the claimable statuses
// (services.ErrOrderUnavailable). Nothing is retried.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ClaimPolicy
}

// NewClaimOrderCommandHandler returns a handler using the default ClaimPolicy.
func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewClaimPolicy(),
	}
}

// Handle claims the order for the worker and records an OrderClaimed event.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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

	workerRepo := uow.WorkerRepository()
	w, err := workerRepo.Get(ctx, cmd.WorkerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: unknown delivery worker %s", services.ErrWorkerNotActive, cmd.WorkerID())
		}
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, h.policy.Classify(nil)
		}
		return nil, err
	}

	prev := o.Status()
	now := time.Now()
	if err = h.policy.Claim(w, o, now); err != nil {
		return nil, err
	}

	claimed, err := orderRepo.Claim(ctx, o)
	if err != nil {
		return nil, err
	}
	if !claimed {
		stillActive, getErr := workerRepo.Get(ctx, cmd.WorkerID())
		if getErr != nil && !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}
		if err = h.policy.ClassifyWorker(stillActive); err != nil {
			return nil, err
		}

		current, getErr := orderRepo.Get(ctx, cmd.OrderID())
		if getErr != nil && !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}
		return nil, h.policy.Classify(current)
	}

	event, err := events.NewOrderClaimed(o, prev, now)
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
