package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
)

var (
	// ErrWorkerNotActive is returned when a pending, suspended or unknown worker tries to claim.
	ErrWorkerNotActive = errors.New("delivery worker is not active")

	// ErrOrderUnavailable is returned when the order is not (or no longer) claimable.
	ErrOrderUnavailable = errors.New("order is not available for claiming")

	// ErrAlreadyClaimed is the race-loss case of ErrOrderUnavailable: another claim won.
	// errors.Is(ErrAlreadyClaimed, ErrOrderUnavailable) holds.
	ErrAlreadyClaimed = fmt.Errorf("%w: already claimed by a delivery worker", ErrOrderUnavailable)
)

// ClaimPolicy holds the domain rules of claiming an order for delivery.
//
// Business rules:
//   - only active workers may claim
//   - an order may be claimed while CONFIRMED, PREPARING or READY and unassigned
//   - a claim assigns the worker and moves the order to OUT_FOR_DELIVERY
type ClaimPolicy struct{}

// NewClaimPolicy returns the stateless policy.
func NewClaimPolicy() ClaimPolicy {
	return ClaimPolicy{}
}

// Claim applies the claim to o in memory. The caller persists it with a conditional write.
func (ClaimPolicy) Claim(w *worker.Worker, o *order.Order, at time.Time) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if !w.IsActive() {
		return fmt.Errorf("%w: status %s", ErrWorkerNotActive, w.Status())
	}
	if o.Worker() != nil {
		return ErrAlreadyClaimed
	}
	if err := o.Claim(w.ID(), at); err != nil {
		if errors.Is(err, order.ErrNotClaimable) {
			return fmt.Errorf("%w: %w", ErrOrderUnavailable, err)
		}
		return err
	}

	return nil
}

// ClassifyWorker reports ErrWorkerNotActive when the worker lost its active status, or was
// removed, between the read and the conditional claim write. current is nil when removed.
func (ClaimPolicy) ClassifyWorker(current *worker.Worker) error {
	if current == nil {
		return fmt.Errorf("%w: worker no longer exists", ErrWorkerNotActive)
	}
	if !current.IsActive() {
		return fmt.Errorf("%w: status is now %s", ErrWorkerNotActive, current.Status())
	}
	return nil
}

// Classify explains why the conditional claim write affected no rows, given the order as it
// is stored now. current is nil when the order has been deleted meanwhile.
func (ClaimPolicy) Classify(current *order.Order) error {
	if current != nil && current.Worker() != nil {
		return ErrAlreadyClaimed
	}
	if current == nil {
		return fmt.Errorf("%w: order no longer exists", ErrOrderUnavailable)
	}
	return fmt.Errorf("%w: status is now %s", ErrOrderUnavailable, current.Status())
}
