package order

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when the requested status is not an allowed
	// successor of the current one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState is returned when an operation is not permitted in the current status.
	ErrInvalidState = errors.New("operation not allowed in current order status")
)

// Status is the lifecycle state of an order. The string value is what gets persisted.
type Status string

const (
	Pending        Status = "PENDING"
	Confirmed      Status = "CONFIRMED"
	Preparing      Status = "PREPARING"
	Ready          Status = "READY"
	OutForDelivery Status = "OUT_FOR_DELIVERY"
	Delivered      Status = "DELIVERED"
	Cancelled      Status = "CANCELLED"
	DeliveryFailed Status = "DELIVERY_FAILED"
)

// successors is the transition table. DELIVERY_FAILED has no successor: failed
// deliveries do not re-enter the claim pool.
func successors() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Preparing, Cancelled},
		Preparing:      {Ready, Cancelled},
		Ready:          {OutForDelivery},
		OutForDelivery: {Delivered, DeliveryFailed},
		Delivered:      {},
		Cancelled:      {},
		DeliveryFailed: {},
	}
}

// ClaimableStatuses lists the statuses in which a delivery worker may claim an order.
func ClaimableStatuses() []Status {
	return []Status{Confirmed, Preparing, Ready}
}

// CancellableStatuses lists the statuses from which an order may be cancelled.
func CancellableStatuses() []Status {
	return []Status{Pending, Confirmed}
}

// ParseStatus converts the persisted or requested representation into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects statuses missing from the transition table.
func (s Status) Validate() error {
	if _, ok := successors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the upper-case status name.
func (s Status) String() string {
	return string(s)
}

// Successors returns the statuses directly reachable from s.
func (s Status) Successors() []Status {
	return slices.Clone(successors()[s])
}

// CanTransitionTo reports whether s -> next is a forward edge.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(successors()[s], next)
}

// TransitionTo returns next if the edge s -> next exists in the table.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(next) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// IsTerminal reports whether s has no successors.
func (s Status) IsTerminal() bool {
	return len(successors()[s]) == 0
}

// IsClaimable reports whether a worker may claim an order in s.
func (s Status) IsClaimable() bool {
	return slices.Contains(ClaimableStatuses(), s)
}

// IsCancellable reports whether the order may still be cancelled.
func (s Status) IsCancellable() bool {
	return slices.Contains(CancellableStatuses(), s)
}

// IsDeliveryOutcome reports whether a delivery worker may record s.
func (s Status) IsDeliveryOutcome() bool {
	return s == Delivered || s == DeliveryFailed
}

// RequiresWorker reports whether an order in status s must have an assigned worker.
func (s Status) RequiresWorker() bool {
	return s == OutForDelivery || s == Delivered || s == DeliveryFailed
}

// ValidateCanHaveWorker checks the assignment invariant for a restored order.
func (s Status) ValidateCanHaveWorker(hasWorker bool) error {
	if hasWorker && !s.RequiresWorker() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery worker", s),
		)
	}
	if !hasWorker && s.RequiresWorker() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery worker", s),
		)
	}
	return nil
}
