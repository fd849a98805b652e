package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when an order is placed without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrNotClaimable is returned when a claim targets an order that is assigned already
	// or whose status is outside ClaimableStatuses.
	ErrNotClaimable = errors.New("order is not claimable")

	// ErrNotAssigned is returned when a worker acts on an order assigned to someone else.
	ErrNotAssigned = errors.New("order is not assigned to this delivery worker")

	// ErrInvalidDeliveryOutcome is returned when a worker records anything other than
	// DELIVERED or DELIVERY_FAILED.
	ErrInvalidDeliveryOutcome = errors.New("delivery status must be DELIVERED or DELIVERY_FAILED")
)

// Order is the aggregate root for one customer order.
//
// Invariants:
//   - at least one item; total == sum(item subtotals)
//   - workerID != nil exactly when status.RequiresWorker()
//   - status changes only through Advance, Cancel, Claim and RecordDeliveryOutcome
type Order struct {
	id            kernel.UUID
	customerID    *kernel.UUID
	restaurantID  kernel.UUID
	items         []Item
	total         kernel.Money
	contact       Contact
	status        Status
	workerID      *kernel.UUID
	deliveryNotes *string
	placedAt      time.Time
	updatedAt     time.Time
	guard         guard.ConstructorGuard
}

// NewOrder places a new order in PENDING. customerID is nil for guest orders.
// All validation errors are reported together.
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	restaurantID kernel.UUID,
	contact Contact,
	items []Item,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		placedAt:  placedAt.UTC(),
		updatedAt: placedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setContact(contact),
		o.setItems(items),
	); err != nil {
		return nil, err
	}
	o.total = sumItems(o.items)

	return o, nil
}

// Snapshot is the persisted state of an order, used to rebuild the aggregate.
type Snapshot struct {
	ID            kernel.UUID
	CustomerID    *kernel.UUID
	RestaurantID  kernel.UUID
	Items         []Item
	Total         kernel.Money
	Contact       Contact
	Status        Status
	WorkerID      *kernel.UUID
	DeliveryNotes *string
	PlacedAt      time.Time
	UpdatedAt     time.Time
}

// RestoreOrder rebuilds an order from storage and re-checks every invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:        s.Status,
		deliveryNotes: s.DeliveryNotes,
		placedAt:      s.PlacedAt.UTC(),
		updatedAt:     s.UpdatedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setRestaurantID(s.RestaurantID),
		o.setItems(s.Items),
		o.setWorkerID(s.WorkerID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveWorker(s.WorkerID != nil); err != nil {
		return nil, err
	}

	o.contact = s.Contact
	o.total = sumItems(o.items)
	if !o.total.Equal(s.Total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored total %s does not match items sum %s", s.Total, o.total),
		)
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
// CustomerID is nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) Total() kernel.Money { return o.total }
func (o *Order) Contact() Contact { return o.contact }
func (o *Order) Status() Status { return o.status }
// Worker returns the assigned delivery worker, or nil before a claim.
func (o *Order) Worker() *kernel.UUID { return o.workerID }
// DeliveryNotes is set by the worker with the delivery outcome.
func (o *Order) DeliveryNotes() *string { return o.deliveryNotes }
func (o *Order) PlacedAt() time.Time { return o.placedAt }
// UpdatedAt is the time of the last status write.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) IsGuest() bool { return o.customerID == nil }
// IsAssignedTo reports whether w holds the claim.
func (o *Order) IsAssignedTo(w kernel.UUID) bool { return o.workerID != nil && o.workerID.IsEqual(w) }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// IsOwnedBy reports whether customerID placed this order. Guest orders have no owner.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID != nil && o.customerID.IsEqual(customerID)
}

// Advance moves the order to next if the transition table allows it and stamps updatedAt with at.
// OUT_FOR_DELIVERY can only be reached through Claim, because it needs a worker.
func (o *Order) Advance(next Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	if newStatus.RequiresWorker() && o.workerID == nil {
		return fmt.Errorf("%w: %s requires an assigned delivery worker", ErrInvalidTransition, newStatus)
	}

	o.status = newStatus
	o.updatedAt = at.UTC()
	return nil
}

// Cancel moves a PENDING or CONFIRMED order to CANCELLED.
func (o *Order) Cancel(at time.Time) error {
	if !o.status.IsCancellable() {
		return fmt.Errorf("%w: cannot cancel order in %s status", ErrInvalidState, o.status)
	}

	o.status = Cancelled
	o.updatedAt = at.UTC()
	return nil
}

// Claim assigns workerID and moves the order to OUT_FOR_DELIVERY.
func (o *Order) Claim(workerID kernel.UUID, at time.Time) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.workerID != nil || !o.status.IsClaimable() {
		return fmt.Errorf("%w: status %s", ErrNotClaimable, o.status)
	}

	o.workerID = &workerID
	o.status = OutForDelivery
	o.updatedAt = at.UTC()
	return nil
}

// RecordDeliveryOutcome lets the assigned worker finish the delivery leg.
// Empty notes clear any previous notes.
func (o *Order) RecordDeliveryOutcome(workerID kernel.UUID, outcome Status, notes string, at time.Time) error {
	if !o.IsAssignedTo(workerID) {
		return ErrNotAssigned
	}
	if !outcome.IsDeliveryOutcome() {
		return fmt.Errorf("%w: got %q", ErrInvalidDeliveryOutcome, string(outcome))
	}
	if err := o.Advance(outcome, at); err != nil {
		return err
	}

	o.deliveryNotes = nil
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		o.deliveryNotes = &trimmed
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID == nil {
		return nil
	}
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer", err)
	}
	id := *customerID
	o.customerID = &id
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setContact(contact Contact) error {
	if contact.IsZero() {
		return errs.NewValueIsRequiredError("contact")
	}
	o.contact = contact
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setWorkerID(workerID *kernel.UUID) error {
	if workerID == nil {
		return nil
	}
	if err := workerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("delivery worker", err)
	}
	id := *workerID
	o.workerID = &id
	return nil
}

func sumItems(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
