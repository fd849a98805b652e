package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, price string, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "dish", quantity, kernel.MustMoney(price))
	require.NoError(t, err)
	return item
}

func mustContact(t *testing.T) order.Contact {
	t.Helper()
	c, err := order.NewContact("Jane Doe", "+15550100", "12 Main St", "Springfield")
	require.NoError(t, err)
	return c
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	customer := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		&customer,
		kernel.NewUUID(),
		mustContact(t),
		[]order.Item{mustItem(t, "10.00", 2), mustItem(t, "5.50", 1)},
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

// advance walks o through the given statuses and fails on the first error.
func advance(t *testing.T, o *order.Order, steps ...order.Status) {
	t.Helper()
	for _, s := range steps {
		require.NoError(t, o.Advance(s, time.Now()))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should compute total and start in pending", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, "25.50", o.Total().String())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Worker())
		assert.Nil(t, o.DeliveryNotes())
		assert.Len(t, o.Items(), 2)
		assert.False(t, o.IsGuest())
		require.NoError(t, o.Validate())
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), nil, kernel.NewUUID(), mustContact(t), nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, nil, kernel.UUID{}, order.Contact{}, nil, time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrItemsAreRequired)
		assert.Contains(t, err.Error(), "contact")
	})

	t.Run("should accept guest orders", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), nil, kernel.NewUUID(), mustContact(t),
			[]order.Item{mustItem(t, "3.00", 1)}, time.Now(),
		)
		require.NoError(t, err)
		assert.True(t, o.IsGuest())
		assert.False(t, o.IsOwnedBy(kernel.NewUUID()))
	})

	t.Run("should not share the caller's item slice", func(t *testing.T) {
		items := []order.Item{mustItem(t, "3.00", 1)}
		o, err := order.NewOrder(kernel.NewUUID(), nil, kernel.NewUUID(), mustContact(t), items, time.Now())
		require.NoError(t, err)

		items[0] = mustItem(t, "99.00", 1)
		assert.Equal(t, "3.00", o.Items()[0].Price().String())
	})
}

func TestOrder_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_MutationsStampUpdatedAt(t *testing.T) {
	placed := newTestOrder(t)
	base := placed.PlacedAt()
	zone := time.FixedZone("UTC+3", 3*60*60)

	confirmedAt := base.Add(time.Minute).In(zone)
	require.NoError(t, placed.Advance(order.Confirmed, confirmedAt))
	assert.True(t, placed.UpdatedAt().Equal(confirmedAt))
	assert.Equal(t, time.UTC, placed.UpdatedAt().Location())
	assert.True(t, placed.PlacedAt().Equal(base))

	claimedAt := base.Add(2 * time.Minute)
	w := kernel.NewUUID()
	require.NoError(t, placed.Claim(w, claimedAt))
	assert.True(t, placed.UpdatedAt().Equal(claimedAt))

	deliveredAt := base.Add(3 * time.Minute)
	require.NoError(t, placed.RecordDeliveryOutcome(w, order.Delivered, "", deliveredAt))
	assert.True(t, placed.UpdatedAt().Equal(deliveredAt))

	cancelled := newTestOrder(t)
	cancelledAt := cancelled.PlacedAt().Add(time.Minute)
	require.NoError(t, cancelled.Cancel(cancelledAt))
	assert.True(t, cancelled.UpdatedAt().Equal(cancelledAt))

	rejectedAt := cancelledAt.Add(time.Minute)
	require.ErrorIs(t, cancelled.Cancel(rejectedAt), order.ErrInvalidState)
	assert.True(t, cancelled.UpdatedAt().Equal(cancelledAt))
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(time.Now()))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should cancel confirmed order", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed)
		require.NoError(t, o.Cancel(time.Now()))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should refuse once preparing", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed, order.Preparing)

		require.ErrorIs(t, o.Cancel(time.Now()), order.ErrInvalidState)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("should refuse to cancel twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(time.Now()))
		require.ErrorIs(t, o.Cancel(time.Now()), order.ErrInvalidState)
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should reject skipping to delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Advance(order.Delivered, time.Now()), order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should walk the kitchen flow", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed, order.Preparing, order.Ready)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should not reach out for delivery without a worker", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed, order.Preparing, order.Ready)

		require.ErrorIs(t, o.Advance(order.OutForDelivery, time.Now()), order.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should reject moving backwards", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed)
		require.ErrorIs(t, o.Advance(order.Pending, time.Now()), order.ErrInvalidTransition)
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("should assign worker for every claimable status", func(t *testing.T) {
		paths := map[order.Status][]order.Status{
			order.Confirmed: {order.Confirmed},
			order.Preparing: {order.Confirmed, order.Preparing},
			order.Ready:     {order.Confirmed, order.Preparing, order.Ready},
		}
		for status, path := range paths {
			t.Run(status.String(), func(t *testing.T) {
				o := newTestOrder(t)
				advance(t, o, path...)
				w := kernel.NewUUID()

				require.NoError(t, o.Claim(w, time.Now()))
				assert.Equal(t, order.OutForDelivery, o.Status())
				require.NotNil(t, o.Worker())
				assert.True(t, o.IsAssignedTo(w))
			})
		}
	})

	t.Run("should refuse pending order", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Claim(kernel.NewUUID(), time.Now()), order.ErrNotClaimable)
		assert.Nil(t, o.Worker())
	})

	t.Run("should refuse second claim", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed)
		first := kernel.NewUUID()
		require.NoError(t, o.Claim(first, time.Now()))

		require.ErrorIs(t, o.Claim(kernel.NewUUID(), time.Now()), order.ErrNotClaimable)
		assert.True(t, o.IsAssignedTo(first))
	})

	t.Run("should refuse zero worker id", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed)
		require.ErrorIs(t, o.Claim(kernel.UUID{}, time.Now()), kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOrder_RecordDeliveryOutcome(t *testing.T) {
	claimed := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := newTestOrder(t)
		advance(t, o, order.Confirmed, order.Preparing, order.Ready)
		w := kernel.NewUUID()
		require.NoError(t, o.Claim(w, time.Now()))
		return o, w
	}

	t.Run("should mark delivered with notes", func(t *testing.T) {
		o, w := claimed(t)

		require.NoError(t, o.RecordDeliveryOutcome(w, order.Delivered, "  left at door ", time.Now()))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveryNotes())
		assert.Equal(t, "left at door", *o.DeliveryNotes())
		assert.True(t, o.IsAssignedTo(w))
	})

	t.Run("should mark failed without notes", func(t *testing.T) {
		o, w := claimed(t)

		require.NoError(t, o.RecordDeliveryOutcome(w, order.DeliveryFailed, "", time.Now()))
		assert.Equal(t, order.DeliveryFailed, o.Status())
		assert.Nil(t, o.DeliveryNotes())
	})

	t.Run("should refuse other workers", func(t *testing.T) {
		o, _ := claimed(t)
		require.ErrorIs(t, o.RecordDeliveryOutcome(kernel.NewUUID(), order.Delivered, "", time.Now()), order.ErrNotAssigned)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("should refuse statuses other than outcomes", func(t *testing.T) {
		o, w := claimed(t)
		require.ErrorIs(t, o.RecordDeliveryOutcome(w, order.Cancelled, "", time.Now()), order.ErrInvalidDeliveryOutcome)
	})

	t.Run("should refuse a second outcome", func(t *testing.T) {
		o, w := claimed(t)
		require.NoError(t, o.RecordDeliveryOutcome(w, order.Delivered, "", time.Now()))
		require.ErrorIs(t, o.RecordDeliveryOutcome(w, order.DeliveryFailed, "", time.Now()), order.ErrInvalidTransition)
	})

	t.Run("should refuse unassigned order", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.RecordDeliveryOutcome(kernel.NewUUID(), order.Delivered, "", time.Now()), order.ErrNotAssigned)
	})
}

func TestRestoreOrder(t *testing.T) {
	snapshot := func(t *testing.T) order.Snapshot {
		o := newTestOrder(t)
		return order.Snapshot{
			ID:           o.ID(),
			CustomerID:   o.CustomerID(),
			RestaurantID: o.RestaurantID(),
			Items:        o.Items(),
			Total:        o.Total(),
			Contact:      o.Contact(),
			Status:       order.Ready,
			PlacedAt:     o.PlacedAt(),
			UpdatedAt:    o.UpdatedAt(),
		}
	}

	t.Run("should restore valid snapshot", func(t *testing.T) {
		s := snapshot(t)
		o, err := order.RestoreOrder(s)
		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
		assert.True(t, o.ID().IsEqual(s.ID))
		require.NoError(t, o.Validate())
	})

	t.Run("should reject worker on unclaimed status", func(t *testing.T) {
		s := snapshot(t)
		w := kernel.NewUUID()
		s.WorkerID = &w
		_, err := order.RestoreOrder(s)
		require.Error(t, err)
	})

	t.Run("should reject out for delivery without worker", func(t *testing.T) {
		s := snapshot(t)
		s.Status = order.OutForDelivery
		_, err := order.RestoreOrder(s)
		require.Error(t, err)
	})

	t.Run("should reject total mismatch", func(t *testing.T) {
		s := snapshot(t)
		s.Total = kernel.MustMoney("1.00")
		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		s := snapshot(t)
		s.Status = "LOST"
		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
