package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Confirmed,
		order.Preparing,
		order.Ready,
		order.OutForDelivery,
		order.Delivered,
		order.Cancelled,
		order.DeliveryFailed,
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every known status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, raw := range []string{"", "pending", "SHIPPED", "READY "} {
			_, err := order.ParseStatus(raw)
			require.Error(t, err, raw)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:        {order.Confirmed, order.Cancelled},
		order.Confirmed:      {order.Preparing, order.Cancelled},
		order.Preparing:      {order.Ready, order.Cancelled},
		order.Ready:          {order.OutForDelivery},
		order.OutForDelivery: {order.Delivered, order.DeliveryFailed},
		order.Delivered:      {},
		order.Cancelled:      {},
		order.DeliveryFailed: {},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				want := false
				for _, s := range allowed[from] {
					if s == to {
						want = true
					}
				}

				assert.Equal(t, want, from.CanTransitionTo(to))

				next, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, next)
				} else {
					require.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			})
		}
	}
}

func TestStatus_NoBackwardEdges(t *testing.T) {
	rank := map[order.Status]int{}
	for i, s := range allStatuses() {
		rank[s] = i
	}

	for _, from := range allStatuses() {
		for _, to := range from.Successors() {
			assert.Greater(t, rank[to], rank[from], "%s -> %s moves backwards", from, to)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.DeliveryFailed.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
}

func TestStatus_Predicates(t *testing.T) {
	t.Run("claimable", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]order.Status{order.Confirmed, order.Preparing, order.Ready},
			order.ClaimableStatuses())
		assert.False(t, order.Pending.IsClaimable())
		assert.False(t, order.OutForDelivery.IsClaimable())
	})

	t.Run("cancellable", func(t *testing.T) {
		assert.True(t, order.Pending.IsCancellable())
		assert.True(t, order.Confirmed.IsCancellable())
		assert.False(t, order.Preparing.IsCancellable())
	})

	t.Run("delivery outcomes", func(t *testing.T) {
		assert.True(t, order.Delivered.IsDeliveryOutcome())
		assert.True(t, order.DeliveryFailed.IsDeliveryOutcome())
		assert.False(t, order.OutForDelivery.IsDeliveryOutcome())
	})
}

func TestStatus_ValidateCanHaveWorker(t *testing.T) {
	for _, s := range allStatuses() {
		if s.RequiresWorker() {
			require.NoError(t, s.ValidateCanHaveWorker(true), s)
			require.Error(t, s.ValidateCanHaveWorker(false), s)
		} else {
			require.NoError(t, s.ValidateCanHaveWorker(false), s)
			require.Error(t, s.ValidateCanHaveWorker(true), s)
		}
	}
}
