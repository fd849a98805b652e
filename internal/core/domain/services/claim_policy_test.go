package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOrder(t *testing.T, steps ...order.Status) *order.Order {
	t.Helper()
	contact, err := order.NewContact("Ann", "555", "1 Elm", "")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "soup", 1, kernel.MustMoney("7.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), nil, kernel.NewUUID(), contact, []order.Item{item}, time.Now())
	require.NoError(t, err)
	for _, s := range steps {
		require.NoError(t, o.Advance(s, time.Now()))
	}
	return o
}

func createWorker(t *testing.T, active bool) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{
		Name:          "Rider",
		Email:         "rider@example.com",
		Phone:         "555",
		VehicleType:   "scooter",
		LicenseNumber: kernel.NewUUID().String(),
	}, time.Now())
	require.NoError(t, err)
	if active {
		require.NoError(t, w.Approve())
	}
	return w
}

func TestClaimPolicy_Claim(t *testing.T) {
	policy := services.NewClaimPolicy()

	t.Run("should assign active worker to ready order", func(t *testing.T) {
		o := createOrder(t, order.Confirmed, order.Preparing, order.Ready)
		w := createWorker(t, true)

		require.NoError(t, policy.Claim(w, o, time.Now()))
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.True(t, o.IsAssignedTo(w.ID()))
	})

	t.Run("should reject pending worker", func(t *testing.T) {
		o := createOrder(t, order.Confirmed)

		err := policy.Claim(createWorker(t, false), o, time.Now())
		require.ErrorIs(t, err, services.ErrWorkerNotActive)
		assert.Nil(t, o.Worker())
	})

	t.Run("should reject suspended worker", func(t *testing.T) {
		w := createWorker(t, true)
		require.NoError(t, w.Suspend("no-show"))

		err := policy.Claim(w, createOrder(t, order.Confirmed), time.Now())
		require.ErrorIs(t, err, services.ErrWorkerNotActive)
	})

	t.Run("should report unavailable for pending order", func(t *testing.T) {
		err := policy.Claim(createWorker(t, true), createOrder(t), time.Now())
		require.ErrorIs(t, err, services.ErrOrderUnavailable)
		assert.NotErrorIs(t, err, services.ErrAlreadyClaimed)
	})

	t.Run("should report already claimed for assigned order", func(t *testing.T) {
		o := createOrder(t, order.Confirmed)
		require.NoError(t, policy.Claim(createWorker(t, true), o, time.Now()))

		err := policy.Claim(createWorker(t, true), o, time.Now())
		require.ErrorIs(t, err, services.ErrAlreadyClaimed)
		require.ErrorIs(t, err, services.ErrOrderUnavailable)
	})

	t.Run("should validate aggregates", func(t *testing.T) {
		require.ErrorIs(t, policy.Claim(nil, createOrder(t), time.Now()), worker.ErrWorkerIsNotConstructed)
		require.ErrorIs(t, policy.Claim(createWorker(t, true), nil, time.Now()), order.ErrOrderIsNotConstructed)
	})
}

func TestClaimPolicy_Classify(t *testing.T) {
	policy := services.NewClaimPolicy()

	t.Run("assigned order lost the race", func(t *testing.T) {
		o := createOrder(t, order.Confirmed)
		require.NoError(t, o.Claim(kernel.NewUUID(), time.Now()))
		require.ErrorIs(t, policy.Classify(o), services.ErrAlreadyClaimed)
	})

	t.Run("cancelled order is unavailable", func(t *testing.T) {
		o := createOrder(t)
		require.NoError(t, o.Cancel(time.Now()))
		err := policy.Classify(o)
		require.ErrorIs(t, err, services.ErrOrderUnavailable)
		assert.NotErrorIs(t, err, services.ErrAlreadyClaimed)
	})

	t.Run("deleted order is unavailable", func(t *testing.T) {
		err := policy.Classify(nil)
		require.ErrorIs(t, err, services.ErrOrderUnavailable)
		assert.NotErrorIs(t, err, services.ErrAlreadyClaimed)
	})
}

func TestClaimPolicy_ClassifyWorker(t *testing.T) {
	policy := services.NewClaimPolicy()

	require.NoError(t, policy.ClassifyWorker(createWorker(t, true)))
	require.ErrorIs(t, policy.ClassifyWorker(createWorker(t, false)), services.ErrWorkerNotActive)
	require.ErrorIs(t, policy.ClassifyWorker(nil), services.ErrWorkerNotActive)
}
