package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/dbtest"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// store seeds orders and workers through the real repositories.
type store struct {
	t       *testing.T
	db      *gorm.DB
	orders  *orderrepo.GormOrderRepository
	workers *workerrepo.GormWorkerRepository
}

func newStore(t *testing.T) *store {
	db := dbtest.OpenSQLite(t)
	return &store{
		t:       t,
		db:      db,
		orders:  orderrepo.NewGormOrderRepository(db, noopTracker{}),
		workers: workerrepo.NewGormWorkerRepository(db, noopTracker{}),
	}
}

func (s *store) order(customer *kernel.UUID, placedAt time.Time, steps ...order.Status) *order.Order {
	s.t.Helper()
	contact, err := order.NewContact("Ann", "555-0100", "1 Elm St", "Springfield")
	require.NoError(s.t, err)
	first, err := order.NewItem(kernel.NewUUID(), "Margherita", 2, kernel.MustMoney("10.00"))
	require.NoError(s.t, err)
	second, err := order.NewItem(kernel.NewUUID(), "Lemonade", 1, kernel.MustMoney("5.50"))
	require.NoError(s.t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customer, kernel.NewUUID(), contact,
		[]order.Item{first, second}, placedAt)
	require.NoError(s.t, err)
	for _, next := range steps {
		require.NoError(s.t, o.Advance(next, time.Now()))
	}
	require.NoError(s.t, s.orders.Add(context.Background(), o))
	return o
}

// claim assigns o to w and optionally records a delivery outcome.
func (s *store) claim(o *order.Order, w kernel.UUID, outcome ...order.Status) {
	s.t.Helper()
	require.NoError(s.t, o.Claim(w, time.Now()))
	claimed, err := s.orders.Claim(context.Background(), o)
	require.NoError(s.t, err)
	require.True(s.t, claimed)

	for _, next := range outcome {
		prev := o.Status()
		require.NoError(s.t, o.RecordDeliveryOutcome(w, next, "", time.Now()))
		updated, updateErr := s.orders.UpdateStatus(context.Background(), o, prev)
		require.NoError(s.t, updateErr)
		require.True(s.t, updated)
	}
}

func (s *store) worker(license string, status worker.Status) *worker.Worker {
	s.t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), worker.Profile{
		Name:          "Rider " + license,
		Email:         "rider@example.com",
		Phone:         "555-0101",
		VehicleType:   "bike",
		LicenseNumber: license,
	}, time.Now())
	require.NoError(s.t, err)
	switch status {
	case worker.Active:
		require.NoError(s.t, w.Approve())
	case worker.Suspended:
		require.NoError(s.t, w.Approve())
		require.NoError(s.t, w.Suspend("complaints"))
	}
	require.NoError(s.t, s.workers.Add(context.Background(), w))
	return w
}

func orderIDs(views []queries.OrderView) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}
