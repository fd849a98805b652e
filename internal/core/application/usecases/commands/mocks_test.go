package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*worker.Worker)
	return w, args.Error(1)
}

func (m *MockWorkerRepository) GetByLicenseNumber(ctx context.Context, license string) (*worker.Worker, error) {
	args := m.Called(ctx, license)
	w, _ := args.Get(0).(*worker.Worker)
	return w, args.Error(1)
}

func (m *MockWorkerRepository) UpdateStatus(ctx context.Context, w *worker.Worker, expected worker.Status) (bool, error) {
	args := m.Called(ctx, w, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkerRepository) DeletePending(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, e events.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]events.Event, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]events.Event)
	return list, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockUoW satisfies OrderUoW, WorkerUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorkerUoWFactory struct{ mock.Mock }

func (m *MockWorkerUoWFactory) Create() commands.WorkerUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkerUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// fixture wires one MockUoW with all repositories and every factory flavour.
type fixture struct {
	orders  *MockOrderRepository
	workers *MockWorkerRepository
	outbox  *MockOutboxRepository
	uow     *MockUoW

	orderFactory  *MockOrderUoWFactory
	workerFactory *MockWorkerUoWFactory
	factory       *MockUoWFactory
}

func newFixture() *fixture {
	f := &fixture{
		orders:        new(MockOrderRepository),
		workers:       new(MockWorkerRepository),
		outbox:        new(MockOutboxRepository),
		uow:           new(MockUoW),
		orderFactory:  new(MockOrderUoWFactory),
		workerFactory: new(MockWorkerUoWFactory),
		factory:       new(MockUoWFactory),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("WorkerRepository").Return(f.workers).Maybe()
	f.uow.On("OutboxRepository").Return(f.outbox).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.orderFactory.On("Create").Return(f.uow).Maybe()
	f.workerFactory.On("Create").Return(f.uow).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *fixture) begins() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
}

func (f *fixture) commits() {
	f.outbox.On("Add", mock.Anything, mock.AnythingOfType("events.Event")).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *fixture) assert(t mock.TestingT) {
	f.orders.AssertExpectations(t)
	f.workers.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func newOrder(steps ...order.Status) *order.Order {
	contact, err := order.NewContact("Ann", "555", "1 Elm", "")
	if err != nil {
		panic(err)
	}
	items := []order.Item{
		mustItem("10.00", 2),
		mustItem("5.50", 1),
	}
	customer := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), &customer, kernel.NewUUID(), contact, items, time.Now())
	if err != nil {
		panic(err)
	}
	for _, s := range steps {
		if err = o.Advance(s, time.Now()); err != nil {
			panic(err)
		}
	}
	return o
}

func mustItem(price string, quantity int) order.Item {
	item, err := order.NewItem(kernel.NewUUID(), "dish", quantity, kernel.MustMoney(price))
	if err != nil {
		panic(err)
	}
	return item
}

func newWorker(status worker.Status) *worker.Worker {
	w, err := worker.RestoreWorker(kernel.NewUUID(), worker.Profile{
		Name:          "Rider",
		Email:         "rider@example.com",
		Phone:         "555",
		VehicleType:   "bike",
		LicenseNumber: "LIC-" + kernel.NewUUID().String(),
	}, status, nil, time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return w
}
