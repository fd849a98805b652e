package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler, the service and the adapters from one
// Config and one database handle. Each Create call returns a fresh value.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

// NewCompositionRoot binds the unit of work factory to gormDB.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workerUoWFactory() commands.WorkerUoWFactory {
	return FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
}

// CreateClaimOrderCommandHandler needs both repositories in one transaction.
func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f)
}

// CreateRelayOutboxCommandHandler returns a relay that publishes through publisher.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.MessagePublisher) commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, publisher)
}

// CreateFulfillmentService wires all command and query handlers into the use-case facade.
func (c *CompositionRoot) CreateFulfillmentService() *fulfillment.Service {
	return fulfillment.NewService(fulfillment.Handlers{
		PlaceOrder:           commands.NewPlaceOrderCommandHandler(c.orderUoWFactory()),
		CancelOrder:          commands.NewCancelOrderCommandHandler(c.orderUoWFactory()),
		AdvanceOrderStatus:   commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory()),
		DeleteOrder:          commands.NewDeleteOrderCommandHandler(c.orderUoWFactory()),
		ClaimOrder:           c.CreateClaimOrderCommandHandler(),
		UpdateDeliveryStatus: commands.NewUpdateDeliveryStatusCommandHandler(c.orderUoWFactory()),
		RegisterWorker:       commands.NewRegisterWorkerCommandHandler(c.workerUoWFactory()),
		WorkerApproval:       commands.NewWorkerApprovalHandler(c.workerUoWFactory()),

		GetOrder:            queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:          queries.NewListOrdersQueryHandler(c.gormDB),
		ListClaimableOrders: queries.NewListClaimableOrdersQueryHandler(c.gormDB),
		ListWorkerOrders:    queries.NewListWorkerOrdersQueryHandler(c.gormDB),
		GetWorkerStats:      queries.NewGetWorkerStatsQueryHandler(c.gormDB, c.config.EarningsRate),
		Workers:             queries.NewWorkersQueryHandler(c.gormDB),
	})
}

// CreateHTTPServer returns the echo router serving the JSON API.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server, err := httpin.NewServer(c.CreateFulfillmentService(), c.logger)
	if err != nil {
		return nil, err
	}
	return httpin.NewRouter(server, []byte(c.config.JWTSecret)), nil
}

// CreateJobManager wires the outbox relay to publisher.
func (c *CompositionRoot) CreateJobManager(publisher ports.MessagePublisher) (*jobs.JobManager, error) {
	cmd, err := commands.NewRelayOutboxCommand(c.config.OutboxBatchSize)
	if err != nil {
		return nil, err
	}

	handler := c.CreateRelayOutboxCommandHandler(publisher)
	relay := jobs.NewOutboxRelayJob(&handler, cmd, c.config.OutboxRelaySchedule, c.logger).
		WithBatchTimeout(c.config.OutboxRelayTimeout)
	return jobs.NewJobManager(relay), nil
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncWorkerUoWFactory adapts a function to commands.WorkerUoWFactory.
type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

// FuncOutboxUoWFactory adapts a function to commands.OutboxUoWFactory.
type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
