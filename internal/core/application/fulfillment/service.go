// Package fulfillment is the application facade used by the inbound adapters. Every operation
// takes the calling Principal, checks role, ownership and worker approval, and then delegates to
// one command or query handler.
package fulfillment

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Handlers are the use cases the service delegates to.
type Handlers struct {
	PlaceOrder           commands.PlaceOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	AdvanceOrderStatus   commands.AdvanceOrderStatusCommandHandler
	DeleteOrder          commands.DeleteOrderCommandHandler
	ClaimOrder           commands.ClaimOrderCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	RegisterWorker       commands.RegisterWorkerCommandHandler
	WorkerApproval       commands.WorkerApprovalHandler

	GetOrder            queries.GetOrderQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
	ListClaimableOrders queries.ListClaimableOrdersQueryHandler
	ListWorkerOrders    queries.ListWorkerOrdersQueryHandler
	GetWorkerStats      queries.GetWorkerStatsQueryHandler
	Workers             queries.WorkersQueryHandler
}

// Service is the use-case facade used by the HTTP adapter. It checks the caller's role and
// turns requests into commands and queries.
type Service struct {
	h   Handlers
	now func() time.Time
}

// NewService wires the handlers and uses the wall clock for worker stats.
func NewService(h Handlers) *Service {
	return &Service{h: h, now: time.Now}
}

// PlaceOrderRequest is what a customer or guest submits.
type PlaceOrderRequest struct {
	RestaurantID kernel.UUID
	Items        []commands.OrderLine
	Delivery     commands.DeliveryInfo
}

// PlaceOrder places an order for the caller, or a guest order when principal is nil.
func (s *Service) PlaceOrder(ctx context.Context, principal *Principal, req PlaceOrderRequest) (queries.OrderView, error) {
	var customerID *kernel.UUID
	if principal != nil {
		id := principal.ID
		customerID = &id
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customerID, req.RestaurantID, req.Delivery, req.Items)
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := s.h.PlaceOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}
	return queries.NewOrderView(o), nil
}

// GetOrder returns the order with its items. Any caller may read an order by id.
func (s *Service) GetOrder(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.OrderView{}, err
	}
	return s.h.GetOrder.Handle(ctx, query)
}

// ListOrders returns every order to admins and the caller's own orders to everybody else.
func (s *Service) ListOrders(ctx context.Context, principal *Principal) ([]queries.OrderView, error) {
	if err := requireRole(principal, RoleCustomer, RoleAdmin, RoleDelivery); err != nil {
		return nil, err
	}

	if principal.IsAdmin() {
		return s.h.ListOrders.Handle(ctx, queries.NewListAllOrdersQuery())
	}

	query, err := queries.NewListOrdersQuery(principal.ID)
	if err != nil {
		return nil, err
	}
	return s.h.ListOrders.Handle(ctx, query)
}

// CancelOrder is allowed to the order's owner and to admins.
func (s *Service) CancelOrder(ctx context.Context, principal *Principal, orderID kernel.UUID) (queries.OrderView, error) {
	if err := requireRole(principal, RoleCustomer, RoleAdmin, RoleDelivery); err != nil {
		return queries.OrderView{}, err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.ID, principal.IsAdmin())
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := s.h.CancelOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}
	return queries.NewOrderView(o), nil
}

// AdvanceStatus is the administrative status write. It is restricted to admins.
func (s *Service) AdvanceStatus(
	ctx context.Context,
	principal *Principal,
	orderID kernel.UUID,
	status order.Status,
) (queries.OrderView, error) {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return queries.OrderView{}, err
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, status)
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := s.h.AdvanceOrderStatus.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}
	return queries.NewOrderView(o), nil
}

// DeleteOrder hard-deletes an order. It is restricted to admins.
func (s *Service) DeleteOrder(ctx context.Context, principal *Principal, orderID kernel.UUID) error {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}
	return s.h.DeleteOrder.Handle(ctx, cmd)
}
