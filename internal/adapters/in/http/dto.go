package http

import (
	"time"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of a PlaceOrderRequest. Price accepts a JSON number or string.
type OrderItemRequest struct {
	MenuItemID string          `json:"menu_item_id" validate:"required,uuid"`
	Name       string          `json:"name" validate:"max=255"`
	Quantity   int             `json:"quantity" validate:"required,min=1"`
	Price      decimal.Decimal `json:"price"`
}

// PlaceOrderRequest is the body of POST /orders and POST /orders/guest.
type PlaceOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id" validate:"required,uuid"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName    string             `json:"customer_name" validate:"required,max=255"`
	CustomerPhone   string             `json:"customer_phone" validate:"required,max=64"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	DeliveryCity    string             `json:"delivery_city" validate:"max=255"`
}

// UpdateStatusRequest is the body of both status endpoints. Notes are ignored by the admin one.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// SignupRequest is the body of POST /delivery/signup.
type SignupRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,max=64"`
	VehicleType   string `json:"vehicle_type" validate:"required,max=64"`
	LicenseNumber string `json:"license_number" validate:"required,max=128"`
}

// SuspendRequest is the optional body of the suspend endpoint.
type SuspendRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

func (r PlaceOrderRequest) toDomain() (fulfillment.PlaceOrderRequest, error) {
	restaurantID, err := kernel.UUIDFromString(r.RestaurantID)
	if err != nil {
		return fulfillment.PlaceOrderRequest{}, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err)
	}

	lines := make([]commands.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return fulfillment.PlaceOrderRequest{}, errs.NewValueIsInvalidErrorWithCause("menu_item_id", idErr)
		}
		price, priceErr := kernel.NewMoney(item.Price)
		if priceErr != nil {
			return fulfillment.PlaceOrderRequest{}, priceErr
		}
		lines = append(lines, commands.OrderLine{
			MenuItemID: menuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      price,
		})
	}

	return fulfillment.PlaceOrderRequest{
		RestaurantID: restaurantID,
		Items:        lines,
		Delivery: commands.DeliveryInfo{
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Address: r.DeliveryAddress,
			City:    r.DeliveryCity,
		},
	}, nil
}

func (r SignupRequest) toProfile() worker.Profile {
	return worker.Profile{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		VehicleType:   r.VehicleType,
		LicenseNumber: r.LicenseNumber,
	}
}

// OrderItemResponse is one line of an OrderResponse.
type OrderItemResponse struct {
	MenuItemID kernel.UUID  `json:"menu_item_id"`
	Name       string       `json:"name,omitempty"`
	Quantity   int          `json:"quantity"`
	Price      kernel.Money `json:"price"`
	Subtotal   kernel.Money `json:"subtotal"`
}

// OrderResponse is the JSON form of an order.
type OrderResponse struct {
	ID              kernel.UUID         `json:"id"`
	CustomerID      *kernel.UUID        `json:"customer_id"`
	RestaurantID    kernel.UUID         `json:"restaurant_id"`
	Items           []OrderItemResponse `json:"items"`
	Total           kernel.Money        `json:"total"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryCity    string              `json:"delivery_city,omitempty"`
	Status          string              `json:"status"`
	WorkerID        *kernel.UUID        `json:"delivery_worker_id"`
	DeliveryNotes   *string             `json:"delivery_notes"`
	PlacedAt        time.Time           `json:"placed_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func newOrderResponse(v queries.OrderView) OrderResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Subtotal:   item.Subtotal,
		})
	}

	return OrderResponse{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		RestaurantID:    v.RestaurantID,
		Items:           items,
		Total:           v.Total,
		CustomerName:    v.CustomerName,
		CustomerPhone:   v.CustomerPhone,
		DeliveryAddress: v.DeliveryAddress,
		DeliveryCity:    v.DeliveryCity,
		Status:          v.Status.String(),
		WorkerID:        v.WorkerID,
		DeliveryNotes:   v.DeliveryNotes,
		PlacedAt:        v.PlacedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func newOrderResponses(views []queries.OrderView) []OrderResponse {
	out := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newOrderResponse(v))
	}
	return out
}

// WorkerResponse is the JSON form of a delivery worker.
type WorkerResponse struct {
	ID               kernel.UUID `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	VehicleType      string      `json:"vehicle_type"`
	LicenseNumber    string      `json:"license_number"`
	Status           string      `json:"status"`
	SuspensionReason *string     `json:"suspension_reason,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

func newWorkerResponse(v queries.WorkerView) WorkerResponse {
	return WorkerResponse{
		ID:               v.ID,
		Name:             v.Name,
		Email:            v.Email,
		Phone:            v.Phone,
		VehicleType:      v.VehicleType,
		LicenseNumber:    v.LicenseNumber,
		Status:           v.Status.String(),
		SuspensionReason: v.SuspensionReason,
		CreatedAt:        v.CreatedAt,
	}
}

// StatsResponse is the body of GET /delivery/stats.
type StatsResponse struct {
	TotalDeliveries int          `json:"total_deliveries"`
	TodayDeliveries int          `json:"today_deliveries"`
	ActiveOrders    int          `json:"active_orders"`
	TotalEarnings   kernel.Money `json:"total_earnings"`
}
