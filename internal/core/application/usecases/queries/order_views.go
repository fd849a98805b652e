// Package queries contains read operations for retrieving system state.
// Queries read straight from the tables with SQL and return read models, bypassing the
// aggregates and the unit of work.
package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView is one line of an order as it was placed.
type OrderItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Price      kernel.Money
	Subtotal   kernel.Money
}

// OrderView is the read model of an order shared by every order query.
type OrderView struct {
	ID              kernel.UUID
	CustomerID      *kernel.UUID
	RestaurantID    kernel.UUID
	Items           []OrderItemView
	Total           kernel.Money
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryCity    string
	Status          order.Status
	WorkerID        *kernel.UUID
	DeliveryNotes   *string
	PlacedAt        time.Time
	UpdatedAt       time.Time
}

// NewOrderView renders an aggregate returned by a command with the same shape queries return.
func NewOrderView(o *order.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemView{
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.Price(),
			Subtotal:   item.Subtotal(),
		})
	}

	contact := o.Contact()
	return OrderView{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		RestaurantID:    o.RestaurantID(),
		Items:           items,
		Total:           o.Total(),
		CustomerName:    contact.Name(),
		CustomerPhone:   contact.Phone(),
		DeliveryAddress: contact.Address(),
		DeliveryCity:    contact.City(),
		Status:          o.Status(),
		WorkerID:        o.Worker(),
		DeliveryNotes:   o.DeliveryNotes(),
		PlacedAt:        o.PlacedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

type orderRow struct {
	ID              uuid.UUID
	CustomerID      *uuid.UUID
	RestaurantID    uuid.UUID
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryCity    string
	Status          string
	WorkerID        *uuid.UUID
	DeliveryNotes   *string
	Total           decimal.Decimal
	PlacedAt        time.Time
	UpdatedAt       time.Time
}

type itemRow struct {
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	Price      decimal.Decimal
}

const orderColumns = `
	id,
	customer_id,
	restaurant_id,
	customer_name,
	customer_phone,
	delivery_address,
	delivery_city,
	status,
	worker_id,
	delivery_notes,
	total,
	placed_at,
	updated_at`

// loadOrders runs an orders SELECT built from orderColumns and attaches the items of every
// returned order with one extra query. Row order is preserved.
func loadOrders(ctx context.Context, db *gorm.DB, sql string, values ...any) ([]OrderView, error) {
	var rows []orderRow
	if err := db.WithContext(ctx).Raw(sql, values...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var items []itemRow
	if err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			quantity,
			price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&items).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]OrderItemView, len(rows))
	for _, item := range items {
		view, err := toItemView(item)
		if err != nil {
			return nil, err
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], view)
	}

	for _, row := range rows {
		view, err := toOrderView(row, byOrder[row.ID])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func toOrderView(row orderRow, items []OrderItemView) (OrderView, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return OrderView{}, err
	}
	restaurantID, err := kernel.UUIDFromGoogle(row.RestaurantID)
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := optionalID(row.CustomerID)
	if err != nil {
		return OrderView{}, err
	}
	workerID, err := optionalID(row.WorkerID)
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return OrderView{}, err
	}
	total, err := kernel.NewMoney(row.Total)
	if err != nil {
		return OrderView{}, err
	}
	if items == nil {
		items = make([]OrderItemView, 0)
	}

	return OrderView{
		ID:              id,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		Items:           items,
		Total:           total,
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		DeliveryAddress: row.DeliveryAddress,
		DeliveryCity:    row.DeliveryCity,
		Status:          status,
		WorkerID:        workerID,
		DeliveryNotes:   row.DeliveryNotes,
		PlacedAt:        row.PlacedAt.UTC(),
		UpdatedAt:       row.UpdatedAt.UTC(),
	}, nil
}

func toItemView(row itemRow) (OrderItemView, error) {
	menuItemID, err := kernel.UUIDFromGoogle(row.MenuItemID)
	if err != nil {
		return OrderItemView{}, err
	}
	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return OrderItemView{}, err
	}

	return OrderItemView{
		MenuItemID: menuItemID,
		Name:       row.Name,
		Quantity:   row.Quantity,
		Price:      price,
		Subtotal:   price.Times(row.Quantity),
	}, nil
}

func optionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	out, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
