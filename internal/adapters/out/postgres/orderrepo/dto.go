// Package orderrepo persists order aggregates with gorm. An order is stored as one row in
// "orders" plus one row per line item in "order_items".
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" row. Status holds the upper-case status name.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerName    string          `gorm:"type:varchar(255);not null"`
	CustomerPhone   string          `gorm:"type:varchar(64);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	DeliveryCity    string          `gorm:"type:varchar(255)"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	WorkerID        *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryNotes   *string         `gorm:"type:text"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PlacedAt        time.Time       `gorm:"not null;index"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items           []OrderItemDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the gorm default.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one "order_items" row. Position keeps the order in which items were placed.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255)"`
	Quantity   int             `gorm:"type:int;not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName overrides the gorm default.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.Price().Decimal(),
		})
	}

	contact := o.Contact()
	return OrderDTO{
		ID:              orderID,
		CustomerID:      optionalID(o.CustomerID()),
		RestaurantID:    o.RestaurantID().Bytes(),
		CustomerName:    contact.Name(),
		CustomerPhone:   contact.Phone(),
		DeliveryAddress: contact.Address(),
		DeliveryCity:    contact.City(),
		Status:          o.Status().String(),
		WorkerID:        optionalID(o.Worker()),
		DeliveryNotes:   o.DeliveryNotes(),
		Total:           o.Total().Decimal(),
		PlacedAt:        o.PlacedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromGoogle(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	customerID, err := restoreOptionalID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	workerID, err := restoreOptionalID(dto.WorkerID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	contact, err := order.NewContact(dto.CustomerName, dto.CustomerPhone, dto.DeliveryAddress, dto.DeliveryCity)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		Items:         items,
		Total:         total,
		Contact:       contact,
		Status:        status,
		WorkerID:      workerID,
		DeliveryNotes: dto.DeliveryNotes,
		PlacedAt:      dto.PlacedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromGoogle(dto.MenuItemID)
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(menuItemID, dto.Name, dto.Quantity, price)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
