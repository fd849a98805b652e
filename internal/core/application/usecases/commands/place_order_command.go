package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrPlaceOrderCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine is one requested menu item with the price the customer saw.
type OrderLine struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Price      kernel.Money
}

// DeliveryInfo is the free-form contact data of the customer.
type DeliveryInfo struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// PlaceOrderCommand represents a request to place an order. CustomerID is nil for guests.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), &customerID, restaurantID, info, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   *kernel.UUID
	restaurantID kernel.UUID
	contact      order.Contact
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates every line and the delivery info up front, so an invalid
// request never reaches storage.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID *kernel.UUID,
	restaurantID kernel.UUID,
	info DeliveryInfo,
	lines []OrderLine,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setContact(info),
		cmd.setItems(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the id generated for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owner, or nil for a guest order.
func (c PlaceOrderCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant the order is placed with.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Contact returns the delivery contact.
func (c PlaceOrderCommand) Contact() order.Contact {
	return c.contact
}

// Items returns the line items in the order they were submitted.
func (c PlaceOrderCommand) Items() []order.Item {
	return c.items
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return fmt.Errorf("restaurant: %w", err)
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *PlaceOrderCommand) setContact(info DeliveryInfo) error {
	contact, err := order.NewContact(info.Name, info.Phone, info.Address, info.City)
	if err != nil {
		return err
	}
	c.contact = contact
	return nil
}

func (c *PlaceOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return order.ErrItemsAreRequired
	}

	items := make([]order.Item, 0, len(lines))
	var errList []error
	for i, line := range lines {
		item, err := order.NewItem(line.MenuItemID, line.Name, line.Quantity, line.Price)
		if err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}
