package order

import (
	"errors"
	"math"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when an Item was declared instead of built by NewItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	// ErrPriceIsInvalid is returned for a unit price that is zero or negative.
	ErrPriceIsInvalid = errs.NewValueIsInvalidError("price must be greater than 0")
)

// Item is one order line: a menu item, how many of it, and the unit price
// captured when the order was placed.
type Item struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	price      kernel.Money
	guard      guard.ConstructorGuard
}

// NewItem validates quantity >= 1 and price > 0. Name is an optional display label.
func NewItem(menuItemID kernel.UUID, name string, quantity int, price kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}
	item.name = strings.TrimSpace(name)

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
// Price is the unit price.
func (i Item) Price() kernel.Money { return i.price }

// Subtotal is price x quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menu item", err)
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return ErrPriceIsInvalid
	}
	i.price = price
	return nil
}
