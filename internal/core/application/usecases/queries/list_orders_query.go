package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"gorm.io/gorm"
)

// ErrListOrdersQueryIsNotConstructed is returned by Validate on a zero-value query.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery or NewListAllOrdersQuery constructor",
)

// ListOrdersQuery lists orders newest first, either for one customer or for everybody.
type ListOrdersQuery struct {
	customerID *kernel.UUID
	guard      guard.ConstructorGuard
}

// NewListOrdersQuery lists the orders placed by customerID.
func NewListOrdersQuery(customerID kernel.UUID) (ListOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{customerID: &customerID, guard: guard.NewConstructorGuard()}, nil
}

// NewListAllOrdersQuery lists every order, guest orders included.
func NewListAllOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

// CustomerID returns the owner filter, or nil for every order.
func (q ListOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryHandler lists orders newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler reads from db outside any unit of work.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle loads the orders and then their items with a second query.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if customerID := query.CustomerID(); customerID != nil {
		return loadOrders(ctx, h.db, `
			SELECT `+orderColumns+`
			FROM orders
			WHERE customer_id = ?
			ORDER BY placed_at DESC, id
		`, customerID.Bytes())
	}

	return loadOrders(ctx, h.db, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY placed_at DESC, id
	`)
}
