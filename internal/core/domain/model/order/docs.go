// Package order implements the order aggregate and the status state machine that
// governs it.
//
// The package includes:
//   - Status: the closed set of order statuses and the allowed-successor table
//   - Order: the aggregate root holding line items, total, contact data and the
//     assigned delivery worker
//   - Item and Contact: value objects captured when the order is placed
//
// Key business rules:
//   - The total always equals the sum of price x quantity of the items, which never
//     change after placement
//   - Status only moves along the successor table; terminal statuses have no successors
//   - Only PENDING and CONFIRMED orders can be cancelled
//   - A delivery worker is assigned if and only if the status is OUT_FOR_DELIVERY,
//     DELIVERED or DELIVERY_FAILED, and the assignment happens through Claim
//
// The aggregate validates transitions in memory; persistence adapters apply the same
// transition as a conditional write against the status that was read, so concurrent
// writers cannot both win.
package order
