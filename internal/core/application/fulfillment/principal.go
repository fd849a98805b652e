package fulfillment

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrUnauthenticated is returned when an operation that needs a caller gets none.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the caller's role or ownership does not allow the operation.
	ErrForbidden = commands.ErrForbidden
)

// Role is the kind of account behind a Principal.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleDelivery Role = "delivery"
)

// ParseRole accepts the lower-case role names carried in tokens.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleCustomer, RoleAdmin, RoleDelivery:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated caller. For delivery workers ID is also the worker id.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

// IsAdmin is false for a nil principal.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func requireRole(p *Principal, roles ...Role) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if err := p.ID.Validate(); err != nil {
		return ErrUnauthenticated
	}
	if !slices.Contains(roles, p.Role) {
		return fmt.Errorf("%w: role %q may not perform this operation", ErrForbidden, p.Role)
	}
	return nil
}
