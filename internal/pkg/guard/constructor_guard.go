// Package guard detects values that were declared as zero values instead of being
// built through their constructor.
//
// Commands, queries and aggregates embed a ConstructorGuard and call Validate before
// use, so a handler never acts on a half-initialised input:
//
//	cmd := commands.ClaimOrderCommand{} // zero value
//	err := cmd.Validate()               // ErrClaimOrderCommandIsNotConstructed
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner went through a constructor.
// The zero value is "not constructed".
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes Validate.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
