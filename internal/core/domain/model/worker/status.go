package worker

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidState is returned when an approval action does not apply to the worker's current status.
var ErrInvalidState = errors.New("operation not allowed in current worker status")

// Status is the approval state of a delivery worker, persisted as the lower-case string.
type Status string

const (
	Pending   Status = "pending"
	Active    Status = "active"
	Suspended Status = "suspended"
)

// ParseStatus accepts the stored lower-case status names.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects anything but pending, active and suspended.
func (s Status) Validate() error {
	switch s {
	case Pending, Active, Suspended:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("worker status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

// String returns the stored status name.
func (s Status) String() string {
	return string(s)
}
