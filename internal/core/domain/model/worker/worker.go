package worker

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired         = errs.NewValueIsRequiredError("phone")
	ErrVehicleTypeIsRequired   = errs.NewValueIsRequiredError("vehicle type")
	ErrLicenseNumberIsRequired = errs.NewValueIsRequiredError("license number")
	// ErrWorkerIsNotConstructed is returned when using a Worker that was not built by a constructor.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
)

// Profile is the data a delivery worker submits when applying.
type Profile struct {
	Name          string
	Email         string
	Phone         string
	VehicleType   string
	LicenseNumber string
}

// Worker is the aggregate root for a delivery worker account.
//
// Business rules:
//   - the worker id is the id of the account that registered it
//   - license number is unique across workers (enforced by the store)
//   - pending -> active on approval, active -> suspended on suspension, nothing else
type Worker struct {
	id               kernel.UUID
	profile          Profile
	status           Status
	suspensionReason *string
	createdAt        time.Time
	updatedAt        time.Time
	guard            guard.ConstructorGuard
}

// NewWorker registers a pending worker for the account id.
func NewWorker(id kernel.UUID, profile Profile, now time.Time) (*Worker, error) {
	w := &Worker{
		status:    Pending,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWorker rebuilds a worker from storage.
func RestoreWorker(
	id kernel.UUID,
	profile Profile,
	status Status,
	suspensionReason *string,
	createdAt, updatedAt time.Time,
) (*Worker, error) {
	w := &Worker{
		status:           status,
		suspensionReason: suspensionReason,
		createdAt:        createdAt.UTC(),
		updatedAt:        updatedAt.UTC(),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setProfile(profile),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate ensures the worker was created through NewWorker or RestoreWorker.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// ID is the identity account id.
func (w *Worker) ID() kernel.UUID { return w.id }
func (w *Worker) Profile() Profile { return w.profile }
func (w *Worker) Name() string { return w.profile.Name }
func (w *Worker) LicenseNumber() string { return w.profile.LicenseNumber }
func (w *Worker) Status() Status { return w.status }
// SuspensionReason is nil unless the worker was suspended with a reason.
func (w *Worker) SuspensionReason() *string { return w.suspensionReason }
func (w *Worker) CreatedAt() time.Time { return w.createdAt }
func (w *Worker) UpdatedAt() time.Time { return w.updatedAt }
// IsActive reports whether the worker may claim orders.
func (w *Worker) IsActive() bool { return w.status == Active }

// Approve activates a pending worker.
func (w *Worker) Approve() error {
	if w.status != Pending {
		return fmt.Errorf("%w: cannot approve %s worker", ErrInvalidState, w.status)
	}
	w.status = Active
	return nil
}

// Suspend removes an active worker from the claim pool. The reason is kept with the worker.
func (w *Worker) Suspend(reason string) error {
	if w.status != Active {
		return fmt.Errorf("%w: cannot suspend %s worker", ErrInvalidState, w.status)
	}
	w.status = Suspended
	w.suspensionReason = nil
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		w.suspensionReason = &trimmed
	}
	return nil
}

// EnsureRejectable checks that the application can still be rejected.
func (w *Worker) EnsureRejectable() error {
	if w.status != Pending {
		return fmt.Errorf("%w: cannot reject %s worker", ErrInvalidState, w.status)
	}
	return nil
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setProfile(p Profile) error {
	p = Profile{
		Name:          strings.TrimSpace(p.Name),
		Email:         strings.TrimSpace(p.Email),
		Phone:         strings.TrimSpace(p.Phone),
		VehicleType:   strings.TrimSpace(p.VehicleType),
		LicenseNumber: strings.TrimSpace(p.LicenseNumber),
	}

	var errList []error
	if p.Name == "" {
		errList = append(errList, ErrNameIsRequired)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("email", err))
	}
	if p.Phone == "" {
		errList = append(errList, ErrPhoneIsRequired)
	}
	if p.VehicleType == "" {
		errList = append(errList, ErrVehicleTypeIsRequired)
	}
	if p.LicenseNumber == "" {
		errList = append(errList, ErrLicenseNumberIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	w.profile = p
	return nil
}
