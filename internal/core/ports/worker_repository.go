package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for delivery workers.
type WorkerRepository interface {
	// Add persists a newly registered worker. Returns ErrDuplicate when the id or
	// license number is taken.
	Add(ctx context.Context, aggregate *worker.Worker) error

	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetByLicenseNumber returns errs.ErrObjectNotFound if no worker holds the license.
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (*worker.Worker, error)

	// UpdateStatus writes status and suspension reason only if the stored status equals expected.
	UpdateStatus(ctx context.Context, aggregate *worker.Worker, expected worker.Status) (bool, error)

	// DeletePending removes the worker only while it is still pending.
	DeletePending(ctx context.Context, id kernel.UUID) (bool, error)
}
