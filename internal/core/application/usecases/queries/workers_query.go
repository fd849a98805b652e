package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetWorkerQueryIsNotConstructed = errors.New(
		"GetWorkerQuery must be created via NewGetWorkerQuery constructor",
	)
	ErrListWorkersQueryIsNotConstructed = errors.New(
		"ListWorkersQuery must be created via NewListWorkersQuery constructor",
	)
)

// WorkerView is the read model of a delivery worker account.
type WorkerView struct {
	ID               kernel.UUID
	Name             string
	Email            string
	Phone            string
	VehicleType      string
	LicenseNumber    string
	Status           worker.Status
	SuspensionReason *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewWorkerView renders an aggregate returned by a command.
func NewWorkerView(w *worker.Worker) WorkerView {
	p := w.Profile()
	return WorkerView{
		ID:               w.ID(),
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		VehicleType:      p.VehicleType,
		LicenseNumber:    p.LicenseNumber,
		Status:           w.Status(),
		SuspensionReason: w.SuspensionReason(),
		CreatedAt:        w.CreatedAt(),
		UpdatedAt:        w.UpdatedAt(),
	}
}

// GetWorkerQuery reads one worker. It is also how callers gate on the worker's current status.
type GetWorkerQuery struct {
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetWorkerQuery validates the worker id.
func NewGetWorkerQuery(workerID kernel.UUID) (GetWorkerQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetWorkerQuery{}, err
	}
	return GetWorkerQuery{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

// WorkerID returns the worker to read.
func (q GetWorkerQuery) WorkerID() kernel.UUID { return q.workerID }

// Validate ensures the query was created through the constructor.
func (q GetWorkerQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerQueryIsNotConstructed)
}

// ListWorkersQuery lists workers, optionally only those in one status (pending applications).
type ListWorkersQuery struct {
	status *worker.Status
	guard  guard.ConstructorGuard
}

// NewListWorkersQuery lists all workers when status is nil.
func NewListWorkersQuery(status *worker.Status) (ListWorkersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListWorkersQuery{}, err
		}
		s := *status
		status = &s
	}
	return ListWorkersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Status returns the status filter, or nil for all workers.
func (q ListWorkersQuery) Status() *worker.Status { return q.status }

// Validate ensures the query was created through the constructor.
func (q ListWorkersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkersQueryIsNotConstructed)
}

type workerRow struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Phone            string
	VehicleType      string
	LicenseNumber    string
	Status           string
	SuspensionReason *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const workerColumns = `
	id,
	name,
	email,
	phone,
	vehicle_type,
	license_number,
	status,
	suspension_reason,
	created_at,
	updated_at`

// WorkersQueryHandler serves GetWorkerQuery and ListWorkersQuery.
type WorkersQueryHandler struct {
	db *gorm.DB
}

// NewWorkersQueryHandler reads from db outside any unit of work.
func NewWorkersQueryHandler(db *gorm.DB) WorkersQueryHandler {
	return WorkersQueryHandler{db: db}
}

// Get returns errs.ErrObjectNotFound for an unknown worker.
func (h WorkersQueryHandler) Get(ctx context.Context, query GetWorkerQuery) (WorkerView, error) {
	if err := query.Validate(); err != nil {
		return WorkerView{}, err
	}

	var rows []workerRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+workerColumns+`
		FROM delivery_workers
		WHERE id = ?
	`, query.WorkerID().Bytes()).Scan(&rows).Error; err != nil {
		return WorkerView{}, err
	}
	if len(rows) == 0 {
		return WorkerView{}, errs.NewObjectNotFoundError("delivery worker", query.WorkerID().String())
	}

	return toWorkerView(rows[0])
}

// List orders workers by registration time, newest first.
func (h WorkersQueryHandler) List(ctx context.Context, query ListWorkersQuery) ([]WorkerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var rows []workerRow
	var err error
	if status := query.Status(); status != nil {
		err = db.Raw(`
			SELECT `+workerColumns+`
			FROM delivery_workers
			WHERE status = ?
			ORDER BY created_at DESC, id
		`, status.String()).Scan(&rows).Error
	} else {
		err = db.Raw(`
			SELECT `+workerColumns+`
			FROM delivery_workers
			ORDER BY created_at DESC, id
		`).Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}

	views := make([]WorkerView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := toWorkerView(row)
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}
	return views, nil
}

func toWorkerView(row workerRow) (WorkerView, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return WorkerView{}, err
	}
	status, err := worker.ParseStatus(row.Status)
	if err != nil {
		return WorkerView{}, err
	}

	return WorkerView{
		ID:               id,
		Name:             row.Name,
		Email:            row.Email,
		Phone:            row.Phone,
		VehicleType:      row.VehicleType,
		LicenseNumber:    row.LicenseNumber,
		Status:           status,
		SuspensionReason: row.SuspensionReason,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}, nil
}
