package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApproveWorkerCommandIsNotConstructed = errors.New(
		"ApproveWorkerCommand must be created via NewApproveWorkerCommand constructor",
	)
	ErrRejectWorkerCommandIsNotConstructed = errors.New(
		"RejectWorkerCommand must be created via NewRejectWorkerCommand constructor",
	)
	ErrSuspendWorkerCommandIsNotConstructed = errors.New(
		"SuspendWorkerCommand must be created via NewSuspendWorkerCommand constructor",
	)
)

// ApproveWorkerCommand asks to activate a pending worker.
type ApproveWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewApproveWorkerCommand validates the worker id.
func NewApproveWorkerCommand(workerID kernel.UUID) (ApproveWorkerCommand, error) {
	if err := workerID.Validate(); err != nil {
		return ApproveWorkerCommand{}, err
	}
	return ApproveWorkerCommand{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveWorkerCommand) Validate() error {
	return c.guard.Validate(ErrApproveWorkerCommandIsNotConstructed)
}

// WorkerID returns the worker to approve.
func (c ApproveWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// RejectWorkerCommand asks to discard a pending application.
type RejectWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewRejectWorkerCommand validates the worker id.
func NewRejectWorkerCommand(workerID kernel.UUID) (RejectWorkerCommand, error) {
	if err := workerID.Validate(); err != nil {
		return RejectWorkerCommand{}, err
	}
	return RejectWorkerCommand{workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRejectWorkerCommandIsNotConstructed)
}

// WorkerID returns the worker to reject.
func (c RejectWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// SuspendWorkerCommand asks to take an active worker out of the claim pool.
type SuspendWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	reason   string
	guard    guard.ConstructorGuard
}

// NewSuspendWorkerCommand validates the worker id. The reason may be empty.
func NewSuspendWorkerCommand(workerID kernel.UUID, reason string) (SuspendWorkerCommand, error) {
	if err := workerID.Validate(); err != nil {
		return SuspendWorkerCommand{}, err
	}
	return SuspendWorkerCommand{workerID: workerID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SuspendWorkerCommand) Validate() error {
	return c.guard.Validate(ErrSuspendWorkerCommandIsNotConstructed)
}

// WorkerID returns the worker to suspend.
func (c SuspendWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Reason returns the free-text suspension reason.
func (c SuspendWorkerCommand) Reason() string {
	return c.reason
}

// WorkerApprovalHandler runs the administrative side of the worker registry:
// approving, rejecting and suspending applications. Each write is conditional on the
// status that was read, so two administrators acting at once cannot both succeed.
type WorkerApprovalHandler struct {
	uowFactory WorkerUoWFactory
}

// NewWorkerApprovalHandler creates the handler with the given unit of work factory.
func NewWorkerApprovalHandler(uowFactory WorkerUoWFactory) WorkerApprovalHandler {
	return WorkerApprovalHandler{
		uowFactory: uowFactory,
	}
}

// Approve moves a pending worker to active.
func (h *WorkerApprovalHandler) Approve(ctx context.Context, cmd ApproveWorkerCommand) (*worker.Worker, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.transition(ctx, cmd.WorkerID(), worker.Pending, (*worker.Worker).Approve)
}

// Suspend moves an active worker to suspended and records the reason.
func (h *WorkerApprovalHandler) Suspend(ctx context.Context, cmd SuspendWorkerCommand) (*worker.Worker, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.transition(ctx, cmd.WorkerID(), worker.Active, func(w *worker.Worker) error {
		return w.Suspend(cmd.Reason())
	})
}

// Reject removes a pending application.
func (h *WorkerApprovalHandler) Reject(ctx context.Context, cmd RejectWorkerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workerRepo := uow.WorkerRepository()
	w, err := workerRepo.Get(ctx, cmd.WorkerID())
	if err != nil {
		return err
	}
	if err = w.EnsureRejectable(); err != nil {
		return err
	}

	deleted, err := workerRepo.DeletePending(ctx, w.ID())
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: worker %s is no longer pending", worker.ErrInvalidState, w.ID())
	}

	event, err := events.NewWorkerRejected(w, time.Now())
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *WorkerApprovalHandler) transition(
	ctx context.Context,
	workerID kernel.UUID,
	expected worker.Status,
	apply func(*worker.Worker) error,
) (*worker.Worker, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workerRepo := uow.WorkerRepository()
	w, err := workerRepo.Get(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if err = apply(w); err != nil {
		return nil, err
	}

	updated, err := workerRepo.UpdateStatus(ctx, w, expected)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: worker %s is no longer %s", worker.ErrInvalidState, w.ID(), expected)
	}

	event, err := events.NewWorkerStatusChanged(w, time.Now())
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return w, nil
}
