package fulfillment

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// RegisterWorker files a delivery worker application for the calling account. Without a
// principal a fresh account id is allocated, which is how a signup from scratch arrives.
func (s *Service) RegisterWorker(
	ctx context.Context,
	principal *Principal,
	profile worker.Profile,
) (queries.WorkerView, error) {
	accountID := kernel.NewUUID()
	if principal != nil {
		accountID = principal.ID
	}

	cmd, err := commands.NewRegisterWorkerCommand(accountID, profile)
	if err != nil {
		return queries.WorkerView{}, err
	}

	w, err := s.h.RegisterWorker.Handle(ctx, cmd)
	if err != nil {
		return queries.WorkerView{}, err
	}
	return queries.NewWorkerView(w), nil
}

// ApproveWorker activates a pending worker. It is restricted to admins.
func (s *Service) ApproveWorker(ctx context.Context, principal *Principal, workerID kernel.UUID) (queries.WorkerView, error) {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return queries.WorkerView{}, err
	}

	cmd, err := commands.NewApproveWorkerCommand(workerID)
	if err != nil {
		return queries.WorkerView{}, err
	}

	w, err := s.h.WorkerApproval.Approve(ctx, cmd)
	if err != nil {
		return queries.WorkerView{}, err
	}
	return queries.NewWorkerView(w), nil
}

// RejectWorker deletes a pending application.
func (s *Service) RejectWorker(ctx context.Context, principal *Principal, workerID kernel.UUID) error {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return err
	}

	cmd, err := commands.NewRejectWorkerCommand(workerID)
	if err != nil {
		return err
	}
	return s.h.WorkerApproval.Reject(ctx, cmd)
}

// SuspendWorker removes an active worker from the claim pool. Orders already out for
// delivery stay assigned.
func (s *Service) SuspendWorker(
	ctx context.Context,
	principal *Principal,
	workerID kernel.UUID,
	reason string,
) (queries.WorkerView, error) {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return queries.WorkerView{}, err
	}

	cmd, err := commands.NewSuspendWorkerCommand(workerID, reason)
	if err != nil {
		return queries.WorkerView{}, err
	}

	w, err := s.h.WorkerApproval.Suspend(ctx, cmd)
	if err != nil {
		return queries.WorkerView{}, err
	}
	return queries.NewWorkerView(w), nil
}

// ListWorkers lists workers for admins; a nil status lists everybody.
func (s *Service) ListWorkers(ctx context.Context, principal *Principal, status *worker.Status) ([]queries.WorkerView, error) {
	if err := requireRole(principal, RoleAdmin); err != nil {
		return nil, err
	}

	query, err := queries.NewListWorkersQuery(status)
	if err != nil {
		return nil, err
	}
	return s.h.Workers.List(ctx, query)
}
