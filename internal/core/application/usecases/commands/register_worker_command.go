package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRegisterWorkerCommandIsNotConstructed is returned by Validate on a zero-value command.
var ErrRegisterWorkerCommandIsNotConstructed = errors.New(
	"RegisterWorkerCommand must be created via NewRegisterWorkerCommand constructor",
)

// RegisterWorkerCommand is a delivery worker application. The worker id is the id of the
// account that applies.
type RegisterWorkerCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	profile   worker.Profile

	guard guard.ConstructorGuard
}

// NewRegisterWorkerCommand validates the account id and the profile.
func NewRegisterWorkerCommand(accountID kernel.UUID, profile worker.Profile) (RegisterWorkerCommand, error) {
	if err := accountID.Validate(); err != nil {
		return RegisterWorkerCommand{}, err
	}
	// Validate the profile now so an invalid application never opens a transaction.
	if _, err := worker.NewWorker(accountID, profile, time.Now()); err != nil {
		return RegisterWorkerCommand{}, err
	}

	return RegisterWorkerCommand{
		accountID: accountID,
		profile:   profile,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWorkerCommandIsNotConstructed)
}

// AccountID returns the identity account, which becomes the worker id.
func (c RegisterWorkerCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Profile returns the submitted profile.
func (c RegisterWorkerCommand) Profile() worker.Profile {
	return c.profile
}

// RegisterWorkerCommandHandler stores a pending worker. The account id and the license
// number must both be unused.
type RegisterWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewRegisterWorkerCommandHandler creates the handler with the given unit of work factory.
func NewRegisterWorkerCommandHandler(uowFactory WorkerUoWFactory) RegisterWorkerCommandHandler {
	return RegisterWorkerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores a pending worker. A second signup for the same account or license number
// fails with ErrDuplicateIdentity.
func (h *RegisterWorkerCommandHandler) Handle(ctx context.Context, cmd RegisterWorkerCommand) (*worker.Worker, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	w, err := worker.NewWorker(cmd.AccountID(), cmd.Profile(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workerRepo := uow.WorkerRepository()
	if err = ensureAbsent(workerRepo.Get(ctx, w.ID())); err != nil {
		return nil, err
	}
	if err = ensureAbsent(workerRepo.GetByLicenseNumber(ctx, w.LicenseNumber())); err != nil {
		return nil, err
	}

	if err = workerRepo.Add(ctx, w); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
		}
		return nil, err
	}

	event, err := events.NewWorkerRegistered(w, now)
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

func ensureAbsent(existing *worker.Worker, err error) error {
	switch {
	case err == nil:
		return fmt.Errorf("%w: worker %s", ErrDuplicateIdentity, existing.ID())
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}
