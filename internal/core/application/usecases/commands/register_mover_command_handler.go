package commands

import (
	"context"
	"time"

	"movers/internal/core/domain/model/mover"
	"movers/internal/core/ports"
)

const verificationUpstream = "verification provider"

// RegisterMoverCommandHandler vets and stores a new mover.
//
// Both verification calls run before the transaction opens and are bounded by
// timeout. On timeout or provider error nothing is persisted and the caller may
// retry. A background check that is still running is reported as false and
// completed later through RecordBackgroundCheckCommand.
type RegisterMoverCommandHandler struct {
	uowFactory MoverUoWFactory
	verifier   ports.VerificationProvider
	timeout    time.Duration
}

func NewRegisterMoverCommandHandler(
	uowFactory MoverUoWFactory,
	verifier ports.VerificationProvider,
	timeout time.Duration,
) RegisterMoverCommandHandler {
	return RegisterMoverCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		timeout:    timeout,
	}
}

func (h *RegisterMoverCommandHandler) Handle(ctx context.Context, cmd RegisterMoverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	m, err := mover.NewMover(cmd.MoverID(), cmd.Name(), cmd.Phone(), cmd.Vehicle(), cmd.Location())
	if err != nil {
		return err
	}

	identityVerified, err := callUpstream(ctx, verificationUpstream, h.timeout,
		func(ctx context.Context) (bool, error) {
			return h.verifier.VerifyIdentity(ctx, cmd.Document())
		})
	if err != nil {
		return err
	}

	backgroundPassed, err := callUpstream(ctx, verificationUpstream, h.timeout,
		func(ctx context.Context) (bool, error) {
			return h.verifier.SubmitBackgroundCheck(ctx, cmd.Document())
		})
	if err != nil {
		return err
	}

	m.RecordIdentityVerification(identityVerified)
	m.RecordBackgroundCheck(backgroundPassed)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MoverRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
