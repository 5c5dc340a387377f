package commands

import "context"

type RecordBackgroundCheckCommandHandler struct {
	uowFactory MoverUoWFactory
}

func NewRecordBackgroundCheckCommandHandler(uowFactory MoverUoWFactory) RecordBackgroundCheckCommandHandler {
	return RecordBackgroundCheckCommandHandler{uowFactory: uowFactory}
}

func (h *RecordBackgroundCheckCommandHandler) Handle(ctx context.Context, cmd RecordBackgroundCheckCommand) error {
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

	repo := uow.MoverRepository()
	m, err := repo.GetForUpdate(ctx, cmd.MoverID())
	if err != nil {
		return err
	}

	m.RecordBackgroundCheck(cmd.Passed())

	if err = repo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
