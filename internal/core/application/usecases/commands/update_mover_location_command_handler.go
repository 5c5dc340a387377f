package commands

import "context"

type UpdateMoverLocationCommandHandler struct {
	uowFactory MoverUoWFactory
}

func NewUpdateMoverLocationCommandHandler(uowFactory MoverUoWFactory) UpdateMoverLocationCommandHandler {
	return UpdateMoverLocationCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateMoverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateMoverLocationCommand) error {
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

	if err = m.Relocate(cmd.Location()); err != nil {
		return err
	}

	if err = repo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
