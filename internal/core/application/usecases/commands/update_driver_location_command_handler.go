package commands

import (
	"context"
)

// UpdateDriverLocationCommandHandler handles driver position pushes.
// Loads the order, overwrites its driver location with the pushed coordinate,
// and persists the change in a transaction.
type UpdateDriverLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateDriverLocationCommandHandler creates a handler for driver position pushes.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateDriverLocationCommandHandler(uowFactory OrderUoWFactory) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver location push.
func (h *UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID(), cmd.OrderType())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateDriverLocation(cmd.Coordinate()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
