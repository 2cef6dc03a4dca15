package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/services"
)

// CancelOrderCommandHandler cancels a single order on behalf of the admin.
// Unlike a courier refusal there is no ownership check and no offer of a
// follow-up order.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	board      *services.DispatchBoard
}

// NewCancelOrderCommandHandler creates a handler for admin cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	board *services.DispatchBoard,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		board:      board,
	}
}

// Handle cancels the order with a guarded write and drops any board
// assignment after commit.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	before := o.Status()
	if err = o.Cancel(time.Now()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o, before); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.board.Remove(cmd.OrderID())
	return nil
}
