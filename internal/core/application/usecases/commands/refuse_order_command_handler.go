package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/services"
)

// RefuseOrderCommandHandler cancels an order its assigned courier declined,
// drops the board assignment, alerts the admin and offers the courier the
// next order in their backlog.
type RefuseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	board      *services.DispatchBoard
	notifier   Notifier
}

// NewRefuseOrderCommandHandler creates a handler for courier refusals.
func NewRefuseOrderCommandHandler(
	uowFactory OrderUoWFactory,
	board *services.DispatchBoard,
	notifier Notifier,
) RefuseOrderCommandHandler {
	return RefuseOrderCommandHandler{
		uowFactory: uowFactory,
		board:      board,
		notifier:   notifier,
	}
}

// Handle verifies assignment ownership, cancels the order with a guarded
// write, then cleans the board and offers the courier their next delivery.
func (h *RefuseOrderCommandHandler) Handle(ctx context.Context, cmd RefuseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	assignment, err := h.board.Get(cmd.OrderID())
	if err != nil {
		return err
	}
	if assignment.CourierID != cmd.CourierID() {
		return ErrOrderNotAssignedToCourier
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
	h.notifier.OrderRefused(ctx, o)
	offerNext(ctx, h.uowFactory.Create().OrderRepository(), h.board, h.notifier, cmd.CourierID())
	return nil
}
