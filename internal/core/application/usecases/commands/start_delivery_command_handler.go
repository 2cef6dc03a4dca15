package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/services"
)

// StartDeliveryCommandHandler moves an assigned order en route once its
// courier declares an estimate. The acting courier must own the order's
// board assignment.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	board      *services.DispatchBoard
	notifier   Notifier
}

// NewStartDeliveryCommandHandler creates a handler for delivery starts.
func NewStartDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	board *services.DispatchBoard,
	notifier Notifier,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		board:      board,
		notifier:   notifier,
	}
}

// Handle verifies assignment ownership, transitions the order with a guarded
// write, and confirms the estimate to the courier after commit.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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
	if err = o.StartDelivery(cmd.EtaMinutes(), time.Now()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o, before); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.EnRouteConfirmation(ctx, cmd.CourierID(), cmd.OrderID(), cmd.EtaMinutes())
	return nil
}
