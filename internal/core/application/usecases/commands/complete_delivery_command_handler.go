package commands

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/core/domain/model/ledger"
	"boutique/internal/core/domain/services"
)

// CompleteDeliveryCommandHandler closes out a delivery: the order reaches
// its terminal delivered status, the collected cash is reconciled on the
// ledger, the board assignment is dropped and the courier is offered the
// next order in their backlog.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	board      *services.DispatchBoard
	notifier   Notifier
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory,
	board *services.DispatchBoard,
	notifier Notifier,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		board:      board,
		notifier:   notifier,
	}
}

// Handle verifies assignment ownership, completes the order and posts the
// cash-collected entry in one transaction, then cleans the board and offers
// the courier their next delivery.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	now := time.Now()

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
	if err = o.Complete(now); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o, before); err != nil {
		return err
	}

	collected, err := ledger.NewEntry(
		ledger.TypeRevenue,
		ledger.CategoryCashCollected,
		fmt.Sprintf("Commande #%d", o.ID()),
		o.TotalCharged(),
		"cash",
		now,
	)
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Append(ctx, collected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.board.Remove(cmd.OrderID())
	h.notifier.OrderDelivered(ctx, o)
	offerNext(ctx, h.uowFactory.Create().OrderRepository(), h.board, h.notifier, cmd.CourierID())
	return nil
}
