package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/model/stock"
)

// RecordStockMovementResult reports the line quantity after the correction.
type RecordStockMovementResult struct {
	Quantity int
}

// RecordStockMovementCommandHandler processes manual stock corrections.
type RecordStockMovementCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewRecordStockMovementCommandHandler creates a handler for stock corrections.
func NewRecordStockMovementCommandHandler(uowFactory StockUoWFactory) RecordStockMovementCommandHandler {
	return RecordStockMovementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the correction to the line and appends the movement row in
// one transaction. Outbound corrections clamp at zero like order withdrawals.
func (h *RecordStockMovementCommandHandler) Handle(
	ctx context.Context,
	cmd RecordStockMovementCommand,
) (RecordStockMovementResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordStockMovementResult{}, err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordStockMovementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stockRepo := uow.StockRepository()
	line, err := stockRepo.GetOrCreateLine(ctx, cmd.ProductID(), cmd.Variant())
	if err != nil {
		return RecordStockMovementResult{}, err
	}

	var movement stock.Movement
	if cmd.Direction() == stock.DirectionIn {
		movement, err = line.Deposit(cmd.Quantity(), cmd.Reason(), now)
	} else {
		movement, err = line.Withdraw(cmd.Quantity(), cmd.Reason(), now)
	}
	if err != nil {
		return RecordStockMovementResult{}, err
	}

	if err = stockRepo.SaveLine(ctx, line); err != nil {
		return RecordStockMovementResult{}, err
	}
	if err = stockRepo.AddMovement(ctx, movement); err != nil {
		return RecordStockMovementResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordStockMovementResult{}, err
	}

	return RecordStockMovementResult{Quantity: line.Qty()}, nil
}
