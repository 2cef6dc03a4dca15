package commands

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/core/domain/model/ledger"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
	"boutique/internal/core/ports"
)

// postIntake records the side effects of an order leaving deferral: one stock
// withdrawal and movement per line item, the sale on the ledger, and one
// loyalty increment. Runs inside the caller's transaction.
func postIntake(ctx context.Context, uow UoW, o *order.Order, now time.Time) error {
	reason := fmt.Sprintf("Commande #%d", o.ID())

	stockRepo := uow.StockRepository()
	for _, item := range o.Items() {
		line, err := stockRepo.GetOrCreateLine(ctx, item.ProductID(), item.Variant())
		if err != nil {
			return err
		}

		movement, err := line.Withdraw(item.Quantity(), reason, now)
		if err != nil {
			return err
		}

		if err = stockRepo.SaveLine(ctx, line); err != nil {
			return err
		}
		if err = stockRepo.AddMovement(ctx, movement); err != nil {
			return err
		}
	}

	sale, err := ledger.NewEntry(ledger.TypeRevenue, ledger.CategorySale, reason, o.TotalCharged(), "online", now)
	if err != nil {
		return err
	}
	if err = uow.LedgerRepository().Append(ctx, sale); err != nil {
		return err
	}

	return uow.CustomerRepository().IncrementLoyalty(ctx, o.Customer(), now)
}

// dispatchOrder places a committed pending order in front of its zone
// courier: board enqueue plus the anonymized card, or a routing-gap warning
// when the zone has no courier. Called only after commit.
func dispatchOrder(
	ctx context.Context,
	board *services.DispatchBoard,
	router *services.ZoneRouter,
	notifier Notifier,
	o *order.Order,
) {
	zone, err := router.ZoneByName(o.Zone())
	if err != nil || zone.CourierID == "" {
		notifier.RoutingGap(ctx, o)
		return
	}

	board.Enqueue(o.ID(), zone.CourierID, zone.Name, o.Customer(), o.CreatedAt())
	notifier.DispatchCard(ctx, zone.CourierID, o)
}

// offerNext re-offers the head of the courier's backlog after a terminal
// courier action. Reads outside any transaction; a vanished order is skipped.
func offerNext(
	ctx context.Context,
	orders ports.OrderRepository,
	board *services.DispatchBoard,
	notifier Notifier,
	courierID string,
) {
	next, ok := board.NextFor(courierID)
	if !ok {
		return
	}

	o, err := orders.Get(ctx, next.OrderID)
	if err != nil {
		return
	}
	notifier.DispatchCard(ctx, courierID, o)
}
