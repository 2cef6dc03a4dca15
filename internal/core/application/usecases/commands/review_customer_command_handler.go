package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
)

// ReviewCustomerResult reports how many orders the verdict touched.
type ReviewCustomerResult struct {
	Affected int
}

// ReviewCustomerCommandHandler resolves a pending customer's trust status.
// Approval activates every deferred order in one transaction: each is
// re-priced against the loyalty counter as it stands at approval time, then
// stock, ledger and loyalty are posted exactly as a normal intake would have.
// Block cancels every non-terminal order of the handle in one batch.
type ReviewCustomerCommandHandler struct {
	uowFactory UoWFactory
	loyalty    *services.LoyaltyPolicy
	router     *services.ZoneRouter
	board      *services.DispatchBoard
	notifier   Notifier
}

// NewReviewCustomerCommandHandler creates a handler for trust reviews.
func NewReviewCustomerCommandHandler(
	uowFactory UoWFactory,
	loyalty *services.LoyaltyPolicy,
	router *services.ZoneRouter,
	board *services.DispatchBoard,
	notifier Notifier,
) ReviewCustomerCommandHandler {
	return ReviewCustomerCommandHandler{
		uowFactory: uowFactory,
		loyalty:    loyalty,
		router:     router,
		board:      board,
		notifier:   notifier,
	}
}

// Handle processes the review. The whole verdict commits or rolls back as
// one transaction; board changes and notifications follow the commit.
func (h *ReviewCustomerCommandHandler) Handle(ctx context.Context, cmd ReviewCustomerCommand) (ReviewCustomerResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReviewCustomerResult{}, err
	}

	if cmd.Action() == ReviewApprove {
		return h.approve(ctx, cmd)
	}
	return h.block(ctx, cmd)
}

func (h *ReviewCustomerCommandHandler) approve(ctx context.Context, cmd ReviewCustomerCommand) (ReviewCustomerResult, error) {
	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReviewCustomerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cust, err := uow.CustomerRepository().Get(ctx, cmd.Handle())
	if err != nil {
		return ReviewCustomerResult{}, err
	}
	if err = cust.Approve(cmd.Reviewer(), now); err != nil {
		return ReviewCustomerResult{}, err
	}
	if err = uow.CustomerRepository().Update(ctx, cust); err != nil {
		return ReviewCustomerResult{}, err
	}

	deferred, err := uow.OrderRepository().GetDeferredByCustomer(ctx, cmd.Handle())
	if err != nil {
		return ReviewCustomerResult{}, err
	}

	for _, o := range deferred {
		// Loyalty is re-read per order: activating one order advances the
		// counter the next one is priced against.
		loyalty, loyaltyErr := uow.CustomerRepository().GetLoyalty(ctx, cmd.Handle())
		if loyaltyErr != nil {
			return ReviewCustomerResult{}, loyaltyErr
		}
		if discount := h.loyalty.Discount(loyalty.OrdersCount, o.Total()); discount > 0 {
			if err = o.ApplyDiscount(discount); err != nil {
				return ReviewCustomerResult{}, err
			}
		}

		if err = o.Approve(now); err != nil {
			return ReviewCustomerResult{}, err
		}
		if err = uow.OrderRepository().Update(ctx, o, order.PendingApproval); err != nil {
			return ReviewCustomerResult{}, err
		}

		if err = postIntake(ctx, uow, o, now); err != nil {
			return ReviewCustomerResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ReviewCustomerResult{}, err
	}

	h.notifier.CustomerReviewed(ctx, cmd.Handle(), true, len(deferred))
	for _, o := range deferred {
		h.notifier.OrderPlacedAdmin(ctx, o)
		h.notifier.OrderPlacedSupport(ctx, o)
		dispatchOrder(ctx, h.board, h.router, h.notifier, o)
	}

	return ReviewCustomerResult{Affected: len(deferred)}, nil
}

func (h *ReviewCustomerCommandHandler) block(ctx context.Context, cmd ReviewCustomerCommand) (ReviewCustomerResult, error) {
	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReviewCustomerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cust, err := uow.CustomerRepository().Get(ctx, cmd.Handle())
	if err != nil {
		return ReviewCustomerResult{}, err
	}
	if err = cust.Block(cmd.Reason()); err != nil {
		return ReviewCustomerResult{}, err
	}
	if err = uow.CustomerRepository().Update(ctx, cust); err != nil {
		return ReviewCustomerResult{}, err
	}

	open, err := uow.OrderRepository().GetNonTerminalByCustomer(ctx, cmd.Handle())
	if err != nil {
		return ReviewCustomerResult{}, err
	}

	for _, o := range open {
		before := o.Status()
		if err = o.Cancel(now); err != nil {
			return ReviewCustomerResult{}, err
		}
		if err = uow.OrderRepository().Update(ctx, o, before); err != nil {
			return ReviewCustomerResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ReviewCustomerResult{}, err
	}

	for _, o := range open {
		h.board.Remove(o.ID())
	}
	h.notifier.CustomerReviewed(ctx, cmd.Handle(), false, len(open))

	return ReviewCustomerResult{Affected: len(open)}, nil
}
