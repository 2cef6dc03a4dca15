package commands

import (
	"context"
	"time"

	"boutique/internal/core/domain/model/customer"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
)

// CreateOrderResult is the intake outcome returned to the caller.
type CreateOrderResult struct {
	OrderID          int64
	Discount         float64
	RequiresApproval bool
}

// CreateOrderCommandHandler handles the business logic for order intake.
// Applies the trust gate, prices the loyalty discount, routes the delivery
// zone and, for approved customers, posts stock, ledger and loyalty in the
// same transaction. Deferred orders touch nothing but the order row until
// approval.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	loyalty    *services.LoyaltyPolicy
	router     *services.ZoneRouter
	board      *services.DispatchBoard
	notifier   Notifier
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	loyalty *services.LoyaltyPolicy,
	router *services.ZoneRouter,
	board *services.DispatchBoard,
	notifier Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		loyalty:    loyalty,
		router:     router,
		board:      board,
		notifier:   notifier,
	}
}

// Handle processes the intake command. A blocked customer fails fast before
// any order row exists; a pending customer gets a deferred order; an approved
// customer gets the full intake posting. Notifications go out only after the
// transaction has committed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, err := order.NewLineItem(input.ProductID, input.Name, input.Variant, input.Quantity, input.UnitPrice)
		if err != nil {
			return CreateOrderResult{}, err
		}
		items = append(items, item)
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cust, err := uow.CustomerRepository().GetOrCreate(ctx, cmd.Customer(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if cust.Status() == customer.TrustBlocked {
		return CreateOrderResult{}, customer.ErrCustomerBlocked
	}

	deferred := cust.Status() != customer.TrustApproved

	o, err := order.NewOrder(cmd.Customer(), cmd.DeliveryType(), cmd.Address(), items, cmd.Total(), deferred, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = o.AssignZone(h.router.Resolve(cmd.DeliveryType()).Name); err != nil {
		return CreateOrderResult{}, err
	}

	if !deferred {
		loyalty, loyaltyErr := uow.CustomerRepository().GetLoyalty(ctx, cmd.Customer())
		if loyaltyErr != nil {
			return CreateOrderResult{}, loyaltyErr
		}
		if discount := h.loyalty.Discount(loyalty.OrdersCount, cmd.Total()); discount > 0 {
			if err = o.ApplyDiscount(discount); err != nil {
				return CreateOrderResult{}, err
			}
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if !deferred {
		if err = postIntake(ctx, uow, o, now); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	if deferred {
		h.notifier.ApprovalCard(ctx, o)
	} else {
		h.notifier.OrderPlacedAdmin(ctx, o)
		h.notifier.OrderPlacedSupport(ctx, o)
		dispatchOrder(ctx, h.board, h.router, h.notifier, o)
	}

	return CreateOrderResult{
		OrderID:          o.ID(),
		Discount:         o.Discount(),
		RequiresApproval: deferred,
	}, nil
}
