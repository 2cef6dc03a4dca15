package commands

import (
	"context"

	"boutique/internal/core/domain/model/order"
)

// Notifier is the slice of the notification hub the command handlers use.
// All methods are fire-and-forget; handlers call them only after the unit of
// work has committed.
type Notifier interface {
	OrderPlacedAdmin(ctx context.Context, o *order.Order)
	OrderPlacedSupport(ctx context.Context, o *order.Order)
	DispatchCard(ctx context.Context, courierChatID string, o *order.Order)
	ApprovalCard(ctx context.Context, o *order.Order)
	RoutingGap(ctx context.Context, o *order.Order)
	EnRouteConfirmation(ctx context.Context, courierChatID string, orderID int64, etaMinutes int)
	OrderDelivered(ctx context.Context, o *order.Order)
	OrderRefused(ctx context.Context, o *order.Order)
	CustomerReviewed(ctx context.Context, handle string, approved bool, affected int)
}
