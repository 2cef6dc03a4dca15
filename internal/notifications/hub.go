package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/model/stock"
	"boutique/internal/core/domain/services"
	"boutique/internal/core/ports"
)

// Hub fans state changes out to the admin channel, the support channel and
// the zone couriers. Every method is fire-and-forget: failures are logged and
// swallowed, the next state-changing event carries a fresh summary anyway.
type Hub struct {
	messenger     ports.Messenger
	logger        *slog.Logger
	adminChatID   string
	supportChatID string
}

// NewHub creates a notification hub for the configured channels.
func NewHub(messenger ports.Messenger, logger *slog.Logger, adminChatID, supportChatID string) *Hub {
	return &Hub{
		messenger:     messenger,
		logger:        logger.With("component", "notifications"),
		adminChatID:   adminChatID,
		supportChatID: supportChatID,
	}
}

func (h *Hub) send(ctx context.Context, chatID, text string, buttons [][]ports.Button) {
	if chatID == "" {
		return
	}
	if err := h.messenger.SendMessage(ctx, chatID, text, buttons); err != nil {
		h.logger.Warn("notification send failed", "chat_id", chatID, "error", err)
	}
}

// OrderPlacedAdmin sends the full order summary to the admin channel.
func (h *Hub) OrderPlacedAdmin(ctx context.Context, o *order.Order) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 <b>Nouvelle commande #%d</b>\n\n", o.ID())
	fmt.Fprintf(&sb, "👤 Client: %s\n", o.Customer())
	fmt.Fprintf(&sb, "📍 Type: %s\n", o.DeliveryType())
	if o.Address() != "" {
		fmt.Fprintf(&sb, "🏠 Adresse: %s\n", o.Address())
	}
	if o.Zone() != "" {
		fmt.Fprintf(&sb, "🗺 Zone: %s\n", o.Zone())
	}
	sb.WriteString("\n<b>Articles:</b>\n")
	for _, item := range o.Items() {
		fmt.Fprintf(&sb, "• %s", item.Name())
		if item.Variant() != "" {
			fmt.Fprintf(&sb, " - %s", item.Variant())
		}
		fmt.Fprintf(&sb, " x%d = %.2f€\n", item.Quantity(), item.LineTotal())
	}
	if o.Discount() > 0 {
		fmt.Fprintf(&sb, "\n🎁 Remise fidélité: -%.2f€", o.Discount())
	}
	fmt.Fprintf(&sb, "\n💰 <b>Total: %.2f€</b>", o.TotalCharged())
	fmt.Fprintf(&sb, "\n⏰ %s", o.CreatedAt().Format("02/01/2006 15:04"))

	h.send(ctx, h.adminChatID, sb.String(), nil)
}

// OrderPlacedSupport sends the short summary (handle and total only) to the
// support channel.
func (h *Hub) OrderPlacedSupport(ctx context.Context, o *order.Order) {
	text := fmt.Sprintf("🛎 <b>Commande #%d</b>\n👤 %s\n💰 %.2f€", o.ID(), o.Customer(), o.TotalCharged())
	h.send(ctx, h.supportChatID, text, nil)
}

// DispatchCard offers the order to the zone courier. The card is anonymized:
// address, items and total but never the customer handle.
func (h *Hub) DispatchCard(ctx context.Context, courierChatID string, o *order.Order) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚚 <b>Livraison #%d</b>\n\n", o.ID())
	fmt.Fprintf(&sb, "📍 %s\n", o.DeliveryType())
	if o.Address() != "" {
		fmt.Fprintf(&sb, "🏠 %s\n", o.Address())
	}
	sb.WriteString("\n<b>Articles:</b>\n")
	for _, item := range o.Items() {
		fmt.Fprintf(&sb, "• %s", item.Name())
		if item.Variant() != "" {
			fmt.Fprintf(&sb, " - %s", item.Variant())
		}
		fmt.Fprintf(&sb, " x%d\n", item.Quantity())
	}
	fmt.Fprintf(&sb, "\n💰 <b>%.2f€</b>", o.TotalCharged())

	buttons := [][]ports.Button{
		{
			{Label: "🚀 Démarrer", Data: Callback{Action: ActionStart, OrderID: o.ID()}.Encode()},
			{Label: "💬 Contacter", Data: Callback{Action: ActionContact, OrderID: o.ID()}.Encode()},
		},
		{
			{Label: "❌ Refuser", Data: Callback{Action: ActionRefuse, OrderID: o.ID()}.Encode()},
			{Label: "📋 Ma file", Data: Callback{Action: ActionQueue, OrderID: o.ID()}.Encode()},
		},
	}
	h.send(ctx, courierChatID, sb.String(), buttons)
}

// ApprovalCard asks the admin channel to review a deferred order's customer.
func (h *Hub) ApprovalCard(ctx context.Context, o *order.Order) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔎 <b>Commande #%d en attente</b>\n\n", o.ID())
	fmt.Fprintf(&sb, "👤 Nouveau client: %s\n", o.Customer())
	fmt.Fprintf(&sb, "📍 %s\n", o.DeliveryType())
	fmt.Fprintf(&sb, "💰 %.2f€\n\n", o.TotalCharged())
	sb.WriteString("Ce client n'a jamais été vérifié. Approuver la commande ?")

	buttons := [][]ports.Button{
		{
			{Label: "✅ Approuver", Data: Callback{Action: ActionApprove, OrderID: o.ID()}.Encode()},
			{Label: "🚫 Bloquer", Data: Callback{Action: ActionBlock, OrderID: o.ID()}.Encode()},
		},
	}
	h.send(ctx, h.adminChatID, sb.String(), buttons)
}

// EtaPicker asks the courier to pick one of the fixed delivery estimates.
func (h *Hub) EtaPicker(ctx context.Context, courierChatID string, orderID int64) {
	text := fmt.Sprintf("⏱ <b>Livraison #%d</b>\n\nTemps estimé ?", orderID)

	buckets := order.EtaBuckets()
	row := make([]ports.Button, 0, len(buckets))
	for _, minutes := range buckets {
		row = append(row, ports.Button{
			Label: fmt.Sprintf("%d min", minutes),
			Data:  Callback{Action: ActionEta, OrderID: orderID, Param: fmt.Sprintf("%d", minutes)}.Encode(),
		})
	}
	h.send(ctx, courierChatID, text, [][]ports.Button{row})
}

// EnRouteConfirmation confirms the declared estimate to the courier and
// offers the completion and contact buttons.
func (h *Hub) EnRouteConfirmation(ctx context.Context, courierChatID string, orderID int64, etaMinutes int) {
	text := fmt.Sprintf("🚀 <b>Livraison #%d en route</b>\n⏱ Estimation: %d min", orderID, etaMinutes)
	buttons := [][]ports.Button{
		{
			{Label: "✅ Livré", Data: Callback{Action: ActionComplete, OrderID: orderID}.Encode()},
			{Label: "💬 Contacter", Data: Callback{Action: ActionContact, OrderID: orderID}.Encode()},
		},
	}
	h.send(ctx, courierChatID, text, buttons)
}

// OrderDelivered reports a completed delivery to the admin channel.
func (h *Hub) OrderDelivered(ctx context.Context, o *order.Order) {
	text := fmt.Sprintf("✅ <b>Commande #%d livrée</b>\n💰 %.2f€ encaissés", o.ID(), o.TotalCharged())
	h.send(ctx, h.adminChatID, text, nil)
}

// OrderRefused reports a courier refusal to the admin channel.
func (h *Hub) OrderRefused(ctx context.Context, o *order.Order) {
	text := fmt.Sprintf("❌ <b>Commande #%d refusée</b> par le livreur (%s)", o.ID(), o.Zone())
	h.send(ctx, h.adminChatID, text, nil)
}

// QueueListing shows the courier their pending assignments, oldest first.
func (h *Hub) QueueListing(ctx context.Context, courierChatID string, assignments []services.Assignment) {
	if len(assignments) == 0 {
		h.send(ctx, courierChatID, "📋 Aucune livraison en attente.", nil)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>File d'attente (%d)</b>\n\n", len(assignments))
	for i, a := range assignments {
		fmt.Fprintf(&sb, "%d. Livraison #%d - %s (%s)\n", i+1, a.OrderID, a.Zone, a.CreatedAt.Format("15:04"))
	}
	h.send(ctx, courierChatID, sb.String(), nil)
}

// RoutingGap warns the admin channel that a zone has no configured courier.
// The order stays pending until the dispatch-retry job can place it.
func (h *Hub) RoutingGap(ctx context.Context, o *order.Order) {
	text := fmt.Sprintf(
		"⚠️ <b>Commande #%d sans livreur</b>\nZone %q sans chat configuré. La commande reste en attente.",
		o.ID(), o.Zone(),
	)
	h.send(ctx, h.adminChatID, text, nil)
}

// LowStock reports every stock line under the threshold to the admin channel.
func (h *Hub) LowStock(ctx context.Context, lines []*stock.Line, threshold int) {
	if len(lines) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📉 <b>Stock bas</b> (seuil %d)\n\n", threshold)
	for _, line := range lines {
		fmt.Fprintf(&sb, "• Produit %d", line.ProductID())
		if line.Variant() != "" {
			fmt.Fprintf(&sb, " - %s", line.Variant())
		}
		fmt.Fprintf(&sb, ": %d restants\n", line.Qty())
	}
	h.send(ctx, h.adminChatID, sb.String(), nil)
}

// ConversationOpened confirms the anonymized relay is live for the courier.
func (h *Hub) ConversationOpened(ctx context.Context, courierChatID string, orderID int64) {
	text := fmt.Sprintf(
		"💬 <b>Conversation ouverte</b> pour la livraison #%d.\nVos messages seront relayés anonymement. Tapez /fin pour terminer.",
		orderID,
	)
	buttons := [][]ports.Button{
		{{Label: "🔚 Terminer", Data: Callback{Action: ActionEndChat, OrderID: orderID}.Encode()}},
	}
	h.send(ctx, courierChatID, text, buttons)
}

// ConversationClosed confirms the relay has ended.
func (h *Hub) ConversationClosed(ctx context.Context, courierChatID string, orderID int64) {
	text := fmt.Sprintf("🔚 Conversation terminée pour la livraison #%d.", orderID)
	h.send(ctx, courierChatID, text, nil)
}

// RelayFromCourier forwards courier free text to the support channel without
// revealing who the courier is talking about beyond the order number.
func (h *Hub) RelayFromCourier(ctx context.Context, orderID int64, text string) {
	msg := fmt.Sprintf("💬 <b>Livreur (commande #%d)</b>\n%s", orderID, text)
	h.send(ctx, h.supportChatID, msg, nil)
}

// Help lists the free-text commands a courier can use.
func (h *Hub) Help(ctx context.Context, chatID string) {
	text := "ℹ️ <b>Commandes disponibles</b>\n\n" +
		"/file - voir votre file d'attente\n" +
		"/fin - terminer la conversation en cours\n" +
		"/aide - afficher ce message"
	h.send(ctx, chatID, text, nil)
}

// CustomerReviewed reports the outcome of a trust review to the admin channel.
func (h *Hub) CustomerReviewed(ctx context.Context, handle string, approved bool, affected int) {
	var text string
	if approved {
		text = fmt.Sprintf("✅ Client %s approuvé. %d commande(s) activée(s).", handle, affected)
	} else {
		text = fmt.Sprintf("🚫 Client %s bloqué. %d commande(s) annulée(s).", handle, affected)
	}
	h.send(ctx, h.adminChatID, text, nil)
}
