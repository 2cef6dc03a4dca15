package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/domain/services"
	"boutique/internal/core/ports"
	"boutique/internal/notifications"

	"github.com/labstack/echo/v4"
)

// TelegramWebhook handles the single inbound Telegram endpoint: button
// presses and free-text messages from couriers and the admin chat. Telegram
// always gets a 200 back; failures are reported to the acting chat or
// logged, never surfaced as webhook errors, so Telegram does not redeliver
// updates whose business outcome is settled.
type TelegramWebhook struct {
	reviewCustomerHandler   commands.ReviewCustomerCommandHandler
	startDeliveryHandler    commands.StartDeliveryCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	refuseOrderHandler      commands.RefuseOrderCommandHandler

	orders      ports.OrderRepository
	board       *services.DispatchBoard
	hub         *notifications.Hub
	adminChatID string
	logger      *slog.Logger
}

// NewTelegramWebhook creates the webhook endpoint.
func NewTelegramWebhook(
	reviewCustomerHandler commands.ReviewCustomerCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	refuseOrderHandler commands.RefuseOrderCommandHandler,
	orders ports.OrderRepository,
	board *services.DispatchBoard,
	hub *notifications.Hub,
	adminChatID string,
	logger *slog.Logger,
) *TelegramWebhook {
	return &TelegramWebhook{
		reviewCustomerHandler:   reviewCustomerHandler,
		startDeliveryHandler:    startDeliveryHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		refuseOrderHandler:      refuseOrderHandler,
		orders:                  orders,
		board:                   board,
		hub:                     hub,
		adminChatID:             adminChatID,
		logger:                  logger.With("component", "webhook"),
	}
}

// RegisterRoutes mounts the webhook on the echo instance.
func (w *TelegramWebhook) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhook", w.Handle)
}

// Telegram update payload, trimmed to the fields the engine reads.
type telegramChat struct {
	ID int64 `json:"id"`
}

type telegramMessage struct {
	Chat telegramChat `json:"chat"`
	Text string       `json:"text"`
}

type telegramCallbackQuery struct {
	ID      string           `json:"id"`
	Message *telegramMessage `json:"message"`
	Data    string           `json:"data"`
}

type telegramUpdate struct {
	UpdateID      int64                  `json:"update_id"`
	Message       *telegramMessage       `json:"message"`
	CallbackQuery *telegramCallbackQuery `json:"callback_query"`
}

// Handle processes POST /webhook.
func (w *TelegramWebhook) Handle(ctx echo.Context) error {
	var update telegramUpdate
	if err := ctx.Bind(&update); err != nil {
		w.logger.Warn("undecodable update", "error", err)
		return ctx.NoContent(http.StatusOK)
	}

	reqCtx := ctx.Request().Context()
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID := strconv.FormatInt(update.CallbackQuery.Message.Chat.ID, 10)
		w.handleCallback(reqCtx, chatID, update.CallbackQuery.Data)
	case update.Message != nil:
		chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
		w.handleText(reqCtx, chatID, update.Message.Text)
	default:
		w.logger.Debug("update carries neither message nor callback", "update_id", update.UpdateID)
	}

	return ctx.NoContent(http.StatusOK)
}

func (w *TelegramWebhook) handleCallback(ctx context.Context, chatID, data string) {
	cb, err := notifications.DecodeCallback(data)
	if err != nil {
		w.logger.Warn("malformed callback", "chat_id", chatID, "data", data, "error", err)
		return
	}

	switch cb.Action {
	case notifications.ActionApprove:
		w.review(ctx, chatID, cb.OrderID, commands.ReviewApprove)
	case notifications.ActionBlock:
		w.review(ctx, chatID, cb.OrderID, commands.ReviewBlock)
	case notifications.ActionStart:
		// the estimate comes in a second round trip via the picker
		if w.ownsAssignment(chatID, cb.OrderID) {
			w.hub.EtaPicker(ctx, chatID, cb.OrderID)
		}
	case notifications.ActionEta:
		w.startDelivery(ctx, chatID, cb)
	case notifications.ActionContact:
		w.openConversation(ctx, chatID, cb.OrderID)
	case notifications.ActionEndChat:
		w.closeConversation(ctx, chatID, cb.OrderID)
	case notifications.ActionComplete:
		w.completeDelivery(ctx, chatID, cb.OrderID)
	case notifications.ActionRefuse:
		w.refuseOrder(ctx, chatID, cb.OrderID)
	case notifications.ActionQueue:
		w.hub.QueueListing(ctx, chatID, w.board.QueueFor(chatID))
	}
}

// handleText routes courier free text: a recognized command runs, anything
// else relays through the open conversation or is dropped.
func (w *TelegramWebhook) handleText(ctx context.Context, chatID, text string) {
	if text == "" {
		return
	}

	if cmd, ok := notifications.LookupCommand(text); ok {
		switch cmd {
		case notifications.CommandQueue:
			w.hub.QueueListing(ctx, chatID, w.board.QueueFor(chatID))
		case notifications.CommandEndChat:
			if active, inChat := w.board.Relay(chatID); inChat {
				w.closeConversation(ctx, chatID, active.OrderID)
			}
		case notifications.CommandHelp:
			w.hub.Help(ctx, chatID)
		}
		return
	}

	active, inChat := w.board.Relay(chatID)
	if !inChat {
		w.logger.Info("text outside any conversation dropped", "chat_id", chatID)
		return
	}
	w.hub.RelayFromCourier(ctx, active.OrderID, text)
}

// review resolves the approval card's customer by order id. Only the admin
// chat may deliver a verdict.
func (w *TelegramWebhook) review(ctx context.Context, chatID string, orderID int64, action commands.ReviewAction) {
	if chatID != w.adminChatID {
		w.logger.Warn("review callback from non-admin chat", "chat_id", chatID, "order_id", orderID)
		return
	}

	o, err := w.orders.Get(ctx, orderID)
	if err != nil {
		w.logger.Warn("review target not found", "order_id", orderID, "error", err)
		return
	}

	cmd, err := commands.NewReviewCustomerCommand(o.Customer(), action, "admin", "")
	if err != nil {
		w.logger.Warn("invalid review command", "order_id", orderID, "error", err)
		return
	}

	if _, err = w.reviewCustomerHandler.Handle(ctx, cmd); err != nil {
		w.logger.Warn("review failed", "handle", o.Customer(), "error", err)
	}
}

func (w *TelegramWebhook) startDelivery(ctx context.Context, chatID string, cb notifications.Callback) {
	minutes, err := strconv.Atoi(cb.Param)
	if err != nil {
		w.logger.Warn("eta callback without minutes", "chat_id", chatID, "param", cb.Param)
		return
	}

	cmd, err := commands.NewStartDeliveryCommand(cb.OrderID, chatID, minutes)
	if err != nil {
		w.logger.Warn("invalid start command", "order_id", cb.OrderID, "error", err)
		return
	}

	if err = w.startDeliveryHandler.Handle(ctx, cmd); err != nil {
		w.logger.Warn("start delivery failed", "order_id", cb.OrderID, "chat_id", chatID, "error", err)
	}
}

func (w *TelegramWebhook) completeDelivery(ctx context.Context, chatID string, orderID int64) {
	cmd, err := commands.NewCompleteDeliveryCommand(orderID, chatID)
	if err != nil {
		w.logger.Warn("invalid complete command", "order_id", orderID, "error", err)
		return
	}

	if err = w.completeDeliveryHandler.Handle(ctx, cmd); err != nil {
		w.logger.Warn("complete delivery failed", "order_id", orderID, "chat_id", chatID, "error", err)
	}
}

func (w *TelegramWebhook) refuseOrder(ctx context.Context, chatID string, orderID int64) {
	cmd, err := commands.NewRefuseOrderCommand(orderID, chatID)
	if err != nil {
		w.logger.Warn("invalid refuse command", "order_id", orderID, "error", err)
		return
	}

	if err = w.refuseOrderHandler.Handle(ctx, cmd); err != nil {
		w.logger.Warn("refuse order failed", "order_id", orderID, "chat_id", chatID, "error", err)
	}
}

func (w *TelegramWebhook) openConversation(ctx context.Context, chatID string, orderID int64) {
	if !w.ownsAssignment(chatID, orderID) {
		return
	}

	if err := w.board.StartConversation(orderID); err != nil {
		w.logger.Warn("conversation not opened", "order_id", orderID, "chat_id", chatID, "error", err)
		return
	}
	w.hub.ConversationOpened(ctx, chatID, orderID)
}

func (w *TelegramWebhook) closeConversation(ctx context.Context, chatID string, orderID int64) {
	if !w.ownsAssignment(chatID, orderID) {
		return
	}

	if err := w.board.EndConversation(orderID); err != nil {
		w.logger.Warn("conversation not closed", "order_id", orderID, "chat_id", chatID, "error", err)
		return
	}
	w.hub.ConversationClosed(ctx, chatID, orderID)
}

func (w *TelegramWebhook) ownsAssignment(chatID string, orderID int64) bool {
	assignment, err := w.board.Get(orderID)
	if err != nil || assignment.CourierID != chatID {
		w.logger.Warn("action on unowned assignment", "order_id", orderID, "chat_id", chatID)
		return false
	}
	return true
}
