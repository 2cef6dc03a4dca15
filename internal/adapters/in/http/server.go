// Package http exposes the storefront intake and the admin surface over
// echo, plus the Telegram webhook the couriers and the admin act through.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/application/usecases/queries"
	"boutique/internal/core/domain/model/customer"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/model/stock"
	"boutique/internal/core/domain/services"
	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/sessions"

	"github.com/labstack/echo/v4"
)

const adminTokenHeader = "X-Admin-Token"

// Server handles the JSON API: order intake from the storefront and the
// token-guarded admin surface.
type Server struct {
	createOrderHandler         commands.CreateOrderCommandHandler
	reviewCustomerHandler      commands.ReviewCustomerCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	recordStockMovementHandler commands.RecordStockMovementCommandHandler

	getOrdersHandler      queries.GetOrdersQueryHandler
	getStockReportHandler queries.GetStockReportQueryHandler
	getLedgerHandler      queries.GetLedgerQueryHandler

	sessions      *sessions.Store
	adminPassword string
}

// NewServer creates the API server.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	reviewCustomerHandler commands.ReviewCustomerCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	recordStockMovementHandler commands.RecordStockMovementCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getStockReportHandler queries.GetStockReportQueryHandler,
	getLedgerHandler queries.GetLedgerQueryHandler,
	sessionStore *sessions.Store,
	adminPassword string,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		reviewCustomerHandler:      reviewCustomerHandler,
		cancelOrderHandler:         cancelOrderHandler,
		recordStockMovementHandler: recordStockMovementHandler,
		getOrdersHandler:           getOrdersHandler,
		getStockReportHandler:      getStockReportHandler,
		getLedgerHandler:           getLedgerHandler,
		sessions:                   sessionStore,
		adminPassword:              adminPassword,
	}
}

// RegisterRoutes mounts the public and admin routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/orders", s.CreateOrder)
	e.POST("/api/admin/login", s.Login)

	admin := e.Group("/api/admin", s.requireAdmin)
	admin.POST("/logout", s.Logout)
	admin.GET("/orders", s.GetOrders)
	admin.DELETE("/orders/:id", s.CancelOrder)
	admin.POST("/customers/:handle/review", s.ReviewCustomer)
	admin.GET("/stock", s.GetStock)
	admin.GET("/stock/movements", s.GetStockMovements)
	admin.POST("/stock/movements", s.RecordStockMovement)
	admin.GET("/transactions", s.GetTransactions)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one cart line of an intake request.
type NewOrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// NewOrderRequest is the storefront intake payload.
type NewOrderRequest struct {
	Customer     string         `json:"customer"`
	DeliveryType string         `json:"delivery_type"`
	Address      string         `json:"address"`
	Items        []NewOrderItem `json:"items"`
	Total        float64        `json:"total"`
}

// NewOrderResponse is the intake outcome.
type NewOrderResponse struct {
	OrderID          int64   `json:"order_id"`
	Discount         float64 `json:"discount"`
	RequiresApproval bool    `json:"requires_approval"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/orders - storefront intake.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items := make([]commands.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.LineItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Variant:   item.Variant,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(req.Customer, req.DeliveryType, req.Address, items, req.Total)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{
		OrderID:          result.OrderID,
		Discount:         result.Discount,
		RequiresApproval: result.RequiresApproval,
	})
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/admin/login - exchanges the admin password for a
// session token.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword)) != 1 {
		return jsonError(ctx, http.StatusUnauthorized, "Invalid password")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: s.sessions.Issue()})
}

// Logout handles POST /api/admin/logout - revokes the presented token ahead
// of its expiry.
func (s *Server) Logout(ctx echo.Context) error {
	s.sessions.Revoke(ctx.Request().Header.Get(adminTokenHeader))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token := ctx.Request().Header.Get(adminTokenHeader)
		if token == "" || !s.sessions.Valid(token) {
			return jsonError(ctx, http.StatusUnauthorized, "Missing or expired admin token")
		}
		return next(ctx)
	}
}

// GetOrders handles GET /api/admin/orders - the order listing, optionally
// filtered by ?status= and capped by ?limit=.
func (s *Server) GetOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetOrdersQuery(ctx.QueryParam("status"), limit)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CancelOrder handles DELETE /api/admin/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "id must be an integer")
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewRequest is the verdict payload for a pending customer.
type ReviewRequest struct {
	Action   string `json:"action"`
	Reviewer string `json:"reviewer"`
	Reason   string `json:"reason"`
}

// ReviewResponse reports how many orders the verdict touched.
type ReviewResponse struct {
	Affected int `json:"affected"`
}

// ReviewCustomer handles POST /api/admin/customers/:handle/review.
func (s *Server) ReviewCustomer(ctx echo.Context) error {
	var req ReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewReviewCustomerCommand(
		ctx.Param("handle"), commands.ReviewAction(req.Action), req.Reviewer, req.Reason)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.reviewCustomerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReviewResponse{Affected: result.Affected})
}

// GetStock handles GET /api/admin/stock - current line quantities.
func (s *Server) GetStock(ctx echo.Context) error {
	query, err := queries.NewGetStockReportQuery(0)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	report, err := s.getStockReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve stock")
	}

	return ctx.JSON(http.StatusOK, report.Lines)
}

// GetStockMovements handles GET /api/admin/stock/movements - the recent
// journal, capped by ?limit=.
func (s *Server) GetStockMovements(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetStockReportQuery(limit)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	report, err := s.getStockReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve stock movements")
	}

	return ctx.JSON(http.StatusOK, report.Movements)
}

// StockMovementRequest is a manual stock correction payload.
type StockMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Variant   string `json:"variant"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// StockMovementResponse reports the line quantity after the correction.
type StockMovementResponse struct {
	Quantity int `json:"quantity"`
}

// RecordStockMovement handles POST /api/admin/stock/movements - a restock
// or a write-off. Cancelled orders never restock automatically; an inbound
// movement here is how an operator puts that stock back.
func (s *Server) RecordStockMovement(ctx echo.Context) error {
	var req StockMovementRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRecordStockMovementCommand(
		req.ProductID, req.Variant, stock.Direction(req.Direction), req.Quantity, req.Reason)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.recordStockMovementHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StockMovementResponse{Quantity: result.Quantity})
}

// GetTransactions handles GET /api/admin/transactions - the financial
// journal, optionally filtered by ?category= and capped by ?limit=.
func (s *Server) GetTransactions(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return jsonError(ctx, http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetLedgerQuery(ctx.QueryParam("category"), limit)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	entries, err := s.getLedgerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve transactions")
	}

	return ctx.JSON(http.StatusOK, entries)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// mapDomainError translates use case failures to HTTP statuses: validation
// to 400, trust rejection to 403, unknown ids to 404, lost races and state
// machine violations to 409.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, customer.ErrCustomerBlocked):
		return jsonError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, customer.ErrIllegalTrustTransition),
		errors.Is(err, commands.ErrOrderNotAssignedToCourier):
		return jsonError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	default:
		return jsonError(ctx, http.StatusInternalServerError, "Internal error")
	}
}
