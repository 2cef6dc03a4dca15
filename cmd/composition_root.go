package cmd

import (
	"context"
	"log/slog"

	"boutique/internal/adapters/in/http"
	"boutique/internal/adapters/out/postgres"
	"boutique/internal/adapters/out/telegram"
	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/application/usecases/queries"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
	"boutique/internal/jobs"
	"boutique/internal/notifications"
	"boutique/internal/pkg/sessions"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, the domain services and the handlers.
// The dispatch board, router, loyalty policy and notification hub are all
// process-wide singletons shared by the HTTP server, the webhook and the jobs.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	board    *services.DispatchBoard
	router   *services.ZoneRouter
	loyalty  services.LoyaltyPolicy
	hub      *notifications.Hub
	sessions *sessions.Store
	logger   *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	zones, err := config.ParseZones()
	if err != nil {
		return nil, err
	}

	router, err := services.NewZoneRouter(zones, config.DefaultZone)
	if err != nil {
		return nil, err
	}

	opts := []telegram.Option{}
	if config.TelegramAPIURL != "" {
		opts = append(opts, telegram.WithBaseURL(config.TelegramAPIURL))
	}
	messenger := telegram.NewClient(config.TelegramToken, opts...)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		board:      services.NewDispatchBoard(),
		router:     router,
		loyalty:    config.Loyalty(),
		hub:        notifications.NewHub(messenger, logger, config.AdminChatID, config.SupportChatID),
		sessions:   sessions.NewStore(config.SessionTTL()),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, &c.loyalty, c.router, c.board, c.hub)
}

func (c *CompositionRoot) CreateReviewCustomerCommandHandler() commands.ReviewCustomerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewCustomerCommandHandler(f, &c.loyalty, c.router, c.board, c.hub)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDeliveryCommandHandler(f, c.board, c.hub)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.board, c.hub)
}

func (c *CompositionRoot) CreateRefuseOrderCommandHandler() commands.RefuseOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefuseOrderCommandHandler(f, c.board, c.hub)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.board)
}

func (c *CompositionRoot) CreateRecordStockMovementCommandHandler() commands.RecordStockMovementCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordStockMovementCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockReportQueryHandler() queries.GetStockReportQueryHandler {
	return queries.NewGetStockReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateReviewCustomerCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateRecordStockMovementCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetStockReportQueryHandler(),
		c.CreateGetLedgerQueryHandler(),
		c.sessions,
		c.config.AdminPassword,
	)
}

func (c *CompositionRoot) CreateTelegramWebhook() *http.TelegramWebhook {
	return http.NewTelegramWebhook(
		c.CreateReviewCustomerCommandHandler(),
		c.CreateStartDeliveryCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateRefuseOrderCommandHandler(),
		c.uowFactory.Create().OrderRepository(),
		c.board,
		c.hub,
		c.config.AdminChatID,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	orders := c.uowFactory.Create().OrderRepository()
	stock := c.uowFactory.Create().StockRepository()

	return jobs.NewJobManager(
		jobs.NewDispatchRetryJob(orders, c.router, c.board, c.hub, c.logger),
		jobs.NewLowStockJob(stock, c.hub, c.config.StockThreshold(), c.logger),
		jobs.NewSessionSweepJob(c.sessions, c.logger),
	)
}

// RebuildBoard repopulates the in-memory dispatch board after a restart.
// Every pending order whose zone has a courier goes back on that courier's
// queue in creation order. Conversations do not survive a restart.
func (c *CompositionRoot) RebuildBoard(ctx context.Context) error {
	orders, err := c.uowFactory.Create().OrderRepository().GetAllNonTerminal(ctx)
	if err != nil {
		return err
	}

	restored := 0
	for _, o := range orders {
		if o.Status() != order.Pending && o.Status() != order.EnRoute {
			continue
		}

		zone, zoneErr := c.router.ZoneByName(o.Zone())
		if zoneErr != nil || zone.CourierID == "" {
			c.logger.Warn("order has no routable courier, left off the board",
				"order_id", o.ID(), "zone", o.Zone())
			continue
		}

		c.board.Enqueue(o.ID(), zone.CourierID, o.Zone(), o.Customer(), o.CreatedAt())
		restored++
	}

	c.logger.Info("dispatch board rebuilt", "assignments", restored)
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
