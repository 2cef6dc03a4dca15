package jobs

import (
	"context"
	"log/slog"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
	"boutique/internal/core/ports"
	"boutique/internal/notifications"

	"github.com/robfig/cron/v3"
)

// DispatchRetryJob re-offers pending orders that are not on the board, the
// case where intake hit a routing gap or the process restarted between
// commit and enqueue. Runs every minute.
type DispatchRetryJob struct {
	orders ports.OrderRepository
	router *services.ZoneRouter
	board  *services.DispatchBoard
	hub    *notifications.Hub
	cron   *cron.Cron
	logger *slog.Logger
}

// NewDispatchRetryJob creates the retry job.
func NewDispatchRetryJob(
	orders ports.OrderRepository,
	router *services.ZoneRouter,
	board *services.DispatchBoard,
	hub *notifications.Hub,
	logger *slog.Logger,
) *DispatchRetryJob {
	return &DispatchRetryJob{
		orders: orders,
		router: router,
		board:  board,
		hub:    hub,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "dispatch_retry_job"),
	}
}

// Start begins the retry job, running at the top of every minute.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started (running every minute)")
	return nil
}

// Stop stops the retry job.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

func (j *DispatchRetryJob) run(ctx context.Context) {
	open, err := j.orders.GetAllNonTerminal(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch retry job failed", "error", err)
		return
	}

	for _, o := range open {
		if o.Status() != order.Pending || j.board.Contains(o.ID()) {
			continue
		}

		zone, zoneErr := j.router.ZoneByName(o.Zone())
		if zoneErr != nil || zone.CourierID == "" {
			// intake already warned the admin about this gap
			continue
		}

		j.board.Enqueue(o.ID(), zone.CourierID, zone.Name, o.Customer(), o.CreatedAt())
		j.hub.DispatchCard(ctx, zone.CourierID, o)
		j.logger.InfoContext(ctx, "Pending order re-offered", "order_id", o.ID(), "zone", zone.Name)
	}
}
