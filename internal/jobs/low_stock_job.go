package jobs

import (
	"context"
	"log/slog"

	"boutique/internal/core/ports"
	"boutique/internal/notifications"

	"github.com/robfig/cron/v3"
)

// LowStockJob reports stock lines under the configured threshold to the
// admin channel. Runs hourly; a quiet hour sends nothing.
type LowStockJob struct {
	stock     ports.StockRepository
	hub       *notifications.Hub
	threshold int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLowStockJob creates the low stock alert job.
func NewLowStockJob(
	stock ports.StockRepository,
	hub *notifications.Hub,
	threshold int,
	logger *slog.Logger,
) *LowStockJob {
	return &LowStockJob{
		stock:     stock,
		hub:       hub,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "low_stock_job"),
	}
}

// Start begins the job, running at the top of every hour.
func (j *LowStockJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		lines, listErr := j.stock.GetLinesBelow(ctx, j.threshold)
		if listErr != nil {
			j.logger.ErrorContext(ctx, "Low stock job failed", "error", listErr)
			return
		}
		j.hub.LowStock(ctx, lines, j.threshold)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock job started (running hourly)")
	return nil
}

// Stop stops the job.
func (j *LowStockJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Low stock job stopped")
}
