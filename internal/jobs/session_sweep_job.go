package jobs

import (
	"context"
	"log/slog"

	"boutique/internal/pkg/sessions"

	"github.com/robfig/cron/v3"
)

// SessionSweepJob purges expired admin session tokens. Expired tokens are
// also dropped lazily on lookup; the sweep keeps the store from holding
// tokens nobody presents again. Runs every minute.
type SessionSweepJob struct {
	store  *sessions.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSessionSweepJob creates the sweep job.
func NewSessionSweepJob(store *sessions.Store, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "session_sweep_job"),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *SessionSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		if purged := j.store.Sweep(); purged > 0 {
			j.logger.DebugContext(context.Background(), "Expired sessions purged", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *SessionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
