package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/domain/upload"
	"genhub/services/web-frontend/internal/infrastructure/logger"
	"genhub/services/web-frontend/internal/utils/platformerrors"
)

const (
	DefaultSweepInterval = 5                // in minutes
	settledRetention     = 15 * time.Minute // how long settled submissions stay queryable
)

// Crontab schedules the periodic sweeps that keep in-memory state bounded:
// expired upload sessions release their preview handles, settled
// submissions are dropped, stale cached users are evicted.
type Crontab struct {
	ctab     *crontab.Crontab
	uploads  *upload.Store
	runs     *run.Controller
	sessions *session.Store
}

func NewCrontab(uploads *upload.Store, runs *run.Controller, sessions *session.Store) *Crontab {
	return &Crontab{
		ctab:     crontab.New(),
		uploads:  uploads,
		runs:     runs,
		sessions: sessions,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	interval := DefaultSweepInterval
	if cfg := config.GetGlobal(); cfg != nil && cfg.SweepIntervalMinutes > 0 {
		interval = cfg.SweepIntervalMinutes
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", interval)
	if err := c.ctab.AddJob(cronExpr, func() {
		uploads := c.uploads.SweepExpired()
		runs := c.runs.Sweep(settledRetention)
		users := c.sessions.SweepExpired()
		if uploads > 0 || runs > 0 || users > 0 {
			log.Info().
				Int("upload_sessions", uploads).
				Int("submissions", runs).
				Int("cached_users", users).
				Msg("sweep completed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add sweep job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}
