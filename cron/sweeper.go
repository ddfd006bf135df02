package cron

import (
	"context"
	"time"

	"hotelsupport/services/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSessionSweeper purges idle sessions on schedule. Callers stop the
// returned scheduler on shutdown.
func StartSessionSweeper(mgr *session.Manager, schedule string, ttl time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		purged, err := mgr.Sweep(ctx, ttl)
		if err != nil {
			logger.Error("Session sweep failed", zap.Error(err))
			return
		}
		if purged > 0 {
			logger.Info("Idle sessions purged", zap.Int("count", purged))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
