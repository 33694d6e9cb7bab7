// Package scheduler runs the periodic maintenance jobs of the API process.
package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/repository"
)

const purgeTimeout = time.Minute

// Scheduler manages cron jobs
type Scheduler struct {
	cron     *cron.Cron
	sessions repository.SessionRepository
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

func New(sessions repository.SessionRepository, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		schedule: schedule,
		logger:   logger.Named("scheduler"),
		now:      time.Now,
	}
}

// Start registers the session purge job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if _, err := s.PurgeSessions(ctx); err != nil {
			s.logger.Error("session purge failed", zap.Error(err))
		}
	})
	if err != nil {
		return errors.Wrapf(err, "register session purge with schedule %q", s.schedule)
	}
	s.cron.Start()
	s.logger.Info("cron scheduler started", zap.String("session_purge", s.schedule))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping cron scheduler")
	<-s.cron.Stop().Done()
}

// PurgeSessions deletes sessions that expired or were revoked.
func (s *Scheduler) PurgeSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.logger.Info("purged sessions", zap.Int64("deleted", n))
	return n, nil
}
