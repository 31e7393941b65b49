package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher reloads the data behind the dashboard.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler re-fetches dashboard data on a cron spec. It is a periodic full
// reload, nothing is pushed from the backend.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	target  Refresher
	timeout time.Duration
	log     zerolog.Logger
}

// NewScheduler accepts six-field specs (with seconds) and descriptors such
// as "@every 5m". An empty spec disables the job.
func NewScheduler(spec string, target Refresher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		target:  target,
		timeout: 30 * time.Second,
		log:     log.With().Str("job", "dashboard_refresh").Logger(),
	}
}

func (s *Scheduler) Start() error {
	if s.spec == "" || s.target == nil {
		s.log.Debug().Msg("dashboard refresh disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("dashboard refresh scheduled")
	return nil
}

// Stop waits for a running refresh to finish, at most five seconds.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("refresh still running at shutdown")
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.target.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("dashboard refresh failed")
		return
	}
	s.log.Debug().Dur("took", time.Since(start)).Msg("dashboard refreshed")
}
