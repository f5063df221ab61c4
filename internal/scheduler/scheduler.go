package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher re-resolves the current location. It reports false when there
// was nothing to refresh.
type Refresher interface {
	Refresh() bool
}

// Scheduler periodically refreshes the controller's current location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. A nil logger means slog.Default().
func New(interval time.Duration, refresher Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// The first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("periodic refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("periodic refresh scheduled", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) run() {
	if s.refresher.Refresh() {
		s.logger.Debug("refresh started")
		return
	}
	s.logger.Debug("no location to refresh")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
