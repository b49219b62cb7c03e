package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Snapshotter records the current dashboard.
type Snapshotter interface {
	Snapshot(ctx context.Context) (models.DashboardSnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron        *cron.Cron
	schedule    string
	snapshotter Snapshotter
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.SnapshotConfig, snapshotter Snapshotter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:        c,
		schedule:    cfg.CronSchedule,
		snapshotter: snapshotter,
		logger:      logger,
	}, nil
}

// Start registers the snapshot job and starts the scheduler. An empty
// schedule leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured; scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.takeSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	snapshot, err := s.snapshotter.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to take dashboard snapshot", zap.Error(err))
		return
	}

	s.logger.Info("dashboard snapshot taken",
		zap.String("snapshot_id", snapshot.ID.Hex()),
		zap.Int64("total_farmers", snapshot.TotalFarmers),
		zap.Float64("total_milk", snapshot.TotalMilk),
	)
}
