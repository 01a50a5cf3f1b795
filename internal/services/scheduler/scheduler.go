// Package scheduler runs periodic quote collection in the background.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/services/stocks"
)

// collectTimeout bounds one scheduled collection run.
const collectTimeout = 10 * time.Minute

// Scheduler handles periodic quote collection
type Scheduler struct {
	service *stocks.Service
	cron    *cron.Cron
	logger  arbor.ILogger
}

// NewScheduler creates a new collection scheduler
func NewScheduler(service *stocks.Service, logger arbor.ILogger) *Scheduler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Scheduler{
		service: service,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start begins scheduled collection
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		// Default: every 30 minutes
		schedule = "*/30 * * * *"
	}

	if err := common.ValidateSchedule(schedule); err != nil {
		return err
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runCollection()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("Quote collection scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Quote collection scheduler stopped")
}

// RunNow triggers an immediate collection run
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate collection run")
	common.SafeGo(s.logger, "scheduler.collect", s.runCollection)
}

func (s *Scheduler) runCollection() {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	s.logger.Info().Msg("Starting scheduled collection")

	result, err := s.service.Collect(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Scheduled collection failed")
		return
	}

	s.logger.Info().
		Int("requested", result.Requested).
		Int("collected", result.Collected).
		Int("failed", len(result.Failed)).
		Msg("Scheduled collection completed")
}
