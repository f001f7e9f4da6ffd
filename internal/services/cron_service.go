package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	expirySvc *ExpiryService
	schedule  string
	logger    *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(expirySvc *ExpiryService, schedule string, logger *logrus.Logger) *CronService {
	// Seconds precision matches the configured schedule format
	c := cron.New(cron.WithSeconds())

	return &CronService{
		cron:      c,
		expirySvc: expirySvc,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start registers and starts all cron jobs
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.releaseExpiredJob)
	if err != nil {
		return fmt.Errorf("failed to schedule booking expiry job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("schedule", s.schedule).Info("Booking expiry sweeper started")
	return nil
}

// Stop stops the cron scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Booking expiry sweeper stopped")
}

func (s *CronService) releaseExpiredJob() {
	if _, err := s.expirySvc.ReleaseExpired(context.Background()); err != nil {
		s.logger.WithError(err).Error("Booking expiry sweep failed")
	}
}
