// Package jobs runs the background cron jobs: weekly availability reminders
// and periodic calendar sync.
package jobs

import (
	"context"

	"gatherly/internal/calendarsync"
	"gatherly/internal/config"
	"gatherly/internal/middleware"
	"gatherly/internal/notify"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron runner. Jobs are fire-and-forget and share the
// store with request handling but never coordinate with it.
type Scheduler struct {
	cron      *cron.Cron
	cfg       *config.Config
	reminders *notify.ReminderService
	syncer    *calendarsync.Syncer
}

// NewScheduler returns a new Scheduler. Either job may be nil when its
// feature is unconfigured.
func NewScheduler(cfg *config.Config, reminders *notify.ReminderService, syncer *calendarsync.Syncer) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		cfg:       cfg,
		reminders: reminders,
		syncer:    syncer,
	}
}

// Start registers the configured jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.reminders != nil {
		if _, err := s.cron.AddFunc(s.cfg.ReminderCron, func() {
			middleware.Logger.Info("starting weekly reminder job")
			s.reminders.SendWeeklyReminders(context.Background())
		}); err != nil {
			return err
		}
		middleware.Logger.Info("scheduled weekly reminder job", "cron", s.cfg.ReminderCron)
	}

	if s.syncer != nil {
		if _, err := s.cron.AddFunc(s.cfg.CalendarSyncCron, func() {
			middleware.Logger.Info("starting calendar sync job")
			s.syncer.SyncAll(context.Background())
		}); err != nil {
			return err
		}
		middleware.Logger.Info("scheduled calendar sync job", "cron", s.cfg.CalendarSyncCron)
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
