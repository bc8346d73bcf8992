package calendarsync

import (
	"context"
	"time"

	"gatherly/internal/middleware"
	"gatherly/internal/models"
	"gatherly/internal/repository"
	"gatherly/internal/service"
)

// SyncHorizonWeeks is how far ahead busy times are imported.
const SyncHorizonWeeks = 4

// Syncer folds provider busy times into each linked user's stored weeks.
type Syncer struct {
	accountRepo  repository.CalendarSyncRepository
	scheduleRepo repository.ScheduleRepository
	availability *service.AvailabilityService
	fetcher      BusyFetcher
	now          func() time.Time
}

// NewSyncer returns a new Syncer.
func NewSyncer(accountRepo repository.CalendarSyncRepository, scheduleRepo repository.ScheduleRepository, availability *service.AvailabilityService, fetcher BusyFetcher) *Syncer {
	return &Syncer{
		accountRepo:  accountRepo,
		scheduleRepo: scheduleRepo,
		availability: availability,
		fetcher:      fetcher,
		now:          time.Now,
	}
}

// SetClock overrides the syncer clock, for tests.
func (s *Syncer) SetClock(now func() time.Time) {
	s.now = now
}

// SyncAll runs a sync pass over every enabled account. Provider failures are
// counted and logged per account; one failing account does not stop the pass.
func (s *Syncer) SyncAll(ctx context.Context) {
	accounts, err := s.accountRepo.ListEnabled(ctx)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "calendar sync: listing enabled accounts failed", "error", err)
		return
	}

	for i := range accounts {
		account := &accounts[i]
		if err := s.SyncUser(ctx, account); err != nil {
			middleware.CalendarSyncFailures.WithLabelValues(account.Provider).Inc()
			middleware.Logger.ErrorContext(ctx, "calendar sync failed",
				"user_id", account.UserID,
				"provider", account.Provider,
				"error", err,
			)
			continue
		}
		if err := s.accountRepo.TouchLastSync(ctx, account.ID, s.now().UTC()); err != nil {
			middleware.Logger.WarnContext(ctx, "calendar sync: updating last_sync failed",
				"user_id", account.UserID, "error", err)
		}
	}
}

// SyncUser imports the account's busy times for the coming weeks and
// subtracts them from the user's availability, storing the result. Weeks that
// end up unchanged are written anyway; the upsert is idempotent.
func (s *Syncer) SyncUser(ctx context.Context, account *models.CalendarSyncAccount) error {
	horizonStart := models.WeekStartFor(s.now())
	horizonEnd := horizonStart.AddDate(0, 0, SyncHorizonWeeks*7)

	busy, err := s.fetcher.FetchBusy(ctx, account, horizonStart, horizonEnd)
	if err != nil {
		return err
	}

	for w := 0; w < SyncHorizonWeeks; w++ {
		weekStart := horizonStart.AddDate(0, 0, w*7)

		week, _, err := s.availability.Resolve(ctx, account.UserID, weekStart)
		if err != nil {
			return err
		}

		busyByDay := busyIntervalsByDay(busy, weekStart)
		if len(busyByDay) == 0 {
			continue
		}

		adjusted := service.ApplyBusyTimes(week, busyByDay)

		schedule := &models.WeeklySchedule{
			UserID:    account.UserID,
			WeekStart: weekStart,
		}
		if err := schedule.SetDays(adjusted); err != nil {
			return err
		}
		if err := s.scheduleRepo.UpsertWeek(ctx, schedule); err != nil {
			return err
		}
	}

	return nil
}

// busyIntervalsByDay clips busy periods to each day of one week and converts
// them to minutes since midnight, keyed by weekday name. Periods spanning
// midnight contribute to both days.
func busyIntervalsByDay(busy []BusyPeriod, weekStart time.Time) map[string][]service.BusyInterval {
	byDay := make(map[string][]service.BusyInterval)
	for i := 0; i < 7; i++ {
		dayStart := weekStart.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		name := models.WeekdayName(dayStart)

		for _, b := range busy {
			if !b.End.After(dayStart) || !b.Start.Before(dayEnd) {
				continue
			}
			start := b.Start
			if start.Before(dayStart) {
				start = dayStart
			}
			end := b.End
			if end.After(dayEnd) {
				end = dayEnd
			}

			startMin := start.Hour()*60 + start.Minute()
			endMin := end.Hour()*60 + end.Minute()
			if endMin == 0 {
				endMin = 24 * 60
			}
			byDay[name] = append(byDay[name], service.BusyInterval{Start: startMin, End: endMin})
		}
	}
	return byDay
}
