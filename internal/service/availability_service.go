// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"gatherly/internal/middleware"
	"gatherly/internal/models"
	"gatherly/internal/repository"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Paging horizon for week and month-chunk views. Offsets outside these
// bounds are rejected, not clamped.
const (
	MaxWeekOffset  = 52
	MaxChunkOffset = 25

	DaysPerWeek   = 7
	WeeksPerChunk = 2
)

// AvailabilityService manages weekly schedules and the default template.
type AvailabilityService struct {
	scheduleRepo repository.ScheduleRepository
	defaultRepo  repository.DefaultScheduleRepository
	now          func() time.Time
}

// NewAvailabilityService returns a new AvailabilityService.
func NewAvailabilityService(scheduleRepo repository.ScheduleRepository, defaultRepo repository.DefaultScheduleRepository) *AvailabilityService {
	return &AvailabilityService{
		scheduleRepo: scheduleRepo,
		defaultRepo:  defaultRepo,
		now:          time.Now,
	}
}

// SetClock overrides the service clock, for tests.
func (s *AvailabilityService) SetClock(now func() time.Time) {
	s.now = now
}

// CurrentWeekStart returns the Monday of the current week.
func (s *AvailabilityService) CurrentWeekStart() time.Time {
	return models.WeekStartFor(s.now())
}

// WeekStartForOffset resolves a week offset against the current week.
func (s *AvailabilityService) WeekStartForOffset(offset int) (time.Time, error) {
	if offset < 0 || offset > MaxWeekOffset {
		return time.Time{}, models.NewRangeError(fmt.Sprintf("week offset %d out of range [0, %d]", offset, MaxWeekOffset))
	}
	return s.CurrentWeekStart().AddDate(0, 0, offset*DaysPerWeek), nil
}

// ChunkStartForOffset resolves a month-chunk offset against the current week.
// A chunk is two consecutive weeks.
func (s *AvailabilityService) ChunkStartForOffset(offset int) (time.Time, error) {
	if offset < 0 || offset > MaxChunkOffset {
		return time.Time{}, models.NewRangeError(fmt.Sprintf("chunk offset %d out of range [0, %d]", offset, MaxChunkOffset))
	}
	return s.CurrentWeekStart().AddDate(0, 0, offset*WeeksPerChunk*DaysPerWeek), nil
}

// Resolve returns the availability for one user-week. An explicit stored week
// always wins. Weeks with no stored record are synthesized from the user's
// default template on every call and never written back; users without a
// template resolve to an all-unavailable week.
func (s *AvailabilityService) Resolve(ctx context.Context, userID uint, weekStart time.Time) (models.WeekAvailability, bool, error) {
	schedule, err := s.scheduleRepo.GetWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, false, err
	}
	if schedule != nil {
		return fillWeek(schedule.Days()), false, nil
	}

	template, err := s.defaultRepo.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if template != nil {
		middleware.DefaultScheduleApplies.Inc()
		return fillWeek(template.Days()), true, nil
	}

	return emptyWeek(), false, nil
}

// SubmitWeek validates and stores one week of availability, replacing any
// existing record for that week wholesale. The given week start is realigned
// to its Monday before the write.
func (s *AvailabilityService) SubmitWeek(ctx context.Context, userID uint, weekStartStr string, days models.WeekAvailability) error {
	weekStart, err := parseDate(weekStartStr)
	if err != nil {
		return err
	}
	weekStart = models.WeekStartFor(weekStart)

	if days == nil {
		return models.NewValidationError("availability_data is required")
	}
	if err := days.Normalize(); err != nil {
		return err
	}

	schedule := &models.WeeklySchedule{
		UserID:    userID,
		WeekStart: weekStart,
	}
	if err := schedule.SetDays(fillWeek(days)); err != nil {
		return err
	}
	return s.scheduleRepo.UpsertWeek(ctx, schedule)
}

// SaveDefault validates and stores the user's recurring template. Only the
// template is written; stored weeks are untouched and future weeks pick the
// template up at read time.
func (s *AvailabilityService) SaveDefault(ctx context.Context, userID uint, days models.WeekAvailability) error {
	if days == nil {
		return models.NewValidationError("availability_data is required")
	}
	if err := days.Normalize(); err != nil {
		return err
	}

	template := &models.DefaultSchedule{UserID: userID}
	if err := template.SetDays(fillWeek(days)); err != nil {
		return err
	}
	return s.defaultRepo.Save(ctx, template)
}

// HasDefault reports whether the user has saved a recurring template.
func (s *AvailabilityService) HasDefault(ctx context.Context, userID uint) (bool, error) {
	template, err := s.defaultRepo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return template != nil, nil
}

// WeekDay pairs a weekday name with its concrete date for display.
type WeekDay struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// WeekPayload is the availability editor's view of one week.
type WeekPayload struct {
	WeekStart          string                  `json:"week_start"`
	WeekEnd            string                  `json:"week_end"`
	Days               []WeekDay               `json:"days"`
	AvailabilityData   models.WeekAvailability `json:"availability_data"`
	AutoAppliedDefault bool                    `json:"auto_applied_default"`
}

// GetWeekPayload resolves the availability editor payload for a week offset.
func (s *AvailabilityService) GetWeekPayload(ctx context.Context, userID uint, offset int) (*WeekPayload, error) {
	weekStart, err := s.WeekStartForOffset(offset)
	if err != nil {
		return nil, err
	}
	return s.buildWeekPayload(ctx, userID, weekStart)
}

// GetWeekPayloadForDate resolves the availability editor payload for the week
// containing a date.
func (s *AvailabilityService) GetWeekPayloadForDate(ctx context.Context, userID uint, dateStr string) (*WeekPayload, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return s.buildWeekPayload(ctx, userID, models.WeekStartFor(date))
}

func (s *AvailabilityService) buildWeekPayload(ctx context.Context, userID uint, weekStart time.Time) (*WeekPayload, error) {
	days, autoApplied, err := s.Resolve(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	weekDays := make([]WeekDay, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		date := weekStart.AddDate(0, 0, i)
		weekDays = append(weekDays, WeekDay{
			Name: models.WeekdayName(date),
			Date: date.Format(DateLayout),
		})
	}

	return &WeekPayload{
		WeekStart:          weekStart.Format(DateLayout),
		WeekEnd:            weekStart.AddDate(0, 0, DaysPerWeek-1).Format(DateLayout),
		Days:               weekDays,
		AvailabilityData:   days,
		AutoAppliedDefault: autoApplied,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, models.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// emptyWeek returns an all-unavailable week with every weekday present.
func emptyWeek() models.WeekAvailability {
	week := make(models.WeekAvailability, DaysPerWeek)
	for _, name := range models.WeekdayNames {
		week[name] = models.UnavailableDay()
	}
	return week
}

// fillWeek ensures every weekday key is present, padding missing days as
// unavailable.
func fillWeek(days models.WeekAvailability) models.WeekAvailability {
	week := emptyWeek()
	for name, day := range days {
		week[name] = day
	}
	return week
}
