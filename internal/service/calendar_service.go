package service

import (
	"context"
	"sort"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/repository"
)

// CalendarService builds the merged calendar views from the viewer's and
// their accepted friends' resolved availability. All views are computed per
// request from the store; nothing here is cached or persisted.
type CalendarService struct {
	availability *AvailabilityService
	friendRepo   repository.FriendRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewCalendarService returns a new CalendarService.
func NewCalendarService(availability *AvailabilityService, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *CalendarService {
	return &CalendarService{
		availability: availability,
		friendRepo:   friendRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// SetClock overrides the service clock, for tests.
func (s *CalendarService) SetClock(now func() time.Time) {
	s.now = now
	s.availability.SetClock(now)
}

// WeekViewPayload is one calendar week of merged availability.
type WeekViewPayload struct {
	WeekStart string                 `json:"week_start"`
	Days      []models.DayDescriptor `json:"days"`
}

// MonthChunkPayload is a two-week slice of the merged calendar.
type MonthChunkPayload struct {
	Weeks []models.WeekDescriptor `json:"weeks"`
}

// BuildWeek builds the merged week view for a week offset.
func (s *CalendarService) BuildWeek(ctx context.Context, viewerID uint, offset int) (*WeekViewPayload, error) {
	weekStart, err := s.availability.WeekStartForOffset(offset)
	if err != nil {
		return nil, err
	}

	days, err := s.BuildRange(ctx, viewerID, weekStart, DaysPerWeek)
	if err != nil {
		return nil, err
	}

	return &WeekViewPayload{
		WeekStart: weekStart.Format(DateLayout),
		Days:      days,
	}, nil
}

// BuildMonthChunk builds two consecutive merged weeks for a chunk offset.
func (s *CalendarService) BuildMonthChunk(ctx context.Context, viewerID uint, offset int) (*MonthChunkPayload, error) {
	chunkStart, err := s.availability.ChunkStartForOffset(offset)
	if err != nil {
		return nil, err
	}

	days, err := s.BuildRange(ctx, viewerID, chunkStart, WeeksPerChunk*DaysPerWeek)
	if err != nil {
		return nil, err
	}

	weeks := make([]models.WeekDescriptor, 0, WeeksPerChunk)
	for w := 0; w < WeeksPerChunk; w++ {
		weeks = append(weeks, models.WeekDescriptor{
			WeekStart: chunkStart.AddDate(0, 0, w*DaysPerWeek).Format(DateLayout),
			Days:      days[w*DaysPerWeek : (w+1)*DaysPerWeek],
		})
	}

	return &MonthChunkPayload{Weeks: weeks}, nil
}

// BuildDay builds the merged view for a single date.
func (s *CalendarService) BuildDay(ctx context.Context, viewerID uint, dateStr string) (*models.DayDescriptor, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	days, err := s.BuildRange(ctx, viewerID, date, 1)
	if err != nil {
		return nil, err
	}
	return &days[0], nil
}

// BuildRange builds one DayDescriptor per date from start, in order. The
// viewer's and every accepted friend's week is resolved once per week covered
// by the range.
func (s *CalendarService) BuildRange(ctx context.Context, viewerID uint, start time.Time, numDays int) ([]models.DayDescriptor, error) {
	participants, err := s.participants(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// Resolve each participant once per week in the range.
	type weekKey struct {
		userID uint
		week   time.Time
	}
	resolved := make(map[weekKey]models.WeekAvailability)

	today := s.now().UTC().Format(DateLayout)
	days := make([]models.DayDescriptor, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := start.AddDate(0, 0, i)
		weekStart := models.WeekStartFor(date)
		dayName := models.WeekdayName(date)

		users := make([]models.DayUser, 0, len(participants))
		for _, p := range participants {
			key := weekKey{userID: p.ID, week: weekStart}
			week, ok := resolved[key]
			if !ok {
				week, _, err = s.availability.Resolve(ctx, p.ID, weekStart)
				if err != nil {
					return nil, err
				}
				resolved[key] = week
			}

			day := week.Day(dayName)
			if !day.Available || len(day.TimeRanges) == 0 {
				continue
			}

			colorIndex := int(p.ID % models.PaletteSize)
			if p.ID == viewerID {
				colorIndex = models.ViewerColorIndex
			}
			users = append(users, models.DayUser{
				UserID:        p.ID,
				Name:          p.FullName(),
				Initials:      p.Initials(),
				IsCurrentUser: p.ID == viewerID,
				ColorIndex:    colorIndex,
				TimeRanges:    day.TimeRanges,
				TimeSummary:   day.Summary(),
			})
		}

		weekday := date.Weekday().String()
		days = append(days, models.DayDescriptor{
			Date:      date.Format(DateLayout),
			DayName:   weekday,
			DayShort:  weekday[:3],
			DayNumber: date.Day(),
			IsToday:   date.Format(DateLayout) == today,
			Users:     users,
		})
	}

	return days, nil
}

// participants returns the viewer plus accepted friends, sorted by ascending
// user ID. The viewer sits in sorted position like everyone else.
func (s *CalendarService) participants(ctx context.Context, viewerID uint) ([]models.User, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.GetFriends(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	participants := append([]models.User{*viewer}, friends...)
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})
	return participants, nil
}
