package calendarsync

import (
	"context"
	"reflect"
	"testing"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/service"
)

type scheduleRepoStub struct {
	getWeekFn    func(context.Context, uint, time.Time) (*models.WeeklySchedule, error)
	upsertWeekFn func(context.Context, *models.WeeklySchedule) error
}

func (s *scheduleRepoStub) GetWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklySchedule, error) {
	return s.getWeekFn(ctx, userID, weekStart)
}
func (s *scheduleRepoStub) UpsertWeek(ctx context.Context, schedule *models.WeeklySchedule) error {
	return s.upsertWeekFn(ctx, schedule)
}
func (s *scheduleRepoStub) GetWeeksForUsers(context.Context, []uint, time.Time) ([]models.WeeklySchedule, error) {
	return nil, nil
}
func (s *scheduleRepoStub) DeleteWeek(context.Context, uint, time.Time) error { return nil }

type defaultRepoStub struct{}

func (defaultRepoStub) Get(context.Context, uint) (*models.DefaultSchedule, error) { return nil, nil }
func (defaultRepoStub) Save(context.Context, *models.DefaultSchedule) error        { return nil }

type fetcherStub struct {
	busy []BusyPeriod
	err  error
}

func (f *fetcherStub) FetchBusy(context.Context, *models.CalendarSyncAccount, time.Time, time.Time) ([]BusyPeriod, error) {
	return f.busy, f.err
}

func TestBusyIntervalsByDay(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // Monday

	busy := []BusyPeriod{
		// Within Wednesday.
		{Start: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), End: time.Date(2026, 8, 26, 13, 30, 0, 0, time.UTC)},
		// Spans Friday midnight into Saturday.
		{Start: time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC), End: time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)},
		// Entirely outside the week.
		{Start: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)},
	}

	byDay := busyIntervalsByDay(busy, weekStart)

	if got := byDay["wednesday"]; !reflect.DeepEqual(got, []service.BusyInterval{{Start: 12 * 60, End: 13*60 + 30}}) {
		t.Fatalf("wednesday = %+v", got)
	}
	if got := byDay["friday"]; !reflect.DeepEqual(got, []service.BusyInterval{{Start: 22 * 60, End: 24 * 60}}) {
		t.Fatalf("friday = %+v", got)
	}
	if got := byDay["saturday"]; !reflect.DeepEqual(got, []service.BusyInterval{{Start: 0, End: 60}}) {
		t.Fatalf("saturday = %+v", got)
	}
	if _, ok := byDay["monday"]; ok {
		t.Fatal("monday should have no busy intervals")
	}
}

func TestSyncUserSubtractsBusyTimes(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	stored := &models.WeeklySchedule{UserID: 1, WeekStart: weekStart}
	if err := stored.SetDays(models.WeekAvailability{
		"wednesday": {Available: true, Start: "09:00", End: "17:00", TimeRanges: []models.TimeRange{{Start: "09:00", End: "17:00"}}},
	}); err != nil {
		t.Fatal(err)
	}

	var upserts []*models.WeeklySchedule
	schedules := &scheduleRepoStub{
		getWeekFn: func(_ context.Context, _ uint, ws time.Time) (*models.WeeklySchedule, error) {
			if ws.Equal(weekStart) {
				return stored, nil
			}
			return nil, nil
		},
		upsertWeekFn: func(_ context.Context, schedule *models.WeeklySchedule) error {
			upserts = append(upserts, schedule)
			return nil
		},
	}

	availability := service.NewAvailabilityService(schedules, defaultRepoStub{})
	fetcher := &fetcherStub{busy: []BusyPeriod{
		{Start: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), End: time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)},
	}}

	syncer := NewSyncer(nil, schedules, availability, fetcher)
	syncer.SetClock(func() time.Time {
		return time.Date(2026, 8, 26, 3, 0, 0, 0, time.UTC)
	})

	account := &models.CalendarSyncAccount{ID: 1, UserID: 1, Provider: "google", SyncEnabled: true}
	if err := syncer.SyncUser(context.Background(), account); err != nil {
		t.Fatalf("SyncUser: %v", err)
	}

	// Only the week containing busy time is rewritten.
	if len(upserts) != 1 {
		t.Fatalf("upserts = %d", len(upserts))
	}
	if !upserts[0].WeekStart.Equal(weekStart) {
		t.Fatalf("upsert week = %v", upserts[0].WeekStart)
	}

	wednesday := upserts[0].Days()["wednesday"]
	want := []models.TimeRange{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}
	if !reflect.DeepEqual(wednesday.TimeRanges, want) {
		t.Fatalf("wednesday = %+v", wednesday.TimeRanges)
	}
	if wednesday.Start != "09:00" || wednesday.End != "12:00" {
		t.Fatalf("mirror fields = %s-%s", wednesday.Start, wednesday.End)
	}
}

func TestSyncUserFetchFailure(t *testing.T) {
	schedules := &scheduleRepoStub{
		getWeekFn: func(context.Context, uint, time.Time) (*models.WeeklySchedule, error) {
			t.Fatal("schedule read before a successful fetch")
			return nil, nil
		},
		upsertWeekFn: func(context.Context, *models.WeeklySchedule) error {
			t.Fatal("no writes on fetch failure")
			return nil
		},
	}

	availability := service.NewAvailabilityService(schedules, defaultRepoStub{})
	fetcher := &fetcherStub{err: models.NewExternalServiceError("Google Calendar", context.DeadlineExceeded)}

	syncer := NewSyncer(nil, schedules, availability, fetcher)
	account := &models.CalendarSyncAccount{ID: 1, UserID: 1, Provider: "google"}

	if err := syncer.SyncUser(context.Background(), account); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
