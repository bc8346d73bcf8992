package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatherly/internal/models"
	"gatherly/internal/repository"
	"gatherly/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.WeeklySchedule{},
		&models.DefaultSchedule{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against an in-memory database with the clock
// pinned to Wednesday 2026-08-26, so week offset 0 is Monday 2026-08-24.
func newTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	defaultScheduleRepo := repository.NewDefaultScheduleRepository(db)

	s := &Server{
		db:                  db,
		userRepo:            userRepo,
		friendRepo:          friendRepo,
		scheduleRepo:        scheduleRepo,
		defaultScheduleRepo: defaultScheduleRepo,
	}
	s.availabilityService = service.NewAvailabilityService(scheduleRepo, defaultScheduleRepo)
	s.calendarService = service.NewCalendarService(s.availabilityService, friendRepo, userRepo)
	s.friendService = service.NewFriendService(friendRepo, userRepo)

	s.calendarService.SetClock(func() time.Time {
		return time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	})

	return s
}

func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, raw
}

func TestSubmitAvailabilityRoundTrip(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	user := models.User{Email: "ada@example.com", Phone: "+15550001111", Password: "pw"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	app := authedApp(user.ID)
	app.Post("/availability/submit", s.SubmitAvailability)
	app.Get("/availability/week/:weekOffset", s.GetAvailabilityWeek)

	// The week start is a Thursday; the server realigns it to its Monday.
	resp, raw := doJSON(t, app, http.MethodPost, "/availability/submit", fiber.Map{
		"week_start": "2026-08-27",
		"availability_data": fiber.Map{
			"monday": fiber.Map{
				"available":   true,
				"time_ranges": []fiber.Map{{"start": "09:00", "end": "17:00"}},
			},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/availability/week/0", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get week: expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var payload service.WeekPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.WeekStart != "2026-08-24" || payload.WeekEnd != "2026-08-30" {
		t.Fatalf("week bounds %s..%s", payload.WeekStart, payload.WeekEnd)
	}
	if payload.AutoAppliedDefault {
		t.Fatal("explicit submission should not be flagged as auto-applied")
	}
	monday := payload.AvailabilityData["monday"]
	if !monday.Available || monday.Start != "09:00" || monday.End != "17:00" {
		t.Fatalf("monday = %+v", monday)
	}
	if tuesday := payload.AvailabilityData["tuesday"]; tuesday.Available {
		t.Fatal("unsubmitted day should be padded unavailable")
	}
	if len(payload.Days) != 7 || payload.Days[0].Name != "monday" || payload.Days[0].Date != "2026-08-24" {
		t.Fatalf("days = %+v", payload.Days)
	}
}

func TestGetAvailabilityWeekAppliesDefaultTransiently(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	user := models.User{Email: "noa@example.com", Phone: "+15550002222", Password: "pw"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	app := authedApp(user.ID)
	app.Post("/availability/save-default", s.SaveDefaultSchedule)
	app.Get("/availability/week/:weekOffset", s.GetAvailabilityWeek)
	app.Get("/availability/has-default", s.HasDefaultSchedule)

	resp, raw := doJSON(t, app, http.MethodGet, "/availability/has-default", nil)
	if resp.StatusCode != http.StatusOK || !bytes.Contains(raw, []byte(`"has_default":false`)) {
		t.Fatalf("has-default before save: %d %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodPost, "/availability/save-default", fiber.Map{
		"week_offset": 1,
		"availability_data": fiber.Map{
			"friday": fiber.Map{"available": true, "all_day": true},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save-default: expected 200, got %d: %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/availability/week/3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get week: expected 200, got %d: %s", resp.StatusCode, raw)
	}
	var payload service.WeekPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !payload.AutoAppliedDefault {
		t.Fatal("template week should be flagged auto_applied_default")
	}
	friday := payload.AvailabilityData["friday"]
	if !friday.Available || friday.Start != models.AllDayStart || friday.End != models.AllDayEnd {
		t.Fatalf("friday = %+v", friday)
	}

	// The template is applied at read time only; no week row is written.
	var weekCount int64
	if err := db.Model(&models.WeeklySchedule{}).Where("user_id = ?", user.ID).Count(&weekCount).Error; err != nil {
		t.Fatalf("count weeks: %v", err)
	}
	if weekCount != 0 {
		t.Fatalf("expected no stored weeks, got %d", weekCount)
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/availability/has-default", nil)
	if resp.StatusCode != http.StatusOK || !bytes.Contains(raw, []byte(`"has_default":true`)) {
		t.Fatalf("has-default after save: %d %s", resp.StatusCode, raw)
	}
}

func TestGetAvailabilityWeekOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	app := authedApp(1)
	app.Get("/availability/week/:weekOffset", s.GetAvailabilityWeek)

	resp, raw := doJSON(t, app, http.MethodGet, "/availability/week/53", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, raw)
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "RANGE_ERROR" {
		t.Fatalf("code = %q, body = %s", body.Code, raw)
	}
}

func TestSubmitAvailabilityRejectsInvalidRange(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	app := authedApp(1)
	app.Post("/availability/submit", s.SubmitAvailability)

	resp, raw := doJSON(t, app, http.MethodPost, "/availability/submit", fiber.Map{
		"week_start": "2026-08-24",
		"availability_data": fiber.Map{
			"monday": fiber.Map{
				"available":   true,
				"time_ranges": []fiber.Map{{"start": "17:00", "end": "09:00"}},
			},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, raw)
	}

	var weekCount int64
	if err := db.Model(&models.WeeklySchedule{}).Count(&weekCount).Error; err != nil {
		t.Fatalf("count weeks: %v", err)
	}
	if weekCount != 0 {
		t.Fatalf("invalid submission was stored, count=%d", weekCount)
	}
}

func TestGetAvailabilityByDate(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	app := authedApp(1)
	app.Get("/availability/api/:date", s.GetAvailabilityByDate)

	resp, raw := doJSON(t, app, http.MethodGet, "/availability/api/2026-09-02", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}
	var payload service.WeekPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.WeekStart != "2026-08-31" {
		t.Fatalf("week start = %s", payload.WeekStart)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/availability/api/02-09-2026", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", resp.StatusCode)
	}
}
