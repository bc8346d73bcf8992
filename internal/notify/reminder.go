package notify

import (
	"context"
	"fmt"
	"time"

	"gatherly/internal/middleware"
	"gatherly/internal/models"
	"gatherly/internal/repository"
)

// ReminderService sends weekly availability reminders to users who opted in
// and have not yet filled in next week's availability.
type ReminderService struct {
	userRepo     repository.UserRepository
	scheduleRepo repository.ScheduleRepository
	sender       SMSSender
	baseURL      string
	now          func() time.Time
}

// NewReminderService returns a new ReminderService.
func NewReminderService(userRepo repository.UserRepository, scheduleRepo repository.ScheduleRepository, sender SMSSender, baseURL string) *ReminderService {
	return &ReminderService{
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		sender:       sender,
		baseURL:      baseURL,
		now:          time.Now,
	}
}

// SetClock overrides the service clock, for tests.
func (s *ReminderService) SetClock(now func() time.Time) {
	s.now = now
}

// SendWeeklyReminders messages every opted-in user with a phone number who
// has no stored availability for next week. Send failures are counted and
// logged per user; the pass continues.
func (s *ReminderService) SendWeeklyReminders(ctx context.Context) {
	users, err := s.userRepo.ListSMSSubscribers(ctx)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "reminder job: listing subscribers failed", "error", err)
		return
	}

	nextWeekStart := models.WeekStartFor(s.now()).AddDate(0, 0, 7)

	sent, skipped, failed := 0, 0, 0
	for i := range users {
		user := &users[i]
		if user.Phone == "" {
			skipped++
			continue
		}

		schedule, err := s.scheduleRepo.GetWeek(ctx, user.ID, nextWeekStart)
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "reminder job: schedule lookup failed",
				"user_id", user.ID, "error", err)
			failed++
			continue
		}
		if schedule != nil {
			// Already filled in next week.
			skipped++
			continue
		}

		if err := s.sender.Send(ctx, user.Phone, s.reminderBody(user)); err != nil {
			middleware.RemindersSent.WithLabelValues("failed").Inc()
			middleware.Logger.ErrorContext(ctx, "reminder job: send failed",
				"user_id", user.ID, "error", err)
			failed++
			continue
		}
		middleware.RemindersSent.WithLabelValues("sent").Inc()
		sent++
	}

	middleware.Logger.InfoContext(ctx, "reminder job completed",
		"sent", sent,
		"skipped", skipped,
		"failed", failed,
	)
}

func (s *ReminderService) reminderBody(user *models.User) string {
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	return fmt.Sprintf(
		"Hi %s! Time to fill in your availability so you don't miss out on plans.\n\nUpdate your schedule here: %s/availability/week/1\n\n- Gatherly",
		name, s.baseURL,
	)
}
