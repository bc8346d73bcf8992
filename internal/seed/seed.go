// Package seed populates the database with development data.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"gatherly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

// Seeder creates development users, friendships, and schedules.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder returns a Seeder. A fixed seed keeps reruns reproducible.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(42)),
	}
}

// ClearAll wipes every seeded table.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"weekly_schedules",
		"default_schedules",
		"calendar_sync_accounts",
		"friendships",
		"users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

var firstNames = []string{
	"Alice", "Ben", "Carla", "Dmitri", "Elena", "Frank", "Grace", "Hassan",
	"Ines", "Jonas", "Kira", "Leo", "Mona", "Nils", "Omar", "Priya",
}

var lastNames = []string{
	"Anderson", "Brown", "Chen", "Diaz", "Evans", "Fischer", "Garcia",
	"Huang", "Iversen", "Jones", "Kim", "Lopez", "Muller", "Nguyen",
}

// SeedUsers creates n users with phone numbers, all sharing the password
// "GatherlyDev123!" for local testing.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("GatherlyDev123!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[s.rng.Intn(len(firstNames))]
		last := lastNames[s.rng.Intn(len(lastNames))]
		user := models.User{
			Email:            fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			Phone:            fmt.Sprintf("+1555%07d", i),
			Password:         string(hash),
			FirstName:        first,
			LastName:         last,
			SMSNotifications: s.rng.Intn(3) == 0,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFriendships links each user with a handful of accepted friends plus a
// few pending requests.
func (s *Seeder) SeedFriendships(users []models.User) error {
	for i := range users {
		links := 2 + s.rng.Intn(3)
		for l := 0; l < links; l++ {
			j := s.rng.Intn(len(users))
			if j == i {
				continue
			}
			var existing int64
			s.db.Model(&models.Friendship{}).
				Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
					users[i].ID, users[j].ID, users[j].ID, users[i].ID).
				Count(&existing)
			if existing > 0 {
				continue
			}

			status := models.FriendshipStatusAccepted
			if s.rng.Intn(4) == 0 {
				status = models.FriendshipStatusPending
			}
			friendship := models.Friendship{
				RequesterID: users[i].ID,
				AddresseeID: users[j].ID,
				Status:      status,
			}
			if err := s.db.Create(&friendship).Error; err != nil {
				return fmt.Errorf("creating friendship: %w", err)
			}
		}
	}
	return nil
}

// SeedSchedules gives most users a default template and fills in the current
// week explicitly for some of them.
func (s *Seeder) SeedSchedules(users []models.User) error {
	for _, user := range users {
		if s.rng.Intn(5) == 0 {
			continue // some users never set anything up
		}

		template := &models.DefaultSchedule{UserID: user.ID}
		if err := template.SetDays(s.randomWeek()); err != nil {
			return err
		}
		if err := s.db.Create(template).Error; err != nil {
			return fmt.Errorf("creating default schedule for user %d: %w", user.ID, err)
		}

		if s.rng.Intn(2) == 0 {
			week := &models.WeeklySchedule{
				UserID:    user.ID,
				WeekStart: models.WeekStartFor(nowFunc()),
			}
			if err := week.SetDays(s.randomWeek()); err != nil {
				return err
			}
			if err := s.db.Create(week).Error; err != nil {
				return fmt.Errorf("creating weekly schedule for user %d: %w", user.ID, err)
			}
		}
	}
	return nil
}

func (s *Seeder) randomWeek() models.WeekAvailability {
	starts := []string{"08:00", "09:00", "10:00", "17:00", "18:00", "19:00"}
	week := make(models.WeekAvailability, len(models.WeekdayNames))
	for _, name := range models.WeekdayNames {
		switch s.rng.Intn(4) {
		case 0:
			week[name] = models.UnavailableDay()
		case 1:
			week[name] = models.DayAvailability{Available: true, AllDay: true}
		default:
			start := starts[s.rng.Intn(len(starts))]
			m, _ := models.ClockMinutes(start)
			week[name] = models.DayAvailability{
				Available:  true,
				TimeRanges: []models.TimeRange{{Start: start, End: models.MinutesClock(m + 120 + 60*s.rng.Intn(3))}},
			}
		}
	}
	// Normalize derives the legacy start/end mirror fields.
	_ = week.Normalize()
	return week
}
