// Command main runs the database seeder for Gatherly.
package main

import (
	"flag"
	"log"

	"gatherly/internal/config"
	"gatherly/internal/database"
	"gatherly/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedFriendships(users); err != nil {
		log.Fatalf("Friendship seeding failed: %v", err)
	}
	if err := s.SeedSchedules(users); err != nil {
		log.Fatalf("Schedule seeding failed: %v", err)
	}

	log.Printf("Seeded %d users with friendships and schedules", len(users))
}
