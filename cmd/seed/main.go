// Command main runs the database seeder for the feedback portal.
package main

import (
	"context"
	"flag"
	"log"

	"feedbackhub/internal/bootstrap"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of demo users to create")
	perUser := flag.Int("entries", 3, "Bug reports and feature requests per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Feedback(db, *numUsers, *perUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Drop any cached board lists so a running server picks up the new rows.
	cache.InvalidateBoard(context.Background())

	log.Printf("Done. All demo users share the password: %s", seed.DemoPassword)
}
