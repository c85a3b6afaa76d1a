package main

import (
	"fmt"
	"log"

	"sabhyata/internal/events"
	"sabhyata/internal/shared/config"
	"sabhyata/internal/shared/database"
	"sabhyata/internal/templates"

	"github.com/gosimple/slug"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Sabhyata Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"booking_seats",
		"bookings",
		"show_seats",
		"show_instances",
		"template_seats",
		"category_prices",
		"seat_templates",
		"events",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates a demo event with a published template so shows can be
// resolved immediately.
func (s *Seeder) SeedAll() error {
	eventRepo := events.NewRepository(s.db.GetPostgreSQL())
	templateRepo := templates.NewRepository(s.db.GetPostgreSQL())

	demoEvents := []struct {
		Name        string
		Description string
		Venue       string
		Duration    int
	}{
		{
			Name:        "Sabhyata - The Timeless Saga",
			Description: "A theatrical journey through five millennia of history, told in light, sound and dance.",
			Venue:       "Purana Qila Amphitheatre, New Delhi",
			Duration:    90,
		},
		{
			Name:        "Echoes of the Yamuna",
			Description: "An open-air musical on the river that carried an empire.",
			Venue:       "Purana Qila Amphitheatre, New Delhi",
			Duration:    75,
		},
	}

	for _, de := range demoEvents {
		event := &events.Event{
			Name:            de.Name,
			Slug:            slug.Make(de.Name),
			Description:     de.Description,
			Venue:           de.Venue,
			DurationMinutes: de.Duration,
			Status:          events.StatusActive,
		}
		if err := eventRepo.Create(event); err != nil {
			return fmt.Errorf("failed to seed event %q: %w", de.Name, err)
		}
		fmt.Printf("  ✅ Event: %s\n", event.Name)

		template := buildDemoTemplate(event)
		if err := templateRepo.Create(template); err != nil {
			return fmt.Errorf("failed to seed template for %q: %w", de.Name, err)
		}
		fmt.Printf("  ✅ Template: %d seats, %d categories\n", len(template.Seats), len(template.Categories))
	}

	return nil
}

// buildDemoTemplate lays out a small amphitheatre: two premium rows, three
// gold rows, five silver rows, with a blocked tech booth seat.
func buildDemoTemplate(event *events.Event) *templates.SeatTemplate {
	template := &templates.SeatTemplate{
		EventID:       event.ID,
		Name:          event.Name + " - Amphitheatre Layout",
		Published:     true,
		StagePosition: "front",
		Categories: []templates.CategoryPrice{
			{Category: "PREMIUM", Price: 1499, Currency: "INR"},
			{Category: "GOLD", Price: 999, Currency: "INR"},
			{Category: "SILVER", Price: 499, Currency: "INR"},
		},
	}

	rows := []struct {
		Name     string
		Category string
		Count    int
	}{
		{"A", "PREMIUM", 10},
		{"B", "PREMIUM", 10},
		{"C", "GOLD", 12},
		{"D", "GOLD", 12},
		{"E", "GOLD", 12},
		{"F", "SILVER", 14},
		{"G", "SILVER", 14},
		{"H", "SILVER", 14},
		{"J", "SILVER", 14},
		{"K", "SILVER", 14},
	}

	for y, row := range rows {
		for n := 1; n <= row.Count; n++ {
			seat := templates.TemplateSeat{
				Label:    fmt.Sprintf("%s%d", row.Name, n),
				Row:      row.Name,
				Number:   n,
				Category: row.Category,
				Status:   templates.SeatStatusAvailable,
				PosX:     n,
				PosY:     y + 1,
			}
			// Tech booth occupies the last seat of the back row.
			if row.Name == "K" && n == row.Count {
				seat.Status = templates.SeatStatusBlocked
			}
			template.Seats = append(template.Seats, seat)
		}
	}

	return template
}
