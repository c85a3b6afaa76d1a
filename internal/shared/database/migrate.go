package database

import (
	"sabhyata/internal/bookings"
	"sabhyata/internal/events"
	"sabhyata/internal/shows"
	"sabhyata/internal/templates"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&events.Event{},
		&templates.SeatTemplate{},
		&templates.TemplateSeat{},
		&templates.CategoryPrice{},
		&shows.ShowInstance{},
		&shows.Seat{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.Ticket{},
	)
}
