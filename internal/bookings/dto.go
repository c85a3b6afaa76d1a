package bookings

import "time"

type CreateBookingRequest struct {
	ShowInstanceID string   `json:"show_instance_id" binding:"required,uuid"`
	Seats          []string `json:"seats" binding:"required,min=1,dive,required,max=20"`
}

type BookingResponse struct {
	Booking       *Booking   `json:"booking"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
}

// BookingEvent is published to the booking events topic on every lifecycle
// transition.
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	Reference      string    `json:"reference"`
	EventID        string    `json:"event_id"`
	ShowInstanceID string    `json:"show_instance_id"`
	Seats          []string  `json:"seats"`
	TotalPrice     float64   `json:"total_price"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Lifecycle event types.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
	EventBookingRefunded  = "booking.refunded"
)
