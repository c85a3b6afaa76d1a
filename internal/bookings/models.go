package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one purchase attempt for a set of seats in a show. The seat
// labels, categories and prices are snapshotted at creation so later template
// edits cannot change what the customer agreed to pay.
type Booking struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Reference string    `json:"reference" gorm:"not null;size:20;uniqueIndex"`

	EventID        uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	ShowInstanceID uuid.UUID `json:"show_instance_id" gorm:"type:uuid;not null;index"`
	ShowDate       string    `json:"show_date" gorm:"not null;size:10"`
	ShowTime       string    `json:"show_time" gorm:"not null;size:5"`
	Language       string    `json:"language" gorm:"not null;size:30"`

	Status        Status        `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	TotalSeats int     `json:"total_seats" gorm:"not null"`
	TotalPrice float64 `json:"total_price" gorm:"not null"`

	// ExpiresAt bounds the payment window of a pending booking. Cleared on
	// confirmation; the reaper sweeps whatever is still pending past it.
	ExpiresAt *time.Time `json:"expires_at" gorm:"index"`

	// Holder is the lease token the booking's seats are held under.
	Holder    string     `json:"-" gorm:"not null;size:255;index"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	DeviceID  string     `json:"-" gorm:"size:128"`
	SessionID string     `json:"-" gorm:"size:128"`

	Seats   []BookingSeat `json:"seats" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Tickets []Ticket      `json:"tickets,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BookingSeat is the price-and-position snapshot of one seat at the moment
// the booking was created.
type BookingSeat struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Label     string    `json:"label" gorm:"not null;size:20"`
	Category  string    `json:"category" gorm:"size:50"`
	Price     float64   `json:"price" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Ticket is issued per seat when a booking is confirmed. Redemption is a
// single conditional write on UsedAt so a ticket scans exactly once.
type Ticket struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID    uuid.UUID  `json:"booking_id" gorm:"type:uuid;not null;index"`
	TicketNumber string     `json:"ticket_number" gorm:"not null;size:20;uniqueIndex"`
	SeatLabel    string     `json:"seat_label" gorm:"not null;size:20"`
	Price        float64    `json:"price" gorm:"not null"`
	UsedAt       *time.Time `json:"used_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (Ticket) TableName() string {
	return "tickets"
}

// Expired reports whether the payment window has passed.
func (b *Booking) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}

// SeatLabels flattens the seat snapshot to its labels.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, len(b.Seats))
	for i, seat := range b.Seats {
		labels[i] = seat.Label
	}
	return labels
}
