package shows

import (
	"time"

	"sabhyata/internal/reservation"
)

// ResolveShowRequest addresses a performance slot. Date and time are kept as
// strings on purpose; the slot is a calendar-local identity, not an instant.
type ResolveShowRequest struct {
	EventID  string `form:"event_id" json:"event_id" binding:"required,uuid"`
	ShowDate string `form:"show_date" json:"show_date" binding:"required,showdate"`
	ShowTime string `form:"show_time" json:"show_time" binding:"required,len=5"`
	Language string `form:"language" json:"language" binding:"required,min=2,max=30"`
}

type HoldSeatsRequest struct {
	Seats []string `json:"seats" binding:"required,min=1,dive,required,max=20"`
}

type ReleaseSeatsRequest struct {
	Seats []string `json:"seats" binding:"required,min=1,dive,required,max=20"`
}

// SeatView is one seat as shown to a browsing client. Holder identity never
// leaves the server; the client only learns whether the seat is takeable.
type SeatView struct {
	Label    string                 `json:"label"`
	Row      string                 `json:"row"`
	Number   int                    `json:"number"`
	Section  string                 `json:"section,omitempty"`
	Category string                 `json:"category"`
	Price    float64                `json:"price"`
	Status   reservation.SeatStatus `json:"status"`
	Mine     bool                   `json:"mine,omitempty"`
	PosX     int                    `json:"pos_x"`
	PosY     int                    `json:"pos_y"`
}

type SeatMapResponse struct {
	ShowInstanceID string               `json:"show_instance_id"`
	EventID        string               `json:"event_id"`
	ShowDate       string               `json:"show_date"`
	ShowTime       string               `json:"show_time"`
	Language       string               `json:"language"`
	StagePosition  string               `json:"stage_position"`
	Counters       reservation.Counters `json:"counters"`
	Seats          []SeatView           `json:"seats"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

type ShowInstanceResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	ShowDate       string    `json:"show_date"`
	ShowTime       string    `json:"show_time"`
	Language       string    `json:"language"`
	StagePosition  string    `json:"stage_position"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	BookedSeats    int       `json:"booked_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

type HoldSeatsResponse struct {
	ShowInstanceID string    `json:"show_instance_id"`
	Seats          []string  `json:"seats"`
	HoldExpiresAt  time.Time `json:"hold_expires_at"`
}

func (s *ShowInstance) ToResponse() ShowInstanceResponse {
	return ShowInstanceResponse{
		ID:             s.ID.String(),
		EventID:        s.EventID.String(),
		ShowDate:       s.ShowDate,
		ShowTime:       s.ShowTime,
		Language:       s.Language,
		StagePosition:  s.StagePosition,
		TotalSeats:     s.TotalSeats,
		AvailableSeats: s.AvailableSeats,
		BookedSeats:    s.BookedSeats,
		CreatedAt:      s.CreatedAt,
	}
}
