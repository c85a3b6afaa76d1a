package shows

import (
	"time"

	"github.com/google/uuid"

	"sabhyata/internal/reservation"
)

// ShowInstance is one performance of an event, addressed by the slot
// (event, date, time, language). Instances are materialized lazily: the
// first seat-map request for a slot clones the event's published template.
type ShowInstance struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID  uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_show_slot,priority:1"`
	ShowDate string    `json:"show_date" gorm:"not null;size:10;uniqueIndex:idx_show_slot,priority:2"`
	ShowTime string    `json:"show_time" gorm:"not null;size:5;uniqueIndex:idx_show_slot,priority:3"`
	Language string    `json:"language" gorm:"not null;size:30;uniqueIndex:idx_show_slot,priority:4"`

	TemplateID    uuid.UUID `json:"template_id" gorm:"type:uuid;not null"`
	StagePosition string    `json:"stage_position" gorm:"size:20;default:'front'"`

	TotalSeats     int `json:"total_seats" gorm:"not null;default:0"`
	AvailableSeats int `json:"available_seats" gorm:"not null;default:0"`
	BookedSeats    int `json:"booked_seats" gorm:"not null;default:0"`

	Seats []Seat `json:"-" gorm:"foreignKey:ShowInstanceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Seat is the live, sellable copy of a template seat within one show.
// Holder and HeldAt carry the lease while Status is HELD; both are cleared
// on every transition out of HELD.
type Seat struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShowInstanceID uuid.UUID `json:"show_instance_id" gorm:"type:uuid;not null;uniqueIndex:idx_show_seat,priority:1"`
	Label          string    `json:"label" gorm:"not null;size:20;uniqueIndex:idx_show_seat,priority:2"`
	Row            string    `json:"row" gorm:"not null;size:10"`
	Number         int       `json:"number" gorm:"not null"`
	Section        string    `json:"section" gorm:"size:50"`
	Category       string    `json:"category" gorm:"not null;size:50"`
	Price          float64   `json:"price" gorm:"not null"`

	Status reservation.SeatStatus `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	Holder *string                `json:"-" gorm:"size:255"`
	HeldAt *time.Time             `json:"-"`

	PosX int `json:"pos_x" gorm:"default:0"`
	PosY int `json:"pos_y" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ShowInstance) TableName() string {
	return "show_instances"
}

func (Seat) TableName() string {
	return "show_seats"
}
