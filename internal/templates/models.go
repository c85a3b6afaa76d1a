package templates

import (
	"time"

	"github.com/google/uuid"
)

// SeatStatus values a template seat can carry. A blocked seat exists in the
// layout but is never sellable in any show cloned from the template.
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusBlocked   = "BLOCKED"
)

// SeatTemplate is the master seat layout for an event. Every show instance
// of the event starts life as a clone of the published template.
type SeatTemplate struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID       uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Published     bool      `json:"published" gorm:"not null;default:false"`
	StagePosition string    `json:"stage_position" gorm:"size:20;default:'front'"`

	Seats      []TemplateSeat  `json:"seats" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Categories []CategoryPrice `json:"categories" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TemplateSeat is one seat in the master layout, addressed by its label.
type TemplateSeat struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TemplateID uuid.UUID `json:"template_id" gorm:"type:uuid;not null;uniqueIndex:idx_template_seat,priority:1"`
	Label      string    `json:"label" gorm:"not null;size:20;uniqueIndex:idx_template_seat,priority:2"`
	Row        string    `json:"row" gorm:"not null;size:10"`
	Number     int       `json:"number" gorm:"not null"`
	Section    string    `json:"section" gorm:"size:50"`
	Category   string    `json:"category" gorm:"not null;size:50"`
	Status     string    `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	PosX       int       `json:"pos_x" gorm:"default:0"`
	PosY       int       `json:"pos_y" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CategoryPrice is the price of one seat category within a template.
type CategoryPrice struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TemplateID uuid.UUID `json:"template_id" gorm:"type:uuid;not null;uniqueIndex:idx_template_category,priority:1"`
	Category   string    `json:"category" gorm:"not null;size:50;uniqueIndex:idx_template_category,priority:2"`
	Price      float64   `json:"price" gorm:"not null;check:price >= 0"`
	Currency   string    `json:"currency" gorm:"size:3;default:'INR'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SeatTemplate) TableName() string {
	return "seat_templates"
}

func (TemplateSeat) TableName() string {
	return "template_seats"
}

func (CategoryPrice) TableName() string {
	return "category_prices"
}

// PriceFor returns the configured price of a category, false if the category
// has no price entry.
func (t *SeatTemplate) PriceFor(category string) (float64, bool) {
	for _, cp := range t.Categories {
		if cp.Category == category {
			return cp.Price, true
		}
	}
	return 0, false
}
