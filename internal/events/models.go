package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a theatrical production. Individual performances live in the
// shows package as show instances; the event only carries the identity and
// presentation data shared by all of them.
type Event struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name            string    `json:"name" gorm:"not null;size:255"`
	Slug            string    `json:"slug" gorm:"not null;size:255;uniqueIndex"`
	Description     string    `json:"description" gorm:"type:text"`
	Venue           string    `json:"venue" gorm:"not null;size:255"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Status          Status    `json:"status" gorm:"type:varchar(20);default:'UPCOMING'"`
	ImageURL        string    `json:"image_url" gorm:"size:500"`

	CreatedBy *uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Venue           string    `json:"venue"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Name            string `json:"name" binding:"required,min=3,max=255"`
	Description     string `json:"description" binding:"max=2000"`
	Venue           string `json:"venue" binding:"required,min=3,max=255"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=600"`
	ImageURL        string `json:"image_url" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=3,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Venue           *string `json:"venue" binding:"omitempty,min=3,max=255"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1,max=600"`
	Status          *string `json:"status" binding:"omitempty,oneof=UPCOMING ACTIVE ENDED"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}

type EventListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=UPCOMING ACTIVE ENDED"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:              e.ID.String(),
		Name:            e.Name,
		Slug:            e.Slug,
		Description:     e.Description,
		Venue:           e.Venue,
		DurationMinutes: e.DurationMinutes,
		Status:          e.Status,
		ImageURL:        e.ImageURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
