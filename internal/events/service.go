package events

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Service interface {
	CreateEvent(adminID *uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(id uuid.UUID) (*EventResponse, error)
	GetEventBySlug(slugStr string) (*EventResponse, error)
	UpdateEvent(id uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID) error
	GetAllEvents(query EventListQuery) (*PaginatedEvents, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEvent(adminID *uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	event := &Event{
		Name:            req.Name,
		Slug:            slug.Make(req.Name),
		Description:     req.Description,
		Venue:           req.Venue,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusUpcoming,
		ImageURL:        req.ImageURL,
		CreatedBy:       adminID,
	}

	if err := s.repo.Create(event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("an event with a similar name already exists")
		}
		return nil, err
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventByID(id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventBySlug(slugStr string) (*EventResponse, error) {
	event, err := s.repo.GetBySlug(slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, err
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) UpdateEvent(id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = slug.Make(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}

	event, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event not found")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("an event with a similar name already exists")
		}
		return nil, err
	}

	response := event.ToResponse()
	return &response, nil
}

func (s *service) DeleteEvent(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("event not found")
		}
		return err
	}

	return s.repo.Delete(id)
}

func (s *service) GetAllEvents(query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}
