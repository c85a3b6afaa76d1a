package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabhyata/pkg/logger"
)

// Propagator pushes a published template's layout into the event's future
// show instances. Implemented by the shows package; declared here to avoid a
// package cycle.
type Propagator interface {
	PropagateTemplate(ctx context.Context, eventID uuid.UUID) (*PropagationResult, error)
}

type Service interface {
	// Service dependency injection
	SetPropagator(propagator Propagator)

	CreateTemplate(req CreateTemplateRequest) (*TemplateResponse, error)
	GetTemplate(id uuid.UUID) (*TemplateResponse, error)
	GetTemplateByEvent(eventID uuid.UUID) (*TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, *PropagationResult, error)
	PublishTemplate(id uuid.UUID) (*TemplateResponse, error)
	UpdateCategoryPrice(ctx context.Context, id uuid.UUID, category string, req UpdateCategoryPriceRequest) (*PropagationResult, error)
	Propagate(ctx context.Context, id uuid.UUID) (*PropagationResult, error)
	DeleteTemplate(id uuid.UUID) error
}

type service struct {
	repo       Repository
	propagator Propagator
	log        *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetPropagator(propagator Propagator) {
	s.propagator = propagator
}

func (s *service) CreateTemplate(req CreateTemplateRequest) (*TemplateResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	seats, categories, err := buildLayout(req.Seats, req.Categories)
	if err != nil {
		return nil, err
	}

	template := &SeatTemplate{
		EventID:       eventID,
		Name:          req.Name,
		StagePosition: defaultStagePosition(req.StagePosition),
		Seats:         seats,
		Categories:    categories,
	}

	if err := s.repo.Create(template); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("event already has a seat template")
		}
		return nil, err
	}

	return toTemplateResponse(template), nil
}

func (s *service) GetTemplate(id uuid.UUID) (*TemplateResponse, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("template not found")
		}
		return nil, err
	}
	return toTemplateResponse(template), nil
}

func (s *service) GetTemplateByEvent(eventID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.repo.GetByEventID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("template not found")
		}
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// UpdateTemplate replaces the layout and, when the template is already
// published, pushes the change into every future show of the event.
func (s *service) UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, *PropagationResult, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StagePosition != nil {
		updates["stage_position"] = *req.StagePosition
	}

	var seats []TemplateSeat
	var categories []CategoryPrice
	if req.Seats != nil || req.Categories != nil {
		if req.Seats == nil || req.Categories == nil {
			return nil, nil, errors.New("seats and categories must be updated together")
		}
		var err error
		seats, categories, err = buildLayout(req.Seats, req.Categories)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(updates) == 0 && seats == nil {
		return nil, nil, errors.New("no fields to update")
	}

	template, err := s.repo.ReplaceLayout(id, updates, seats, categories)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("template not found")
		}
		return nil, nil, err
	}

	var propagation *PropagationResult
	if template.Published && seats != nil {
		propagation, err = s.propagate(ctx, template)
		if err != nil {
			// The template update itself committed; surface the propagation
			// failure so the caller can retry it explicitly.
			return toTemplateResponse(template), nil, fmt.Errorf("template updated but propagation failed: %w", err)
		}
	}

	return toTemplateResponse(template), propagation, nil
}

func (s *service) PublishTemplate(id uuid.UUID) (*TemplateResponse, error) {
	if err := s.repo.SetPublished(id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("template not found")
		}
		return nil, err
	}

	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

func (s *service) UpdateCategoryPrice(ctx context.Context, id uuid.UUID, category string, req UpdateCategoryPriceRequest) (*PropagationResult, error) {
	if err := s.repo.UpdateCategoryPrice(id, category, req.Price, req.Currency); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found on template")
		}
		return nil, err
	}

	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !template.Published {
		return nil, nil
	}

	return s.propagate(ctx, template)
}

func (s *service) Propagate(ctx context.Context, id uuid.UUID) (*PropagationResult, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("template not found")
		}
		return nil, err
	}

	if !template.Published {
		return nil, errors.New("template is not published")
	}

	return s.propagate(ctx, template)
}

func (s *service) DeleteTemplate(id uuid.UUID) error {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("template not found")
		}
		return err
	}

	if template.Published {
		return errors.New("published templates cannot be deleted")
	}

	return s.repo.Delete(id)
}

func (s *service) propagate(ctx context.Context, template *SeatTemplate) (*PropagationResult, error) {
	if s.propagator == nil {
		return nil, errors.New("propagation service not available")
	}

	result, err := s.propagator.PropagateTemplate(ctx, template.EventID)
	if err != nil {
		return nil, err
	}

	s.log.InfoWithContext(ctx, "Template propagated", map[string]interface{}{
		"template_id":    template.ID.String(),
		"event_id":       template.EventID.String(),
		"shows_updated":  result.ShowsUpdated,
		"seats_inserted": result.SeatsInserted,
		"seats_updated":  result.SeatsUpdated,
		"seats_deleted":  result.SeatsDeleted,
		"seats_skipped":  result.SeatsSkipped,
	})

	return result, nil
}

// buildLayout validates a requested layout and converts it to model rows.
// Labels must be unique and every seat category needs a configured price.
func buildLayout(seatInputs []SeatInput, categoryInputs []CategoryPriceInput) ([]TemplateSeat, []CategoryPrice, error) {
	prices := make(map[string]struct{}, len(categoryInputs))
	categories := make([]CategoryPrice, 0, len(categoryInputs))
	for _, ci := range categoryInputs {
		if _, ok := prices[ci.Category]; ok {
			return nil, nil, fmt.Errorf("duplicate category %q", ci.Category)
		}
		prices[ci.Category] = struct{}{}
		currency := ci.Currency
		if currency == "" {
			currency = "INR"
		}
		categories = append(categories, CategoryPrice{
			Category: ci.Category,
			Price:    ci.Price,
			Currency: currency,
		})
	}

	labels := make(map[string]struct{}, len(seatInputs))
	seats := make([]TemplateSeat, 0, len(seatInputs))
	for _, si := range seatInputs {
		if _, ok := labels[si.Label]; ok {
			return nil, nil, fmt.Errorf("duplicate seat label %q", si.Label)
		}
		labels[si.Label] = struct{}{}

		if _, ok := prices[si.Category]; !ok {
			return nil, nil, fmt.Errorf("seat %q references category %q with no configured price", si.Label, si.Category)
		}

		status := SeatStatusAvailable
		if si.Blocked {
			status = SeatStatusBlocked
		}
		seats = append(seats, TemplateSeat{
			Label:    si.Label,
			Row:      si.Row,
			Number:   si.Number,
			Section:  si.Section,
			Category: si.Category,
			Status:   status,
			PosX:     si.PosX,
			PosY:     si.PosY,
		})
	}

	return seats, categories, nil
}

func defaultStagePosition(pos string) string {
	if pos == "" {
		return "front"
	}
	return pos
}

func toTemplateResponse(template *SeatTemplate) *TemplateResponse {
	resp := &TemplateResponse{Template: template}
	for _, seat := range template.Seats {
		if seat.Status == SeatStatusBlocked {
			resp.BlockedSeats++
		} else {
			resp.SellableSeat++
		}
	}
	return resp
}
