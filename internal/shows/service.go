package shows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabhyata/internal/reservation"
	"sabhyata/internal/shared/constants"
	"sabhyata/internal/templates"
	"sabhyata/pkg/cache"
	"sabhyata/pkg/logger"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)

	// ResolveShow returns the show instance for a slot, materializing it
	// from the event's published template on first access.
	ResolveShow(ctx context.Context, req ResolveShowRequest) (*ShowInstanceResponse, error)

	GetShow(ctx context.Context, id uuid.UUID) (*ShowInstanceResponse, error)
	ListShowsByEvent(ctx context.Context, eventID uuid.UUID) ([]ShowInstanceResponse, error)
	GetSeatMap(ctx context.Context, showInstanceID uuid.UUID, holder string) (*SeatMapResponse, error)
	GetSeatPricing(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error)

	HoldSeats(ctx context.Context, showInstanceID uuid.UUID, holder string, seats []string) (*HoldSeatsResponse, []reservation.Conflict, error)
	ReleaseSeats(ctx context.Context, showInstanceID uuid.UUID, holder string, seats []string) error

	// PropagateTemplate implements templates.Propagator.
	PropagateTemplate(ctx context.Context, eventID uuid.UUID) (*templates.PropagationResult, error)

	InvalidateSeatMap(ctx context.Context, showInstanceID uuid.UUID)
}

type service struct {
	repo         Repository
	templateRepo templates.Repository
	engine       reservation.Engine
	cacheService cache.Service
	holdTTL      time.Duration
	seatMapTTL   time.Duration
	log          *logger.Logger
}

func NewService(repo Repository, templateRepo templates.Repository, engine reservation.Engine, holdTTL, seatMapTTL time.Duration) Service {
	return &service{
		repo:         repo,
		templateRepo: templateRepo,
		engine:       engine,
		holdTTL:      holdTTL,
		seatMapTTL:   seatMapTTL,
		log:          logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ResolveShow(ctx context.Context, req ResolveShowRequest) (*ShowInstanceResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.New("invalid event ID")
	}

	if _, err := time.Parse(dateLayout, req.ShowDate); err != nil {
		return nil, fmt.Errorf("invalid show date %q, expected YYYY-MM-DD", req.ShowDate)
	}
	if _, err := time.Parse(timeLayout, req.ShowTime); err != nil {
		return nil, fmt.Errorf("invalid show time %q, expected HH:MM", req.ShowTime)
	}
	if req.ShowDate < time.Now().Format(dateLayout) {
		return nil, errors.New("cannot resolve a show in the past")
	}

	if instance, err := s.repo.GetBySlot(eventID, req.ShowDate, req.ShowTime, req.Language); err == nil {
		// Lapse dead leases so the availability counters reflect seats that
		// are takeable right now.
		freed, err := s.engine.SweepExpired(ctx, instance.ID)
		if err != nil {
			return nil, err
		}
		if freed > 0 {
			if instance, err = s.repo.GetByID(instance.ID); err != nil {
				return nil, err
			}
		}
		resp := instance.ToResponse()
		return &resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	template, err := s.templateRepo.GetByEventID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event has no seat template")
		}
		return nil, err
	}
	if !template.Published {
		return nil, errors.New("event's seat template is not published")
	}

	instance := buildInstance(template, eventID, req)

	if err := s.repo.Create(instance); err != nil {
		// Two first-accesses raced on the same slot; the unique index picked
		// a winner and the loser adopts the winner's instance.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, readErr := s.repo.GetBySlot(eventID, req.ShowDate, req.ShowTime, req.Language)
			if readErr != nil {
				return nil, readErr
			}
			resp := existing.ToResponse()
			return &resp, nil
		}
		return nil, err
	}

	s.log.InfoWithContext(ctx, "Show instance materialized", map[string]interface{}{
		"show_instance_id": instance.ID.String(),
		"event_id":         eventID.String(),
		"show_date":        req.ShowDate,
		"show_time":        req.ShowTime,
		"language":         req.Language,
		"total_seats":      instance.TotalSeats,
	})

	resp := instance.ToResponse()
	return &resp, nil
}

func (s *service) GetShow(ctx context.Context, id uuid.UUID) (*ShowInstanceResponse, error) {
	instance, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("show not found")
		}
		return nil, err
	}
	resp := instance.ToResponse()
	return &resp, nil
}

func (s *service) ListShowsByEvent(ctx context.Context, eventID uuid.UUID) ([]ShowInstanceResponse, error) {
	instances, err := s.repo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}
	responses := make([]ShowInstanceResponse, len(instances))
	for i, instance := range instances {
		responses[i] = instance.ToResponse()
	}
	return responses, nil
}

// GetSeatMap returns the live seat map. Anonymous requests may be served from
// cache; identified requests always hit the database so the "mine" markers on
// the caller's own holds are accurate.
func (s *service) GetSeatMap(ctx context.Context, showInstanceID uuid.UUID, holder string) (*SeatMapResponse, error) {
	cacheKey := constants.BuildSeatMapKey(showInstanceID.String())
	if holder == "" && s.cacheService != nil {
		var cached SeatMapResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	// Lapse expired leases so the map never shows a dead hold as taken.
	if _, err := s.engine.SweepExpired(ctx, showInstanceID); err != nil {
		return nil, err
	}

	instance, err := s.repo.GetByID(showInstanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("show not found")
		}
		return nil, err
	}

	seats, err := s.repo.GetSeats(showInstanceID)
	if err != nil {
		return nil, err
	}

	resp := &SeatMapResponse{
		ShowInstanceID: instance.ID.String(),
		EventID:        instance.EventID.String(),
		ShowDate:       instance.ShowDate,
		ShowTime:       instance.ShowTime,
		Language:       instance.Language,
		StagePosition:  instance.StagePosition,
		Counters: reservation.Counters{
			Total:     instance.TotalSeats,
			Available: instance.AvailableSeats,
			Booked:    instance.BookedSeats,
		},
		Seats:       make([]SeatView, len(seats)),
		GeneratedAt: time.Now().UTC(),
	}

	for i, seat := range seats {
		view := SeatView{
			Label:    seat.Label,
			Row:      seat.Row,
			Number:   seat.Number,
			Section:  seat.Section,
			Category: seat.Category,
			Price:    seat.Price,
			Status:   seat.Status,
			PosX:     seat.PosX,
			PosY:     seat.PosY,
		}
		if holder != "" && seat.Status == reservation.SeatStatusHeld &&
			seat.Holder != nil && *seat.Holder == holder {
			view.Mine = true
		}
		resp.Seats[i] = view
	}

	if holder == "" && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, s.seatMapTTL); err != nil {
			s.log.WithError(err).Warn("failed to cache seat map", "show_instance_id", showInstanceID.String())
		}
	}

	return resp, nil
}

func (s *service) GetSeatPricing(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error) {
	seats, err := s.repo.GetSeats(showInstanceID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		wanted[label] = struct{}{}
	}

	prices := make(map[string]float64, len(labels))
	for _, seat := range seats {
		if _, ok := wanted[seat.Label]; ok {
			prices[seat.Label] = seat.Price
		}
	}

	for _, label := range labels {
		if _, ok := prices[label]; !ok {
			return nil, fmt.Errorf("seat %q does not exist for this show", label)
		}
	}

	return prices, nil
}

func (s *service) HoldSeats(ctx context.Context, showInstanceID uuid.UUID, holder string, seats []string) (*HoldSeatsResponse, []reservation.Conflict, error) {
	if _, err := s.repo.GetByID(showInstanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("show not found")
		}
		return nil, nil, err
	}

	conflicts, err := s.engine.Hold(ctx, showInstanceID, holder, seats)
	if err != nil {
		if errors.Is(err, reservation.ErrSeatConflict) {
			s.log.LogSeatConflict(ctx, showInstanceID.String(), holder, reservation.ConflictLabels(conflicts))
		}
		return nil, conflicts, err
	}

	s.InvalidateSeatMap(ctx, showInstanceID)
	s.log.LogSeatsHeld(ctx, showInstanceID.String(), holder, seats)

	return &HoldSeatsResponse{
		ShowInstanceID: showInstanceID.String(),
		Seats:          seats,
		HoldExpiresAt:  time.Now().UTC().Add(s.holdTTL),
	}, nil, nil
}

func (s *service) ReleaseSeats(ctx context.Context, showInstanceID uuid.UUID, holder string, seats []string) error {
	if err := s.engine.Release(ctx, showInstanceID, holder, seats); err != nil {
		return err
	}
	s.InvalidateSeatMap(ctx, showInstanceID)
	return nil
}

// PropagateTemplate pushes the event's published template into every show of
// the event that has not happened yet. Past shows are historical record and
// are never rewritten.
func (s *service) PropagateTemplate(ctx context.Context, eventID uuid.UUID) (*templates.PropagationResult, error) {
	template, err := s.templateRepo.GetByEventID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("event has no seat template")
		}
		return nil, err
	}
	if !template.Published {
		return nil, errors.New("template is not published")
	}

	today := time.Now().Format(dateLayout)
	instances, err := s.repo.ListFutureByEvent(eventID, today)
	if err != nil {
		return nil, err
	}

	result := &templates.PropagationResult{}
	now := time.Now().UTC()

	for _, instance := range instances {
		// Lapse dead leases first so they do not block the merge.
		if _, err := s.engine.SweepExpired(ctx, instance.ID); err != nil {
			return result, err
		}

		seats, err := s.repo.GetSeats(instance.ID)
		if err != nil {
			return result, err
		}

		patch := MergeSeats(template, seats, s.holdTTL, now)
		if patch.Empty() && patch.Skipped == 0 {
			continue
		}

		if err := s.repo.ApplySeatPatch(instance.ID, patch); err != nil {
			return result, fmt.Errorf("failed to propagate to show %s: %w", instance.ID, err)
		}

		if !patch.Empty() {
			result.ShowsUpdated++
		}
		result.SeatsInserted += len(patch.Inserts)
		result.SeatsUpdated += len(patch.Updates)
		result.SeatsDeleted += len(patch.DeleteIDs)
		result.SeatsSkipped += patch.Skipped

		s.InvalidateSeatMap(ctx, instance.ID)
	}

	return result, nil
}

func (s *service) InvalidateSeatMap(ctx context.Context, showInstanceID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.BuildSeatMapPattern(showInstanceID.String())); err != nil {
		s.log.WithError(err).Warn("failed to invalidate seat map cache", "show_instance_id", showInstanceID.String())
	}
}

// buildInstance clones the published template into a fresh show instance for
// the requested slot.
func buildInstance(template *templates.SeatTemplate, eventID uuid.UUID, req ResolveShowRequest) *ShowInstance {
	seats := make([]Seat, 0, len(template.Seats))
	var total, available int
	for _, ts := range template.Seats {
		price, _ := template.PriceFor(ts.Category)
		seat := cloneTemplateSeat(ts, price)
		seats = append(seats, seat)

		if seat.Status != reservation.SeatStatusBlocked {
			total++
			available++
		}
	}

	return &ShowInstance{
		EventID:        eventID,
		ShowDate:       req.ShowDate,
		ShowTime:       req.ShowTime,
		Language:       req.Language,
		TemplateID:     template.ID,
		StagePosition:  template.StagePosition,
		TotalSeats:     total,
		AvailableSeats: available,
		BookedSeats:    0,
		Seats:          seats,
	}
}
