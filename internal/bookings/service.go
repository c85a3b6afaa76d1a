package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabhyata/internal/reservation"
	"sabhyata/internal/shows"
	"sabhyata/pkg/logger"
)

// ShowService is the slice of the shows service the booking flow needs.
type ShowService interface {
	GetShow(ctx context.Context, id uuid.UUID) (*shows.ShowInstanceResponse, error)
	GetSeatPricing(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error)
	InvalidateSeatMap(ctx context.Context, showInstanceID uuid.UUID)
}

// EventPublisher pushes lifecycle events to the booking events topic.
// Implemented by the notifications package.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

// Identity is who is creating the booking, as resolved by the middleware.
type Identity struct {
	Holder    string
	UserID    *uuid.UUID
	DeviceID  string
	SessionID string
}

type Service interface {
	// Service dependency injection
	SetEventPublisher(publisher EventPublisher)

	CreateBooking(ctx context.Context, identity Identity, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*Booking, error)
	ListMyBookings(ctx context.Context, holder string, limit int) ([]Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error)
	RefundBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	RedeemTicket(ctx context.Context, ticketNumber string) (*Ticket, error)

	// ExpireOverdue reclaims seats from pending bookings whose payment
	// window has passed. Called by the reaper loop.
	ExpireOverdue(ctx context.Context, batchSize int) (int, error)
}

type service struct {
	repo        Repository
	showService ShowService
	engine      reservation.Engine
	publisher   EventPublisher
	leaseWindow time.Duration
	maxSeats    int
	log         *logger.Logger
}

func NewService(repo Repository, showService ShowService, engine reservation.Engine, leaseWindow time.Duration, maxSeats int) Service {
	return &service{
		repo:        repo,
		showService: showService,
		engine:      engine,
		leaseWindow: leaseWindow,
		maxSeats:    maxSeats,
		log:         logger.GetDefault(),
	}
}

func (s *service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// CreateBooking holds the requested seats and opens a payment window. The
// hold and the booking row are two steps on purpose: the seat rows are the
// single source of truth, so a crash between them leaves only a lease that
// lapses on its own.
func (s *service) CreateBooking(ctx context.Context, identity Identity, req CreateBookingRequest) (*BookingResponse, error) {
	if len(req.Seats) > s.maxSeats {
		return nil, fmt.Errorf("cannot book more than %d seats at once", s.maxSeats)
	}

	showID, err := uuid.Parse(req.ShowInstanceID)
	if err != nil {
		return nil, errors.New("invalid show instance ID")
	}

	show, err := s.showService.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.engine.Hold(ctx, showID, identity.Holder, req.Seats)
	if err != nil {
		if errors.Is(err, reservation.ErrSeatConflict) {
			return nil, &SeatConflictError{Seats: reservation.ConflictLabels(conflicts)}
		}
		if errors.Is(err, reservation.ErrSeatNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hold seats: %w", err)
	}

	prices, err := s.showService.GetSeatPricing(ctx, showID, req.Seats)
	if err != nil {
		s.releaseBestEffort(ctx, showID, identity.Holder, req.Seats)
		return nil, err
	}

	eventID, err := uuid.Parse(show.EventID)
	if err != nil {
		s.releaseBestEffort(ctx, showID, identity.Holder, req.Seats)
		return nil, fmt.Errorf("show has invalid event ID: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.leaseWindow)

	booking := &Booking{
		Reference:      GenerateReference(now),
		EventID:        eventID,
		ShowInstanceID: showID,
		ShowDate:       show.ShowDate,
		ShowTime:       show.ShowTime,
		Language:       show.Language,
		Status:         StatusPending,
		PaymentStatus:  PaymentPending,
		TotalSeats:     len(req.Seats),
		ExpiresAt:      &expiresAt,
		Holder:         identity.Holder,
		UserID:         identity.UserID,
		DeviceID:       identity.DeviceID,
		SessionID:      identity.SessionID,
	}

	for _, label := range req.Seats {
		price := prices[label]
		booking.TotalPrice += price
		booking.Seats = append(booking.Seats, BookingSeat{Label: label, Price: price})
	}

	if err := s.repo.Create(booking); err != nil {
		s.releaseBestEffort(ctx, showID, identity.Holder, req.Seats)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.showService.InvalidateSeatMap(ctx, showID)
	s.publish(ctx, EventBookingCreated, booking)

	return &BookingResponse{Booking: booking, HoldExpiresAt: &expiresAt}, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error) {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if holder != "" && booking.Holder != holder {
		return nil, ErrNotBookingHolder
	}
	return booking, nil
}

func (s *service) GetBookingByReference(ctx context.Context, reference string) (*Booking, error) {
	booking, err := s.repo.GetByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *service) ListMyBookings(ctx context.Context, holder string, limit int) ([]Booking, error) {
	return s.repo.ListByHolder(holder, limit)
}

// ConfirmBooking finalizes a pending booking after payment. The seats are
// re-claimed and then booked, both as conditional writes, so a confirm racing
// with a competitor's hold or the reaper resolves to exactly one winner.
func (s *service) ConfirmBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error) {
	booking, err := s.GetBooking(ctx, id, holder)
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusPending {
		if booking.Status == StatusExpired {
			return nil, ErrBookingExpired
		}
		return nil, &InvalidTransitionError{From: booking.Status, To: StatusConfirmed}
	}

	now := time.Now().UTC()
	if booking.Expired(now) {
		// Payment window over: expire the booking now rather than waiting
		// for the reaper, then tell the caller.
		s.expireBooking(ctx, booking)
		return nil, ErrBookingExpired
	}

	labels := booking.SeatLabels()

	// Re-claim before booking: a lapsed lease on a still-free seat is
	// recovered here, while a seat taken by someone else surfaces as a
	// conflict below.
	if _, err := s.engine.Hold(ctx, booking.ShowInstanceID, booking.Holder, labels); err != nil {
		if errors.Is(err, reservation.ErrSeatConflict) {
			s.log.LogInconsistentState(ctx, booking.Reference, labels)
			return nil, &InconsistentStateError{Reference: booking.Reference, Seats: labels}
		}
		return nil, err
	}

	if _, err := s.engine.Book(ctx, booking.ShowInstanceID, booking.Holder, labels); err != nil {
		if errors.Is(err, reservation.ErrSeatConflict) {
			s.log.LogInconsistentState(ctx, booking.Reference, labels)
			return nil, &InconsistentStateError{Reference: booking.Reference, Seats: labels}
		}
		return nil, err
	}

	err = s.repo.Transition(id, StatusPending, StatusConfirmed, map[string]interface{}{
		"payment_status": PaymentPaid,
		"expires_at":     nil,
	})
	if err != nil {
		if errors.Is(err, ErrStaleTransition) {
			// The seats are booked but another actor flipped the booking
			// meanwhile. Surface it; never guess which side is right.
			s.log.LogInconsistentState(ctx, booking.Reference, labels)
			return nil, &InconsistentStateError{Reference: booking.Reference, Seats: labels}
		}
		return nil, err
	}

	tickets := make([]Ticket, len(booking.Seats))
	for i, seat := range booking.Seats {
		tickets[i] = Ticket{
			BookingID:    booking.ID,
			TicketNumber: GenerateTicketNumber(),
			SeatLabel:    seat.Label,
			Price:        seat.Price,
		}
	}
	if err := s.repo.CreateTickets(tickets); err != nil {
		return nil, fmt.Errorf("booking confirmed but ticket issuance failed: %w", err)
	}

	s.showService.InvalidateSeatMap(ctx, booking.ShowInstanceID)
	s.log.LogBookingConfirmed(ctx, booking.Reference, booking.ShowInstanceID.String(), len(labels))

	confirmed, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventBookingConfirmed, confirmed)
	return confirmed, nil
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, holder string) (*Booking, error) {
	booking, err := s.GetBooking(ctx, id, holder)
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusPending {
		return nil, &InvalidTransitionError{From: booking.Status, To: StatusCancelled}
	}

	// Free the seats first; release is idempotent so a retry after a partial
	// failure is safe.
	if err := s.engine.Release(ctx, booking.ShowInstanceID, booking.Holder, booking.SeatLabels()); err != nil {
		return nil, fmt.Errorf("failed to release seats: %w", err)
	}

	err = s.repo.Transition(id, StatusPending, StatusCancelled, map[string]interface{}{
		"payment_status": PaymentCancelled,
		"expires_at":     nil,
	})
	if err != nil {
		if errors.Is(err, ErrStaleTransition) {
			return nil, &InvalidTransitionError{From: booking.Status, To: StatusCancelled}
		}
		return nil, err
	}

	s.showService.InvalidateSeatMap(ctx, booking.ShowInstanceID)

	cancelled, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventBookingCancelled, cancelled)
	return cancelled, nil
}

// RefundBooking reverses a confirmed booking and returns its seats to the
// pool. Admin operation; payment gateway reversal happens out of band.
func (s *service) RefundBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.GetBooking(ctx, id, "")
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusConfirmed {
		return nil, &InvalidTransitionError{From: booking.Status, To: StatusRefunded}
	}

	if err := s.engine.Unbook(ctx, booking.ShowInstanceID, booking.SeatLabels()); err != nil {
		return nil, fmt.Errorf("failed to return seats: %w", err)
	}

	err = s.repo.Transition(id, StatusConfirmed, StatusRefunded, map[string]interface{}{
		"payment_status": PaymentRefunded,
	})
	if err != nil {
		if errors.Is(err, ErrStaleTransition) {
			return nil, &InvalidTransitionError{From: booking.Status, To: StatusRefunded}
		}
		return nil, err
	}

	s.showService.InvalidateSeatMap(ctx, booking.ShowInstanceID)

	refunded, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventBookingRefunded, refunded)
	return refunded, nil
}

// RedeemTicket scans a ticket. The write itself enforces single use, a
// CONFIRMED booking and the show date; a failed write is re-read here only to
// tell the gate attendant which condition rejected it.
func (s *service) RedeemTicket(ctx context.Context, ticketNumber string) (*Ticket, error) {
	now := time.Now().UTC()

	ticket, err := s.repo.RedeemTicket(ticketNumber, now)
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing, lookupErr := s.repo.GetTicketByNumber(ticketNumber)
	if lookupErr != nil {
		return nil, ErrTicketNotFound
	}
	if existing.UsedAt != nil {
		return nil, fmt.Errorf("ticket %s already used at %s", ticketNumber, existing.UsedAt.Format(time.RFC3339))
	}

	booking, lookupErr := s.repo.GetByID(existing.BookingID)
	if lookupErr != nil {
		return nil, fmt.Errorf("ticket %s could not be redeemed", ticketNumber)
	}
	if booking.Status != StatusConfirmed {
		return nil, fmt.Errorf("ticket %s belongs to a %s booking", ticketNumber, booking.Status)
	}
	if booking.ShowDate != now.Format("2006-01-02") {
		return nil, fmt.Errorf("ticket %s is only valid on %s", ticketNumber, booking.ShowDate)
	}
	return nil, fmt.Errorf("ticket %s could not be redeemed", ticketNumber)
}

func (s *service) ExpireOverdue(ctx context.Context, batchSize int) (int, error) {
	overdue, err := s.repo.ListExpired(time.Now().UTC(), batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue bookings: %w", err)
	}

	expired := 0
	for i := range overdue {
		if s.expireBooking(ctx, &overdue[i]) {
			expired++
		}
	}
	return expired, nil
}

// expireBooking releases the booking's seats and flips it to EXPIRED. Seats
// go first: if the release fails the booking stays PENDING and the next
// sweep retries, which is safe because release is idempotent.
func (s *service) expireBooking(ctx context.Context, booking *Booking) bool {
	if err := s.engine.Release(ctx, booking.ShowInstanceID, booking.Holder, booking.SeatLabels()); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to release seats of overdue booking", err, map[string]interface{}{
			"reference": booking.Reference,
		})
		return false
	}

	err := s.repo.Transition(booking.ID, StatusPending, StatusExpired, map[string]interface{}{
		"payment_status": PaymentCancelled,
	})
	if err != nil {
		// Lost the race against a confirm or cancel; their outcome stands.
		if !errors.Is(err, ErrStaleTransition) {
			s.log.ErrorWithContext(ctx, "Failed to expire booking", err, map[string]interface{}{
				"reference": booking.Reference,
			})
		}
		return false
	}

	s.showService.InvalidateSeatMap(ctx, booking.ShowInstanceID)
	s.log.LogBookingExpired(ctx, booking.Reference)
	s.publish(ctx, EventBookingExpired, booking)
	return true
}

func (s *service) releaseBestEffort(ctx context.Context, showID uuid.UUID, holder string, labels []string) {
	if err := s.engine.Release(ctx, showID, holder, labels); err != nil {
		// The lease lapses on its own; just record the failed cleanup.
		s.log.ErrorWithContext(ctx, "Failed to release seats after booking error", err, map[string]interface{}{
			"show_instance_id": showID.String(),
		})
	}
}

func (s *service) publish(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}

	event := BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID.String(),
		Reference:      booking.Reference,
		EventID:        booking.EventID.String(),
		ShowInstanceID: booking.ShowInstanceID.String(),
		Seats:          booking.SeatLabels(),
		TotalPrice:     booking.TotalPrice,
		OccurredAt:     time.Now().UTC(),
	}

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"type":      eventType,
			"reference": booking.Reference,
		})
	}
}
