package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabhyata/internal/reservation"
	"sabhyata/internal/shows"
)

type mockRepository struct {
	createFn       func(booking *Booking) error
	getByIDFn      func(id uuid.UUID) (*Booking, error)
	transitionFn   func(id uuid.UUID, from, to Status, updates map[string]interface{}) error
	createTickets  func(tickets []Ticket) error
	listExpiredFn  func(now time.Time, limit int) ([]Booking, error)
	redeemTicketFn func(ticketNumber string, now time.Time) (*Ticket, error)
	getTicketFn    func(ticketNumber string) (*Ticket, error)
}

func (m *mockRepository) Create(booking *Booking) error {
	if m.createFn != nil {
		return m.createFn(booking)
	}
	return nil
}

func (m *mockRepository) GetByID(id uuid.UUID) (*Booking, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetByReference(reference string) (*Booking, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) ListByHolder(holder string, limit int) ([]Booking, error) {
	return nil, nil
}

func (m *mockRepository) Transition(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
	if m.transitionFn != nil {
		return m.transitionFn(id, from, to, updates)
	}
	return nil
}

func (m *mockRepository) CreateTickets(tickets []Ticket) error {
	if m.createTickets != nil {
		return m.createTickets(tickets)
	}
	return nil
}

func (m *mockRepository) GetTicketByNumber(ticketNumber string) (*Ticket, error) {
	if m.getTicketFn != nil {
		return m.getTicketFn(ticketNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) RedeemTicket(ticketNumber string, now time.Time) (*Ticket, error) {
	if m.redeemTicketFn != nil {
		return m.redeemTicketFn(ticketNumber, now)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) ListExpired(now time.Time, limit int) ([]Booking, error) {
	if m.listExpiredFn != nil {
		return m.listExpiredFn(now, limit)
	}
	return nil, nil
}

type mockShowService struct {
	getShowFn       func(ctx context.Context, id uuid.UUID) (*shows.ShowInstanceResponse, error)
	getPricingFn    func(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error)
	invalidatedWith []uuid.UUID
}

func (m *mockShowService) GetShow(ctx context.Context, id uuid.UUID) (*shows.ShowInstanceResponse, error) {
	if m.getShowFn != nil {
		return m.getShowFn(ctx, id)
	}
	return &shows.ShowInstanceResponse{
		ID:       id.String(),
		EventID:  uuid.New().String(),
		ShowDate: "2026-09-15",
		ShowTime: "19:30",
		Language: "Hindi",
	}, nil
}

func (m *mockShowService) GetSeatPricing(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error) {
	if m.getPricingFn != nil {
		return m.getPricingFn(ctx, showInstanceID, labels)
	}
	prices := make(map[string]float64, len(labels))
	for _, label := range labels {
		prices[label] = 999
	}
	return prices, nil
}

func (m *mockShowService) InvalidateSeatMap(ctx context.Context, showInstanceID uuid.UUID) {
	m.invalidatedWith = append(m.invalidatedWith, showInstanceID)
}

type mockEngine struct {
	holdFn    func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error)
	releaseFn func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error
	bookFn    func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error)
	unbookFn  func(ctx context.Context, showInstanceID uuid.UUID, labels []string) error
}

func (m *mockEngine) Hold(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
	if m.holdFn != nil {
		return m.holdFn(ctx, showInstanceID, holder, labels)
	}
	return nil, nil
}

func (m *mockEngine) Release(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
	if m.releaseFn != nil {
		return m.releaseFn(ctx, showInstanceID, holder, labels)
	}
	return nil
}

func (m *mockEngine) Book(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
	if m.bookFn != nil {
		return m.bookFn(ctx, showInstanceID, holder, labels)
	}
	return nil, nil
}

func (m *mockEngine) Unbook(ctx context.Context, showInstanceID uuid.UUID, labels []string) error {
	if m.unbookFn != nil {
		return m.unbookFn(ctx, showInstanceID, labels)
	}
	return nil
}

func (m *mockEngine) SweepExpired(ctx context.Context, showInstanceID uuid.UUID) (int, error) {
	return 0, nil
}

func (m *mockEngine) SweepAllExpired(ctx context.Context) (int, error) {
	return 0, nil
}

const (
	testLeaseWindow = 7 * time.Minute
	testMaxSeats    = 6
)

func testIdentity() Identity {
	return Identity{Holder: "guest:d1:s1", DeviceID: "d1", SessionID: "s1"}
}

func pendingBooking(showID uuid.UUID, expiresAt time.Time) *Booking {
	return &Booking{
		ID:             uuid.New(),
		Reference:      GenerateReference(time.Now().UTC()),
		EventID:        uuid.New(),
		ShowInstanceID: showID,
		Status:         StatusPending,
		PaymentStatus:  PaymentPending,
		TotalSeats:     2,
		TotalPrice:     1998,
		ExpiresAt:      &expiresAt,
		Holder:         "guest:d1:s1",
		Seats: []BookingSeat{
			{Label: "C4", Price: 999},
			{Label: "C5", Price: 999},
		},
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	showID := uuid.New()
	var created *Booking

	repo := &mockRepository{
		createFn: func(b *Booking) error {
			created = b
			return nil
		},
	}
	showSvc := &mockShowService{}
	engine := &mockEngine{}

	svc := NewService(repo, showSvc, engine, testLeaseWindow, testMaxSeats)

	resp, err := svc.CreateBooking(context.Background(), testIdentity(), CreateBookingRequest{
		ShowInstanceID: showID.String(),
		Seats:          []string{"C4", "C5"},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, PaymentPending, created.PaymentStatus)
	assert.Equal(t, 2, created.TotalSeats)
	assert.Equal(t, 1998.0, created.TotalPrice)
	assert.Equal(t, "guest:d1:s1", created.Holder)
	require.NotNil(t, created.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(testLeaseWindow), *created.ExpiresAt, 2*time.Second)
	require.NotNil(t, resp.HoldExpiresAt)
	assert.Len(t, showSvc.invalidatedWith, 1)
}

func TestCreateBookingSeatConflict(t *testing.T) {
	createCalled := false
	repo := &mockRepository{
		createFn: func(b *Booking) error {
			createCalled = true
			return nil
		},
	}
	engine := &mockEngine{
		holdFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
			return []reservation.Conflict{
				{Label: "C4", Status: reservation.SeatStatusHeld, Holder: "user:other"},
			}, reservation.ErrSeatConflict
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.CreateBooking(context.Background(), testIdentity(), CreateBookingRequest{
		ShowInstanceID: uuid.New().String(),
		Seats:          []string{"C4", "C5"},
	})

	var conflictErr *SeatConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"C4"}, conflictErr.Seats)
	assert.True(t, errors.Is(err, reservation.ErrSeatConflict))
	assert.False(t, createCalled, "no booking row should be written on conflict")
}

func TestCreateBookingTooManySeats(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockShowService{}, &mockEngine{}, testLeaseWindow, 2)

	_, err := svc.CreateBooking(context.Background(), testIdentity(), CreateBookingRequest{
		ShowInstanceID: uuid.New().String(),
		Seats:          []string{"C4", "C5", "C6"},
	})

	assert.ErrorContains(t, err, "cannot book more than 2 seats")
}

func TestCreateBookingPricingFailureReleasesSeats(t *testing.T) {
	released := false
	engine := &mockEngine{
		releaseFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
			released = true
			assert.Equal(t, []string{"C4"}, labels)
			return nil
		},
	}
	showSvc := &mockShowService{
		getPricingFn: func(ctx context.Context, showInstanceID uuid.UUID, labels []string) (map[string]float64, error) {
			return nil, errors.New("seat \"C4\" does not exist for this show")
		},
	}

	svc := NewService(&mockRepository{}, showSvc, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.CreateBooking(context.Background(), testIdentity(), CreateBookingRequest{
		ShowInstanceID: uuid.New().String(),
		Seats:          []string{"C4"},
	})

	assert.Error(t, err)
	assert.True(t, released, "held seats must be released when the booking cannot be built")
}

func TestConfirmBookingPastWindowExpires(t *testing.T) {
	showID := uuid.New()
	booking := pendingBooking(showID, time.Now().UTC().Add(-time.Minute))

	released := false
	var transitionedTo Status

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			transitionedTo = to
			return nil
		},
	}
	engine := &mockEngine{
		releaseFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
			released = true
			return nil
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.ConfirmBooking(context.Background(), booking.ID, booking.Holder)

	assert.ErrorIs(t, err, ErrBookingExpired)
	assert.True(t, released, "seats must be freed before the booking is expired")
	assert.Equal(t, StatusExpired, transitionedTo)
}

func TestConfirmBookingSeatStolenStaysPending(t *testing.T) {
	showID := uuid.New()
	booking := pendingBooking(showID, time.Now().UTC().Add(5*time.Minute))

	transitionCalled := false
	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			transitionCalled = true
			return nil
		},
	}
	engine := &mockEngine{
		holdFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
			return []reservation.Conflict{
				{Label: "C4", Status: reservation.SeatStatusHeld, Holder: "user:other"},
			}, reservation.ErrSeatConflict
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.ConfirmBooking(context.Background(), booking.ID, booking.Holder)

	var stateErr *InconsistentStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, booking.Reference, stateErr.Reference)
	assert.Equal(t, []string{"C4", "C5"}, stateErr.Seats)
	assert.True(t, errors.Is(err, ErrInconsistentState))
	assert.False(t, transitionCalled, "booking must stay PENDING when its seats were taken")
}

func TestConfirmBookingSuccess(t *testing.T) {
	showID := uuid.New()
	booking := pendingBooking(showID, time.Now().UTC().Add(5*time.Minute))

	var heldLabels, bookedLabels []string
	var issued []Ticket
	var transitionUpdates map[string]interface{}

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			assert.Equal(t, StatusPending, from)
			assert.Equal(t, StatusConfirmed, to)
			transitionUpdates = updates
			return nil
		},
		createTickets: func(tickets []Ticket) error {
			issued = tickets
			return nil
		},
	}
	engine := &mockEngine{
		holdFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
			heldLabels = labels
			return nil, nil
		},
		bookFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]reservation.Conflict, error) {
			bookedLabels = labels
			return nil, nil
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	confirmed, err := svc.ConfirmBooking(context.Background(), booking.ID, booking.Holder)

	require.NoError(t, err)
	require.NotNil(t, confirmed)
	assert.Equal(t, []string{"C4", "C5"}, heldLabels)
	assert.Equal(t, []string{"C4", "C5"}, bookedLabels)
	assert.Equal(t, PaymentPaid, transitionUpdates["payment_status"])
	assert.Nil(t, transitionUpdates["expires_at"])
	require.Len(t, issued, 2)
	assert.Equal(t, "C4", issued[0].SeatLabel)
	assert.Equal(t, 999.0, issued[0].Price)
	assert.NotEmpty(t, issued[0].TicketNumber)
}

func TestConfirmBookingAlreadyExpired(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC())
	booking.Status = StatusExpired

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.ConfirmBooking(context.Background(), booking.ID, booking.Holder)

	assert.ErrorIs(t, err, ErrBookingExpired)
}

func TestConfirmBookingWrongHolder(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC().Add(5*time.Minute))

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.ConfirmBooking(context.Background(), booking.ID, "user:intruder")

	assert.ErrorIs(t, err, ErrNotBookingHolder)
}

func TestCancelBookingReleasesSeatsFirst(t *testing.T) {
	showID := uuid.New()
	booking := pendingBooking(showID, time.Now().UTC().Add(5*time.Minute))

	var order []string
	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			order = append(order, "transition")
			assert.Equal(t, StatusCancelled, to)
			assert.Equal(t, PaymentCancelled, updates["payment_status"])
			return nil
		},
	}
	engine := &mockEngine{
		releaseFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
			order = append(order, "release")
			return nil
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.CancelBooking(context.Background(), booking.ID, booking.Holder)

	require.NoError(t, err)
	assert.Equal(t, []string{"release", "transition"}, order)
}

func TestCancelBookingRejectsConfirmed(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC().Add(5*time.Minute))
	booking.Status = StatusConfirmed

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.CancelBooking(context.Background(), booking.ID, booking.Holder)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusConfirmed, transitionErr.From)
	assert.Equal(t, StatusCancelled, transitionErr.To)
}

func TestRefundBookingReturnsSeats(t *testing.T) {
	showID := uuid.New()
	booking := pendingBooking(showID, time.Now().UTC())
	booking.Status = StatusConfirmed
	booking.ExpiresAt = nil

	unbooked := false
	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			assert.Equal(t, StatusConfirmed, from)
			assert.Equal(t, StatusRefunded, to)
			return nil
		},
	}
	engine := &mockEngine{
		unbookFn: func(ctx context.Context, showInstanceID uuid.UUID, labels []string) error {
			unbooked = true
			assert.Equal(t, []string{"C4", "C5"}, labels)
			return nil
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	_, err := svc.RefundBooking(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.True(t, unbooked)
}

func TestExpireOverdueReleaseFailureLeavesPending(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC().Add(-time.Minute))

	transitionCalled := false
	repo := &mockRepository{
		listExpiredFn: func(now time.Time, limit int) ([]Booking, error) {
			return []Booking{*booking}, nil
		},
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			transitionCalled = true
			return nil
		},
	}
	engine := &mockEngine{
		releaseFn: func(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
			return errors.New("connection reset")
		},
	}

	svc := NewService(repo, &mockShowService{}, engine, testLeaseWindow, testMaxSeats)

	expired, err := svc.ExpireOverdue(context.Background(), 100)

	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.False(t, transitionCalled, "booking must stay PENDING so the next sweep retries")
}

func TestExpireOverdueExpiresBatch(t *testing.T) {
	first := pendingBooking(uuid.New(), time.Now().UTC().Add(-2*time.Minute))
	second := pendingBooking(uuid.New(), time.Now().UTC().Add(-time.Minute))

	var transitions []Status
	repo := &mockRepository{
		listExpiredFn: func(now time.Time, limit int) ([]Booking, error) {
			return []Booking{*first, *second}, nil
		},
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			transitions = append(transitions, to)
			return nil
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	expired, err := svc.ExpireOverdue(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, []Status{StatusExpired, StatusExpired}, transitions)
}

func TestExpireOverdueLostRaceNotCounted(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC().Add(-time.Minute))

	repo := &mockRepository{
		listExpiredFn: func(now time.Time, limit int) ([]Booking, error) {
			return []Booking{*booking}, nil
		},
		transitionFn: func(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
			// A confirm got there first.
			return ErrStaleTransition
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	expired, err := svc.ExpireOverdue(context.Background(), 100)

	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestRedeemTicketSuccess(t *testing.T) {
	ticket := &Ticket{ID: uuid.New(), TicketNumber: "TKT-ABC123XY45", SeatLabel: "C4"}

	repo := &mockRepository{
		redeemTicketFn: func(ticketNumber string, now time.Time) (*Ticket, error) {
			return ticket, nil
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	got, err := svc.RedeemTicket(context.Background(), ticket.TicketNumber)

	require.NoError(t, err)
	assert.Equal(t, "C4", got.SeatLabel)
}

func TestRedeemTicketNotFound(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.RedeemTicket(context.Background(), "TKT-UNKNOWN")

	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRedeemTicketAlreadyUsed(t *testing.T) {
	usedAt := time.Now().UTC().Add(-time.Hour)
	repo := &mockRepository{
		getTicketFn: func(ticketNumber string) (*Ticket, error) {
			return &Ticket{TicketNumber: ticketNumber, UsedAt: &usedAt}, nil
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.RedeemTicket(context.Background(), "TKT-ABC123XY45")

	assert.ErrorContains(t, err, "already used")
}

func TestRedeemTicketRejectsUnconfirmedBooking(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC())
	booking.Status = StatusRefunded
	booking.ShowDate = time.Now().UTC().Format("2006-01-02")

	repo := &mockRepository{
		getTicketFn: func(ticketNumber string) (*Ticket, error) {
			return &Ticket{TicketNumber: ticketNumber, BookingID: booking.ID}, nil
		},
		getByIDFn: func(id uuid.UUID) (*Booking, error) {
			return booking, nil
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.RedeemTicket(context.Background(), "TKT-ABC123XY45")

	assert.ErrorContains(t, err, "belongs to a REFUNDED booking")
}

func TestRedeemTicketRejectsWrongDate(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC())
	booking.Status = StatusConfirmed
	booking.ShowDate = time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	repo := &mockRepository{
		getTicketFn: func(ticketNumber string) (*Ticket, error) {
			return &Ticket{TicketNumber: ticketNumber, BookingID: booking.ID}, nil
		},
		getByIDFn: func(id uuid.UUID) (*Booking, error) {
			return booking, nil
		},
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.RedeemTicket(context.Background(), "TKT-ABC123XY45")

	assert.ErrorContains(t, err, "only valid on "+booking.ShowDate)
}

func TestGetBookingWrongHolder(t *testing.T) {
	booking := pendingBooking(uuid.New(), time.Now().UTC().Add(5*time.Minute))

	repo := &mockRepository{
		getByIDFn: func(id uuid.UUID) (*Booking, error) { return booking, nil },
	}

	svc := NewService(repo, &mockShowService{}, &mockEngine{}, testLeaseWindow, testMaxSeats)

	_, err := svc.GetBooking(context.Background(), booking.ID, "user:intruder")
	assert.ErrorIs(t, err, ErrNotBookingHolder)

	got, err := svc.GetBooking(context.Background(), booking.ID, booking.Holder)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, got.Reference)
}
