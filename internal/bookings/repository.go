package bookings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(booking *Booking) error
	GetByID(id uuid.UUID) (*Booking, error)
	GetByReference(reference string) (*Booking, error)
	ListByHolder(holder string, limit int) ([]Booking, error)
	Transition(id uuid.UUID, from, to Status, updates map[string]interface{}) error
	CreateTickets(tickets []Ticket) error
	GetTicketByNumber(ticketNumber string) (*Ticket, error)
	RedeemTicket(ticketNumber string, now time.Time) (*Ticket, error)
	ListExpired(now time.Time, limit int) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(booking *Booking) error {
	return r.db.Create(booking).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.Preload("Seats").Preload("Tickets").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByReference(reference string) (*Booking, error) {
	var booking Booking
	err := r.db.Preload("Seats").Preload("Tickets").
		Where("reference = ?", reference).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByHolder(holder string, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	var bookings []Booking
	err := r.db.Preload("Seats").
		Where("holder = ?", holder).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// Transition moves a booking between lifecycle states with a conditional
// write. The WHERE clause pins the expected current state; zero rows means a
// concurrent actor moved the booking first.
func (r *repository) Transition(id uuid.UUID, from, to Status, updates map[string]interface{}) error {
	if updates == nil {
		updates = make(map[string]interface{})
	}
	updates["status"] = to

	res := r.db.Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to transition booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleTransition
	}
	return nil
}

func (r *repository) CreateTickets(tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return r.db.Create(&tickets).Error
}

func (r *repository) GetTicketByNumber(ticketNumber string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.Where("ticket_number = ?", ticketNumber).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// RedeemTicket marks a ticket used with a conditional write so double scans
// lose cleanly. A ticket redeems only while its booking is CONFIRMED and only
// on the show date, in the same predicate as the used_at check.
func (r *repository) RedeemTicket(ticketNumber string, now time.Time) (*Ticket, error) {
	redeemable := r.db.Model(&Booking{}).Select("id").
		Where("status = ? AND show_date = ?", StatusConfirmed, now.Format("2006-01-02"))

	res := r.db.Model(&Ticket{}).
		Where("ticket_number = ? AND used_at IS NULL", ticketNumber).
		Where("booking_id IN (?)", redeemable).
		Update("used_at", now)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to redeem ticket: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Unknown, already used, not confirmed, or wrong date; the caller
		// distinguishes.
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetTicketByNumber(ticketNumber)
}

func (r *repository) ListExpired(now time.Time, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	var bookings []Booking
	err := r.db.Preload("Seats").
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", StatusPending, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
