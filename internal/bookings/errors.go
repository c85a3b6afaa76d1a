package bookings

import (
	"errors"
	"fmt"
	"strings"

	"sabhyata/internal/reservation"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingExpired    = errors.New("booking has expired")
	ErrNotBookingHolder  = errors.New("booking belongs to a different holder")
	ErrInconsistentState = errors.New("booking seat state is inconsistent")
	ErrStaleTransition   = errors.New("booking state changed concurrently")
	ErrTicketNotFound    = errors.New("ticket not found")
)

// SeatConflictError reports the seats that blocked a booking attempt.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.Seats, ", "))
}

func (e *SeatConflictError) Unwrap() error {
	return reservation.ErrSeatConflict
}

// InvalidTransitionError reports a lifecycle move the state machine forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

// InconsistentStateError is raised when a booking's seat snapshot and the
// live seat rows disagree, for example a confirm finding its seats claimed
// by someone else. It is surfaced, never silently repaired.
type InconsistentStateError struct {
	Reference string
	Seats     []string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("booking %s has inconsistent seat state: %s", e.Reference, strings.Join(e.Seats, ", "))
}

func (e *InconsistentStateError) Unwrap() error {
	return ErrInconsistentState
}
