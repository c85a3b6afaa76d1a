package reservation

import "time"

// SeatStatus is the lifecycle state of a single seat in a show instance.
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusHeld      SeatStatus = "HELD"
	SeatStatusBooked    SeatStatus = "BOOKED"
	SeatStatusBlocked   SeatStatus = "BLOCKED"
)

// Lease is a time-bounded claim on a seat. A lease is never deleted by the
// holder going away; it simply lapses once HeldAt + TTL passes, and every
// reader treats a lapsed lease as if the seat were available.
type Lease struct {
	Holder string
	HeldAt time.Time
	TTL    time.Duration
}

// ExpiresAt returns the instant the lease lapses.
func (l Lease) ExpiresAt() time.Time {
	return l.HeldAt.Add(l.TTL)
}

// Expired reports whether the lease has lapsed as of now.
func (l Lease) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt())
}

// Remaining returns how long the lease has left, zero if already lapsed.
func (l Lease) Remaining(now time.Time) time.Duration {
	d := l.ExpiresAt().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
