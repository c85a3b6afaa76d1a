package reservation

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors surfaced by the engine. Callers use errors.Is; the
// conflicting seat detail travels alongside in the returned slice.
var (
	ErrSeatConflict = errors.New("one or more seats are not available")
	ErrSeatNotFound = errors.New("one or more seats do not exist for this show")
	ErrNoSeats      = errors.New("no seats requested")
)

// Conflict describes one seat that blocked a hold or book attempt.
type Conflict struct {
	Label  string     `json:"label"`
	Status SeatStatus `json:"status"`
	Holder string     `json:"holder,omitempty"`
}

// Counters is the denormalized availability summary kept on a show instance.
type Counters struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
}

// Engine owns every seat state transition. All mutations are conditional
// writes: the predicate encodes the only states the transition is legal from,
// and a row count short of the request means somebody else got there first.
// Nothing in this package reads seat state and writes it back in two steps.
type Engine interface {
	// Hold leases the seats for holder. Re-holding seats already leased by
	// the same holder refreshes their lease. On conflict the returned slice
	// names the blocking seats and the error wraps ErrSeatConflict.
	Hold(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]Conflict, error)

	// Release frees seats held by holder. Seats the holder does not hold are
	// skipped silently; releasing is idempotent.
	Release(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error

	// Book finalizes seats currently leased by holder. A lapsed lease makes
	// the seat ineligible, so a slow confirm surfaces as a conflict rather
	// than silently booking over someone else's fresh hold.
	Book(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]Conflict, error)

	// Unbook returns booked seats to the pool (refunds, admin reversal).
	Unbook(ctx context.Context, showInstanceID uuid.UUID, labels []string) error

	// SweepExpired lapses every expired lease for one show instance and
	// returns how many seats it freed.
	SweepExpired(ctx context.Context, showInstanceID uuid.UUID) (int, error)

	// SweepAllExpired lapses expired leases across all show instances.
	SweepAllExpired(ctx context.Context) (int, error)
}

// seatRow is the slice of a seat record the engine cares about.
type seatRow struct {
	Label  string
	Status SeatStatus
	Holder *string
	HeldAt *time.Time
}

// claimable reports whether holder may take the seat with a hold or book
// write: the seat is available, leased by this holder, or carries a lapsed
// lease. Mirrors the conditional-write predicates in the SQL engine (which
// lapse expired leases before claiming).
func claimable(row seatRow, holder string, ttl time.Duration, now time.Time) bool {
	switch row.Status {
	case SeatStatusAvailable:
		return true
	case SeatStatusHeld:
		if row.Holder == nil || row.HeldAt == nil {
			return false
		}
		if *row.Holder == holder {
			return true
		}
		lease := Lease{Holder: *row.Holder, HeldAt: *row.HeldAt, TTL: ttl}
		return lease.Expired(now)
	default:
		return false
	}
}

// classifyConflicts turns the current state of the requested seats into the
// conflict list reported to the caller.
func classifyConflicts(rows []seatRow, holder string, ttl time.Duration, now time.Time) []Conflict {
	var conflicts []Conflict
	for _, row := range rows {
		if claimable(row, holder, ttl, now) {
			continue
		}
		conflict := Conflict{Label: row.Label, Status: row.Status}
		if row.Status == SeatStatusHeld && row.Holder != nil {
			conflict.Holder = *row.Holder
		}
		conflicts = append(conflicts, conflict)
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Label < conflicts[j].Label })
	return conflicts
}

// missingLabels returns requested labels with no matching seat row, sorted.
func missingLabels(requested []string, rows []seatRow) []string {
	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[row.Label] = struct{}{}
	}
	var missing []string
	for _, label := range requested {
		if _, ok := present[label]; !ok {
			missing = append(missing, label)
		}
	}
	sort.Strings(missing)
	return missing
}

// dedupeLabels drops duplicate labels while preserving first-seen order.
func dedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// ComputeCounters derives the availability summary from a seat list. Blocked
// seats never count toward capacity.
func ComputeCounters(rows []seatRow) Counters {
	var c Counters
	for _, row := range rows {
		if row.Status == SeatStatusBlocked {
			continue
		}
		c.Total++
		switch row.Status {
		case SeatStatusAvailable:
			c.Available++
		case SeatStatusBooked:
			c.Booked++
		}
	}
	return c
}

// ConflictLabels flattens a conflict list to its seat labels.
func ConflictLabels(conflicts []Conflict) []string {
	labels := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		labels = append(labels, c.Label)
	}
	return labels
}
