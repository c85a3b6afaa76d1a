package shows

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"sabhyata/internal/reservation"
	"sabhyata/internal/templates"
)

// SeatPatch is the computed difference between a show's seats and its
// template. It is applied atomically by the repository; every update and
// delete carries a guard predicate so a claim taken after the merge read is
// left alone. LeaseCutoff is the hold-expiry boundary that guard uses.
type SeatPatch struct {
	Inserts     []Seat
	Updates     []SeatUpdate
	DeleteIDs   []uuid.UUID
	Skipped     int
	LeaseCutoff time.Time
}

type SeatUpdate struct {
	ID     uuid.UUID
	Fields map[string]interface{}
}

func (p SeatPatch) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.DeleteIDs) == 0
}

// MergeSeats three-way merges a published template into the current seats of
// one show. Seats with a live lease or a booking are never touched: the
// customer's claim outranks the layout change and the seat is counted as
// skipped instead. Lapsed leases are treated as free and get cleared by the
// same update that realigns the seat.
func MergeSeats(tpl *templates.SeatTemplate, current []Seat, holdTTL time.Duration, now time.Time) SeatPatch {
	patch := SeatPatch{LeaseCutoff: now.Add(-holdTTL)}

	byLabel := make(map[string]Seat, len(current))
	for _, seat := range current {
		byLabel[seat.Label] = seat
	}

	inTemplate := make(map[string]struct{}, len(tpl.Seats))
	for _, ts := range tpl.Seats {
		inTemplate[ts.Label] = struct{}{}

		price, _ := tpl.PriceFor(ts.Category)
		existing, ok := byLabel[ts.Label]
		if !ok {
			patch.Inserts = append(patch.Inserts, cloneTemplateSeat(ts, price))
			continue
		}

		if seatClaimed(existing, holdTTL, now) {
			if seatDiffers(existing, ts, price) {
				patch.Skipped++
			}
			continue
		}

		fields := diffFields(existing, ts, price)
		if existing.Status == reservation.SeatStatusHeld {
			// Lapsed lease: clear it even when the layout itself matches.
			fields["status"] = desiredStatus(ts)
			fields["holder"] = nil
			fields["held_at"] = nil
		}
		if len(fields) > 0 {
			patch.Updates = append(patch.Updates, SeatUpdate{ID: existing.ID, Fields: fields})
		}
	}

	for _, seat := range current {
		if _, ok := inTemplate[seat.Label]; ok {
			continue
		}
		if seatClaimed(seat, holdTTL, now) {
			patch.Skipped++
			continue
		}
		patch.DeleteIDs = append(patch.DeleteIDs, seat.ID)
	}

	return patch
}

// seatClaimed reports whether a seat carries a customer claim the merge must
// not disturb: a booking, or a hold whose lease is still live.
func seatClaimed(seat Seat, holdTTL time.Duration, now time.Time) bool {
	switch seat.Status {
	case reservation.SeatStatusBooked:
		return true
	case reservation.SeatStatusHeld:
		if seat.Holder == nil || seat.HeldAt == nil {
			return false
		}
		lease := reservation.Lease{Holder: *seat.Holder, HeldAt: *seat.HeldAt, TTL: holdTTL}
		return !lease.Expired(now)
	default:
		return false
	}
}

func desiredStatus(ts templates.TemplateSeat) reservation.SeatStatus {
	if ts.Status == templates.SeatStatusBlocked {
		return reservation.SeatStatusBlocked
	}
	return reservation.SeatStatusAvailable
}

// diffFields returns only the columns that actually differ, so re-running a
// propagation against an already-aligned show is a no-op.
func diffFields(existing Seat, ts templates.TemplateSeat, price float64) map[string]interface{} {
	fields := make(map[string]interface{})

	if existing.Row != ts.Row {
		fields["row"] = ts.Row
	}
	if existing.Number != ts.Number {
		fields["number"] = ts.Number
	}
	if existing.Section != ts.Section {
		fields["section"] = ts.Section
	}
	if existing.Category != ts.Category {
		fields["category"] = ts.Category
	}
	if existing.Price != price {
		fields["price"] = price
	}
	if existing.PosX != ts.PosX {
		fields["pos_x"] = ts.PosX
	}
	if existing.PosY != ts.PosY {
		fields["pos_y"] = ts.PosY
	}
	if existing.Status != reservation.SeatStatusHeld && existing.Status != desiredStatus(ts) {
		fields["status"] = desiredStatus(ts)
	}

	return fields
}

func seatDiffers(existing Seat, ts templates.TemplateSeat, price float64) bool {
	if len(diffFields(existing, ts, price)) > 0 {
		return true
	}
	return false
}

// cloneTemplateSeat copies the layout fields of a template seat into a fresh
// show seat with the price snapshot taken at clone time.
func cloneTemplateSeat(ts templates.TemplateSeat, price float64) Seat {
	var seat Seat
	copier.Copy(&seat, &ts)

	seat.ID = uuid.UUID{}
	seat.ShowInstanceID = uuid.UUID{}
	seat.Price = price
	seat.Status = desiredStatus(ts)
	seat.Holder = nil
	seat.HeldAt = nil
	seat.CreatedAt = time.Time{}
	seat.UpdatedAt = time.Time{}

	return seat
}
