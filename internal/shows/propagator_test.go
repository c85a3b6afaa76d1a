package shows

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabhyata/internal/reservation"
	"sabhyata/internal/templates"
)

const testHoldTTL = 5 * time.Minute

func testTemplate(seats []templates.TemplateSeat) *templates.SeatTemplate {
	return &templates.SeatTemplate{
		ID:        uuid.New(),
		EventID:   uuid.New(),
		Published: true,
		Seats:     seats,
		Categories: []templates.CategoryPrice{
			{Category: "PREMIUM", Price: 1499},
			{Category: "GOLD", Price: 999},
		},
	}
}

func tplSeat(label, category string) templates.TemplateSeat {
	return templates.TemplateSeat{
		Label:    label,
		Row:      label[:1],
		Number:   1,
		Category: category,
		Status:   templates.SeatStatusAvailable,
	}
}

func showSeat(label, category string, price float64, status reservation.SeatStatus) Seat {
	return Seat{
		ID:       uuid.New(),
		Label:    label,
		Row:      label[:1],
		Number:   1,
		Category: category,
		Price:    price,
		Status:   status,
	}
}

func TestMergeSeatsInsertsNewSeats(t *testing.T) {
	tpl := testTemplate([]templates.TemplateSeat{
		tplSeat("A1", "PREMIUM"),
		tplSeat("A2", "PREMIUM"),
	})
	current := []Seat{showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusAvailable)}

	patch := MergeSeats(tpl, current, testHoldTTL, time.Now().UTC())

	require.Len(t, patch.Inserts, 1)
	assert.Equal(t, "A2", patch.Inserts[0].Label)
	assert.Equal(t, 1499.0, patch.Inserts[0].Price)
	assert.Equal(t, reservation.SeatStatusAvailable, patch.Inserts[0].Status)
	assert.Empty(t, patch.Updates)
	assert.Empty(t, patch.DeleteIDs)
}

func TestMergeSeatsUpdatesChangedSeats(t *testing.T) {
	seat := tplSeat("A1", "GOLD")
	tpl := testTemplate([]templates.TemplateSeat{seat})
	current := []Seat{showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusAvailable)}

	patch := MergeSeats(tpl, current, testHoldTTL, time.Now().UTC())

	require.Len(t, patch.Updates, 1)
	assert.Equal(t, current[0].ID, patch.Updates[0].ID)
	assert.Equal(t, "GOLD", patch.Updates[0].Fields["category"])
	assert.Equal(t, 999.0, patch.Updates[0].Fields["price"])
}

func TestMergeSeatsDeletesRemovedSeats(t *testing.T) {
	tpl := testTemplate([]templates.TemplateSeat{tplSeat("A1", "PREMIUM")})
	gone := showSeat("Z9", "GOLD", 999, reservation.SeatStatusAvailable)
	current := []Seat{
		showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusAvailable),
		gone,
	}

	patch := MergeSeats(tpl, current, testHoldTTL, time.Now().UTC())

	assert.Equal(t, []uuid.UUID{gone.ID}, patch.DeleteIDs)
}

func TestMergeSeatsNeverTouchesClaimedSeats(t *testing.T) {
	now := time.Now().UTC()
	holder := "user:u1"
	fresh := now.Add(-time.Minute)

	tpl := testTemplate([]templates.TemplateSeat{tplSeat("A1", "GOLD")})

	booked := showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusBooked)
	held := showSeat("B7", "GOLD", 999, reservation.SeatStatusHeld)
	held.Holder = &holder
	held.HeldAt = &fresh

	patch := MergeSeats(tpl, []Seat{booked, held}, testHoldTTL, now)

	// The booked seat needs a category change and the held seat is not in
	// the template anymore; both are skipped, not modified.
	assert.Empty(t, patch.Updates)
	assert.Empty(t, patch.DeleteIDs)
	assert.Equal(t, 2, patch.Skipped)
}

func TestMergeSeatsClearsLapsedLease(t *testing.T) {
	now := time.Now().UTC()
	holder := "guest:d1:s1"
	stale := now.Add(-time.Hour)

	tpl := testTemplate([]templates.TemplateSeat{tplSeat("A1", "PREMIUM")})

	seat := showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusHeld)
	seat.Holder = &holder
	seat.HeldAt = &stale

	patch := MergeSeats(tpl, []Seat{seat}, testHoldTTL, now)

	require.Len(t, patch.Updates, 1)
	fields := patch.Updates[0].Fields
	assert.Equal(t, reservation.SeatStatusAvailable, fields["status"])
	assert.Nil(t, fields["holder"])
	assert.Nil(t, fields["held_at"])
}

func TestMergeSeatsBlocksSeatBlockedInTemplate(t *testing.T) {
	blocked := tplSeat("A1", "PREMIUM")
	blocked.Status = templates.SeatStatusBlocked
	tpl := testTemplate([]templates.TemplateSeat{blocked})

	current := []Seat{showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusAvailable)}

	patch := MergeSeats(tpl, current, testHoldTTL, time.Now().UTC())

	require.Len(t, patch.Updates, 1)
	assert.Equal(t, reservation.SeatStatusBlocked, patch.Updates[0].Fields["status"])
}

func TestMergeSeatsIsIdempotent(t *testing.T) {
	tpl := testTemplate([]templates.TemplateSeat{
		tplSeat("A1", "PREMIUM"),
		tplSeat("B1", "GOLD"),
	})
	current := []Seat{
		showSeat("A1", "PREMIUM", 1499, reservation.SeatStatusAvailable),
		showSeat("B1", "GOLD", 999, reservation.SeatStatusAvailable),
	}

	patch := MergeSeats(tpl, current, testHoldTTL, time.Now().UTC())

	assert.True(t, patch.Empty())
	assert.Zero(t, patch.Skipped)
}

func TestMergeSeatsSetsLeaseCutoff(t *testing.T) {
	now := time.Now().UTC()
	tpl := testTemplate([]templates.TemplateSeat{tplSeat("A1", "PREMIUM")})

	patch := MergeSeats(tpl, nil, testHoldTTL, now)

	assert.Equal(t, now.Add(-testHoldTTL), patch.LeaseCutoff)
}

func TestPatchGuardProtectsLiveClaims(t *testing.T) {
	cutoff := time.Now().UTC().Add(-testHoldTTL)

	guard, args := patchGuard(cutoff)

	// The guard must exclude bookings outright and holds by their lease
	// freshness, never by holder alone.
	assert.Equal(t, "status <> ? AND (status <> ? OR held_at IS NULL OR held_at < ?)", guard)
	require.Len(t, args, 3)
	assert.Equal(t, reservation.SeatStatusBooked, args[0])
	assert.Equal(t, reservation.SeatStatusHeld, args[1])
	assert.Equal(t, cutoff, args[2])
}

func TestCloneTemplateSeatResetsIdentity(t *testing.T) {
	ts := templates.TemplateSeat{
		ID:       uuid.New(),
		Label:    "C4",
		Row:      "C",
		Number:   4,
		Category: "GOLD",
		Status:   templates.SeatStatusAvailable,
		PosX:     4,
		PosY:     3,
	}

	seat := cloneTemplateSeat(ts, 999)

	assert.Equal(t, uuid.UUID{}, seat.ID)
	assert.Equal(t, "C4", seat.Label)
	assert.Equal(t, 999.0, seat.Price)
	assert.Equal(t, reservation.SeatStatusAvailable, seat.Status)
	assert.Nil(t, seat.Holder)
	assert.Nil(t, seat.HeldAt)
}
