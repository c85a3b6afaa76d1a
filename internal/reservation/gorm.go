package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type engine struct {
	db      *gorm.DB
	holdTTL time.Duration
}

// NewEngine returns the persistent seat state machine. holdTTL bounds every
// seat lease created through Hold.
func NewEngine(db *gorm.DB, holdTTL time.Duration) Engine {
	return &engine{db: db, holdTTL: holdTTL}
}

func (e *engine) Hold(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]Conflict, error) {
	labels = dedupeLabels(labels)
	if len(labels) == 0 {
		return nil, ErrNoSeats
	}

	now := time.Now().UTC()
	var conflicts []Conflict

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lapse expired leases first so the claim below sees them as free.
		if err := e.lapseExpired(tx, showInstanceID, now); err != nil {
			return err
		}

		// Single conditional write: only available seats or seats already
		// leased by this holder match. Re-claiming refreshes the lease.
		res := tx.Table("show_seats").
			Where("show_instance_id = ? AND label IN ?", showInstanceID, labels).
			Where("status = ? OR (status = ? AND holder = ?)", SeatStatusAvailable, SeatStatusHeld, holder).
			Updates(map[string]interface{}{
				"status":  SeatStatusHeld,
				"holder":  holder,
				"held_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to hold seats: %w", res.Error)
		}

		if res.RowsAffected != int64(len(labels)) {
			rows, err := e.loadRows(tx, showInstanceID, labels)
			if err != nil {
				return err
			}
			if missing := missingLabels(labels, rows); len(missing) > 0 {
				return fmt.Errorf("%w: %v", ErrSeatNotFound, missing)
			}
			conflicts = classifyConflicts(rows, holder, e.holdTTL, now)
			return ErrSeatConflict
		}

		return e.refreshCounters(tx, showInstanceID)
	})

	if errors.Is(err, ErrSeatConflict) {
		return conflicts, err
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *engine) Release(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) error {
	labels = dedupeLabels(labels)
	if len(labels) == 0 {
		return ErrNoSeats
	}

	now := time.Now().UTC()
	cutoff := now.Add(-e.holdTTL)

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Seats held by someone else with a live lease are left alone, so a
		// stale release request cannot free a competitor's seats.
		res := tx.Table("show_seats").
			Where("show_instance_id = ? AND label IN ?", showInstanceID, labels).
			Where("status = ? AND (holder = ? OR held_at < ?)", SeatStatusHeld, holder, cutoff).
			Updates(map[string]interface{}{
				"status":  SeatStatusAvailable,
				"holder":  nil,
				"held_at": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to release seats: %w", res.Error)
		}

		return e.refreshCounters(tx, showInstanceID)
	})
}

func (e *engine) Book(ctx context.Context, showInstanceID uuid.UUID, holder string, labels []string) ([]Conflict, error) {
	labels = dedupeLabels(labels)
	if len(labels) == 0 {
		return nil, ErrNoSeats
	}

	now := time.Now().UTC()
	var conflicts []Conflict

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.lapseExpired(tx, showInstanceID, now); err != nil {
			return err
		}

		// Available seats (including leases lapsed above) and live leases
		// owned by this holder are bookable. A competitor's live lease or an
		// existing booking fails the count check.
		res := tx.Table("show_seats").
			Where("show_instance_id = ? AND label IN ?", showInstanceID, labels).
			Where("status = ? OR (status = ? AND holder = ?)", SeatStatusAvailable, SeatStatusHeld, holder).
			Updates(map[string]interface{}{
				"status":  SeatStatusBooked,
				"holder":  nil,
				"held_at": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to book seats: %w", res.Error)
		}

		if res.RowsAffected != int64(len(labels)) {
			rows, err := e.loadRows(tx, showInstanceID, labels)
			if err != nil {
				return err
			}
			if missing := missingLabels(labels, rows); len(missing) > 0 {
				return fmt.Errorf("%w: %v", ErrSeatNotFound, missing)
			}
			conflicts = classifyConflicts(rows, holder, e.holdTTL, now)
			return ErrSeatConflict
		}

		return e.refreshCounters(tx, showInstanceID)
	})

	if errors.Is(err, ErrSeatConflict) {
		return conflicts, err
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *engine) Unbook(ctx context.Context, showInstanceID uuid.UUID, labels []string) error {
	labels = dedupeLabels(labels)
	if len(labels) == 0 {
		return ErrNoSeats
	}

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("show_seats").
			Where("show_instance_id = ? AND label IN ? AND status = ?", showInstanceID, labels, SeatStatusBooked).
			Updates(map[string]interface{}{
				"status":  SeatStatusAvailable,
				"holder":  nil,
				"held_at": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to unbook seats: %w", res.Error)
		}

		return e.refreshCounters(tx, showInstanceID)
	})
}

func (e *engine) SweepExpired(ctx context.Context, showInstanceID uuid.UUID) (int, error) {
	now := time.Now().UTC()
	var freed int64

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table("show_seats").
			Where("show_instance_id = ? AND status = ? AND held_at < ?", showInstanceID, SeatStatusHeld, now.Add(-e.holdTTL)).
			Updates(map[string]interface{}{
				"status":  SeatStatusAvailable,
				"holder":  nil,
				"held_at": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to sweep expired holds: %w", res.Error)
		}
		freed = res.RowsAffected
		if freed == 0 {
			return nil
		}

		return e.refreshCounters(tx, showInstanceID)
	})

	return int(freed), err
}

func (e *engine) SweepAllExpired(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-e.holdTTL)

	var showIDs []uuid.UUID
	if err := e.db.WithContext(ctx).Table("show_seats").
		Distinct("show_instance_id").
		Where("status = ? AND held_at < ?", SeatStatusHeld, cutoff).
		Pluck("show_instance_id", &showIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to find shows with expired holds: %w", err)
	}

	total := 0
	for _, showID := range showIDs {
		freed, err := e.SweepExpired(ctx, showID)
		if err != nil {
			return total, err
		}
		total += freed
	}
	return total, nil
}

// lapseExpired frees every seat of a show whose lease ran out.
func (e *engine) lapseExpired(tx *gorm.DB, showInstanceID uuid.UUID, now time.Time) error {
	res := tx.Table("show_seats").
		Where("show_instance_id = ? AND status = ? AND held_at < ?", showInstanceID, SeatStatusHeld, now.Add(-e.holdTTL)).
		Updates(map[string]interface{}{
			"status":  SeatStatusAvailable,
			"holder":  nil,
			"held_at": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to lapse expired holds: %w", res.Error)
	}
	return nil
}

// loadRows reads the current state of the requested seats inside the
// transaction that just failed its conditional write.
func (e *engine) loadRows(tx *gorm.DB, showInstanceID uuid.UUID, labels []string) ([]seatRow, error) {
	var rows []seatRow
	if err := tx.Table("show_seats").
		Select("label", "status", "holder", "held_at").
		Where("show_instance_id = ? AND label IN ?", showInstanceID, labels).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load seat state: %w", err)
	}
	return rows, nil
}

// refreshCounters rebuilds the denormalized availability counters on the show
// instance from the seat rows, inside the same transaction as the mutation.
func (e *engine) refreshCounters(tx *gorm.DB, showInstanceID uuid.UUID) error {
	err := tx.Exec(`
		UPDATE show_instances SET
			available_seats = (SELECT COUNT(*) FROM show_seats WHERE show_instance_id = ? AND status = ?),
			booked_seats = (SELECT COUNT(*) FROM show_seats WHERE show_instance_id = ? AND status = ?),
			updated_at = NOW()
		WHERE id = ?`,
		showInstanceID, SeatStatusAvailable,
		showInstanceID, SeatStatusBooked,
		showInstanceID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to refresh seat counters: %w", err)
	}
	return nil
}
