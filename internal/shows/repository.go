package shows

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sabhyata/internal/reservation"
)

type Repository interface {
	Create(instance *ShowInstance) error
	GetByID(id uuid.UUID) (*ShowInstance, error)
	GetBySlot(eventID uuid.UUID, showDate, showTime, language string) (*ShowInstance, error)
	GetSeats(showInstanceID uuid.UUID) ([]Seat, error)
	ListByEvent(eventID uuid.UUID) ([]ShowInstance, error)
	ListFutureByEvent(eventID uuid.UUID, fromDate string) ([]ShowInstance, error)
	ApplySeatPatch(showInstanceID uuid.UUID, patch SeatPatch) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(instance *ShowInstance) error {
	return r.db.Create(instance).Error
}

func (r *repository) GetByID(id uuid.UUID) (*ShowInstance, error) {
	var instance ShowInstance
	err := r.db.Where("id = ?", id).First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *repository) GetBySlot(eventID uuid.UUID, showDate, showTime, language string) (*ShowInstance, error) {
	var instance ShowInstance
	err := r.db.Where("event_id = ? AND show_date = ? AND show_time = ? AND language = ?",
		eventID, showDate, showTime, language).First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *repository) GetSeats(showInstanceID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.Where("show_instance_id = ?", showInstanceID).
		Order("row ASC, number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) ListByEvent(eventID uuid.UUID) ([]ShowInstance, error) {
	var instances []ShowInstance
	err := r.db.Where("event_id = ?", eventID).
		Order("show_date ASC, show_time ASC").
		Find(&instances).Error
	return instances, err
}

func (r *repository) ListFutureByEvent(eventID uuid.UUID, fromDate string) ([]ShowInstance, error) {
	var instances []ShowInstance
	err := r.db.Where("event_id = ? AND show_date >= ?", eventID, fromDate).
		Order("show_date ASC, show_time ASC").
		Find(&instances).Error
	return instances, err
}

// patchGuard is the condition every propagation update and delete carries.
// It is the SQL form of seatClaimed: a booking or a live lease taken after
// the merge read makes the write skip that row instead of clobbering it.
func patchGuard(cutoff time.Time) (string, []interface{}) {
	return "status <> ? AND (status <> ? OR held_at IS NULL OR held_at < ?)",
		[]interface{}{reservation.SeatStatusBooked, reservation.SeatStatusHeld, cutoff}
}

// ApplySeatPatch applies one merged layout change to a show instance. The
// instance row is locked for the duration so a concurrent propagation or
// resolve cannot interleave, every seat write re-checks the claim state it
// was computed against, and the counters are rebuilt from the rows.
func (r *repository) ApplySeatPatch(showInstanceID uuid.UUID, patch SeatPatch) error {
	if patch.Empty() {
		return nil
	}

	guard, guardArgs := patchGuard(patch.LeaseCutoff)

	return r.db.Transaction(func(tx *gorm.DB) error {
		var instance ShowInstance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", showInstanceID).
			First(&instance).Error; err != nil {
			return err
		}

		if len(patch.DeleteIDs) > 0 {
			if err := tx.Where("id IN ?", patch.DeleteIDs).
				Where(guard, guardArgs...).
				Delete(&Seat{}).Error; err != nil {
				return fmt.Errorf("failed to delete removed seats: %w", err)
			}
		}

		for _, update := range patch.Updates {
			if err := tx.Model(&Seat{}).
				Where("id = ?", update.ID).
				Where(guard, guardArgs...).
				Updates(update.Fields).Error; err != nil {
				return fmt.Errorf("failed to update seat %s: %w", update.ID, err)
			}
		}

		if len(patch.Inserts) > 0 {
			inserts := patch.Inserts
			for i := range inserts {
				inserts[i].ShowInstanceID = showInstanceID
			}
			if err := tx.Create(&inserts).Error; err != nil {
				return fmt.Errorf("failed to insert new seats: %w", err)
			}
		}

		return recalcCounters(tx, showInstanceID)
	})
}

// recalcCounters rebuilds the denormalized seat counters of a show instance.
// Blocked seats do not count toward capacity.
func recalcCounters(tx *gorm.DB, showInstanceID uuid.UUID) error {
	err := tx.Exec(`
		UPDATE show_instances SET
			total_seats = (SELECT COUNT(*) FROM show_seats WHERE show_instance_id = ? AND status <> ?),
			available_seats = (SELECT COUNT(*) FROM show_seats WHERE show_instance_id = ? AND status = ?),
			booked_seats = (SELECT COUNT(*) FROM show_seats WHERE show_instance_id = ? AND status = ?),
			updated_at = NOW()
		WHERE id = ?`,
		showInstanceID, reservation.SeatStatusBlocked,
		showInstanceID, reservation.SeatStatusAvailable,
		showInstanceID, reservation.SeatStatusBooked,
		showInstanceID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to rebuild seat counters: %w", err)
	}
	return nil
}
