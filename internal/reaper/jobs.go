package reaper

import (
	"context"
	"log"
	"time"
)

// BookingSweeper expires overdue pending bookings. Implemented by the
// bookings service.
type BookingSweeper interface {
	ExpireOverdue(ctx context.Context, batchSize int) (int, error)
}

// SeatSweeper lapses expired seat leases. Implemented by the reservation
// engine.
type SeatSweeper interface {
	SweepAllExpired(ctx context.Context) (int, error)
}

// JobProcessor runs the expiry reaper loop. Every tick it frees seats whose
// lease lapsed and flips overdue bookings to EXPIRED. The loop is a safety
// net, not the source of truth: readers already treat lapsed leases as free,
// so a slow or stopped reaper degrades bookkeeping, never correctness.
type JobProcessor struct {
	bookings BookingSweeper
	seats    SeatSweeper
	config   *JobConfig
	done     chan struct{}
}

// JobConfig contains configuration for the reaper jobs
type JobConfig struct {
	SweepInterval time.Duration
	BatchSize     int
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		SweepInterval: 1 * time.Minute,
		BatchSize:     100,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(bookings BookingSweeper, seats SeatSweeper, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		bookings: bookings,
		seats:    seats,
		config:   config,
		done:     make(chan struct{}),
	}
}

// Start starts the reaper loop
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting expiry reaper...")
	go jp.run(ctx)
}

// Stop stops the reaper loop
func (jp *JobProcessor) Stop() {
	log.Println("Stopping expiry reaper...")
	close(jp.done)
}

func (jp *JobProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(jp.config.SweepInterval)
	defer ticker.Stop()

	log.Printf("Started expiry reaper with %v interval", jp.config.SweepInterval)

	for {
		select {
		case <-ticker.C:
			jp.sweep(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sweep runs one reaper pass. Seat leases go first so the booking sweep sees
// the seats already freed.
func (jp *JobProcessor) sweep(ctx context.Context) {
	freed, err := jp.seats.SweepAllExpired(ctx)
	if err != nil {
		log.Printf("Error sweeping expired seat holds: %v", err)
	} else if freed > 0 {
		log.Printf("Freed %d expired seat holds", freed)
	}

	expired, err := jp.bookings.ExpireOverdue(ctx, jp.config.BatchSize)
	if err != nil {
		log.Printf("Error expiring overdue bookings: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Expired %d overdue bookings", expired)
	}
}

// GetJobStatus returns the status of the reaper loop
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"sweep_interval": jp.config.SweepInterval.String(),
		"batch_size":     jp.config.BatchSize,
		"status":         "running",
	}
}
