package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBookingSweeper struct {
	expireFn func(ctx context.Context, batchSize int) (int, error)
	calls    int
}

func (f *fakeBookingSweeper) ExpireOverdue(ctx context.Context, batchSize int) (int, error) {
	f.calls++
	if f.expireFn != nil {
		return f.expireFn(ctx, batchSize)
	}
	return 0, nil
}

type fakeSeatSweeper struct {
	sweepFn func(ctx context.Context) (int, error)
	calls   int
}

func (f *fakeSeatSweeper) SweepAllExpired(ctx context.Context) (int, error) {
	f.calls++
	if f.sweepFn != nil {
		return f.sweepFn(ctx)
	}
	return 0, nil
}

func TestSweepRunsSeatsThenBookings(t *testing.T) {
	var order []string

	bookings := &fakeBookingSweeper{
		expireFn: func(ctx context.Context, batchSize int) (int, error) {
			order = append(order, "bookings")
			assert.Equal(t, 25, batchSize)
			return 3, nil
		},
	}
	seats := &fakeSeatSweeper{
		sweepFn: func(ctx context.Context) (int, error) {
			order = append(order, "seats")
			return 7, nil
		},
	}

	jp := NewJobProcessor(bookings, seats, &JobConfig{SweepInterval: time.Minute, BatchSize: 25})
	jp.sweep(context.Background())

	assert.Equal(t, []string{"seats", "bookings"}, order)
}

func TestSweepSeatErrorDoesNotSkipBookings(t *testing.T) {
	bookings := &fakeBookingSweeper{}
	seats := &fakeSeatSweeper{
		sweepFn: func(ctx context.Context) (int, error) {
			return 0, errors.New("connection refused")
		},
	}

	jp := NewJobProcessor(bookings, seats, nil)
	jp.sweep(context.Background())

	assert.Equal(t, 1, seats.calls)
	assert.Equal(t, 1, bookings.calls)
}

func TestNewJobProcessorDefaults(t *testing.T) {
	jp := NewJobProcessor(&fakeBookingSweeper{}, &fakeSeatSweeper{}, nil)

	status := jp.GetJobStatus()
	assert.Equal(t, "1m0s", status["sweep_interval"])
	assert.Equal(t, 100, status["batch_size"])
}

func TestStartStop(t *testing.T) {
	bookings := &fakeBookingSweeper{}
	seats := &fakeSeatSweeper{}

	jp := NewJobProcessor(bookings, seats, &JobConfig{SweepInterval: 10 * time.Millisecond, BatchSize: 10})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jp.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	jp.Stop()

	assert.Greater(t, seats.calls, 0)
	assert.Greater(t, bookings.calls, 0)
}
