package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusRefunded, false},
		{StatusConfirmed, StatusRefunded, true},
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusExpired, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusExpired, StatusConfirmed, false},
		{StatusRefunded, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusRefunded.Terminal())
}
