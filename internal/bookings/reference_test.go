package bookings

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	now := time.Date(2026, 8, 30, 19, 30, 0, 0, time.UTC)

	ref := GenerateReference(now)

	assert.True(t, strings.HasPrefix(ref, "SAB-20260830-"))
	assert.Len(t, ref, len("SAB-20260830-")+6)

	// Ambiguous characters are excluded from the charset.
	tail := strings.TrimPrefix(ref, "SAB-20260830-")
	assert.NotContains(t, tail, "0")
	assert.NotContains(t, tail, "O")
	assert.NotContains(t, tail, "1")
	assert.NotContains(t, tail, "I")
}

func TestGenerateReferenceIsUnpredictable(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := GenerateReference(now)
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestGenerateTicketNumber(t *testing.T) {
	num := GenerateTicketNumber()
	assert.True(t, strings.HasPrefix(num, "TKT-"))
	assert.Len(t, num, len("TKT-")+10)
}
