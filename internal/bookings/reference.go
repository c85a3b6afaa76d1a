package bookings

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Unambiguous charset: no 0/O, 1/I/L.
const referenceCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateReference builds a human-quotable booking reference like
// SAB-20260830-7KQ2MX. Uniqueness is enforced by the database index; the
// random tail makes collisions within a day vanishingly unlikely.
func GenerateReference(now time.Time) string {
	return fmt.Sprintf("SAB-%s-%s", now.Format("20060102"), randomToken(6))
}

// GenerateTicketNumber builds a per-seat ticket number like TKT-4N7XP2QF9K.
func GenerateTicketNumber() string {
	return "TKT-" + randomToken(10)
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in much deeper trouble
		// than a booking reference.
		panic(fmt.Sprintf("random source unavailable: %v", err))
	}
	for i := range buf {
		buf[i] = referenceCharset[int(buf[i])%len(referenceCharset)]
	}
	return string(buf)
}
