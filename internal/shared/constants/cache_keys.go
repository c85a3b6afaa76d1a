package constants

import "fmt"

// Cache key layout. Everything lives under the sabhyata: prefix so a
// DeletePattern on a show id cannot touch unrelated keys.
const (
	CachePrefix = "sabhyata"

	seatMapKeyFormat = CachePrefix + ":seatmap:%s"
)

// BuildSeatMapKey returns the cache key for a resolved show's seat map.
func BuildSeatMapKey(showInstanceID string) string {
	return fmt.Sprintf(seatMapKeyFormat, showInstanceID)
}

// BuildSeatMapPattern matches every cached seat map entry for a show.
func BuildSeatMapPattern(showInstanceID string) string {
	return fmt.Sprintf(seatMapKeyFormat, showInstanceID) + "*"
}
