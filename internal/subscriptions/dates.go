package subscriptions

import (
	"time"

	"github.com/mantomate/storefront-backend/pkg/format"
)

// AddMonth returns the same wall-clock time one calendar month later in the
// store's timezone, clamped to the last day of the target month: Jan 31
// becomes Feb 28 (Feb 29 in leap years) and December rolls into January.
func AddMonth(t time.Time) time.Time {
	local := t.In(format.Store)
	year, month, day := local.Date()

	targetYear, targetMonth := year, month+1
	if targetMonth > time.December {
		targetMonth = time.January
		targetYear++
	}
	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day,
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), format.Store)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
