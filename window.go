package plaidsheets

import "time"

// Default fetch window constants. Both are empirical: 800 days comfortably
// covers the aggregation API's two year history limit, and the 10 day overlap
// re-fetches transactions that settle late. Re-seen IDs are dropped by Filter
// so the overlap never duplicates rows.
const (
	DefaultWindowInitialDays = 800
	DefaultWindowOverlapDays = 10
)

// StartDate computes the date from which the next fetch should start. With no
// stored data the window reaches back initialDays from now, otherwise
// overlapDays before the most recent stored date. The result is truncated to
// date-only precision.
//
// The latest stored date is taken from the first data row, which assumes
// storage is kept sorted descending by date. Enforcing that sort is the
// storage cleanup's job, not this function's.
func StartDate(latest time.Time, hasData bool, now time.Time, initialDays, overlapDays int) time.Time {
	if !hasData {
		return DateOnly(now).AddDate(0, 0, -initialDays)
	}
	return DateOnly(latest).AddDate(0, 0, -overlapDays)
}
