package plaidsheets

import "time"

// DateFormat is the canonical date format used throughout plaidsheets:
// YYYY-MM-DD. It is both what the aggregation API exchanges and what gets
// written to the date column, so stored dates sort the same lexically and
// chronologically.
const DateFormat = "2006-01-02"

// Date is a time.Time that knows how to decode itself from a YYYY-MM-DD
// string. It implements envconfig.Decoder so Config fields typed as Date are
// parsed once at load time.
type Date time.Time

// Decode implements `envconfig.Decoder` for Date to parse string to time.Time
func (date *Date) Decode(value string) error {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return err
	}
	*date = Date(t)
	return nil
}

// IsZero reports whether the date is unset.
func (date Date) IsZero() bool {
	return time.Time(date).IsZero()
}

// FormatDate returns t in the canonical YYYY-MM-DD format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string into a UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// DateOnly truncates t to midnight UTC so window arithmetic stays at
// date-only precision regardless of time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
