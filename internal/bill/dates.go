package bill

import "time"

// AddMonths moves t forward by n calendar months, clamping the day to the last day of
// the target month. Unlike time.AddDate, Jan 31 plus one month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := daysIn(first.Month(), first.Year())

	if day > last {
		day = last
	}

	hour, minute, sec := t.Clock()

	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
