package report

import "time"

// MonthRange returns the half-open date interval [first of month, first of
// next month) in local time.
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// YearRange returns the half-open date interval [Jan 1, Jan 1 of next year).
func YearRange(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(1, 0, 0)
	return start, end
}

// PeriodRange returns the range for a month when month is 1-12, or for the
// whole year when month is 0.
func PeriodRange(year, month int) (start, end time.Time) {
	if month >= 1 && month <= 12 {
		return MonthRange(year, month)
	}
	return YearRange(year)
}
