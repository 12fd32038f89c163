package dateutil

import (
	"time"
)

// MonthsBetween returns the number of whole calendar months from fromDate to
// toDate. A partial final month does not count. The result is negative when
// toDate is before fromDate.
func MonthsBetween(fromDate, toDate time.Time) int {
	if toDate.Before(fromDate) {
		return -MonthsBetween(toDate, fromDate)
	}
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()-fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	return months
}

// MonthsUntilDeadline converts a deadline into a month index counted from
// start. Deadlines less than a month away still get one month.
func MonthsUntilDeadline(start, deadline time.Time) int {
	months := MonthsBetween(start, deadline)
	if months < 1 {
		return 1
	}
	return months
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// AddMonths adds a specified number of months to a date, clamping to the last
// day of the target month instead of overflowing into the next one.
func AddMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	target := time.Date(y, m+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := DaysInMonth(target); d > last {
		d = last
	}
	return target.AddDate(0, 0, d-1)
}

// DaysInMonth returns the number of days in the month containing date.
func DaysInMonth(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
}
