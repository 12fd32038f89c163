package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"same day", date(2026, 1, 15), date(2026, 1, 15), 0},
		{"one month exactly", date(2026, 1, 15), date(2026, 2, 15), 1},
		{"one day short of a month", date(2026, 1, 15), date(2026, 2, 14), 0},
		{"across year boundary", date(2026, 11, 1), date(2027, 2, 1), 3},
		{"three years", date(2026, 10, 19), date(2029, 10, 19), 36},
		{"reversed", date(2026, 3, 1), date(2026, 1, 1), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthsUntilDeadline(t *testing.T) {
	start := date(2026, 10, 19)
	assert.Equal(t, 1, MonthsUntilDeadline(start, date(2026, 10, 25)), "deadlines inside the first month round up to one")
	assert.Equal(t, 12, MonthsUntilDeadline(start, date(2027, 10, 19)))
	assert.Equal(t, 1, MonthsUntilDeadline(start, date(2025, 1, 1)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"simple", date(2026, 1, 15), 3, date(2026, 4, 15)},
		{"end of month clamps", date(2026, 1, 31), 1, date(2026, 2, 28)},
		{"leap year clamp", date(2028, 1, 31), 1, date(2028, 2, 29)},
		{"across years", date(2026, 10, 19), 36, date(2029, 10, 19)},
		{"zero", date(2026, 5, 5), 0, date(2026, 5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestAddMonthsRoundTrip(t *testing.T) {
	start := date(2026, 10, 19)
	for months := 0; months <= 240; months += 7 {
		assert.Equal(t, months, MonthsBetween(start, AddMonths(start, months)), "months=%d", months)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(date(2026, 1, 10)))
	assert.Equal(t, 28, DaysInMonth(date(2026, 2, 10)))
	assert.Equal(t, 29, DaysInMonth(date(2028, 2, 10)))
	assert.Equal(t, 30, DaysInMonth(date(2026, 4, 30)))
}

func TestYearsUntilDate(t *testing.T) {
	assert.InDelta(t, 1.0, YearsUntilDate(date(2026, 1, 1), date(2027, 1, 1)), 0.01)
	assert.InDelta(t, -0.5, YearsUntilDate(date(2026, 7, 2), date(2026, 1, 1)), 0.01)
}
