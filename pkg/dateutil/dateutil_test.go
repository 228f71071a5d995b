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
		name  string
		start time.Time
		at    time.Time
		want  int
	}{
		{"same day", date(2024, 3, 1), date(2024, 3, 1), 0},
		{"one month", date(2024, 3, 1), date(2024, 4, 1), 1},
		{"partial month not counted", date(2024, 3, 15), date(2024, 4, 14), 0},
		{"year boundary", date(2023, 11, 1), date(2024, 2, 1), 3},
		{"several years", date(2020, 6, 1), date(2025, 6, 1), 60},
		{"at before start", date(2024, 6, 1), date(2024, 3, 1), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.start, tt.at))
		})
	}
}

func TestElapsedMonthsClamps(t *testing.T) {
	start := date(2000, 1, 1)

	assert.Equal(t, 0, ElapsedMonths(date(2024, 1, 1), start, 360), "future start clamps to zero")
	assert.Equal(t, 360, ElapsedMonths(start, date(2035, 1, 1), 360), "past-term clamps to term")
	assert.Equal(t, 24, ElapsedMonths(start, date(2002, 1, 1), 360))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2024, 7, 1), AddMonths(date(2024, 4, 1), 3))
	assert.Equal(t, date(2025, 1, 15), AddMonths(date(2024, 10, 15), 3))
}

func TestYearsFromMonths(t *testing.T) {
	assert.InDelta(t, 2.5, YearsFromMonths(30), 1e-9)
	assert.InDelta(t, 0.0, YearsFromMonths(0), 1e-9)
}
