package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAgeCalculation tests the age calculation function with various scenarios
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
	}{
		{"Same month and day", date(1965, 2, 25), date(2025, 2, 25), 60},
		{"Day before birthday", date(1965, 2, 25), date(2025, 2, 24), 59},
		{"Day after birthday", date(1965, 2, 25), date(2025, 2, 26), 60},
		{"Month before birthday", date(1965, 2, 25), date(2025, 1, 25), 59},
		{"Leap year birth, non-leap year check", date(1964, 2, 29), date(2025, 2, 28), 60},
		{"Leap year birth, March 1st", date(1964, 2, 29), date(2025, 3, 1), 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate))
		})
	}
}

func TestYearsOfService(t *testing.T) {
	years := YearsOfService(date(1995, 1, 1), date(2025, 1, 1))
	assert.InDelta(t, 30.0, years, 0.01)
}

func TestFullRetirementAge(t *testing.T) {
	tests := []struct {
		birthYear int
		expected  int
	}{
		{1937, 65},
		{1942, 65},
		{1950, 66},
		{1959, 66},
		{1960, 67},
		{1975, 67},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FullRetirementAge(date(tt.birthYear, 6, 1)), "birth year %d", tt.birthYear)
	}
}

func TestMinimumRetirementAge(t *testing.T) {
	assert.Equal(t, 55, MinimumRetirementAge(date(1947, 1, 1)))
	assert.Equal(t, 56, MinimumRetirementAge(date(1960, 1, 1)))
	assert.Equal(t, 56, MinimumRetirementAge(date(1969, 12, 31)))
	assert.Equal(t, 57, MinimumRetirementAge(date(1970, 1, 1)))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, MonthsBetween(date(2024, 1, 15), date(2025, 1, 15)))
	assert.Equal(t, 11, MonthsBetween(date(2024, 1, 15), date(2025, 1, 14)))
	assert.Equal(t, 0, MonthsBetween(date(2025, 1, 15), date(2024, 1, 15)))
	assert.Equal(t, 0, MonthsBetween(date(2025, 1, 15), date(2025, 1, 15)))
}

func TestAddYears(t *testing.T) {
	assert.Equal(t, date(2055, 6, 30), AddYears(date(2025, 6, 30), 30))
}
