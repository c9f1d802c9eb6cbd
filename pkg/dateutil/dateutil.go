package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// YearsOfService calculates the years of service at a given date
func YearsOfService(hireDate, atDate time.Time) float64 {
	serviceDuration := atDate.Sub(hireDate)
	return serviceDuration.Hours() / 24 / 365.25
}

// FullRetirementAge calculates the Social Security Full Retirement Age based on birth year.
// Fractional FRAs (1938-1942, 1955-1959) are rounded down to the whole year.
func FullRetirementAge(birthDate time.Time) int {
	birthYear := birthDate.Year()

	switch {
	case birthYear <= 1942:
		return 65
	case birthYear <= 1959:
		return 66
	default: // 1960 and later
		return 67
	}
}

// MinimumRetirementAge calculates the FERS Minimum Retirement Age.
// Months are rounded down, so the result is 55, 56 or 57.
func MinimumRetirementAge(birthDate time.Time) int {
	birthYear := birthDate.Year()

	switch {
	case birthYear <= 1952:
		return 55
	case birthYear <= 1969:
		return 56
	default:
		return 57
	}
}

// MonthsBetween returns the number of whole calendar months from one date to another.
// It returns 0 when toDate is not after fromDate.
func MonthsBetween(fromDate, toDate time.Time) int {
	if !toDate.After(fromDate) {
		return 0
	}
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()-fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}
