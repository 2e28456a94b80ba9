package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical display format for calendar dates.
const DateLayout = "02.01.2006"

// ClockLayout is the wall-clock format for start/end times.
const ClockLayout = "15:04"

// HoursToHHMM formats fractional hours as a zero-padded HH:MM string.
// Rounding to the nearest whole minute happens here and only here; callers
// must not round intermediate values before handing them in.
func HoursToHHMM(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// HHMMToHours parses an HH:MM string into fractional hours. Malformed or
// negative input yields 0: these strings come from free-text fields and
// legacy imports, so garbled values are expected and must not fail.
func HHMMToHours(value string) float64 {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return 0
	}
	return float64(hours) + float64(minutes)/60
}

// DurationHours returns the elapsed time between two instants in fractional hours.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// SurchargeHours computes the surcharge bonus hours for the given net worked
// hours and percentage, quantized to the nearest half hour. The half-hour
// step is a payroll rule, not a formatting convenience.
func SurchargeHours(netHours, percent float64) float64 {
	return math.Round(netHours*percent/100*2) / 2
}

// Date constructs a calendar date pinned to 12:00 local time. Midnight
// construction shifts to the adjacent day under some DST transitions, so
// every calendar date in this codebase goes through here.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

// ParseDate parses a DD.MM.YYYY date string, pinned to noon.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date(parsed.Year(), parsed.Month(), parsed.Day()), nil
}

// FormatDate formats a date as DD.MM.YYYY.
func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}

// ParseDateTime combines a DD.MM.YYYY date and an HH:MM time into one instant.
func ParseDateTime(dateValue, timeValue string) (time.Time, error) {
	day, err := ParseDate(dateValue)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(ClockLayout, strings.TrimSpace(timeValue))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", timeValue, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// DaysInMonth returns the number of days in the given month, leap years
// included. Day zero of the following month is the last day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 12, 0, 0, 0, time.Local).Day()
}
