// Package timeparse handles the clock-time strings found in recognized
// schedule text: "7:00 AM", "15:00", Hebrew period markers, and the
// overnight shifts that cross midnight.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?`)

// Hebrew period markers and their AM/PM equivalents. Longer markers first
// so the short form does not shadow them.
var hebrewPeriods = []struct {
	marker string
	period string
}{
	{"אחרי הצהריים", "PM"},
	{"לפני הצהריים", "AM"},
	{"אחה״צ", "PM"},
	{"בבוקר", "AM"},
}

// NormalizePeriod converts localized period markers to AM/PM and, when no
// marker is present, infers one from the hour: 6-11 AM, 12-23 PM, 0-5 AM.
// The inference is ambiguous on purpose; callers needing certainty must
// supply an explicit marker.
func NormalizePeriod(text string) string {
	converted := text
	for _, hp := range hebrewPeriods {
		converted = strings.ReplaceAll(converted, hp.marker, hp.period)
	}

	if strings.Contains(strings.ToUpper(converted), "AM") || strings.Contains(strings.ToUpper(converted), "PM") {
		return converted
	}

	m := clockPattern.FindStringSubmatch(converted)
	if m == nil {
		return converted
	}
	hour, _ := strconv.Atoi(m[1])
	switch {
	case hour >= 6 && hour <= 11:
		converted += " AM"
	case hour >= 12 && hour <= 23:
		converted += " PM"
	case hour >= 0 && hour <= 5:
		converted += " AM"
	}
	return converted
}

// ParseParts converts a clock-time string into an hour on the 24h scale
// plus its minutes.
func ParseParts(text string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(NormalizePeriod(text))
	if m == nil {
		return 0, 0, fmt.Errorf("unparseable clock time %q", text)
	}

	hour, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable clock time %q", text)
	}
	minute, _ = strconv.Atoi(m[2])

	// Hours 13-23 are already on the 24h scale; an inferred PM marker
	// must not push them past midnight.
	if hour >= 13 {
		return hour, minute, nil
	}

	period := strings.ToUpper(m[3])
	if period == "PM" && hour != 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}

// Parse converts a clock-time string into an hour on the 24h scale.
// Minutes are intentionally dropped: the shift grid is on the hour and the
// earnings math counts whole hours.
func Parse(text string) (float64, error) {
	hour, _, err := ParseParts(text)
	if err != nil {
		return 0, err
	}
	return float64(hour), nil
}

// ParseClockTime is the permissive variant of Parse: unparseable input
// yields 0 rather than an error, since upstream OCR text is noisy.
func ParseClockTime(text string) float64 {
	hour, err := Parse(text)
	if err != nil {
		return 0
	}
	return hour
}

// ShiftDurationHours returns the positive duration between two clock times,
// treating end <= start as a shift crossing midnight. Equal start and end
// therefore read as a full 24-hour shift.
func ShiftDurationHours(start, end string) float64 {
	s := ParseClockTime(start)
	e := ParseClockTime(end)

	if e > s {
		return e - s
	}
	return (24 - s) + e
}

// To12Hour renders a 24h hour/minute pair in "H:MM AM/PM" form.
func To12Hour(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}
