package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eladr7/shift-scheduler-api/internal/models"
)

// Classifier derives a shift's pay category from its time-of-day type and
// calendar date. Weekend days are configurable; the reference locale uses
// Friday and Saturday. A date landing on a weekend day always classifies as
// weekend, overriding night.
type Classifier struct {
	weekendDays map[time.Weekday]struct{}
}

// NewClassifier builds a Classifier for the given weekend days, defaulting
// to Friday/Saturday when none are supplied.
func NewClassifier(weekendDays []time.Weekday) *Classifier {
	if len(weekendDays) == 0 {
		weekendDays = []time.Weekday{time.Friday, time.Saturday}
	}
	set := make(map[time.Weekday]struct{}, len(weekendDays))
	for _, d := range weekendDays {
		set[d] = struct{}{}
	}
	return &Classifier{weekendDays: set}
}

// Classify resolves the pay category: weekend when the date falls on a
// weekend day, otherwise night stays night and everything else is day.
func (c *Classifier) Classify(shiftType models.ShiftType, date time.Time) models.ShiftType {
	if c.IsWeekend(date) {
		return models.ShiftWeekend
	}
	if shiftType == models.ShiftNight {
		return models.ShiftNight
	}
	return models.ShiftDay
}

// IsWeekend reports whether the date falls on a configured weekend day.
func (c *Classifier) IsWeekend(date time.Time) bool {
	_, ok := c.weekendDays[date.Weekday()]
	return ok
}

// IsWeekendDate is the string-date variant of IsWeekend; unparseable dates
// are not weekends.
func (c *Classifier) IsWeekendDate(dateStr string) bool {
	date, err := parseShiftDate(dateStr, time.Now().Year())
	if err != nil {
		return false
	}
	return c.IsWeekend(date)
}

// parseShiftDate accepts the two date forms shift records carry: hyphenated
// ISO (2025-08-03) and slash-separated month/day with an optional year
// (8/3 or 8/3/2025).
func parseShiftDate(dateStr string, currentYear int) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if strings.Contains(dateStr, "-") {
		return time.Parse("2006-01-02", dateStr)
	}

	parts := strings.Split(dateStr, "/")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateStr)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateStr)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateStr)
	}
	year := currentYear
	if len(parts) > 2 {
		if y, err := strconv.Atoi(parts[2]); err == nil {
			if y < 100 {
				y += 2000
			}
			year = y
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range %q", dateStr)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
