package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eladr7/shift-scheduler-api/internal/models"
)

func TestClassifierWeekendOverridesNight(t *testing.T) {
	c := NewClassifier(nil)

	friday := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, models.ShiftWeekend, c.Classify(models.ShiftNight, friday))

	saturday := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, models.ShiftWeekend, c.Classify(models.ShiftMorning, saturday))
}

func TestClassifierWeekdayCategories(t *testing.T) {
	c := NewClassifier(nil)
	tuesday := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, models.ShiftNight, c.Classify(models.ShiftNight, tuesday))
	assert.Equal(t, models.ShiftDay, c.Classify(models.ShiftMorning, tuesday))
	assert.Equal(t, models.ShiftDay, c.Classify(models.ShiftEvening, tuesday))
}

func TestClassifierCustomWeekendDays(t *testing.T) {
	c := NewClassifier([]time.Weekday{time.Saturday, time.Sunday})

	friday := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)

	assert.False(t, c.IsWeekend(friday))
	assert.True(t, c.IsWeekend(sunday))
}

func TestClassifierIsWeekendDate(t *testing.T) {
	c := NewClassifier(nil)

	assert.True(t, c.IsWeekendDate("2025-08-01"))
	assert.False(t, c.IsWeekendDate("2025-08-12"))
	assert.True(t, c.IsWeekendDate("8/1/2025"))
	assert.False(t, c.IsWeekendDate("not a date"))
}

func TestParseShiftDateForms(t *testing.T) {
	got, err := parseShiftDate("2025-08-03", 2024)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = parseShiftDate("8/3", 2025)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = parseShiftDate("8/3/25", 2019)
	assert.NoError(t, err)
	assert.Equal(t, 2025, got.Year())

	_, err = parseShiftDate("13/45", 2025)
	assert.Error(t, err)
}
