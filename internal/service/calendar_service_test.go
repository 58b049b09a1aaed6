package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladr7/shift-scheduler-api/internal/models"
	"github.com/eladr7/shift-scheduler-api/pkg/config"
)

func newTestCalendarService() *CalendarService {
	svc := NewCalendarService(nil, config.CalendarConfig{
		Name:        "Work Shifts",
		Timezone:    "Asia/Jerusalem",
		Location:    "Workplace",
		DisplayRate: 50,
	}, nil)
	counter := 0
	svc.newUID = func() string {
		counter++
		return fmt.Sprintf("uid-%d", counter)
	}
	svc.now = func() time.Time {
		return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestBuildEventsOvernightRollsToNextDay(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "11:00 PM", EndTime: "7:00 AM", Type: models.ShiftNight},
	}, models.CalendarOptions{})

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, 12, ev.Start.Day())
	assert.Equal(t, 13, ev.End.Day())
	assert.InDelta(t, 8, ev.End.Sub(ev.Start).Hours(), 0.001)
	assert.Equal(t, "לילה - Work Shift", ev.Summary)
}

func TestBuildEventsDescriptionTemplate(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{})

	require.Len(t, events, 1)
	desc := events[0].Description
	assert.Contains(t, desc, "Type: בוקר")
	assert.Contains(t, desc, "Duration: 8.0 hours")
	assert.Contains(t, desc, "Rate: ₪50.00/hour")
	// Escaped newlines in the template become real line breaks.
	assert.True(t, strings.Contains(desc, "\n"))
	assert.False(t, strings.Contains(desc, `\n`))
}

func TestBuildEventsCustomTemplateTokens(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "9:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{
		EventDescription: "Shift [SHIFT_TYPE] at [LOCATION], [HOURS]h, rate [RATE]",
		Location:         "Tel Aviv HQ",
	})

	require.Len(t, events, 1)
	// 12 hours pushes the display rate to the 150% tier.
	assert.Equal(t, "Shift בוקר at Tel Aviv HQ, 12.0h, rate 75.00", events[0].Description)
	assert.Equal(t, "Tel Aviv HQ", events[0].Location)
}

func TestBuildEventsDefaultReminder(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{})

	require.Len(t, events, 1)
	require.Len(t, events[0].Reminders, 1)
	assert.Equal(t, 30*60, events[0].Reminders[0].OffsetSeconds)
	assert.Contains(t, events[0].Reminders[0].Message, "30 minutes")
}

func TestBuildEventsReminderFlags(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{
		Reminders: models.ReminderFlags{Reminder1Hour: true, Reminder1Day: true},
	})

	require.Len(t, events, 1)
	require.Len(t, events[0].Reminders, 2)
	assert.Equal(t, 60*60, events[0].Reminders[0].OffsetSeconds)
	assert.Equal(t, 24*60*60, events[0].Reminders[1].OffsetSeconds)
}

func TestBuildEventsCustomReminderSingular(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{
		Reminders: models.ReminderFlags{
			CustomReminderEnabled: true,
			CustomReminderValue:   1,
			CustomReminderUnit:    "hours",
		},
	})

	require.Len(t, events, 1)
	require.Len(t, events[0].Reminders, 1)
	r := events[0].Reminders[0]
	assert.Equal(t, 3600, r.OffsetSeconds)
	assert.Contains(t, r.Message, "1 hour")
	assert.Contains(t, r.Message, "שעה")
}

func TestBuildEventsCustomReminderPluralDays(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{
		Reminders: models.ReminderFlags{
			CustomReminderEnabled: true,
			CustomReminderValue:   2,
			CustomReminderUnit:    "days",
		},
	})

	require.Len(t, events, 1)
	require.Len(t, events[0].Reminders, 1)
	r := events[0].Reminders[0]
	assert.Equal(t, 2*24*60*60, r.OffsetSeconds)
	assert.Contains(t, r.Message, "2 days")
	assert.Contains(t, r.Message, "ימים")
}

func TestBuildEventsSkipsUnresolvableShifts(t *testing.T) {
	svc := newTestCalendarService()

	events := svc.BuildEvents([]models.ShiftRecord{
		{Date: "not-a-date", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
		{Date: "2025-08-12", StartTime: "??", EndTime: "5:00 PM", Type: models.ShiftDay},
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
	}, models.CalendarOptions{})

	require.Len(t, events, 1)
	assert.Equal(t, "2025-08-12", events[0].Start.Format("2006-01-02"))
}

func TestGenerateCalendar(t *testing.T) {
	svc := newTestCalendarService()

	generated, err := svc.GenerateCalendar([]models.ShiftRecord{
		{Date: "2025-08-12", StartTime: "9:00 AM", EndTime: "5:00 PM", Type: models.ShiftDay},
		{Date: "2025-08-13", StartTime: "11:00 PM", EndTime: "7:00 AM", Type: models.ShiftNight},
	}, models.CalendarOptions{CalendarName: "My Shifts 2025"})
	require.NoError(t, err)

	assert.Equal(t, "My-Shifts-2025.ics", generated.Filename)
	assert.Equal(t, 2, generated.Events)
	assert.Contains(t, generated.Payload, "BEGIN:VCALENDAR")
	assert.Contains(t, generated.Payload, "BEGIN:VEVENT")
	assert.Contains(t, generated.Payload, "BEGIN:VALARM")
}
