package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eladr7/shift-scheduler-api/internal/models"
	"github.com/eladr7/shift-scheduler-api/pkg/config"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/ical"
	"github.com/eladr7/shift-scheduler-api/pkg/timeparse"
)

const (
	defaultDescriptionTemplate = `Work shift\nType: [SHIFT_TYPE]\nDuration: [HOURS] hours\nRate: ₪[RATE]/hour`
	calendarDescription        = "Work shift schedule generated by Shift Scheduler"
	defaultReminderSeconds     = 30 * 60
)

var filenamePattern = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

type icsEncoder interface {
	Encode(meta ical.Meta, events []ical.Event) (string, error)
}

// CalendarService turns shift records into calendar event descriptors and
// hands them to the serialization collaborator.
type CalendarService struct {
	encoder icsEncoder
	cfg     config.CalendarConfig
	loc     *time.Location
	logger  *zap.Logger
	newUID  func() string
	now     func() time.Time
}

// NewCalendarService constructs the service. An unknown timezone falls
// back to UTC.
func NewCalendarService(encoder icsEncoder, cfg config.CalendarConfig, logger *zap.Logger) *CalendarService {
	if encoder == nil {
		encoder = ical.NewEncoder()
	}
	if cfg.Name == "" {
		cfg.Name = "Work Shifts"
	}
	if cfg.Location == "" {
		cfg.Location = "Workplace"
	}
	if cfg.DisplayRate <= 0 {
		cfg.DisplayRate = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &CalendarService{
		encoder: encoder,
		cfg:     cfg,
		loc:     loc,
		logger:  logger,
		newUID:  uuid.NewString,
		now:     time.Now,
	}
}

// BuildEvents resolves each shift into a concrete event descriptor. A shift
// that fails to resolve is skipped; it never aborts the batch.
func (s *CalendarService) BuildEvents(shifts []models.ShiftRecord, opts models.CalendarOptions) []models.CalendarEventDescriptor {
	template := opts.EventDescription
	if template == "" {
		template = defaultDescriptionTemplate
	}
	tokenLocation := opts.Location
	if tokenLocation == "" {
		tokenLocation = s.cfg.Location
	}

	events := make([]models.CalendarEventDescriptor, 0, len(shifts))
	for _, shift := range shifts {
		start, err := s.resolveInstant(shift.Date, shift.StartTime)
		if err != nil {
			s.logger.Warn("calendar event skipped", zap.String("date", shift.Date), zap.Error(err))
			continue
		}
		end, err := s.resolveInstant(shift.Date, shift.EndTime)
		if err != nil {
			s.logger.Warn("calendar event skipped", zap.String("date", shift.Date), zap.Error(err))
			continue
		}
		// Overnight shifts end on the next calendar day.
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}

		hours := end.Sub(start).Hours()
		rate := displayShiftRate(shift.Type, hours, s.cfg.DisplayRate)

		description := strings.NewReplacer(
			"[SHIFT_TYPE]", shift.Type.Localized(),
			"[HOURS]", fmt.Sprintf("%.1f", hours),
			"[RATE]", fmt.Sprintf("%.2f", rate),
			"[LOCATION]", tokenLocation,
			`\n`, "\n",
		).Replace(template)

		events = append(events, models.CalendarEventDescriptor{
			UID:         s.newUID(),
			Start:       start,
			End:         end,
			Summary:     shift.Type.Localized() + " - Work Shift",
			Description: description,
			Location:    opts.Location,
			Reminders:   buildReminders(opts.Reminders),
		})
	}
	return events
}

// GeneratedCalendar is an encoded calendar document ready for download.
type GeneratedCalendar struct {
	Filename string
	Payload  string
	Events   int
}

// GenerateCalendar builds events and encodes them into a downloadable
// calendar file.
func (s *CalendarService) GenerateCalendar(shifts []models.ShiftRecord, opts models.CalendarOptions) (*GeneratedCalendar, error) {
	name := opts.CalendarName
	if name == "" {
		name = s.cfg.Name
	}

	events := s.BuildEvents(shifts, opts)
	icsEvents := make([]ical.Event, 0, len(events))
	for _, ev := range events {
		alarms := make([]ical.Alarm, 0, len(ev.Reminders))
		for _, r := range ev.Reminders {
			alarms = append(alarms, ical.Alarm{TriggerSeconds: r.OffsetSeconds, Message: r.Message})
		}
		icsEvents = append(icsEvents, ical.Event{
			UID:         ev.UID,
			Start:       ev.Start,
			End:         ev.End,
			Summary:     ev.Summary,
			Description: ev.Description,
			Location:    ev.Location,
			Alarms:      alarms,
		})
	}

	payload, err := s.encoder.Encode(ical.Meta{
		Name:        name,
		Description: calendarDescription,
		Timezone:    s.cfg.Timezone,
	}, icsEvents)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCalendarEncode.Code, appErrors.ErrCalendarEncode.Status, appErrors.ErrCalendarEncode.Message)
	}

	return &GeneratedCalendar{
		Filename: filenamePattern.ReplaceAllString(name, "-") + ".ics",
		Payload:  payload,
		Events:   len(events),
	}, nil
}

// resolveInstant combines a record date with a clock time in the
// configured timezone.
func (s *CalendarService) resolveInstant(dateStr, timeStr string) (time.Time, error) {
	date, err := parseShiftDate(dateStr, s.now().Year())
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := timeparse.ParseParts(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, s.loc), nil
}

// displayShiftRate is the simplified single-tier rate shown in event
// descriptions. It is presentation-only and deliberately separate from the
// payroll engine's authoritative banding.
func displayShiftRate(t models.ShiftType, hours, baseRate float64) float64 {
	if t == models.ShiftWeekend {
		if hours > 10 {
			return baseRate * 2.0
		}
		return baseRate * 1.5
	}
	if hours > 10 {
		return baseRate * 1.5
	}
	if hours > 8 {
		return baseRate * 1.25
	}
	return baseRate
}

var hebrewUnits = map[string]string{
	"minute":  "דקה",
	"minutes": "דקות",
	"hour":    "שעה",
	"hours":   "שעות",
	"day":     "יום",
	"days":    "ימים",
}

// buildReminders expands caller flags into concrete reminders. When no
// flag produces one, a single 30-minute default is injected.
func buildReminders(flags models.ReminderFlags) []models.Reminder {
	reminders := make([]models.Reminder, 0, 3)

	if flags.Reminder1Hour {
		reminders = append(reminders, models.Reminder{
			OffsetSeconds: 60 * 60,
			Message:       "Work shift starts in 1 hour / המשמרת מתחילה בעוד שעה",
		})
	}
	if flags.Reminder1Day {
		reminders = append(reminders, models.Reminder{
			OffsetSeconds: 24 * 60 * 60,
			Message:       "Work shift tomorrow / משמרת מחר",
		})
	}
	if flags.CustomReminderEnabled && flags.CustomReminderValue > 0 {
		value := flags.CustomReminderValue
		var seconds int
		var unit string
		switch flags.CustomReminderUnit {
		case "hours":
			seconds = value * 60 * 60
			unit = "hours"
			if value == 1 {
				unit = "hour"
			}
		case "days":
			seconds = value * 24 * 60 * 60
			unit = "days"
			if value == 1 {
				unit = "day"
			}
		default:
			seconds = value * 60
			unit = "minutes"
			if value == 1 {
				unit = "minute"
			}
		}
		reminders = append(reminders, models.Reminder{
			OffsetSeconds: seconds,
			Message:       fmt.Sprintf("Work shift in %d %s / משמרת בעוד %d %s", value, unit, value, hebrewUnits[unit]),
		})
	}

	if len(reminders) == 0 {
		reminders = append(reminders, models.Reminder{
			OffsetSeconds: defaultReminderSeconds,
			Message:       "Work shift starts in 30 minutes / המשמרת מתחילה בעוד 30 דקות",
		})
	}
	return reminders
}
