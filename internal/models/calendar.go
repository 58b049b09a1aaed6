package models

import "time"

// ReminderFlags mirrors the caller-facing reminder options.
type ReminderFlags struct {
	Reminder1Hour         bool   `json:"reminder1Hour"`
	Reminder1Day          bool   `json:"reminder1Day"`
	CustomReminderEnabled bool   `json:"customReminderEnabled"`
	CustomReminderValue   int    `json:"customReminderValue"`
	CustomReminderUnit    string `json:"customReminderUnit"`
}

// Reminder is a resolved alarm: how long before the event it fires and the
// localized message shown.
type Reminder struct {
	OffsetSeconds int    `json:"offsetSeconds"`
	Message       string `json:"message"`
}

// CalendarOptions customises the generated calendar file.
type CalendarOptions struct {
	CalendarName     string        `json:"calendarName"`
	EventDescription string        `json:"eventDescription"`
	Location         string        `json:"location"`
	Reminders        ReminderFlags `json:"reminders"`
}

// CalendarEventDescriptor is a fully resolved event, ready for the
// serialization collaborator. Ownership is transient: built, encoded,
// discarded.
type CalendarEventDescriptor struct {
	UID         string     `json:"uid"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Reminders   []Reminder `json:"reminders"`
}
