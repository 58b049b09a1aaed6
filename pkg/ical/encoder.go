// Package ical renders event records into an RFC 5545 calendar document.
// It owns the encoding syntax so the rest of the system only deals in
// event descriptors.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Meta describes the calendar container.
type Meta struct {
	Name        string
	Description string
	Timezone    string
}

// Event is one entry in the rendered calendar.
type Event struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
	Alarms      []Alarm
}

// Alarm is a display reminder firing TriggerSeconds before the event start.
type Alarm struct {
	TriggerSeconds int
	Message        string
}

// Encoder serializes events into iCalendar text.
type Encoder struct{}

// NewEncoder builds an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode renders the calendar document as a string.
func (e *Encoder) Encode(meta Meta, events []Event) (string, error) {
	if meta.Name == "" {
		return "", fmt.Errorf("calendar name required")
	}

	cal := ics.NewCalendar()
	cal.SetName(meta.Name)
	cal.SetXWRCalName(meta.Name)
	if meta.Description != "" {
		cal.SetDescription(meta.Description)
		cal.SetXWRCalDesc(meta.Description)
	}
	if meta.Timezone != "" {
		cal.SetXWRTimezone(meta.Timezone)
	}

	for _, ev := range events {
		ce := cal.AddEvent(ev.UID)
		ce.SetDtStampTime(time.Now().UTC())
		ce.SetStartAt(ev.Start)
		ce.SetEndAt(ev.End)
		ce.SetSummary(ev.Summary)
		if ev.Description != "" {
			ce.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ce.SetLocation(ev.Location)
		}
		for _, alarm := range ev.Alarms {
			a := ce.AddAlarm()
			a.SetAction(ics.ActionDisplay)
			a.SetTrigger(formatTrigger(alarm.TriggerSeconds))
			if alarm.Message != "" {
				a.SetProperty(ics.ComponentPropertyDescription, alarm.Message)
			}
		}
	}

	return cal.Serialize(), nil
}

// formatTrigger renders a negative duration trigger, preferring whole
// minutes for readability.
func formatTrigger(seconds int) string {
	if seconds <= 0 {
		seconds = 0
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("-PT%dM", seconds/60)
	}
	return fmt.Sprintf("-PT%dS", seconds)
}
