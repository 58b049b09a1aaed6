package models

// ShiftType categorises a work shift. Day, morning and evening collapse to
// day pay; night carries the differential; weekend overrides both.
type ShiftType string

const (
	ShiftDay     ShiftType = "day"
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftWeekend ShiftType = "weekend"
)

// Localized returns the Hebrew display name used in calendar summaries.
func (t ShiftType) Localized() string {
	switch t {
	case ShiftDay, ShiftMorning:
		return "בוקר"
	case ShiftEvening:
		return "ערב"
	case ShiftNight:
		return "לילה"
	case ShiftWeekend:
		return "סוף שבוע"
	default:
		return string(t)
	}
}

// ShiftRecord is one continuous block of work on a calendar date, possibly
// crossing midnight. Records are immutable once produced.
type ShiftRecord struct {
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Type      ShiftType `json:"type"`
	Holiday   bool      `json:"holiday,omitempty"`
}

// DateHeaderEntry is a day/month token lifted from a table header row. It
// stays active for the employee rows that follow, until the next header row.
type DateHeaderEntry struct {
	Day      int    `json:"day"`
	Month    int    `json:"month"`
	FullDate string `json:"fullDate"`
}

// LineKind tags why a scanned line did or did not contribute shifts.
type LineKind string

const (
	LineDateHeader  LineKind = "date_header"
	LineEmployeeRow LineKind = "employee_row"
	LineSkipped     LineKind = "skipped"
)

// LineOutcome records the extraction decision for a single input line, so
// callers can see why a shift was or was not produced.
type LineOutcome struct {
	Line   int      `json:"line"`
	Kind   LineKind `json:"kind"`
	Shifts int      `json:"shifts"`
	Reason string   `json:"reason,omitempty"`
}
