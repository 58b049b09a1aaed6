package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eladr7/shift-scheduler-api/internal/models"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/timeparse"
)

// Extraction strategies, tried in order.
const (
	StrategyTable    = "table"
	StrategyLineScan = "line_scan"
)

var (
	headerDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)
	lineTimePattern   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM|אחה״צ|בבוקר)?`)
	lineDatePattern   = regexp.MustCompile(`(\d{1,2})[/.](\d{1,2})(?:[/.](\d{2,4}))?`)
)

// IndicatorMatch pairs a recognized shift-type word with the date-header
// entry it consumes.
type IndicatorMatch struct {
	Word string
	Type models.ShiftType
	Date models.DateHeaderEntry
}

// PairingStrategy decides which active date-header entry each indicator
// word consumes. The positional strategy is fragile by construction but
// matches how the schedule tables are laid out; a stricter column-aligned
// parser can replace it.
type PairingStrategy interface {
	Pair(words []string, dates []models.DateHeaderEntry, lexicon models.Lexicon) []IndicatorMatch
}

// PositionalPairing pairs the Nth matched indicator with the Nth active
// date entry, regardless of intervening non-indicator words.
type PositionalPairing struct{}

// Pair implements PairingStrategy.
func (PositionalPairing) Pair(words []string, dates []models.DateHeaderEntry, lexicon models.Lexicon) []IndicatorMatch {
	matches := make([]IndicatorMatch, 0, len(dates))
	idx := 0
	for _, word := range words {
		if idx >= len(dates) {
			break
		}
		shiftType, ok := lexicon.IsIndicator(word)
		if !ok {
			continue
		}
		matches = append(matches, IndicatorMatch{Word: word, Type: shiftType, Date: dates[idx]})
		idx++
	}
	return matches
}

// ExtractRequest carries the raw recognized text and the employee to look for.
type ExtractRequest struct {
	Text         string `validate:"required"`
	EmployeeName string `validate:"required"`
}

// ExtractResult is the ordered shift sequence plus a per-line trace
// explaining why each considered line did or did not produce shifts.
type ExtractResult struct {
	Shifts   []models.ShiftRecord `json:"shifts"`
	Strategy string               `json:"strategy"`
	Trace    []models.LineOutcome `json:"trace,omitempty"`
}

// ExtractService converts raw recognized schedule text into shift records.
// It tries the structured table strategy first and falls back to the
// unstructured line scan when the table yields nothing.
type ExtractService struct {
	lexicon    models.Lexicon
	pairing    PairingStrategy
	classifier *Classifier
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewExtractService constructs the service.
func NewExtractService(lexicon models.Lexicon, pairing PairingStrategy, classifier *Classifier, validate *validator.Validate, logger *zap.Logger) *ExtractService {
	if lexicon.Indicators == nil {
		lexicon = models.DefaultLexicon()
	}
	if pairing == nil {
		pairing = PositionalPairing{}
	}
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractService{
		lexicon:    lexicon,
		pairing:    pairing,
		classifier: classifier,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// Extract returns the ordered shifts found for the employee in the raw
// text. Identical input always yields identical, identically ordered
// output.
func (s *ExtractService) Extract(req ExtractRequest) (*ExtractResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "text and employeeName are required")
	}

	namePattern, err := buildNamePattern(req.EmployeeName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee name")
	}

	lines := strings.Split(req.Text, "\n")

	result := s.scanTable(lines, namePattern)
	if len(result.Shifts) == 0 {
		s.logger.Debug("table strategy yielded nothing, falling back to line scan",
			zap.String("employee", req.EmployeeName))
		result = s.scanLines(lines, namePattern)
	}

	s.logger.Info("shift extraction finished",
		zap.String("strategy", result.Strategy),
		zap.Int("shifts", len(result.Shifts)))
	return result, nil
}

// buildNamePattern compiles a whitespace-and-case-tolerant matcher for the
// employee name.
func buildNamePattern(name string) (*regexp.Regexp, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil, fmt.Errorf("blank employee name")
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return regexp.Compile(`(?i)` + strings.Join(quoted, `\s*`))
}

// scanTable implements the structured strategy: date-header rows establish
// the active week, employee rows pair indicator words with those dates.
func (s *ExtractService) scanTable(lines []string, namePattern *regexp.Regexp) *ExtractResult {
	result := &ExtractResult{Strategy: StrategyTable, Shifts: []models.ShiftRecord{}}
	var activeDates []models.DateHeaderEntry
	year := s.now().Year()

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		dateMatches := headerDatePattern.FindAllStringSubmatch(line, -1)
		if len(dateMatches) >= 3 {
			activeDates = activeDates[:0]
			for _, m := range dateMatches {
				day, _ := strconv.Atoi(m[1])
				month, _ := strconv.Atoi(m[2])
				activeDates = append(activeDates, models.DateHeaderEntry{
					Day:      day,
					Month:    month,
					FullDate: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
				})
			}
			result.Trace = append(result.Trace, models.LineOutcome{Line: i, Kind: models.LineDateHeader, Shifts: 0})
			continue
		}

		if !namePattern.MatchString(line) {
			continue
		}

		matches := s.pairing.Pair(strings.Fields(line), activeDates, s.lexicon)
		count := 0
		for _, m := range matches {
			date := time.Date(year, time.Month(m.Date.Month), m.Date.Day, 0, 0, 0, 0, time.UTC)
			start, end := standardShiftTimes(m.Type)
			result.Shifts = append(result.Shifts, models.ShiftRecord{
				Date:      m.Date.FullDate,
				StartTime: start,
				EndTime:   end,
				Type:      s.classifier.Classify(m.Type, date),
			})
			count++
		}

		outcome := models.LineOutcome{Line: i, Kind: models.LineEmployeeRow, Shifts: count}
		if count == 0 {
			if len(activeDates) == 0 {
				outcome.Reason = "no active date header"
			} else {
				outcome.Reason = "no shift indicators matched"
			}
		}
		result.Trace = append(result.Trace, outcome)
	}
	return result
}

// scanLines implements the fallback strategy: any line mentioning the
// employee with two clock times and a date becomes one shift.
func (s *ExtractService) scanLines(lines []string, namePattern *regexp.Regexp) *ExtractResult {
	result := &ExtractResult{Strategy: StrategyLineScan, Shifts: []models.ShiftRecord{}}
	year := s.now().Year()

	for i, line := range lines {
		if !namePattern.MatchString(line) {
			continue
		}

		times := lineTimePattern.FindAllString(line, -1)
		if len(times) < 2 {
			result.Trace = append(result.Trace, models.LineOutcome{
				Line: i, Kind: models.LineSkipped, Reason: "fewer than two clock times",
			})
			continue
		}
		dates := lineDatePattern.FindAllStringSubmatch(line, -1)
		if len(dates) < 1 {
			result.Trace = append(result.Trace, models.LineOutcome{
				Line: i, Kind: models.LineSkipped, Reason: "no date found",
			})
			continue
		}

		startHour, startMin, err := timeparse.ParseParts(times[0])
		if err != nil {
			result.Trace = append(result.Trace, models.LineOutcome{
				Line: i, Kind: models.LineSkipped, Reason: "unparseable start time",
			})
			continue
		}
		endHour, endMin, err := timeparse.ParseParts(times[1])
		if err != nil {
			result.Trace = append(result.Trace, models.LineOutcome{
				Line: i, Kind: models.LineSkipped, Reason: "unparseable end time",
			})
			continue
		}

		day, _ := strconv.Atoi(dates[0][1])
		month, _ := strconv.Atoi(dates[0][2])
		shiftYear := year
		if dates[0][3] != "" {
			if y, err := strconv.Atoi(dates[0][3]); err == nil {
				if y < 100 {
					y += 2000
				}
				shiftYear = y
			}
		}
		date := time.Date(shiftYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		prelim := models.ShiftDay
		if startHour >= 18 || startHour < 6 {
			prelim = models.ShiftNight
		}

		result.Shifts = append(result.Shifts, models.ShiftRecord{
			Date:      fmt.Sprintf("%04d-%02d-%02d", shiftYear, month, day),
			StartTime: timeparse.To12Hour(startHour, startMin),
			EndTime:   timeparse.To12Hour(endHour, endMin),
			Type:      s.classifier.Classify(prelim, date),
		})
		result.Trace = append(result.Trace, models.LineOutcome{Line: i, Kind: models.LineEmployeeRow, Shifts: 1})
	}
	return result
}

// standardShiftTimes returns the fixed clock times the schedule grid uses
// for each shift indicator.
func standardShiftTimes(t models.ShiftType) (start, end string) {
	switch t {
	case models.ShiftMorning:
		return "7:00 AM", "3:00 PM"
	case models.ShiftEvening:
		return "3:00 PM", "11:00 PM"
	case models.ShiftNight:
		return "11:00 PM", "7:00 AM"
	default:
		return "9:00 AM", "5:00 PM"
	}
}
