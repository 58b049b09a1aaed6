package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladr7/shift-scheduler-api/internal/models"
)

func newTestExtractService() *ExtractService {
	svc := NewExtractService(models.Lexicon{}, nil, nil, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestExtractTableStrategy(t *testing.T) {
	svc := newTestExtractService()

	text := "לוח משמרות\n" +
		"3/8  4/8  5/8\n" +
		"Dana  בוקר  ערב\n"

	result, err := svc.Extract(ExtractRequest{Text: text, EmployeeName: "Dana"})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 2)
	assert.Equal(t, StrategyTable, result.Strategy)

	assert.Equal(t, models.ShiftRecord{
		Date:      "2025-08-03",
		StartTime: "7:00 AM",
		EndTime:   "3:00 PM",
		Type:      models.ShiftDay,
	}, result.Shifts[0])
	assert.Equal(t, models.ShiftRecord{
		Date:      "2025-08-04",
		StartTime: "3:00 PM",
		EndTime:   "11:00 PM",
		Type:      models.ShiftDay,
	}, result.Shifts[1])
}

func TestExtractTableWeekendClassification(t *testing.T) {
	svc := newTestExtractService()

	// 1/8/2025 is a Friday; the morning indicator must land in the
	// weekend category.
	text := "1/8  3/8  4/8\nDana בוקר\n"

	result, err := svc.Extract(ExtractRequest{Text: text, EmployeeName: "Dana"})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
	assert.Equal(t, models.ShiftWeekend, result.Shifts[0].Type)
	assert.Equal(t, "2025-08-01", result.Shifts[0].Date)
}

func TestExtractNameTokensNeverConsumeDates(t *testing.T) {
	svc := newTestExtractService()

	// מחמוד is a known employee name, not a shift indicator; the single
	// indicator must pair with the first date.
	text := "3/8  4/8  5/8\nDana מחמוד בוקר\n"

	result, err := svc.Extract(ExtractRequest{Text: text, EmployeeName: "Dana"})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
	assert.Equal(t, "2025-08-03", result.Shifts[0].Date)
}

func TestExtractFallbackLineScan(t *testing.T) {
	svc := newTestExtractService()

	result, err := svc.Extract(ExtractRequest{
		Text:         "Dana 12/8 9:00 AM 5:00 PM",
		EmployeeName: "Dana",
	})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
	assert.Equal(t, StrategyLineScan, result.Strategy)

	assert.Equal(t, models.ShiftRecord{
		Date:      "2025-08-12",
		StartTime: "9:00 AM",
		EndTime:   "5:00 PM",
		Type:      models.ShiftDay,
	}, result.Shifts[0])
}

func TestExtractFallbackNightDetection(t *testing.T) {
	svc := newTestExtractService()

	result, err := svc.Extract(ExtractRequest{
		Text:         "Dana 12/8 11:00 PM 7:00 AM",
		EmployeeName: "Dana",
	})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
	assert.Equal(t, models.ShiftNight, result.Shifts[0].Type)
	assert.Equal(t, "11:00 PM", result.Shifts[0].StartTime)
	assert.Equal(t, "7:00 AM", result.Shifts[0].EndTime)
}

func TestExtractFallbackSkipsIncompleteLines(t *testing.T) {
	svc := newTestExtractService()

	result, err := svc.Extract(ExtractRequest{
		Text:         "Dana 9:00 AM only one time here\nDana no times at all",
		EmployeeName: "Dana",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Shifts)

	reasons := make([]string, 0, len(result.Trace))
	for _, outcome := range result.Trace {
		reasons = append(reasons, outcome.Reason)
	}
	assert.Contains(t, reasons, "fewer than two clock times")
}

func TestExtractTraceExplainsEmptyEmployeeRow(t *testing.T) {
	svc := newTestExtractService()

	result, err := svc.Extract(ExtractRequest{
		Text:         "Dana בוקר",
		EmployeeName: "Dana",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Shifts)

	// No header row, so the fallback trace wins.
	assert.Equal(t, StrategyLineScan, result.Strategy)
	require.NotEmpty(t, result.Trace)
	assert.Equal(t, "fewer than two clock times", result.Trace[0].Reason)
}

func TestExtractIsDeterministic(t *testing.T) {
	svc := newTestExtractService()
	req := ExtractRequest{
		Text:         "3/8  4/8  5/8\nDana בוקר ערב לילה\n",
		EmployeeName: "Dana",
	}

	first, err := svc.Extract(req)
	require.NoError(t, err)
	second, err := svc.Extract(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractValidatesInput(t *testing.T) {
	svc := newTestExtractService()

	_, err := svc.Extract(ExtractRequest{Text: "", EmployeeName: "Dana"})
	assert.Error(t, err)

	_, err = svc.Extract(ExtractRequest{Text: "some text", EmployeeName: ""})
	assert.Error(t, err)
}

func TestExtractNameMatchingTolerant(t *testing.T) {
	svc := newTestExtractService()

	text := "3/8  4/8  5/8\ndana  cohen בוקר\n"

	result, err := svc.Extract(ExtractRequest{Text: text, EmployeeName: "Dana Cohen"})
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1)
}
