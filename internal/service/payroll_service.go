package service

import (
	"go.uber.org/zap"

	"github.com/eladr7/shift-scheduler-api/internal/models"
	"github.com/eladr7/shift-scheduler-api/pkg/timeparse"
)

// Overtime tier boundaries, counted per individual shift.
const (
	baseTierHours     = 8.0
	overtimeTierHours = 2.0
)

// PayrollService allocates each shift's hours across pay bands. Shifts are
// banded independently; they are never aggregated across a pay period
// before banding.
type PayrollService struct {
	classifier        *Classifier
	dayRate           float64
	nightDifferential float64
	logger            *zap.Logger
}

// NewPayrollService constructs the service with fallback rates applied when
// the caller's PayRateConfig leaves fields unset.
func NewPayrollService(classifier *Classifier, defaultDayRate, defaultNightDifferential float64, logger *zap.Logger) *PayrollService {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	if defaultDayRate <= 0 {
		defaultDayRate = 50
	}
	if defaultNightDifferential <= 0 {
		defaultNightDifferential = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollService{
		classifier:        classifier,
		dayRate:           defaultDayRate,
		nightDifferential: defaultNightDifferential,
		logger:            logger,
	}
}

// ComputeEarnings runs every shift through the banding rules and sums the
// result. Shifts with unparseable times contribute zero hours rather than
// failing the batch.
func (s *PayrollService) ComputeEarnings(shifts []models.ShiftRecord, rates models.PayRateConfig) *models.EarningsSummary {
	summary := &models.EarningsSummary{}

	baseRate := rates.Day
	if baseRate <= 0 {
		baseRate = s.dayRate
	}
	nightDiff := rates.NightDifferential
	if nightDiff <= 0 {
		nightDiff = s.nightDifferential
	}

	for _, shift := range shifts {
		hours, ok := shiftHours(shift)
		if !ok {
			s.logger.Debug("shift skipped, unparseable times",
				zap.String("date", shift.Date),
				zap.String("start", shift.StartTime),
				zap.String("end", shift.EndTime))
			continue
		}

		isWeekend := shift.Type == models.ShiftWeekend || s.classifier.IsWeekendDate(shift.Date)
		isNight := shift.Type == models.ShiftNight

		effectiveRate := baseRate
		if isNight {
			effectiveRate += nightDiff
		}

		switch {
		case shift.Holiday:
			applyHolidayPay(hours, effectiveRate, &summary.Breakdown)
		case isWeekend:
			applyWeekendPay(hours, effectiveRate, &summary.Breakdown)
		default:
			applyRegularPay(hours, effectiveRate, &summary.Breakdown, isNight)
		}

		summary.TotalHours += hours
	}

	summary.TotalEarnings = summary.Breakdown.Total()
	return summary
}

// shiftHours computes the shift duration, reporting false when either
// clock time cannot be parsed.
func shiftHours(shift models.ShiftRecord) (float64, bool) {
	if _, err := timeparse.Parse(shift.StartTime); err != nil {
		return 0, false
	}
	if _, err := timeparse.Parse(shift.EndTime); err != nil {
		return 0, false
	}
	return timeparse.ShiftDurationHours(shift.StartTime, shift.EndTime), true
}

// applyRegularPay bands a weekday shift: 0-8h at the effective rate, 8-10h
// at 125%, beyond 10h at 150%. Night shifts write their base hours into
// the night band instead of regular.
func applyRegularPay(hours, rate float64, b *models.EarningsBreakdown, night bool) {
	remaining := hours

	base := minHours(remaining, baseTierHours)
	if base > 0 {
		if night {
			b.Night += base * rate
		} else {
			b.Regular += base * rate
		}
		remaining -= base
	}

	overtime := minHours(remaining, overtimeTierHours)
	if overtime > 0 {
		b.Overtime125 += overtime * rate * 1.25
		remaining -= overtime
	}

	if remaining > 0 {
		b.Overtime150 += remaining * rate * 1.5
	}
}

// applyWeekendPay bands a weekend shift: 0-8h at 150%, 8-10h at 175%,
// beyond 10h at 200% of the effective rate.
func applyWeekendPay(hours, rate float64, b *models.EarningsBreakdown) {
	remaining := hours

	base := minHours(remaining, baseTierHours)
	if base > 0 {
		b.Weekend150 += base * rate * 1.5
		remaining -= base
	}

	overtime := minHours(remaining, overtimeTierHours)
	if overtime > 0 {
		b.Weekend187 += overtime * rate * 1.75
		remaining -= overtime
	}

	if remaining > 0 {
		b.Weekend225 += remaining * rate * 2.0
	}
}

// applyHolidayPay mirrors the weekend tiers, writing to the holiday bands.
func applyHolidayPay(hours, rate float64, b *models.EarningsBreakdown) {
	remaining := hours

	base := minHours(remaining, baseTierHours)
	if base > 0 {
		b.Holiday150 += base * rate * 1.5
		remaining -= base
	}

	overtime := minHours(remaining, overtimeTierHours)
	if overtime > 0 {
		b.Holiday187 += overtime * rate * 1.75
		remaining -= overtime
	}

	if remaining > 0 {
		b.Holiday225 += remaining * rate * 2.0
	}
}

func minHours(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
