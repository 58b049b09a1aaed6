package models

// PayRateConfig carries caller-supplied hourly rates. Zero or missing
// fields fall back to service defaults.
type PayRateConfig struct {
	Day               float64 `json:"day"`
	NightDifferential float64 `json:"nightDifferential"`
}

// EarningsBreakdown accumulates currency per pay band. Bands are purely
// additive; a shift's contribution is never revised once applied.
type EarningsBreakdown struct {
	Regular     float64 `json:"regular"`
	Night       float64 `json:"night"`
	Overtime125 float64 `json:"overtime125"`
	Overtime150 float64 `json:"overtime150"`
	Weekend150  float64 `json:"weekend150"`
	Weekend187  float64 `json:"weekend187"`
	Weekend225  float64 `json:"weekend225"`
	Holiday150  float64 `json:"holiday150"`
	Holiday187  float64 `json:"holiday187"`
	Holiday225  float64 `json:"holiday225"`
}

// Total sums every band.
func (b EarningsBreakdown) Total() float64 {
	return b.Regular + b.Night +
		b.Overtime125 + b.Overtime150 +
		b.Weekend150 + b.Weekend187 + b.Weekend225 +
		b.Holiday150 + b.Holiday187 + b.Holiday225
}

// EarningsSummary is the result of running a batch of shifts through the
// payroll engine.
type EarningsSummary struct {
	TotalEarnings float64           `json:"totalEarnings"`
	TotalHours    float64           `json:"totalHours"`
	Breakdown     EarningsBreakdown `json:"breakdown"`
}
