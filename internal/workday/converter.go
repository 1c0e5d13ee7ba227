package workday

// NightHourConverter maps a night-shift duration to its day-equivalent
// duration under the applicable wage rule. The ratio is jurisdiction
// policy and is injected, never embedded in the engine.
type NightHourConverter interface {
	DayEquivalent(nightSeconds int64) int64
}
