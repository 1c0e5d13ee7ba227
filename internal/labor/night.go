// Package labor holds the legal-equivalence rules the engine treats as
// injected policy.
package labor

import (
	"fmt"
)

// DefaultNightHourSeconds is the reckoned length of a night hour under
// the CLT rule the system operates under: 52 minutes and 30 seconds of
// night work count as a full hour.
const DefaultNightHourSeconds = 3150

// NightHours converts night-shift time to its day-equivalent duration.
type NightHours struct {
	hourSeconds int64
}

func NewNightHours(hourSeconds int64) (*NightHours, error) {
	if hourSeconds <= 0 || hourSeconds > 3600 {
		return nil, fmt.Errorf("night hour length must be in (0, 3600] seconds, got %d", hourSeconds)
	}
	return &NightHours{hourSeconds: hourSeconds}, nil
}

// DayEquivalent returns the day-clock seconds that nightSeconds of
// night work are worth. Integer arithmetic, truncating.
func (n *NightHours) DayEquivalent(nightSeconds int64) int64 {
	return nightSeconds * 3600 / n.hourSeconds
}
