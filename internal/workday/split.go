package workday

import (
	"time"
)

// Split divides the interval [start, end) between the day-shift and
// night-shift windows of w's calendar day. Both instants must fall on
// that day (end may be the following midnight, which closes the night
// window). The result is exact: day + night == end - start, always.
func (w Window) Split(start, end time.Time) (day, night int64) {
	if !start.Before(end) {
		return 0, 0
	}

	// Walk the three regions of the clock in order:
	//
	//   00:00        DayStart         NightStart        24:00
	//   |-- night ---|---- day -------|----- night -----|
	//
	// advancing start past each boundary it crosses.
	if start.Before(w.DayStart) {
		if !end.After(w.DayStart) {
			return 0, seconds(start, end)
		}
		night += seconds(start, w.DayStart)
		start = w.DayStart
	}

	if start.Before(w.NightStart) {
		if !end.After(w.NightStart) {
			return day + seconds(start, end), night
		}
		day += seconds(start, w.NightStart)
		start = w.NightStart
	}

	night += seconds(start, end)
	return day, night
}

func seconds(from, to time.Time) int64 {
	return int64(to.Sub(from) / time.Second)
}
