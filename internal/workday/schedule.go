package workday

import (
	"fmt"
	"slices"
	"time"
)

// ClockTime is a time of day expressed as seconds since midnight.
type ClockTime int

// ParseClockTime parses a "15:04" or "15:04:05" string.
func ParseClockTime(s string) (ClockTime, error) {
	var layout string
	switch len(s) {
	case len("15:04"):
		layout = "15:04"
	case len("15:04:05"):
		layout = "15:04:05"
	default:
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c/3600, c/60%60, c%60)
}

// WorkSchedule describes the shift windows and scheduled journey lengths
// that apply from Effective onwards, until superseded by a later entry.
type WorkSchedule struct {
	Effective       time.Time
	DayShiftStart   ClockTime
	NightShiftStart ClockTime
	// JourneyLength holds the scheduled seconds per weekday,
	// indexed by time.Weekday (Sunday = 0).
	JourneyLength   [7]int64
	DiscountDeficit bool
}

func (s *WorkSchedule) validate() error {
	if s.DayShiftStart >= s.NightShiftStart {
		return fmt.Errorf("day shift start %v must precede night shift start %v", s.DayShiftStart, s.NightShiftStart)
	}
	if s.NightShiftStart >= 24*3600 {
		return fmt.Errorf("night shift start %v is not a time of day", s.NightShiftStart)
	}
	for wd, l := range s.JourneyLength {
		if l < 0 {
			return fmt.Errorf("negative journey length %d for %s", l, time.Weekday(wd))
		}
	}
	return nil
}

// defaultSchedule applies whenever no configured entry covers a date.
var defaultSchedule = WorkSchedule{
	DayShiftStart:   ClockTime(5 * 3600),
	NightShiftStart: ClockTime(22 * 3600),
	JourneyLength: [7]int64{
		time.Sunday:    14400,
		time.Monday:    28800,
		time.Tuesday:   28800,
		time.Wednesday: 28800,
		time.Thursday:  28800,
		time.Friday:    28800,
		time.Saturday:  28800,
	},
}

// ScheduleTable resolves the work schedule applicable to a calendar day.
// Entries are kept sorted by effective date, most recent first, so the
// first entry at or before the day being resolved wins.
type ScheduleTable struct {
	entries []WorkSchedule
}

// NewScheduleTable validates the supplied entries and returns a table
// ready for resolution. A misconfigured entry is rejected here so the
// engine never has to produce totals from an invalid window.
func NewScheduleTable(entries []WorkSchedule) (*ScheduleTable, error) {
	sorted := make([]WorkSchedule, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		if err := sorted[i].validate(); err != nil {
			return nil, fmt.Errorf("schedule effective %s: %w", sorted[i].Effective.Format(time.DateOnly), err)
		}
	}
	slices.SortStableFunc(sorted, func(a, b WorkSchedule) int {
		return b.Effective.Compare(a.Effective)
	})
	return &ScheduleTable{entries: sorted}, nil
}

// Window is a WorkSchedule resolved against a concrete calendar day.
// DayEnd and NightEnd are the last counted instants of their windows;
// Split treats the windows as half-open at the boundary instants so
// no second is lost at a crossing.
type Window struct {
	DayStart   time.Time
	DayEnd     time.Time
	NightStart time.Time
	NightEnd   time.Time

	JourneyLength   int64
	DiscountDeficit bool
}

// Resolve selects the schedule applicable to date's calendar day and
// anchors its shift windows to that day. It must be re-invoked for every
// new day the engine advances to, because schedules change over time.
func (t *ScheduleTable) Resolve(date time.Time) Window {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	schedule := &defaultSchedule
	for i := range t.entries {
		if !t.entries[i].Effective.After(midnight) {
			schedule = &t.entries[i]
			break
		}
	}

	dayStart := midnight.Add(time.Duration(schedule.DayShiftStart) * time.Second)
	nightStart := midnight.Add(time.Duration(schedule.NightShiftStart) * time.Second)
	return Window{
		DayStart:        dayStart,
		DayEnd:          nightStart.Add(-time.Second),
		NightStart:      nightStart,
		NightEnd:        dayStart.Add(-time.Second),
		JourneyLength:   schedule.JourneyLength[midnight.Weekday()],
		DiscountDeficit: schedule.DiscountDeficit,
	}
}
