package workday

import (
	"fmt"
)

// Totals accumulates seconds per time category. The same struct serves
// as a single day's accumulator and as the running period totalizer.
type Totals struct {
	Driving    int64
	Waiting    int64
	Feeding    int64
	Resting    int64
	Stopped    int64
	DayShift   int64
	NightShift int64
	Worked     int64
	Overtime   int64
}

func (t *Totals) add(o Totals) {
	t.Driving += o.Driving
	t.Waiting += o.Waiting
	t.Feeding += o.Feeding
	t.Resting += o.Resting
	t.Stopped += o.Stopped
	t.DayShift += o.DayShift
	t.NightShift += o.NightShift
	t.Worked += o.Worked
	t.Overtime += o.Overtime
}

// FormattedTotals mirrors Totals with every value rendered as a signed
// HH:MM:SS string.
type FormattedTotals struct {
	Driving    string
	Waiting    string
	Feeding    string
	Resting    string
	Stopped    string
	DayShift   string
	NightShift string
	Worked     string
	Overtime   string
}

func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Driving:    FormatSeconds(t.Driving),
		Waiting:    FormatSeconds(t.Waiting),
		Feeding:    FormatSeconds(t.Feeding),
		Resting:    FormatSeconds(t.Resting),
		Stopped:    FormatSeconds(t.Stopped),
		DayShift:   FormatSeconds(t.DayShift),
		NightShift: FormatSeconds(t.NightShift),
		Worked:     FormatSeconds(t.Worked),
		Overtime:   FormatSeconds(t.Overtime),
	}
}

// FormatSeconds renders a duration in seconds as HH:MM:SS. Hours are
// not wrapped at 24 and negative values keep a leading sign, so a week
// of overtime or a deficit both round-trip visibly.
func FormatSeconds(s int64) string {
	sign := ""
	if s < 0 {
		sign = "-"
		s = -s
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, s/3600, s/60%60, s%60)
}

// Segment is one rendered slice of a trip event, local to a single
// worked day. Time and End are clock strings on that day.
type Segment struct {
	Time     string
	End      string
	Type     EventType
	StopType StopType
	TypeName string
	Location string
	Duration string
	Seconds  int64
	Plate    string
}

// WorkedDay is one finalized calendar day of the analysis. It is
// immutable once emitted.
type WorkedDay struct {
	Date    string
	Weekday string
	Events  []*Segment
	Totals  Totals
}
