package workday

import (
	"time"
)

// Options are the behavior switches of the analyzer.
type Options struct {
	// BypassIncompleteStops folds the duration of an incomplete event
	// into the previously rendered segment instead of rendering a new
	// one, provided the previous event was a counted stop.
	BypassIncompleteStops bool
	// BypassIncompleteTrips rejects trips that never completed instead
	// of admitting the ones that at least open with a START event.
	BypassIncompleteTrips bool
}

// Analyzer reduces an ordered stream of road trips into per-day worked
// hours. One instance serves one driver's stream: day rollover depends
// on strict temporal ordering across the whole stream, so trips from
// different drivers must go to different instances.
//
// Callers submit trips via TripCompleted in increasing time order and
// must call Close after the last one; a missing Close silently drops
// the still-open day.
type Analyzer struct {
	schedules  *ScheduleTable
	nightHours NightHourConverter
	opts       Options

	day    *openDay
	days   []*WorkedDay
	totals Totals
	last   *TripEvent
}

// openDay is the accumulator for the calendar day currently receiving
// events. date and next are the bounding midnights.
type openDay struct {
	date     time.Time
	next     time.Time
	window   Window
	totals   Totals
	segments []*Segment
}

func NewAnalyzer(schedules *ScheduleTable, nightHours NightHourConverter, opts Options) *Analyzer {
	return &Analyzer{
		schedules:  schedules,
		nightHours: nightHours,
		opts:       opts,
	}
}

// TripCompleted consumes one road trip. Trips that completed (fully or
// partially) are always admitted; otherwise the trip is admitted only
// when incomplete trips are not bypassed and it opens with a START
// event, the salvageable-partial-data heuristic.
func (a *Analyzer) TripCompleted(trip *RoadTrip) {
	if !a.admit(trip) {
		return
	}
	for i := range trip.Events {
		a.processEvent(trip, &trip.Events[i])
	}
}

func (a *Analyzer) admit(trip *RoadTrip) bool {
	switch trip.Status {
	case StatusCompleted, StatusCompletedPartially:
		return true
	}
	if a.opts.BypassIncompleteTrips {
		return false
	}
	return len(trip.Events) > 0 && trip.Events[0].Type == EventStart
}

func (a *Analyzer) processEvent(trip *RoadTrip, ev *TripEvent) {
	if ev.Ignored || ev.Type == EventMessage {
		return
	}
	a.rollTo(ev.Start)

	if ev.End.IsZero() {
		// Nothing to measure, but the event still participates in the
		// incomplete-stop bypass bookkeeping.
		a.last = ev
		return
	}

	// A single event may span one or more midnights; slice it so every
	// piece lands on exactly one calendar day.
	start := ev.Start
	for {
		finish := ev.End
		crossed := finish.After(a.day.next)
		if crossed {
			finish = a.day.next
		}

		dur := seconds(start, finish)
		dayTime, nightTime := a.day.window.Split(start, finish)
		a.record(trip, ev, start, finish, dur, dayTime, nightTime)

		if !crossed {
			break
		}
		a.finalizeOpenDay()
		a.open(finish)
		start = finish
	}
	a.last = ev
}

// rollTo finalizes the open day when t belongs to a different calendar
// day and opens the day t falls on.
func (a *Analyzer) rollTo(t time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if a.day != nil && a.day.date.Equal(midnight) {
		return
	}
	a.finalizeOpenDay()
	a.open(midnight)
}

func (a *Analyzer) open(midnight time.Time) {
	a.day = &openDay{
		date:   midnight,
		next:   midnight.AddDate(0, 0, 1),
		window: a.schedules.Resolve(midnight),
	}
}

// record books one same-day slice of an event: a rendered segment
// (unless suppressed), the time-category total, and the shift totals.
func (a *Analyzer) record(trip *RoadTrip, ev *TripEvent, start, finish time.Time, dur, dayTime, nightTime int64) {
	d := a.day

	switch {
	case ev.Type == EventRestart:
		// Restarts only signal schedule continuation; they count
		// toward totals but never render a segment.
	case a.opts.BypassIncompleteStops && ev.Incomplete &&
		a.last != nil && a.last.StopType > StopNone && len(d.segments) > 0:
		seg := d.segments[len(d.segments)-1]
		seg.End = clock(finish, d.next)
		seg.Seconds += dur
		seg.Duration = FormatSeconds(seg.Seconds)
	default:
		displayed := dur
		if ev.Type == EventFinish {
			// The finish segment shows the trip's reported total.
			displayed = trip.Duration
		}
		d.segments = append(d.segments, &Segment{
			Time:     start.Format(time.TimeOnly),
			End:      clock(finish, d.next),
			Type:     ev.Type,
			StopType: ev.StopType,
			TypeName: segmentLabel(ev),
			Location: ev.Location,
			Duration: FormatSeconds(displayed),
			Seconds:  displayed,
			Plate:    trip.Plate,
		})
	}

	switch {
	case ev.StopType > StopRest:
		d.totals.Stopped += dur
	case ev.StopType == StopStandby:
		d.totals.Waiting += dur
	case ev.StopType == StopFeed:
		d.totals.Feeding += dur
	case ev.StopType == StopRest:
		d.totals.Resting += dur
	default:
		d.totals.Driving += dur
	}

	// Standby, feed and rest stops are legally non-working pauses and
	// contribute nothing to the shift totals.
	if ev.Type == EventStop && ev.StopType >= StopStandby && ev.StopType <= StopRest {
		return
	}
	d.totals.DayShift += dayTime
	d.totals.NightShift += nightTime
}

// finalizeOpenDay converts the open day's accumulators into a WorkedDay
// and rolls them into the period totals. A day that rendered no
// segments is discarded. Finalized days are never reopened.
func (a *Analyzer) finalizeOpenDay() {
	d := a.day
	a.day = nil
	if d == nil || len(d.segments) == 0 {
		return
	}

	duration := d.totals.DayShift + a.nightHours.DayEquivalent(d.totals.NightShift)
	if duration > d.window.JourneyLength {
		d.totals.Worked = d.window.JourneyLength
		d.totals.Overtime = duration - d.window.JourneyLength
	} else {
		d.totals.Worked = duration
		if d.window.DiscountDeficit {
			d.totals.Overtime = duration - d.window.JourneyLength
		}
	}

	a.days = append(a.days, &WorkedDay{
		Date:    d.date.Format(time.DateOnly),
		Weekday: d.date.Weekday().String(),
		Events:  d.segments,
		Totals:  d.totals,
	})
	a.totals.add(d.totals)
}

// Close finalizes the still-open day. It must be called after the last
// trip has been submitted.
func (a *Analyzer) Close() {
	a.finalizeOpenDay()
}

// WorkedDays returns the finalized days in chronological order.
func (a *Analyzer) WorkedDays() []*WorkedDay {
	return a.days
}

// Totalizers returns the period-wide totals across all finalized days.
func (a *Analyzer) Totalizers() Totals {
	return a.totals
}

// clock renders t as a clock string on the day ending at next; the
// midnight instant belongs to the next day and is shown as 23:59:59.
func clock(t, next time.Time) string {
	if t.Equal(next) {
		t = t.Add(-time.Second)
	}
	return t.Format(time.TimeOnly)
}

func segmentLabel(ev *TripEvent) string {
	switch ev.Type {
	case EventStop:
		return ev.StopType.Label()
	case EventFinish:
		return "Trip finish"
	}
	return "Driving"
}
