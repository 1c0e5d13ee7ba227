package telemetry_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfarias/fleet-hours/internal/telemetry"
	"github.com/lfarias/fleet-hours/internal/workday"
)

func parseAll(t *testing.T, p *telemetry.Parser, messages [][2]string) {
	t.Helper()
	for i, m := range messages {
		ts, err := time.Parse("2006-01-02T15:04:05", m[0])
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Parse("", "D1", "ABC1234", ts, m[1], "Depot"); err != nil {
			t.Fatalf("Parse(message %d) = %v, want nil", i, err)
		}
	}
}

func TestParser_AssemblesCompletedTrip(t *testing.T) {
	var trips []*workday.RoadTrip
	p := telemetry.NewParser(zerolog.Nop())
	p.OnTripCompleted(func(trip *workday.RoadTrip) { trips = append(trips, trip) })

	parseAll(t, p, [][2]string{
		{"2024-03-01T08:00:00", "START"},
		{"2024-03-01T10:00:00", "STOP;rest"},
		{"2024-03-01T11:00:00", "RESTART"},
		{"2024-03-01T11:30:00", "MSG;waiting for dispatch"},
		{"2024-03-01T12:00:00", "FINISH"},
	})

	if len(trips) != 1 {
		t.Fatalf("len(trips) = %d, want 1", len(trips))
	}
	trip := trips[0]
	if trip.Status != workday.StatusCompleted {
		t.Errorf("Status = %v, want %v", trip.Status, workday.StatusCompleted)
	}
	if trip.Plate != "ABC1234" {
		t.Errorf("Plate = %s, want ABC1234", trip.Plate)
	}
	if trip.Duration != 14400 {
		t.Errorf("Duration = %d, want 14400", trip.Duration)
	}

	var types []workday.EventType
	for _, ev := range trip.Events {
		types = append(types, ev.Type)
	}
	wantTypes := []workday.EventType{
		workday.EventStart,
		workday.EventStop,
		workday.EventRestart,
		workday.EventMessage,
		workday.EventFinish,
	}
	if !reflect.DeepEqual(types, wantTypes) {
		t.Fatalf("event types = %v, want %v", types, wantTypes)
	}

	if got := trip.Events[1].StopType; got != workday.StopRest {
		t.Errorf("stop type = %v, want %v", got, workday.StopRest)
	}
	if got := trip.Events[0].End.Format(time.TimeOnly); got != "10:00:00" {
		t.Errorf("start event end = %s, want 10:00:00", got)
	}
	if got := trip.Events[2].End.Format(time.TimeOnly); got != "12:00:00" {
		t.Errorf("restart event end = %s, want 12:00:00", got)
	}
}

func TestParser_FlagsUndecodablePayloads(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantStopType workday.StopType
	}{
		{name: "unknown opcode", payload: "BL;0x44", wantStopType: workday.StopNone},
		{name: "unknown stop subtype", payload: "STOP;banana", wantStopType: workday.StopOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trips []*workday.RoadTrip
			p := telemetry.NewParser(zerolog.Nop())
			p.OnTripCompleted(func(trip *workday.RoadTrip) { trips = append(trips, trip) })

			parseAll(t, p, [][2]string{
				{"2024-03-01T08:00:00", "START"},
				{"2024-03-01T09:00:00", tt.payload},
				{"2024-03-01T10:00:00", "FINISH"},
			})

			if len(trips) != 1 {
				t.Fatalf("len(trips) = %d, want 1", len(trips))
			}
			if trips[0].Status != workday.StatusCompletedPartially {
				t.Errorf("Status = %v, want %v", trips[0].Status, workday.StatusCompletedPartially)
			}
			ev := trips[0].Events[1]
			if !ev.Incomplete {
				t.Errorf("Incomplete = false, want true")
			}
			if ev.Type != workday.EventStop {
				t.Errorf("Type = %v, want %v", ev.Type, workday.EventStop)
			}
			if ev.StopType != tt.wantStopType {
				t.Errorf("StopType = %v, want %v", ev.StopType, tt.wantStopType)
			}
		})
	}
}

func TestParser_FlushEmitsUnfinishedTrip(t *testing.T) {
	var trips []*workday.RoadTrip
	p := telemetry.NewParser(zerolog.Nop())
	p.OnTripCompleted(func(trip *workday.RoadTrip) { trips = append(trips, trip) })

	parseAll(t, p, [][2]string{
		{"2024-03-01T08:00:00", "START"},
		{"2024-03-01T09:00:00", "STOP;standby"},
	})
	if len(trips) != 0 {
		t.Fatalf("len(trips) before Flush = %d, want 0", len(trips))
	}

	p.Flush()
	p.Flush() // idempotent

	if len(trips) != 1 {
		t.Fatalf("len(trips) after Flush = %d, want 1", len(trips))
	}
	trip := trips[0]
	if trip.Status != workday.StatusIncomplete {
		t.Errorf("Status = %v, want %v", trip.Status, workday.StatusIncomplete)
	}
	if got := len(trip.Events); got != 2 {
		t.Fatalf("len(events) = %d, want 2", got)
	}
	if !trip.Events[1].End.IsZero() {
		t.Errorf("trailing event End = %v, want zero", trip.Events[1].End)
	}
	if trip.Duration != 3600 {
		t.Errorf("Duration = %d, want 3600", trip.Duration)
	}
}

func TestParser_StartWhileOpenEmitsIncompleteTrip(t *testing.T) {
	var trips []*workday.RoadTrip
	p := telemetry.NewParser(zerolog.Nop())
	p.OnTripCompleted(func(trip *workday.RoadTrip) { trips = append(trips, trip) })

	parseAll(t, p, [][2]string{
		{"2024-03-01T08:00:00", "START"},
		{"2024-03-01T09:00:00", "START"},
		{"2024-03-01T10:00:00", "FINISH"},
	})

	if len(trips) != 2 {
		t.Fatalf("len(trips) = %d, want 2", len(trips))
	}
	if trips[0].Status != workday.StatusIncomplete {
		t.Errorf("first trip Status = %v, want %v", trips[0].Status, workday.StatusIncomplete)
	}
	if trips[1].Status != workday.StatusCompleted {
		t.Errorf("second trip Status = %v, want %v", trips[1].Status, workday.StatusCompleted)
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	table, err := workday.NewScheduleTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	analyzer := workday.NewAnalyzer(table, nightHours1to1{}, workday.Options{})
	pipeline := telemetry.NewPipeline(zerolog.Nop(), analyzer)

	for _, m := range [][2]string{
		{"2024-03-01T08:00:00", "START"},
		{"2024-03-01T10:00:00", "STOP;feed"},
		{"2024-03-01T11:00:00", "FINISH"},
	} {
		ts, err := time.Parse("2006-01-02T15:04:05", m[0])
		if err != nil {
			t.Fatal(err)
		}
		if err := pipeline.Parse("", "D1", "ABC1234", ts, m[1], ""); err != nil {
			t.Fatal(err)
		}
	}
	pipeline.Close()

	days := pipeline.WorkedDays()
	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	if got := days[0].Totals.Driving; got != 7200 {
		t.Errorf("Driving = %d, want 7200", got)
	}
	if got := days[0].Totals.Feeding; got != 3600 {
		t.Errorf("Feeding = %d, want 3600", got)
	}
	if got := pipeline.Totalizers().Worked; got != 7200 {
		t.Errorf("period Worked = %d, want 7200", got)
	}
}

type nightHours1to1 struct{}

func (nightHours1to1) DayEquivalent(n int64) int64 { return n }
