package workday_test

import (
	"testing"
	"time"

	"github.com/lfarias/fleet-hours/internal/workday"
)

func TestWindow_Split(t *testing.T) {
	tz, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}

	table, err := workday.NewScheduleTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	// Default schedule: day shift 05:00, night shift 22:00.
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, tz)
	w := table.Resolve(day)

	at := func(hour, min, sec int) time.Time {
		return time.Date(2024, time.March, 1, hour, min, sec, 0, tz)
	}

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantDay   int64
		wantNight int64
	}{
		{
			name:      "entirely day",
			start:     at(8, 0, 0),
			end:       at(12, 30, 0),
			wantDay:   16200,
			wantNight: 0,
		},
		{
			name:      "entirely night before dawn",
			start:     at(1, 0, 0),
			end:       at(3, 15, 0),
			wantDay:   0,
			wantNight: 8100,
		},
		{
			name:      "entirely night after dusk",
			start:     at(22, 30, 0),
			end:       at(23, 45, 0),
			wantDay:   0,
			wantNight: 4500,
		},
		{
			name:      "straddling the day shift start",
			start:     at(4, 0, 0),
			end:       at(6, 0, 0),
			wantDay:   3600,
			wantNight: 3600,
		},
		{
			name:      "straddling the night shift start",
			start:     at(21, 0, 0),
			end:       at(23, 0, 0),
			wantDay:   3600,
			wantNight: 3600,
		},
		{
			name:      "crossing both boundaries",
			start:     at(4, 0, 0),
			end:       at(23, 0, 0),
			wantDay:   61200,
			wantNight: 7200,
		},
		{
			name:      "ending exactly at the day shift start",
			start:     at(3, 0, 0),
			end:       at(5, 0, 0),
			wantDay:   0,
			wantNight: 7200,
		},
		{
			name:      "starting exactly at the night shift start",
			start:     at(22, 0, 0),
			end:       at(22, 10, 0),
			wantDay:   0,
			wantNight: 600,
		},
		{
			name:      "ending exactly at midnight",
			start:     at(23, 30, 0),
			end:       time.Date(2024, time.March, 2, 0, 0, 0, 0, tz),
			wantDay:   0,
			wantNight: 1800,
		},
		{
			name:      "zero length",
			start:     at(10, 0, 0),
			end:       at(10, 0, 0),
			wantDay:   0,
			wantNight: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, night := w.Split(tt.start, tt.end)
			if day != tt.wantDay || night != tt.wantNight {
				t.Errorf("Split() = (%d, %d), want (%d, %d)", day, night, tt.wantDay, tt.wantNight)
			}
			if total := int64(tt.end.Sub(tt.start) / time.Second); day+night != total {
				t.Errorf("day + night = %d, want %d", day+night, total)
			}
		})
	}
}
