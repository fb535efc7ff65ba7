package domain

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	d := DayOf(time.Date(2025, time.March, 14, 23, 59, 59, 0, time.Local))
	if d.Year != 2025 || d.Month != time.March || d.Date != 14 {
		t.Errorf("DayOf = %+v, want 2025-03-14", d)
	}
}

func TestDayIsZero(t *testing.T) {
	if !(Day{}).IsZero() {
		t.Error("zero Day should report IsZero")
	}
	if DayOf(time.Now()).IsZero() {
		t.Error("today should not report IsZero")
	}
}

func TestDayString(t *testing.T) {
	d := Day{Year: 2025, Month: time.March, Date: 5}
	if got := d.String(); got != "2025-03-05" {
		t.Errorf("String() = %q, want %q", got, "2025-03-05")
	}
	if got := (Day{}).String(); got != "" {
		t.Errorf("zero Day String() = %q, want empty", got)
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name string
		prev Day
		cur  Day
		want int
	}{
		{"same day", Day{2025, time.March, 10}, Day{2025, time.March, 10}, 0},
		{"next day", Day{2025, time.March, 10}, Day{2025, time.March, 11}, 1},
		{"two days", Day{2025, time.March, 10}, Day{2025, time.March, 12}, 2},
		{"month boundary", Day{2025, time.February, 28}, Day{2025, time.March, 1}, 1},
		{"year boundary", Day{2024, time.December, 31}, Day{2025, time.January, 1}, 1},
		{"backwards", Day{2025, time.March, 11}, Day{2025, time.March, 10}, -1},
		{"backwards two days", Day{2025, time.March, 12}, Day{2025, time.March, 10}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cur.DaysSince(tt.prev); got != tt.want {
				t.Errorf("DaysSince = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekID(t *testing.T) {
	// Monday and Sunday of the same ISO week share an id.
	mon := DayOf(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local))
	sun := DayOf(time.Date(2025, time.March, 16, 23, 0, 0, 0, time.Local))
	if mon.WeekID() != sun.WeekID() {
		t.Errorf("same ISO week: %d != %d", mon.WeekID(), sun.WeekID())
	}

	// The following Monday is a different week.
	next := DayOf(time.Date(2025, time.March, 17, 0, 0, 0, 0, time.Local))
	if next.WeekID() == mon.WeekID() {
		t.Error("next Monday should start a new ISO week")
	}

	// Jan 1 can belong to the previous ISO year; the id must still differ
	// from mid-December's week.
	dec := DayOf(time.Date(2025, time.December, 15, 0, 0, 0, 0, time.Local))
	jan := DayOf(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local))
	if dec.WeekID() == jan.WeekID() {
		t.Error("December and January weeks should differ")
	}
}
