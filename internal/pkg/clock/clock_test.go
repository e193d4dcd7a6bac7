package clock

import (
	"testing"
	"time"
)

func TestDayUsesBusinessOffset(t *testing.T) {
	// 16:59 UTC is 23:59 in the business zone, still the same day.
	before := time.Date(2024, 5, 31, 16, 59, 0, 0, time.UTC)
	// 17:00 UTC is midnight of the next business day.
	after := time.Date(2024, 5, 31, 17, 0, 0, 0, time.UTC)

	if got := Format(Day(before)); got != "2024-05-31" {
		t.Errorf("Day(before) = %s, want 2024-05-31", got)
	}
	if got := Format(Day(after)); got != "2024-06-01" {
		t.Errorf("Day(after) = %s, want 2024-06-01", got)
	}
}

func TestDayIgnoresHostZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	instant := time.Date(2024, 1, 1, 20, 0, 0, 0, ny) // 01:00 UTC Jan 2, 08:00 business
	if got := Format(Day(instant)); got != "2024-01-02" {
		t.Errorf("Day = %s, want 2024-01-02", got)
	}
}

func TestFixedClock(t *testing.T) {
	c := NewFixed(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC))
	if got := Format(Today(c)); got != "2024-03-11" {
		t.Fatalf("Today = %s, want 2024-03-11", got)
	}
	c.Advance(-7 * time.Hour)
	if got := Format(Today(c)); got != "2024-03-11" {
		t.Fatalf("Today after advance = %s, want 2024-03-11", got)
	}
	c.Set(time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC))
	if got := Format(Today(c)); got != "2024-03-10" {
		t.Fatalf("Today after set = %s, want 2024-03-10", got)
	}
}

func TestMonday(t *testing.T) {
	cases := map[string]string{
		"2024-06-03": "2024-06-03", // Monday
		"2024-06-05": "2024-06-03",
		"2024-06-09": "2024-06-03", // Sunday belongs to the week before
		"2024-06-10": "2024-06-10",
	}
	for in, want := range cases {
		d, _ := ParseDate(in)
		if got := Format(Monday(d)); got != want {
			t.Errorf("Monday(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	d, _ := ParseDate("2024-02-14")
	first, last := MonthBounds(d)
	if Format(first) != "2024-02-01" || Format(last) != "2024-02-29" {
		t.Errorf("bounds = %s..%s", Format(first), Format(last))
	}
}

func TestEndOfDay(t *testing.T) {
	d, _ := ParseDate("2024-02-14")
	end := EndOfDay(d).UTC()
	want := time.Date(2024, 2, 14, 16, 59, 59, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", end, want)
	}
}
