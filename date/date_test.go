package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-19", New(2024, time.January, 19)},
		{"2024-1-9", New(2024, time.January, 9)},
		{"01/19/2024", New(2024, time.January, 19)},
		{"1/9/2024", New(2024, time.January, 9)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "19 Jan 2024"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected an error", in)
		}
	}
}

// TestAdd asserts that day arithmetic normalizes across month boundaries.
func TestAdd(t *testing.T) {
	d := New(2024, time.January, 30)
	if got := d.Add(5); got != New(2024, time.February, 4) {
		t.Errorf("Add(5) = %s", got)
	}
	if got := d.Add(-31); got != New(2023, time.December, 30) {
		t.Errorf("Add(-31) = %s", got)
	}
}

func TestDaysUntil(t *testing.T) {
	open := New(2024, time.January, 1)
	close := New(2024, time.January, 16)
	if got := open.DaysUntil(close); got != 15 {
		t.Errorf("DaysUntil = %d, want 15", got)
	}
	if got := close.DaysUntil(open); got != -15 {
		t.Errorf("reverse DaysUntil = %d, want -15", got)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: New(2024, time.March, 1), To: New(2024, time.March, 31)}
	if !r.Contains(New(2024, time.March, 1)) || !r.Contains(New(2024, time.March, 31)) {
		t.Error("range bounds should be inclusive")
	}
	if r.Contains(New(2024, time.April, 1)) {
		t.Error("range should not contain dates after To")
	}
}
