package utils

import (
	"testing"
	"time"
)

func TestValidNumberField(t *testing.T) {
	valid := []string{"0", "42", "-3", "+7", "3.14", ".5", "5.", "1e3", "2.5E-2", " 10 "}
	for _, s := range valid {
		if !ValidNumberField(s) {
			t.Errorf("Expected %q to be a valid number", s)
		}
	}

	invalid := []string{"", "abc", "1.2.3", "--5", "1e", "e5", "12px", "NaN"}
	for _, s := range invalid {
		if ValidNumberField(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestJustDate(t *testing.T) {
	in := time.Date(2023, time.March, 15, 18, 42, 7, 0, time.Local)
	got := JustDate(in)
	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("JustDate(%v) = %v, want %v", in, got, want)
	}
}

func TestFirstDayOfMonth(t *testing.T) {
	in := time.Date(2023, time.March, 15, 18, 42, 7, 0, time.Local)
	got := FirstDayOfMonth(in)
	want := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("FirstDayOfMonth(%v) = %v, want %v", in, got, want)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2023, time.March, 15, 13, 30, 0, 0, time.Local)

	// A 1-day window starts today at midnight; 7 days reaches back six
	// calendar days, start day included.
	cases := []struct {
		days int
		want time.Time
	}{
		{1, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.Local)},
		{7, time.Date(2023, time.March, 9, 0, 0, 0, 0, time.Local)},
	}
	for _, c := range cases {
		if got := WindowStart(c.days, now); !got.Equal(c.want) {
			t.Errorf("WindowStart(%d) = %v, want %v", c.days, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate(""); ok {
		t.Error("Expected empty string to fail")
	}
	if _, ok := ParseDate("yesterday"); ok {
		t.Error("Expected junk string to fail")
	}
	if got, ok := ParseDate("2023-03-15"); !ok || got.Day() != 15 {
		t.Errorf("Expected calendar date to parse, got %v ok=%v", got, ok)
	}
	if got, ok := ParseDate("2023-03-15T10:00:00Z"); !ok || !got.Equal(time.Date(2023, 3, 15, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected RFC3339 to parse, got %v ok=%v", got, ok)
	}
}
