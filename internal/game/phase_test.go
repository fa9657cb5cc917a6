package game

import (
	"errors"
	"testing"
	"time"
)

func TestValidatePhaseTime(t *testing.T) {
	valid := []string{"00:00", "23:59", "05:12", "12:00", "19:30"}
	for _, raw := range valid {
		if err := ValidatePhaseTime(raw); err != nil {
			t.Fatalf("%q should be valid: %v", raw, err)
		}
	}

	invalid := []string{"24:00", "12:60", "9:00", "1200", "12:5", "ab:cd", "", "12:00 "}
	for _, raw := range invalid {
		if err := ValidatePhaseTime(raw); !errors.Is(err, ErrBadPhaseTime) {
			t.Fatalf("%q should be rejected, got %v", raw, err)
		}
	}
}

func TestNextPhaseOccurrenceAlwaysNextDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	// Later today still schedules for tomorrow.
	next, err := NextPhaseOccurrence("18:00", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}

	// Earlier today also schedules for tomorrow.
	next, err = NextPhaseOccurrence("08:00", now)
	if err != nil {
		t.Fatal(err)
	}
	want = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestNextPhaseOccurrenceCrossesMonth(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)
	next, err := NextPhaseOccurrence("12:00", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestMinutesUntilPhase(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	minutes, err := MinutesUntilPhase("14:30", now)
	if err != nil {
		t.Fatal(err)
	}
	// Next day at 14:30 is 26h30m away.
	if minutes != 26*60+30 {
		t.Fatalf("expected %d minutes, got %d", 26*60+30, minutes)
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{1590, "26h 30m"},
	}
	for _, c := range cases {
		if got := FormatCountdown(c.minutes); got != c.want {
			t.Fatalf("FormatCountdown(%d): expected %q, got %q", c.minutes, c.want, got)
		}
	}
}
