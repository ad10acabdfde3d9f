package timeaxis

import (
	"errors"
	"testing"
	"time"
)

func TestScale_HourToPixels(t *testing.T) {
	s := NewScale(DefaultPixelsPerHour)

	if got := s.HourToPixels(9); got != 450 {
		t.Errorf("HourToPixels(9) = %v, want 450", got)
	}
	if got := s.PixelsToHourDelta(100); got != 2 {
		t.Errorf("PixelsToHourDelta(100) = %v, want 2", got)
	}
	if got := s.DayWidth(); got != 1200 {
		t.Errorf("DayWidth() = %v, want 1200", got)
	}
}

func TestNewScale_FallsBackToDefault(t *testing.T) {
	if got := NewScale(0).PixelsPerHour; got != DefaultPixelsPerHour {
		t.Errorf("expected default scale, got %v", got)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9, 9},
		{9.24, 9.25},
		{9.12, 9.0},
		{9.13, 9.25},
		{9.6, 9.5},
		{9.9, 10},
		{23.75, 23.75},
	}
	for _, tt := range tests {
		if got := Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnap_Idempotent(t *testing.T) {
	for h := 0.0; h < HoursPerDay; h += 0.01 {
		once := Snap(h)
		if twice := Snap(once); twice != once {
			t.Fatalf("Snap(Snap(%v)) = %v, want %v", h, twice, once)
		}
	}
}

func TestClampThenSnap_Bounded(t *testing.T) {
	for h := -30.0; h < 60; h += 0.07 {
		got := Snap(Clamp(h))
		if got < 0 || got > MaxStartHour {
			t.Fatalf("Snap(Clamp(%v)) = %v, outside [0, %v]", h, got, MaxStartHour)
		}
	}
}

func TestScale_Propose(t *testing.T) {
	s := NewScale(50)

	tests := []struct {
		name  string
		start float64
		dx    float64
		want  float64
	}{
		{"two hours right", 9, 100, 11},
		{"rounds to nearest quarter", 9, 12, 9.25},
		{"no movement", 9, 0, 9},
		{"left of midnight clamps to zero", 1, -500, 0},
		{"raw 25 clamps before snapping", 9, 800, 23.75},
		{"just past last quarter", 23, 49, 23.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Propose(tt.start, tt.dx); got != tt.want {
				t.Errorf("Propose(%v, %v) = %v, want %v", tt.start, tt.dx, got, tt.want)
			}
		})
	}
}

func TestFormatHour(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{9.25, "09:15"},
		{13.5, "13:30"},
		{23.75, "23:45"},
		{24.5, "00:30"},
	}
	for _, tt := range tests {
		if got := FormatHour(tt.in); got != tt.want {
			t.Errorf("FormatHour(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(9, 1.5); got != "09:00-10:30" {
		t.Errorf("FormatRange = %q", got)
	}
}

func TestParseHour(t *testing.T) {
	got, err := ParseHour("07:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7.75 {
		t.Errorf("ParseHour(07:45) = %v, want 7.75", got)
	}

	end, err := ParseHour("24:00")
	if err != nil || end != 24 {
		t.Errorf("ParseHour(24:00) = %v, %v", end, err)
	}

	for _, bad := range []string{"", "7:45", "25:00", "ab:cd", "07-45"} {
		if _, err := ParseHour(bad); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseHour(%q) expected ErrInvalidTimeFormat, got %v", bad, err)
		}
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	if got := FromTime(ts); got != 14.5 {
		t.Errorf("FromTime = %v, want 14.5", got)
	}
}
