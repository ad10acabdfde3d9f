// Package timeaxis converts between clock hours and horizontal pixel offsets
// on the 24-hour timeline, and quantizes proposed times to quarter hours.
package timeaxis

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultPixelsPerHour is the horizontal scale of the timeline.
	DefaultPixelsPerHour = 50
	// HoursPerDay is the length of the time axis.
	HoursPerDay = 24
	// SnapsPerHour is the number of quarter-hour boundaries per hour.
	SnapsPerHour = 4
	// MaxStartHour is the latest start a dragged visit can land on.
	MaxStartHour = HoursPerDay - 1.0/SnapsPerHour
)

// ErrInvalidTimeFormat is returned when a time string is not HH:MM.
var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// Scale is the linear mapping between hours and pixels.
type Scale struct {
	PixelsPerHour float64
}

// NewScale returns a scale, falling back to DefaultPixelsPerHour when pph is not positive.
func NewScale(pph float64) Scale {
	if pph <= 0 {
		pph = DefaultPixelsPerHour
	}
	return Scale{PixelsPerHour: pph}
}

// HourToPixels converts a clock hour (or a duration in hours) to pixels.
func (s Scale) HourToPixels(hour float64) float64 {
	return hour * s.PixelsPerHour
}

// PixelsToHourDelta converts a horizontal pointer displacement to hours.
func (s Scale) PixelsToHourDelta(dx float64) float64 {
	return dx / s.PixelsPerHour
}

// DayWidth is the pixel width of the full 24-hour axis.
func (s Scale) DayWidth() float64 {
	return s.HourToPixels(HoursPerDay)
}

// Propose returns the start hour a visit would land on after being dragged
// dx pixels from start. It is always derived from the original start so
// repeated calls never compound rounding.
func (s Scale) Propose(start, dx float64) float64 {
	return Snap(Clamp(start + s.PixelsToHourDelta(dx)))
}

// Snap rounds an hour to the nearest quarter hour.
func Snap(hour float64) float64 {
	return math.Round(hour*SnapsPerHour) / SnapsPerHour
}

// Clamp limits an hour to the range a visit may start in.
// Clamp must run before Snap so the snapped value stays in range.
func Clamp(hour float64) float64 {
	return math.Max(0, math.Min(MaxStartHour, hour))
}

// FromTime returns the fractional hour of day for t.
func FromTime(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// FormatHour renders an hour as "HH:MM", wrapping past midnight.
func FormatHour(hour float64) string {
	mins := int(math.Round(hour * 60))
	mins %= HoursPerDay * 60
	if mins < 0 {
		mins += HoursPerDay * 60
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatRange renders a visit span as "HH:MM-HH:MM".
func FormatRange(start, duration float64) string {
	return FormatHour(start) + "-" + FormatHour(start+duration)
}

// ParseHour parses "HH:MM" into a fractional hour. "24:00" is accepted as
// the end of the day.
func ParseHour(s string) (float64, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	if s == "24:00" {
		return HoursPerDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return float64(t.Hour()) + float64(t.Minute())/60, nil
}
