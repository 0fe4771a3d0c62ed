// Package timegrid provides wall-clock arithmetic for the scheduling engine.
//
// All times are "HH:MM" strings on a single calendar day, converted to
// minute offsets since midnight. Intervals are half-open: [start, end).
package timegrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a time string cannot be parsed as
// "HH:MM" with hours in [0,23] and minutes in [0,59].
var ErrInvalidFormat = errors.New("timegrid: invalid HH:MM time")

// ─── Conversion ─────────────────────────────────────────────

// ToMinutes converts an "HH:MM" wall-clock string to minutes since midnight.
func ToMinutes(wallClock string) (int, error) {
	parts := strings.Split(wallClock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, wallClock)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, wallClock)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, wallClock)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, wallClock)
	}

	return hours*60 + minutes, nil
}

// FromMinutes formats a minute offset since midnight as "HH:MM".
// Offsets past midnight wrap into the hour component unclamped
// (e.g. 19*60+30 → "19:30"); negative offsets are the caller's bug.
func FromMinutes(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// ─── Intervals ──────────────────────────────────────────────

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Back-to-back intervals, one ending exactly
// where the other starts, do NOT overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
