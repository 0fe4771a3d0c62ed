package service

import (
	"time"
)

// ─── Operating grid ─────────────────────────────────────────

const (
	// SlotIntervalMinutes is the booking grid granularity.
	SlotIntervalMinutes = 30

	// BufferMinutes is added to every session for travel and setup.
	BufferMinutes = 10

	// DefaultServiceDurationMinutes applies to unknown service ids.
	DefaultServiceDurationMinutes = 30

	// DefaultOrderDurationMinutes is the standard session length assumed
	// when a pending order carries no duration of its own.
	DefaultOrderDurationMinutes = 60

	weekdayClosingMinutes  = 19 * 60 // sessions must finish by 19:00 Mon–Fri
	saturdayClosingMinutes = 13 * 60 // and by 13:00 on Saturday
)

// serviceDurations holds per-service session lengths in minutes.
var serviceDurations = map[string]int{
	"photo":             40,
	"video_landscape":   20,
	"video_portrait":    20,
	"drone_photo":       25,
	"drone_photo_video": 40,
}

// Start hours for the candidate grid. The 12:00 weekday gap is lunch.
var (
	weekdayStartHours  = []int{8, 9, 10, 11, 13, 14, 15, 16, 17, 18}
	saturdayStartHours = []int{8, 9, 10, 11, 12}
)

// slotGridFor returns the candidate start hours and closing minute for the
// date's weekday class. open is false on days with no template (Sunday).
func slotGridFor(date time.Time) (startHours []int, closingMinutes int, open bool) {
	switch date.Weekday() {
	case time.Sunday:
		return nil, 0, false
	case time.Saturday:
		return saturdayStartHours, saturdayClosingMinutes, true
	default:
		return weekdayStartHours, weekdayClosingMinutes, true
	}
}

// TotalDurationMinutes sums the requested services' durations, adds the
// travel/setup buffer, and rounds up to whole grid slots so a session always
// consumes full 30-minute blocks.
func TotalDurationMinutes(serviceIDs []string) int {
	raw := 0
	for _, id := range serviceIDs {
		if d, ok := serviceDurations[id]; ok {
			raw += d
		} else {
			raw += DefaultServiceDurationMinutes
		}
	}

	withBuffer := raw + BufferMinutes
	slotsNeeded := (withBuffer + SlotIntervalMinutes - 1) / SlotIntervalMinutes
	return slotsNeeded * SlotIntervalMinutes
}
