package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/pkg/geo"
	"github.com/fmartins/agendafoto/pkg/timegrid"
)

// AvailabilityService computes bookable slots for a day from a roster and
// commitment snapshot. It never writes; callers book through other channels.
type AvailabilityService struct {
	roster      RosterStore
	commitments CommitmentStore
}

// NewAvailabilityService creates an availability service.
func NewAvailabilityService(roster RosterStore, commitments CommitmentStore) *AvailabilityService {
	return &AvailabilityService{roster: roster, commitments: commitments}
}

// AvailabilityQuery describes one availability request.
type AvailabilityQuery struct {
	Date         time.Time
	ServiceIDs   []string
	Neighborhood string

	// Location is the session's coordinate when known. It gates each slot on
	// travel viability: a photographer whose adjacent bookings leave too
	// little time to drive there does not count as free.
	Location *model.Location

	// Admin skips the contested-capacity subtraction: admins see raw
	// photographer availability, unreduced by unplaced pending demand.
	Admin bool
}

// ─── Slot computation ───────────────────────────────────────

// GetAvailability returns the day's slots with a positive available count.
//
// For each candidate start the count is the number of qualified photographers
// free for the full session, minus pending unassigned orders overlapping the
// slot (contested capacity), clamped at zero. Slots whose session would run
// past closing are dropped. When the query carries a location, a free
// photographer also has to be able to reach it from the neighboring stops on
// their route.
func (s *AvailabilityService) GetAvailability(ctx context.Context, q AvailabilityQuery) ([]model.Slot, error) {
	startHours, closingMinutes, open := slotGridFor(q.Date)
	if !open {
		return []model.Slot{}, nil
	}

	roster, err := s.roster.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	qualified := Qualify(roster, q.ServiceIDs, q.Neighborhood)
	if len(qualified) == 0 {
		log.Printf("[availability] no qualified photographers for services=%v neighborhood=%q", q.ServiceIDs, q.Neighborhood)
		return []model.Slot{}, nil
	}

	ids := make([]string, len(qualified))
	for i, p := range qualified {
		ids[i] = p.ID
	}

	commitments, err := s.commitments.ListForDate(ctx, q.Date, ids, true)
	if err != nil {
		return nil, fmt.Errorf("load commitments: %w", err)
	}

	duration := TotalDurationMinutes(q.ServiceIDs)

	slots := make([]model.Slot, 0, len(startHours))
	for _, hour := range startHours {
		start := hour * 60
		end := start + duration
		if end > closingMinutes {
			continue
		}

		free := 0
		for _, p := range qualified {
			if !IsFree(p.ID, q.Date, start, duration, commitments) {
				continue
			}
			if q.Location != nil && !reachable(p.ID, q.Date, start, end, *q.Location, commitments) {
				continue
			}
			free++
		}

		if !q.Admin {
			free -= countUnassignedOverlaps(q.Date, start, end, commitments)
		}
		if free < 0 {
			free = 0
		}

		if free > 0 {
			slots = append(slots, model.Slot{
				Time:      timegrid.FromMinutes(start),
				EndTime:   timegrid.FromMinutes(end),
				Available: free,
			})
		}
	}

	log.Printf("[availability] date=%s services=%v qualified=%d slots=%d",
		q.Date.Format("2006-01-02"), q.ServiceIDs, len(qualified), len(slots))
	return slots, nil
}

// ─── Travel viability ───────────────────────────────────────

// reachable reports whether the photographer can physically make a slot at
// the target location. The binding constraints are the nearest geocoded
// bookings around the slot: the latest one ending at or before the start and
// the earliest one starting at or after the end. The photographer is at those
// coordinates on either side, so the slack to each must cover the drive.
//
// Bookings without coordinates or with unparseable times impose no travel
// constraint, matching the schedule-conflict treatment of bad records.
func reachable(
	photographerID string,
	date time.Time,
	startMinutes, endMinutes int,
	target model.Location,
	commitments []model.Commitment,
) bool {

	var prev, next *model.Commitment
	prevEnd, nextStart := -1, -1

	for i := range commitments {
		c := &commitments[i]
		if c.Kind != model.KindBooking || !c.BelongsTo(photographerID) ||
			c.Canceled() || !c.SameDay(date) || c.Coordinates == nil {
			continue
		}
		s, e, ok := commitmentInterval(c)
		if !ok {
			continue
		}
		if e <= startMinutes && e > prevEnd {
			prev, prevEnd = c, e
		}
		if s >= endMinutes && (next == nil || s < nextStart) {
			next, nextStart = c, s
		}
	}

	if prev != nil {
		travel := geo.TravelTimeMin(geo.HaversineKm(*prev.Coordinates, target))
		if startMinutes-prevEnd < travel {
			return false
		}
	}
	if next != nil {
		travel := geo.TravelTimeMin(geo.HaversineKm(target, *next.Coordinates))
		if nextStart-endMinutes < travel {
			return false
		}
	}
	return true
}

// ─── Single-photographer check ──────────────────────────────

// CheckFree reports whether one photographer is free for the interval
// starting at wallClock on the date. Unknown photographers return
// ErrPhotographerNotFound; a bad time or non-positive duration returns
// ErrInvalidInput.
func (s *AvailabilityService) CheckFree(
	ctx context.Context,
	photographerID string,
	date time.Time,
	wallClock string,
	durationMinutes int,
) (bool, error) {

	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	start, err := timegrid.ToMinutes(wallClock)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.roster.GetByID(ctx, photographerID); err != nil {
		if errors.Is(err, ErrPhotographerNotFound) {
			return false, ErrPhotographerNotFound
		}
		return false, fmt.Errorf("load photographer: %w", err)
	}

	commitments, err := s.commitments.ListForPhotographer(ctx, photographerID, date)
	if err != nil {
		return false, fmt.Errorf("load commitments: %w", err)
	}

	return IsFree(photographerID, date, start, durationMinutes, commitments), nil
}
