package service

import (
	"log"
	"time"

	"github.com/fmartins/agendafoto/internal/metrics"
	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/pkg/timegrid"
)

// ─── Busy intervals ─────────────────────────────────────────

// commitmentInterval resolves a commitment to a half-open [start, end) minute
// interval on its own date.
//
// Blocks use their explicit start/end markers. Bookings use start + duration,
// defaulting to the standard session length when unset. A commitment whose
// stored time cannot be parsed imposes no constraint; each such skip is
// counted and logged.
func commitmentInterval(c *model.Commitment) (start, end int, ok bool) {
	switch c.Kind {
	case model.KindBlock:
		s, errS := timegrid.ToMinutes(c.StartTime)
		e, errE := timegrid.ToMinutes(c.EndTime)
		if errS != nil || errE != nil {
			metrics.MalformedCommitmentTime.Inc()
			log.Printf("[conflict] block %s skipped: unparseable range %q..%q", c.ID, c.StartTime, c.EndTime)
			return 0, 0, false
		}
		return s, e, true
	default:
		s, err := timegrid.ToMinutes(c.Time)
		if err != nil {
			metrics.MalformedCommitmentTime.Inc()
			log.Printf("[conflict] booking %s skipped: unparseable time %q", c.ID, c.Time)
			return 0, 0, false
		}
		dur := c.DurationMinutes
		if dur <= 0 {
			dur = DefaultOrderDurationMinutes
		}
		return s, s + dur, true
	}
}

// IsFree reports whether the photographer has no commitment overlapping
// [startMinutes, startMinutes+durationMinutes) on the date.
//
// Canceled commitments and commitments on other dates never constrain.
// The commitments slice is the caller's snapshot; it may contain records for
// other photographers or unassigned orders, which are ignored here.
func IsFree(photographerID string, date time.Time, startMinutes, durationMinutes int, commitments []model.Commitment) bool {
	endMinutes := startMinutes + durationMinutes

	for i := range commitments {
		c := &commitments[i]
		if !c.BelongsTo(photographerID) || c.Canceled() || !c.SameDay(date) {
			continue
		}
		s, e, ok := commitmentInterval(c)
		if !ok {
			continue
		}
		if timegrid.Overlaps(startMinutes, endMinutes, s, e) {
			return false
		}
	}

	return true
}

// countUnassignedOverlaps counts pending, unassigned commitments on the date
// whose interval overlaps the slot. Each represents demand that will consume
// one photographer-slot once placed.
func countUnassignedOverlaps(date time.Time, startMinutes, endMinutes int, commitments []model.Commitment) int {
	count := 0
	for i := range commitments {
		c := &commitments[i]
		if c.Assigned() || c.Canceled() || !c.SameDay(date) {
			continue
		}
		s, e, ok := commitmentInterval(c)
		if !ok {
			continue
		}
		if timegrid.Overlaps(startMinutes, endMinutes, s, e) {
			count++
		}
	}
	return count
}
