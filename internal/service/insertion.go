package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/pkg/geo"
	"github.com/fmartins/agendafoto/pkg/timegrid"
)

// Gap thresholds for anchor weighting, in minutes. A tight gap makes detour
// distance expensive; a wide gap makes it nearly free.
const (
	tightGapMinutes = 45
	wideGapMinutes  = 120

	tightGapWeight   = 3.0
	neutralGapWeight = 1.0
	wideGapWeight    = 0.5
)

// InsertionService ranks pending unassigned orders by how cheaply they slot
// into a photographer's existing route at a given time.
type InsertionService struct {
	roster      RosterStore
	commitments CommitmentStore
}

// NewInsertionService creates an insertion service.
func NewInsertionService(roster RosterStore, commitments CommitmentStore) *InsertionService {
	return &InsertionService{roster: roster, commitments: commitments}
}

// InsertionResult carries the ranked suggestions plus a label for the point
// the photographer would be departing from.
type InsertionResult struct {
	Origin      string                  `json:"origin_label"`
	Suggestions []model.OrderSuggestion `json:"suggestions"`
}

// SuggestOrders ranks pending unassigned orders for the photographer's slot
// at wallClock on date. Unknown photographers return ErrPhotographerNotFound;
// a bad time or non-positive duration returns ErrInvalidInput.
func (s *InsertionService) SuggestOrders(
	ctx context.Context,
	photographerID string,
	date time.Time,
	wallClock string,
	durationMinutes int,
) (*InsertionResult, error) {

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	targetStart, err := timegrid.ToMinutes(wallClock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	photographer, err := s.roster.GetByID(ctx, photographerID)
	if err != nil {
		if errors.Is(err, ErrPhotographerNotFound) {
			return nil, ErrPhotographerNotFound
		}
		return nil, fmt.Errorf("load photographer: %w", err)
	}

	dayCommitments, err := s.commitments.ListForPhotographer(ctx, photographerID, date)
	if err != nil {
		return nil, fmt.Errorf("load commitments: %w", err)
	}

	orders, err := s.commitments.ListPendingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending orders: %w", err)
	}

	result := ScoreInsertions(photographer, dayCommitments, orders, targetStart, durationMinutes)
	log.Printf("[insertion] photographer=%s date=%s slot=%s candidates=%d suggested=%d",
		photographerID, date.Format("2006-01-02"), wallClock, len(orders), len(result.Suggestions))
	return result, nil
}

// ─── Scoring ────────────────────────────────────────────────

// ScoreInsertions ranks orders for a slot against the photographer's route.
//
// The departure anchor is the latest geocoded booking ending before the slot,
// falling back to the photographer's base. The arrival anchor is the earliest
// geocoded booking starting after the slot ends; with no such booking only
// the departure leg is scored. Each leg's distance is weighted by the slack
// around it: a gap under 45 minutes triples the cost, a gap over two hours
// halves it. Lower scores are better fits.
//
// A photographer with no route and no base yields no suggestions, as does an
// order without coordinates.
func ScoreInsertions(
	photographer *model.Photographer,
	dayCommitments []model.Commitment,
	orders []model.Commitment,
	targetStart, targetDuration int,
) *InsertionResult {

	route := geocodedBookings(dayCommitments)

	origin := photographer.Base
	originLabel := "Base (home)"
	prevWeight := neutralGapWeight

	if pred := latestBefore(route, targetStart); pred != nil {
		origin = pred.Coordinates
		originLabel = fmt.Sprintf("Departing from %s (%s)", pred.ClientName, pred.Neighborhood)
		if predEnd, ok := intervalEnd(pred); ok {
			prevWeight = gapWeight(targetStart - predEnd)
		}
	}

	if origin == nil {
		return &InsertionResult{Origin: originLabel, Suggestions: []model.OrderSuggestion{}}
	}

	successor := earliestAfter(route, targetStart+targetDuration)

	suggestions := make([]model.OrderSuggestion, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		distFromPrev, ok := geo.DistanceKm(origin, order.Coordinates)
		if !ok {
			continue
		}

		// Gap weighting only applies when the slot sits between two anchors.
		// With an open end to the day, distance from the departure point is
		// the whole story.
		score := distFromPrev
		if successor != nil {
			distToNext := geo.HaversineKm(*order.Coordinates, *successor.Coordinates)
			orderDuration := order.DurationMinutes
			if orderDuration <= 0 {
				orderDuration = DefaultOrderDurationMinutes
			}
			succStart, _ := timegrid.ToMinutes(successor.Time)
			nextWeight := gapWeight(succStart - (targetStart + orderDuration))
			score = distFromPrev*prevWeight + distToNext*nextWeight
		}

		suggestions = append(suggestions, model.OrderSuggestion{
			OrderID:       order.ID,
			ClientName:    order.ClientName,
			Address:       order.Address,
			Neighborhood:  order.Neighborhood,
			DistanceKm:    math.Round(distFromPrev*10) / 10,
			TravelTimeMin: geo.TravelTimeMin(distFromPrev),
			Score:         score,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score < suggestions[j].Score
		}
		return suggestions[i].OrderID < suggestions[j].OrderID
	})

	return &InsertionResult{Origin: originLabel, Suggestions: suggestions}
}

// gapWeight converts schedule slack around a leg into a distance multiplier.
func gapWeight(gapMinutes int) float64 {
	switch {
	case gapMinutes < tightGapMinutes:
		return tightGapWeight
	case gapMinutes > wideGapMinutes:
		return wideGapWeight
	default:
		return neutralGapWeight
	}
}

// geocodedBookings filters a day snapshot down to non-canceled bookings that
// have coordinates and a parseable start, the only stops usable as anchors.
func geocodedBookings(commitments []model.Commitment) []model.Commitment {
	out := make([]model.Commitment, 0, len(commitments))
	for i := range commitments {
		c := commitments[i]
		if c.Kind != model.KindBooking || c.Canceled() || c.Coordinates == nil {
			continue
		}
		if _, err := timegrid.ToMinutes(c.Time); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// latestBefore returns the booking with the latest start strictly before the
// given minute, or nil.
func latestBefore(route []model.Commitment, beforeMinutes int) *model.Commitment {
	var best *model.Commitment
	bestStart := -1
	for i := range route {
		start, _ := timegrid.ToMinutes(route[i].Time)
		if start < beforeMinutes && start > bestStart {
			best = &route[i]
			bestStart = start
		}
	}
	return best
}

// earliestAfter returns the booking with the earliest start strictly after
// the given minute, or nil.
func earliestAfter(route []model.Commitment, afterMinutes int) *model.Commitment {
	var best *model.Commitment
	bestStart := -1
	for i := range route {
		start, _ := timegrid.ToMinutes(route[i].Time)
		if start > afterMinutes && (best == nil || start < bestStart) {
			best = &route[i]
			bestStart = start
		}
	}
	return best
}

// intervalEnd returns the minute a booking ends, using its duration or the
// standard session length.
func intervalEnd(c *model.Commitment) (int, bool) {
	start, err := timegrid.ToMinutes(c.Time)
	if err != nil {
		return 0, false
	}
	dur := c.DurationMinutes
	if dur <= 0 {
		dur = DefaultOrderDurationMinutes
	}
	return start + dur, true
}
