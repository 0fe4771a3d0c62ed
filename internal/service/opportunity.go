package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/pkg/geo"
	"github.com/fmartins/agendafoto/pkg/timegrid"
)

const (
	// MaxSearchRadiusKm bounds how far from an existing stop a new order can
	// be and still count as a routing opportunity.
	MaxSearchRadiusKm = 15.0

	// TransitionBufferMinutes pads every suggested transition between stops.
	TransitionBufferMinutes = 15

	// opportunityLimit caps the response.
	opportunityLimit = 10

	// afterGapBonus rewards appending to a route over squeezing in before a
	// stop, which is riskier for the existing commitment.
	afterGapBonus = 5.0

	// Suggested before-gap starts must land inside the working day.
	beforeWindowStartMinutes = 8 * 60
	beforeWindowEndMinutes   = 18 * 60
)

// OpportunityService finds photographers already routed near a new order's
// location on a date, so the order can piggyback on an existing trip.
type OpportunityService struct {
	roster      RosterStore
	commitments CommitmentStore
}

// NewOpportunityService creates an opportunity service.
func NewOpportunityService(roster RosterStore, commitments CommitmentStore) *OpportunityService {
	return &OpportunityService{roster: roster, commitments: commitments}
}

// FindOpportunities scans the date's confirmed, geocoded bookings for stops
// within range of the target and proposes a slot right before or right after
// each. One proposal per photographer survives, the response is capped and
// ordered nearest first.
func (s *OpportunityService) FindOpportunities(
	ctx context.Context,
	target model.Location,
	date time.Time,
) ([]model.Opportunity, error) {

	roster, err := s.roster.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	byID := make(map[string]*model.Photographer, len(roster))
	for i := range roster {
		byID[roster[i].ID] = &roster[i]
	}

	stops, err := s.commitments.ListAssignedWithCoordinates(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load assigned bookings: %w", err)
	}

	// Best proposal per photographer, by score.
	bestFor := make(map[string]model.Opportunity)

	for i := range stops {
		stop := &stops[i]
		if !stop.Assigned() || stop.Coordinates == nil {
			continue
		}
		photographer, ok := byID[*stop.PhotographerID]
		if !ok {
			continue
		}

		dist := geo.HaversineKm(target, *stop.Coordinates)
		if dist > MaxSearchRadiusKm {
			continue
		}

		start, err := timegrid.ToMinutes(stop.Time)
		if err != nil {
			continue
		}
		stopDuration := stop.DurationMinutes
		if stopDuration <= 0 {
			stopDuration = DefaultOrderDurationMinutes
		}
		travel := geo.TravelTimeMin(dist)

		for _, opp := range proposalsForStop(photographer, stop, dist, travel, start, stopDuration) {
			if current, ok := bestFor[photographer.ID]; !ok || opp.Score > current.Score {
				bestFor[photographer.ID] = opp
			}
		}
	}

	opportunities := make([]model.Opportunity, 0, len(bestFor))
	for _, opp := range bestFor {
		opportunities = append(opportunities, opp)
	}

	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].DistanceKm != opportunities[j].DistanceKm {
			return opportunities[i].DistanceKm < opportunities[j].DistanceKm
		}
		return opportunities[i].PhotographerID < opportunities[j].PhotographerID
	})
	if len(opportunities) > opportunityLimit {
		opportunities = opportunities[:opportunityLimit]
	}

	log.Printf("[opportunity] date=%s stops=%d proposals=%d",
		date.Format("2006-01-02"), len(stops), len(opportunities))
	return opportunities, nil
}

// proposalsForStop builds the viable gap proposals around one committed stop.
//
// The after-gap starts once the stop finishes plus travel and transition
// buffer; it scores proximity plus a bonus for extending the route. The
// before-gap backs off travel, buffer, and a standard session from the stop's
// start, and is only viable when that start lands inside the working day.
func proposalsForStop(
	photographer *model.Photographer,
	stop *model.Commitment,
	dist float64,
	travel, start, stopDuration int,
) []model.Opportunity {

	base := model.Opportunity{
		PhotographerID:        photographer.ID,
		PhotographerName:      photographer.Name,
		PhotographerColor:     photographer.Color,
		ReferenceID:           stop.ID,
		ReferenceTime:         stop.Time,
		ReferenceAddress:      stop.Address,
		ReferenceNeighborhood: stop.Neighborhood,
		DistanceKm:            math.Round(dist*10) / 10,
		TravelTimeMin:         travel,
	}

	var out []model.Opportunity

	after := base
	after.Type = model.OpportunityGapAfter
	after.SuggestedTime = timegrid.FromMinutes(start + stopDuration + travel + TransitionBufferMinutes)
	after.Score = (MaxSearchRadiusKm - dist) + afterGapBonus
	out = append(out, after)

	beforeStart := start - travel - TransitionBufferMinutes - DefaultOrderDurationMinutes
	if beforeStart >= beforeWindowStartMinutes && beforeStart < beforeWindowEndMinutes {
		before := base
		before.Type = model.OpportunityGapBefore
		before.SuggestedTime = timegrid.FromMinutes(beforeStart)
		before.Score = MaxSearchRadiusKm - dist
		out = append(out, before)
	}

	return out
}
