package service

import (
	"log"

	"github.com/fmartins/agendafoto/internal/metrics"
	"github.com/fmartins/agendafoto/internal/model"
)

// Qualify returns the subset of the roster able to serve the request.
//
// Service rule: the photographer's capability set must intersect the requested
// services, or carry the "ALL" wildcard. An empty request passes everyone.
//
// Geography rule: evaluated only when a neighborhood is supplied. For every
// requested service, the photographer's coverage list for that service must
// contain the neighborhood (case-insensitive, trimmed) or "ALL". A missing or
// malformed coverage record excludes the photographer silently instead of
// failing the query; the exclusion is counted and logged so misconfigured
// records stay discoverable.
func Qualify(roster []model.Photographer, serviceIDs []string, neighborhood string) []model.Photographer {
	qualified := make([]model.Photographer, 0, len(roster))

	for _, p := range roster {
		if !qualifiesOnService(&p, serviceIDs) {
			continue
		}
		if neighborhood != "" && !qualifiesOnGeography(&p, serviceIDs, neighborhood) {
			continue
		}
		qualified = append(qualified, p)
	}

	return qualified
}

func qualifiesOnService(p *model.Photographer, serviceIDs []string) bool {
	if len(serviceIDs) == 0 {
		return true
	}
	for _, id := range serviceIDs {
		if p.CoversService(id) {
			return true
		}
	}
	return false
}

func qualifiesOnGeography(p *model.Photographer, serviceIDs []string, neighborhood string) bool {
	if len(p.Neighborhoods) == 0 {
		metrics.CoverageConfigSkipped.Inc()
		log.Printf("[qualify] photographer %s (%s) skipped: no coverage config", p.ID, p.Name)
		return false
	}

	// With no explicit services requested, any configured coverage of the
	// neighborhood qualifies.
	if len(serviceIDs) == 0 {
		for svc := range p.Neighborhoods {
			if p.CoversNeighborhood(svc, neighborhood) {
				return true
			}
		}
		return false
	}

	for _, id := range serviceIDs {
		if !p.CoversNeighborhood(id, neighborhood) {
			return false
		}
	}
	return true
}
