// Package geo provides geographic scoring helpers for the scheduling engine.
//
// All distance calculations use the Haversine formula on WGS-84 coordinates.
// Travel time is estimated at a conservative city-traffic rate, suitable for
// ranking insertion candidates. In production routing, swap with a distance
// matrix API.
package geo

import (
	"math"

	"github.com/fmartins/agendafoto/internal/model"
)

// ─── Constants ──────────────────────────────────────────────

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// TravelMinPerKm is the assumed city-traffic travel pace.
	// Conservative: 2 minutes per kilometer.
	TravelMinPerKm = 2.0
)

// ─── Distance ───────────────────────────────────────────────

// HaversineKm returns the great-circle distance between two points in kilometers.
//
// Complexity: O(1)
func HaversineKm(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceKm returns the distance between two optional coordinates.
//
// When either coordinate is absent the distance is not computable and ok is
// false. Callers must exclude the pair from ranking rather than score it as
// zero, which would make ungeocoded records look optimal.
func DistanceKm(a, b *model.Location) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return HaversineKm(*a, *b), true
}

// TravelTimeMin estimates driving minutes for a distance, rounded up.
func TravelTimeMin(distanceKm float64) int {
	return int(math.Ceil(distanceKm * TravelMinPerKm))
}

// ─── Helpers ────────────────────────────────────────────────

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
