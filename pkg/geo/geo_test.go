package geo

import (
	"math"
	"testing"

	"github.com/fmartins/agendafoto/internal/model"
)

func TestHaversineKm_SamePoint(t *testing.T) {
	loc := model.Location{Lat: -25.4414, Lng: -49.2847}
	got := HaversineKm(loc, loc)
	if got != 0 {
		t.Errorf("HaversineKm(same point) = %v, want 0", got)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Batel to Santa Felicidade (~6 km across Curitiba)
	batel := model.Location{Lat: -25.4414, Lng: -49.2847}
	santaFelicidade := model.Location{Lat: -25.4077, Lng: -49.3338}
	got := HaversineKm(batel, santaFelicidade)
	wantMin, wantMax := 4.0, 9.0
	if got < wantMin || got > wantMax {
		t.Errorf("HaversineKm(Batel→Santa Felicidade) = %.2f km, want between %.1f and %.1f", got, wantMin, wantMax)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := model.Location{Lat: -25.4284, Lng: -49.2733}
	b := model.Location{Lat: -25.5009, Lng: -49.2372}
	ab := HaversineKm(a, b)
	ba := HaversineKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("HaversineKm not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("HaversineKm(distinct points) = %v, want positive", ab)
	}
}

func TestDistanceKm_MissingCoordinates(t *testing.T) {
	a := &model.Location{Lat: -25.4284, Lng: -49.2733}

	if _, ok := DistanceKm(nil, a); ok {
		t.Errorf("DistanceKm(nil, a): ok = true, want false")
	}
	if _, ok := DistanceKm(a, nil); ok {
		t.Errorf("DistanceKm(a, nil): ok = true, want false")
	}
	if _, ok := DistanceKm(nil, nil); ok {
		t.Errorf("DistanceKm(nil, nil): ok = true, want false")
	}

	km, ok := DistanceKm(a, a)
	if !ok || km != 0 {
		t.Errorf("DistanceKm(a, a) = (%v, %v), want (0, true)", km, ok)
	}
}

func TestTravelTimeMin(t *testing.T) {
	cases := map[float64]int{
		0:    0,
		1:    2,
		2.4:  5, // 4.8 min rounds up
		10:   20,
		14.9: 30, // 29.8 min rounds up
	}
	for km, want := range cases {
		if got := TravelTimeMin(km); got != want {
			t.Errorf("TravelTimeMin(%v) = %d, want %d", km, got, want)
		}
	}
}
