package service

import (
	"context"
	"time"

	"github.com/fmartins/agendafoto/internal/model"
)

// Shared test fixtures. Dates are chosen so the weekday class is known:
// 2026-09-07 is a Monday, 2026-09-05 a Saturday, 2026-09-06 a Sunday.
var (
	monday   = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

// Reference point in Curitiba. locAtKm walks north along the meridian, so
// haversine distances between test points match their km offsets.
const (
	testBaseLat = -25.45
	testBaseLng = -49.29
	kmPerDegLat = 111.195
)

func locAtKm(km float64) *model.Location {
	return &model.Location{Lat: testBaseLat + km/kmPerDegLat, Lng: testBaseLng}
}

func strPtr(s string) *string { return &s }

type fakeRoster struct {
	photographers []model.Photographer
}

func (f *fakeRoster) ListActive(_ context.Context) ([]model.Photographer, error) {
	return f.photographers, nil
}

func (f *fakeRoster) GetByID(_ context.Context, id string) (*model.Photographer, error) {
	for i := range f.photographers {
		if f.photographers[i].ID == id {
			return &f.photographers[i], nil
		}
	}
	return nil, ErrPhotographerNotFound
}

// failingRoster simulates a storage outage on every call.
type failingRoster struct {
	err error
}

func (f *failingRoster) ListActive(_ context.Context) ([]model.Photographer, error) {
	return nil, f.err
}

func (f *failingRoster) GetByID(_ context.Context, _ string) (*model.Photographer, error) {
	return nil, f.err
}

type fakeCommitments struct {
	commitments []model.Commitment
	assigned    []model.Commitment
	pending     []model.Commitment
}

func (f *fakeCommitments) ListForDate(_ context.Context, _ time.Time, _ []string, _ bool) ([]model.Commitment, error) {
	return f.commitments, nil
}

func (f *fakeCommitments) ListForPhotographer(_ context.Context, id string, _ time.Time) ([]model.Commitment, error) {
	var out []model.Commitment
	for _, c := range f.commitments {
		if c.BelongsTo(id) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommitments) ListAssignedWithCoordinates(_ context.Context, _ time.Time) ([]model.Commitment, error) {
	return f.assigned, nil
}

func (f *fakeCommitments) ListPendingOrders(_ context.Context) ([]model.Commitment, error) {
	return f.pending, nil
}

func booking(id, photographerID, wallClock string, durationMinutes int, status model.CommitmentStatus) model.Commitment {
	c := model.Commitment{
		ID:              id,
		Kind:            model.KindBooking,
		Date:            monday,
		Time:            wallClock,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
	if photographerID != "" {
		c.PhotographerID = strPtr(photographerID)
	}
	return c
}

func photographer(id, name string, services []string, neighborhoods map[string][]string) model.Photographer {
	return model.Photographer{
		ID:            id,
		Name:          name,
		Email:         name + "@agendafoto.test",
		Services:      services,
		Neighborhoods: neighborhoods,
		Active:        true,
	}
}
