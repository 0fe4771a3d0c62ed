package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fmartins/agendafoto/internal/model"
)

func routeStop(id, photographerID, wallClock string, km float64) model.Commitment {
	c := booking(id, photographerID, wallClock, 60, model.StatusConfirmed)
	c.Coordinates = locAtKm(km)
	c.ClientName = "Cliente " + id
	c.Neighborhood = "Batel"
	return c
}

func pendingOrder(id string, km float64) model.Commitment {
	c := booking(id, "", "09:00", 60, model.StatusPending)
	c.Coordinates = locAtKm(km)
	c.ClientName = "Pedido " + id
	return c
}

func basePhotographer() model.Photographer {
	p := photographer("p1", "Ana", []string{"photo"}, nil)
	p.Base = locAtKm(0)
	return p
}

func TestScoreInsertionsPrefersLessDetour(t *testing.T) {
	p := basePhotographer()
	route := []model.Commitment{
		routeStop("prev", "p1", "12:00", 0),
		routeStop("next", "p1", "16:00", 7),
	}
	orders := []model.Commitment{
		pendingOrder("far", 9),
		pendingOrder("mid", 2),
	}

	result := ScoreInsertions(&p, route, orders, 14*60, 60)
	if len(result.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(result.Suggestions))
	}
	if result.Suggestions[0].OrderID != "mid" {
		t.Errorf("best fit = %s, want mid (between the anchors)", result.Suggestions[0].OrderID)
	}
	if result.Origin != "Departing from Cliente prev (Batel)" {
		t.Errorf("origin = %q", result.Origin)
	}
	if got := result.Suggestions[0].DistanceKm; got != 2.0 {
		t.Errorf("mid DistanceKm = %v, want 2.0", got)
	}
}

func TestScoreInsertionsTightGapReweights(t *testing.T) {
	p := basePhotographer()
	// The next stop follows the slot by only 30 minutes, so the leg to it
	// costs triple and the order close to it wins.
	route := []model.Commitment{
		routeStop("prev", "p1", "12:00", 0),
		routeStop("next", "p1", "15:30", 7),
	}
	orders := []model.Commitment{
		pendingOrder("nearPrev", 2),
		pendingOrder("nearNext", 9),
	}

	result := ScoreInsertions(&p, route, orders, 14*60, 60)
	if len(result.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(result.Suggestions))
	}
	if result.Suggestions[0].OrderID != "nearNext" {
		t.Errorf("best fit = %s, want nearNext under a tight following gap", result.Suggestions[0].OrderID)
	}
}

func TestScoreInsertionsBaseOrigin(t *testing.T) {
	p := basePhotographer()
	orders := []model.Commitment{pendingOrder("o1", 3.14)}

	result := ScoreInsertions(&p, nil, orders, 9*60, 60)
	if result.Origin != "Base (home)" {
		t.Errorf("origin = %q, want Base (home)", result.Origin)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(result.Suggestions))
	}
	s := result.Suggestions[0]
	if s.DistanceKm != 3.1 {
		t.Errorf("DistanceKm = %v, want 3.1", s.DistanceKm)
	}
	if s.TravelTimeMin != 7 {
		t.Errorf("TravelTimeMin = %d, want 7", s.TravelTimeMin)
	}
}

func TestScoreInsertionsNoOriginNoSuggestions(t *testing.T) {
	p := photographer("p1", "Ana", []string{"photo"}, nil) // no base
	orders := []model.Commitment{pendingOrder("o1", 2)}

	result := ScoreInsertions(&p, nil, orders, 9*60, 60)
	if len(result.Suggestions) != 0 {
		t.Errorf("no route and no base should yield nothing, got %d", len(result.Suggestions))
	}
}

func TestScoreInsertionsSkipsOrdersWithoutCoordinates(t *testing.T) {
	p := basePhotographer()
	blind := booking("blind", "", "09:00", 60, model.StatusPending)
	orders := []model.Commitment{blind, pendingOrder("o1", 2)}

	result := ScoreInsertions(&p, nil, orders, 9*60, 60)
	if len(result.Suggestions) != 1 || result.Suggestions[0].OrderID != "o1" {
		t.Errorf("orders without coordinates should be skipped, got %+v", result.Suggestions)
	}
}

func TestSuggestOrdersValidation(t *testing.T) {
	p := basePhotographer()
	svc := NewInsertionService(
		&fakeRoster{photographers: []model.Photographer{p}},
		&fakeCommitments{pending: []model.Commitment{pendingOrder("o1", 2)}},
	)
	ctx := context.Background()

	if _, err := svc.SuggestOrders(ctx, "ghost", monday, "14:00", 60); !errors.Is(err, ErrPhotographerNotFound) {
		t.Errorf("unknown photographer: got %v, want ErrPhotographerNotFound", err)
	}

	outage := errors.New("connect: connection refused")
	broken := NewInsertionService(&failingRoster{err: outage}, &fakeCommitments{})
	if _, err := broken.SuggestOrders(ctx, "p1", monday, "14:00", 60); !errors.Is(err, outage) || errors.Is(err, ErrPhotographerNotFound) {
		t.Errorf("storage outage should be wrapped, not mapped to not-found: %v", err)
	}
	if _, err := svc.SuggestOrders(ctx, "p1", monday, "2pm", 60); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad time: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.SuggestOrders(ctx, "p1", monday, "14:00", -5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative duration: got %v, want ErrInvalidInput", err)
	}

	result, err := svc.SuggestOrders(ctx, "p1", monday, "14:00", 60)
	if err != nil {
		t.Fatalf("SuggestOrders: %v", err)
	}
	if len(result.Suggestions) != 1 {
		t.Errorf("got %d suggestions, want 1", len(result.Suggestions))
	}
}
