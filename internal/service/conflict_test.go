package service

import (
	"testing"

	"github.com/fmartins/agendafoto/internal/model"
)

func TestIsFreeOverlappingBooking(t *testing.T) {
	commitments := []model.Commitment{
		booking("b1", "p1", "10:00", 60, model.StatusConfirmed),
	}

	if IsFree("p1", monday, 10*60, 60, commitments) {
		t.Error("exact overlap should not be free")
	}
	if IsFree("p1", monday, 10*60+30, 60, commitments) {
		t.Error("partial overlap should not be free")
	}
}

func TestIsFreeAdjacentIntervals(t *testing.T) {
	commitments := []model.Commitment{
		booking("b1", "p1", "10:00", 60, model.StatusConfirmed),
	}

	// Half-open intervals: back to back is fine.
	if !IsFree("p1", monday, 11*60, 60, commitments) {
		t.Error("slot starting at the booking's end should be free")
	}
	if !IsFree("p1", monday, 9*60, 60, commitments) {
		t.Error("slot ending at the booking's start should be free")
	}
}

func TestIsFreeIgnoresIrrelevantCommitments(t *testing.T) {
	otherDay := booking("b3", "p1", "10:00", 60, model.StatusConfirmed)
	otherDay.Date = saturday

	// Another photographer's booking, a canceled one, an unassigned order,
	// and a booking on another date.
	commitments := []model.Commitment{
		booking("b1", "p2", "10:00", 60, model.StatusConfirmed),
		booking("b2", "p1", "10:00", 60, model.StatusCanceled),
		booking("b4", "", "10:00", 60, model.StatusPending),
		otherDay,
	}

	if !IsFree("p1", monday, 10*60, 60, commitments) {
		t.Error("only same-day commitments assigned to the photographer constrain")
	}
}

func TestIsFreeZeroDurationBookingDefaults(t *testing.T) {
	commitments := []model.Commitment{
		booking("b1", "p1", "10:00", 0, model.StatusConfirmed),
	}
	// Duration falls back to the standard session, so 10:30 collides.
	if IsFree("p1", monday, 10*60+30, 30, commitments) {
		t.Error("booking without a duration should still block the standard session window")
	}
}

func TestIsFreeTimeBlock(t *testing.T) {
	block := model.Commitment{
		ID:             "t1",
		Kind:           model.KindBlock,
		PhotographerID: strPtr("p1"),
		Date:           monday,
		StartTime:      "13:00",
		EndTime:        "15:00",
		Status:         model.StatusConfirmed,
	}

	if IsFree("p1", monday, 14*60, 60, []model.Commitment{block}) {
		t.Error("time block should make the photographer busy")
	}
	if !IsFree("p1", monday, 15*60, 60, []model.Commitment{block}) {
		t.Error("slot after the block should be free")
	}
}

func TestIsFreeMalformedTimesImposeNoConstraint(t *testing.T) {
	badBooking := booking("b1", "p1", "25:99", 60, model.StatusConfirmed)
	badBlock := model.Commitment{
		ID:             "t1",
		Kind:           model.KindBlock,
		PhotographerID: strPtr("p1"),
		Date:           monday,
		StartTime:      "13:00",
		EndTime:        "garbage",
		Status:         model.StatusConfirmed,
	}

	if !IsFree("p1", monday, 10*60, 60, []model.Commitment{badBooking, badBlock}) {
		t.Error("unparseable commitments should be skipped, not block the day")
	}
}

func TestCountUnassignedOverlaps(t *testing.T) {
	commitments := []model.Commitment{
		booking("b1", "", "09:00", 60, model.StatusPending),
		booking("b2", "", "09:30", 60, model.StatusPending),
		booking("b3", "", "11:00", 60, model.StatusPending),
		booking("b4", "p1", "09:00", 60, model.StatusConfirmed), // assigned, not contested
		booking("b5", "", "09:00", 60, model.StatusCanceled),
	}

	if got := countUnassignedOverlaps(monday, 9*60, 10*60, commitments); got != 2 {
		t.Errorf("countUnassignedOverlaps(09:00-10:00) = %d, want 2", got)
	}
}
