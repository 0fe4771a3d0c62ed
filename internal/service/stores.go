// Package service contains the availability and smart-scheduling engine.
//
// Every entry point takes a fresh snapshot of the roster and the day's
// commitments from the stores and computes a pure function of it. The engine
// holds no mutable state between calls, so concurrent requests need no
// coordination. The engine is advisory: the actual booking write (owned by
// the admin/CRM service) performs its own conflict enforcement.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/fmartins/agendafoto/internal/model"
)

// ─── Errors ─────────────────────────────────────────────────

var (
	ErrPhotographerNotFound = errors.New("photographer not found")
	ErrInvalidInput         = errors.New("invalid input")
)

// ─── Store contracts ────────────────────────────────────────

// RosterStore supplies the photographer roster snapshot.
//
// GetByID returns an error wrapping ErrPhotographerNotFound when the id is
// unknown; any other failure is a storage problem and is surfaced as such.
type RosterStore interface {
	ListActive(ctx context.Context) ([]model.Photographer, error)
	GetByID(ctx context.Context, id string) (*model.Photographer, error)
}

// CommitmentStore supplies commitment snapshots (bookings + time blocks).
type CommitmentStore interface {
	ListForDate(ctx context.Context, date time.Time, photographerIDs []string, includeUnassigned bool) ([]model.Commitment, error)
	ListForPhotographer(ctx context.Context, photographerID string, date time.Time) ([]model.Commitment, error)
	ListAssignedWithCoordinates(ctx context.Context, date time.Time) ([]model.Commitment, error)
	ListPendingOrders(ctx context.Context) ([]model.Commitment, error)
}
