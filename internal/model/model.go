// Package model contains domain models for the photography scheduling engine.
// These structs map to the PostgreSQL schema defined in migrations/001_create_schema.up.sql.
package model

import (
	"strings"
	"time"
)

// ─── Enums ──────────────────────────────────────────────────

type CommitmentKind string

const (
	KindBooking CommitmentKind = "booking"
	KindBlock   CommitmentKind = "block"
)

type CommitmentStatus string

const (
	StatusPending   CommitmentStatus = "pending"
	StatusConfirmed CommitmentStatus = "confirmed"
	StatusCanceled  CommitmentStatus = "canceled"
)

// WildcardAll marks a photographer as covering every service or every
// neighborhood, depending on where it appears.
const WildcardAll = "ALL"

// ─── Location ───────────────────────────────────────────────

// Location represents a WGS-84 geographic point (EPSG:4326).
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ─── Domain Models ──────────────────────────────────────────

// Photographer maps to the `photographers` table.
//
// Neighborhoods maps a service id to the neighborhood names the photographer
// covers for that service. Either Services or a neighborhood list may contain
// the "ALL" wildcard. The engine reads this record and never mutates it.
type Photographer struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Color         string              `json:"color"`
	Services      []string            `json:"services"`
	Neighborhoods map[string][]string `json:"neighborhoods"`
	Base          *Location           `json:"base,omitempty"`
	BaseAddress   string              `json:"base_address,omitempty"`
	Active        bool                `json:"active"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CoversService reports whether the photographer can perform the service.
func (p *Photographer) CoversService(serviceID string) bool {
	for _, s := range p.Services {
		if s == WildcardAll || s == serviceID {
			return true
		}
	}
	return false
}

// CoversNeighborhood reports whether the photographer serves the neighborhood
// for the given service. Comparison is case-insensitive and trimmed.
// An absent or empty list for the service means no coverage.
func (p *Photographer) CoversNeighborhood(serviceID, neighborhood string) bool {
	if p.Neighborhoods == nil {
		return false
	}
	list, ok := p.Neighborhoods[serviceID]
	if !ok {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(neighborhood))
	for _, n := range list {
		if n == WildcardAll {
			return true
		}
		if strings.ToLower(strings.TrimSpace(n)) == want {
			return true
		}
	}
	return false
}

// Commitment unifies a booking and a manual time block for scheduling.
//
// A booking carries Time + DurationMinutes; a block carries StartTime + EndTime.
// PhotographerID is nil for pending orders that have not been placed yet;
// those count as contested capacity in availability queries.
type Commitment struct {
	ID              string           `json:"id"`
	Kind            CommitmentKind   `json:"kind"`
	PhotographerID  *string          `json:"photographer_id,omitempty"`
	Date            time.Time        `json:"date"`
	Time            string           `json:"time,omitempty"` // bookings: "HH:MM"
	DurationMinutes int              `json:"duration_minutes,omitempty"`
	StartTime       string           `json:"start_time,omitempty"` // blocks: "HH:MM"
	EndTime         string           `json:"end_time,omitempty"`
	Status          CommitmentStatus `json:"status"`
	ClientName      string           `json:"client_name,omitempty"`
	Address         string           `json:"address,omitempty"`
	Neighborhood    string           `json:"neighborhood,omitempty"`
	Coordinates     *Location        `json:"coordinates,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Assigned reports whether the commitment belongs to a photographer.
func (c *Commitment) Assigned() bool {
	return c.PhotographerID != nil && *c.PhotographerID != ""
}

// BelongsTo reports whether the commitment is assigned to the photographer.
func (c *Commitment) BelongsTo(photographerID string) bool {
	return c.PhotographerID != nil && *c.PhotographerID == photographerID
}

// Canceled reports whether the commitment no longer constrains the schedule.
func (c *Commitment) Canceled() bool {
	return c.Status == StatusCanceled
}

// SameDay reports whether the commitment falls on the given calendar date.
func (c *Commitment) SameDay(date time.Time) bool {
	y1, m1, d1 := c.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ─── Derived values (never persisted) ───────────────────────

// Slot is a candidate appointment window drawn from the operating-hours grid.
// Available is the clamped count of qualified photographers left for it.
type Slot struct {
	Time      string `json:"time"`
	EndTime   string `json:"end_time"`
	Available int    `json:"available"`
}

type OpportunityType string

const (
	OpportunityGapBefore OpportunityType = "GAP_BEFORE"
	OpportunityGapAfter  OpportunityType = "GAP_AFTER"
)

// Opportunity pairs a photographer's existing route with a suggested time for
// inserting a new job near the target coordinate. Computed per request,
// discarded after the response.
type Opportunity struct {
	Type                  OpportunityType `json:"type"`
	PhotographerID        string          `json:"photographer_id"`
	PhotographerName      string          `json:"photographer_name"`
	PhotographerColor     string          `json:"photographer_color,omitempty"`
	ReferenceID           string          `json:"reference_id"`
	ReferenceTime         string          `json:"reference_time"`
	ReferenceAddress      string          `json:"reference_address"`
	ReferenceNeighborhood string          `json:"reference_neighborhood,omitempty"`
	DistanceKm            float64         `json:"distance_km"`
	TravelTimeMin         int             `json:"travel_time_min"`
	SuggestedTime         string          `json:"suggested_time"`
	Score                 float64         `json:"score"`
}

// OrderSuggestion ranks a pending order for insertion into a specific
// photographer's slot. Lower score means less added travel.
type OrderSuggestion struct {
	OrderID       string  `json:"order_id"`
	ClientName    string  `json:"client_name,omitempty"`
	Address       string  `json:"address,omitempty"`
	Neighborhood  string  `json:"neighborhood,omitempty"`
	DistanceKm    float64 `json:"distance_km"`
	TravelTimeMin int     `json:"travel_time_min"`
	Score         float64 `json:"score"`
}
