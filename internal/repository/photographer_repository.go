// Package repository provides database access for the scheduling engine.
//
// The engine never writes roster or commitment rows; bookings are created
// and mutated by the separate admin/CRM service against the same schema.
// Everything here is a read-only snapshot fetch.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fmartins/agendafoto/internal/model"
	"github.com/fmartins/agendafoto/internal/service"
)

// PhotographerRepository provides read access to the photographer roster.
type PhotographerRepository struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewPhotographerRepository creates a roster repository backed by PG with a
// Redis fast path.
func NewPhotographerRepository(pool *pgxpool.Pool, redis *redis.Client) *PhotographerRepository {
	return &PhotographerRepository{pool: pool, redis: redis}
}

// ─── Redis-backed fast path ─────────────────────────────────

const (
	rosterCacheKey = "roster:active"
	rosterCacheTTL = 30 * time.Second // Roster changes rarely; 30s keeps admin edits visible quickly.
)

// ListActive returns the active photographer roster.
//
// Strategy:
//  1. Try Redis cache first (fast path, <1ms).
//  2. On cache miss, query PostgreSQL, then cache the JSON snapshot.
//
// Every availability query hits this, so the cache absorbs most of the load.
func (r *PhotographerRepository) ListActive(ctx context.Context) ([]model.Photographer, error) {
	if r.redis != nil {
		if raw, err := r.redis.Get(ctx, rosterCacheKey).Bytes(); err == nil {
			var roster []model.Photographer
			if jsonErr := json.Unmarshal(raw, &roster); jsonErr == nil {
				return roster, nil
			}
			// Corrupt cache entry; fall through to the DB and overwrite it.
		}
	}

	roster, err := r.listActiveFromDB(ctx)
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if raw, jsonErr := json.Marshal(roster); jsonErr == nil {
			// Fire-and-forget; a failed cache write must not fail the query.
			_ = r.redis.Set(ctx, rosterCacheKey, raw, rosterCacheTTL).Err()
		}
	}

	return roster, nil
}

// InvalidateRosterCache clears the cached roster snapshot.
// The admin service calls this (via shared Redis) after editing photographers.
func (r *PhotographerRepository) InvalidateRosterCache(ctx context.Context) {
	if r.redis != nil {
		_ = r.redis.Del(ctx, rosterCacheKey).Err()
	}
}

func (r *PhotographerRepository) listActiveFromDB(ctx context.Context) ([]model.Photographer, error) {
	query := `
		SELECT id, name, email, color, services, neighborhoods,
		       base_lat, base_lng, base_address,
		       active, created_at, updated_at
		FROM photographers
		WHERE active = TRUE
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active photographers: %w", err)
	}
	defer rows.Close()

	var roster []model.Photographer
	for rows.Next() {
		p, err := scanPhotographer(rows)
		if err != nil {
			return nil, fmt.Errorf("list active photographers: %w", err)
		}
		roster = append(roster, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active photographers: %w", err)
	}

	return roster, nil
}

// GetByID fetches a single photographer, active or not.
func (r *PhotographerRepository) GetByID(ctx context.Context, id string) (*model.Photographer, error) {
	query := `
		SELECT id, name, email, color, services, neighborhoods,
		       base_lat, base_lng, base_address,
		       active, created_at, updated_at
		FROM photographers
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanPhotographer(row)
	if err != nil {
		// An unknown id and a storage outage are different failures; only
		// the former maps to the engine's not-found sentinel.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get photographer %s: %w", id, service.ErrPhotographerNotFound)
		}
		return nil, fmt.Errorf("get photographer %s: %w", id, err)
	}
	return p, nil
}

// ─── Scanning ───────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhotographer(row rowScanner) (*model.Photographer, error) {
	p := &model.Photographer{}
	var (
		neighborhoodsRaw []byte
		baseLat, baseLng *float64
		baseAddress      *string
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Color, &p.Services, &neighborhoodsRaw,
		&baseLat, &baseLng, &baseAddress,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// neighborhoods is a jsonb object: service id → neighborhood names.
	// A NULL or unparseable column leaves the map nil; the qualification
	// filter treats that as "no coverage" rather than an error.
	if len(neighborhoodsRaw) > 0 {
		_ = json.Unmarshal(neighborhoodsRaw, &p.Neighborhoods)
	}

	if baseLat != nil && baseLng != nil {
		p.Base = &model.Location{Lat: *baseLat, Lng: *baseLng}
	}
	if baseAddress != nil {
		p.BaseAddress = *baseAddress
	}

	return p, nil
}
