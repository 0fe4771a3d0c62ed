package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmartins/agendafoto/internal/model"
)

// pendingScanLimit caps the unassigned-order scan. Pending orders without
// coordinates cannot be ranked and are filtered out in SQL.
const pendingScanLimit = 300

// CommitmentRepository provides read access to bookings and time blocks,
// unified into model.Commitment for the engine.
type CommitmentRepository struct {
	pool *pgxpool.Pool
}

// NewCommitmentRepository creates a commitment repository backed by the given PG pool.
func NewCommitmentRepository(pool *pgxpool.Pool) *CommitmentRepository {
	return &CommitmentRepository{pool: pool}
}

// ─── Day snapshots ──────────────────────────────────────────

// ListForDate returns all non-canceled commitments on a date that belong to
// one of the given photographers, plus, when includeUnassigned is true,
// pending bookings with no photographer (contested capacity).
//
// Time blocks are fetched alongside bookings and carry explicit start/end
// markers instead of a duration.
func (r *CommitmentRepository) ListForDate(
	ctx context.Context,
	date time.Time,
	photographerIDs []string,
	includeUnassigned bool,
) ([]model.Commitment, error) {

	dateStr := date.Format("2006-01-02")

	bookingsQuery := `
		SELECT id, photographer_id, date, time, duration_minutes, status,
		       client_name, address, neighborhood, latitude, longitude,
		       created_at, updated_at
		FROM bookings
		WHERE date = $1::date
		  AND status <> 'canceled'
		  AND (photographer_id = ANY($2) OR ($3 AND photographer_id IS NULL))
		ORDER BY time ASC
	`

	rows, err := r.pool.Query(ctx, bookingsQuery, dateStr, photographerIDs, includeUnassigned)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", dateStr, err)
	}
	commitments, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", dateStr, err)
	}

	blocksQuery := `
		SELECT id, photographer_id, date, start_time, end_time, created_at, updated_at
		FROM time_blocks
		WHERE date = $1::date
		  AND photographer_id = ANY($2)
		ORDER BY start_time ASC
	`

	blockRows, err := r.pool.Query(ctx, blocksQuery, dateStr, photographerIDs)
	if err != nil {
		return nil, fmt.Errorf("list time blocks for %s: %w", dateStr, err)
	}
	blocks, err := collectBlocks(blockRows)
	if err != nil {
		return nil, fmt.Errorf("list time blocks for %s: %w", dateStr, err)
	}

	return append(commitments, blocks...), nil
}

// ListForPhotographer returns one photographer's non-canceled commitments
// (bookings and blocks) on a date, ordered by start time.
func (r *CommitmentRepository) ListForPhotographer(
	ctx context.Context,
	photographerID string,
	date time.Time,
) ([]model.Commitment, error) {
	return r.ListForDate(ctx, date, []string{photographerID}, false)
}

// ListAssignedWithCoordinates returns the day's confirmed, assigned,
// geocoded bookings: the committed stops the opportunity scan walks.
func (r *CommitmentRepository) ListAssignedWithCoordinates(
	ctx context.Context,
	date time.Time,
) ([]model.Commitment, error) {

	dateStr := date.Format("2006-01-02")

	query := `
		SELECT id, photographer_id, date, time, duration_minutes, status,
		       client_name, address, neighborhood, latitude, longitude,
		       created_at, updated_at
		FROM bookings
		WHERE date = $1::date
		  AND status = 'confirmed'
		  AND photographer_id IS NOT NULL
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY time ASC
	`

	rows, err := r.pool.Query(ctx, query, dateStr)
	if err != nil {
		return nil, fmt.Errorf("list assigned bookings for %s: %w", dateStr, err)
	}
	commitments, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("list assigned bookings for %s: %w", dateStr, err)
	}
	return commitments, nil
}

// ListPendingOrders returns unassigned pending bookings with coordinates,
// regardless of requested date; a pending order is worth clustering into a
// nearby route even if its requested date shifts.
func (r *CommitmentRepository) ListPendingOrders(ctx context.Context) ([]model.Commitment, error) {
	query := `
		SELECT id, photographer_id, date, time, duration_minutes, status,
		       client_name, address, neighborhood, latitude, longitude,
		       created_at, updated_at
		FROM bookings
		WHERE status = 'pending'
		  AND photographer_id IS NULL
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, pendingScanLimit)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	commitments, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return commitments, nil
}

// ─── Scanning ───────────────────────────────────────────────

func collectBookings(rows pgx.Rows) ([]model.Commitment, error) {
	defer rows.Close()

	var out []model.Commitment
	for rows.Next() {
		var (
			c        model.Commitment
			lat, lng *float64
		)
		err := rows.Scan(
			&c.ID, &c.PhotographerID, &c.Date, &c.Time, &c.DurationMinutes, &c.Status,
			&c.ClientName, &c.Address, &c.Neighborhood, &lat, &lng,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		c.Kind = model.KindBooking
		if lat != nil && lng != nil {
			c.Coordinates = &model.Location{Lat: *lat, Lng: *lng}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func collectBlocks(rows pgx.Rows) ([]model.Commitment, error) {
	defer rows.Close()

	var out []model.Commitment
	for rows.Next() {
		var c model.Commitment
		err := rows.Scan(
			&c.ID, &c.PhotographerID, &c.Date, &c.StartTime, &c.EndTime,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		c.Kind = model.KindBlock
		c.Status = model.StatusConfirmed
		out = append(out, c)
	}
	return out, rows.Err()
}
