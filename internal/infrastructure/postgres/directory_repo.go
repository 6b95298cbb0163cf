package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// DirectoryRepo implements port.CustomerDirectory and port.RouteDirectory
// over the customer and collection-line tables.
type DirectoryRepo struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepo creates a new PostgreSQL-backed directory.
func NewDirectoryRepo(pool *pgxpool.Pool) *DirectoryRepo {
	return &DirectoryRepo{pool: pool}
}

// HomeLocation returns the customer's profile location. A profile without a
// geo fix reports ok=false rather than an error.
func (r *DirectoryRepo) HomeLocation(ctx context.Context, customerID uuid.UUID) (valueobject.GeoPoint, bool, error) {
	query := `SELECT home_lat, home_lng FROM customers WHERE id = $1`
	var lat, lng *float64
	err := r.pool.QueryRow(ctx, query, customerID).Scan(&lat, &lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return valueobject.GeoPoint{}, false, port.ErrNotFound
	}
	if err != nil {
		return valueobject.GeoPoint{}, false, fmt.Errorf("query customer location: %w", err)
	}
	if lat == nil || lng == nil {
		return valueobject.GeoPoint{}, false, nil
	}
	return valueobject.GeoPoint{Lat: *lat, Lng: *lng}, true, nil
}

// WorkingWindow returns the line's configured working hours. A line without
// both bounds set reports configured=false, as does an unknown line.
func (r *DirectoryRepo) WorkingWindow(ctx context.Context, lineID uuid.UUID) (valueobject.TimeWindow, bool, error) {
	query := `SELECT window_start, window_end FROM collection_lines WHERE id = $1`
	var start, end *string
	err := r.pool.QueryRow(ctx, query, lineID).Scan(&start, &end)
	if errors.Is(err, pgx.ErrNoRows) {
		return valueobject.TimeWindow{}, false, nil
	}
	if err != nil {
		return valueobject.TimeWindow{}, false, fmt.Errorf("query working window: %w", err)
	}
	if start == nil || end == nil {
		return valueobject.TimeWindow{}, false, nil
	}
	return valueobject.TimeWindow{Start: *start, End: *end}, true, nil
}

var (
	_ port.CustomerDirectory = (*DirectoryRepo)(nil)
	_ port.RouteDirectory    = (*DirectoryRepo)(nil)
)
