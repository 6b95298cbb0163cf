package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// CollectionRepo implements port.CollectionRepository and
// port.CollectionHistory.
type CollectionRepo struct {
	pool *pgxpool.Pool
}

// NewCollectionRepo creates a new PostgreSQL-backed collection repository.
func NewCollectionRepo(pool *pgxpool.Pool) *CollectionRepo {
	return &CollectionRepo{pool: pool}
}

// FindByID retrieves a collection event by ID.
func (r *CollectionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error) {
	query := `SELECT ` + collectionColumns + ` FROM collection_events WHERE id = $1`
	c, err := scanCollection(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CollectionEvent{}, port.ErrNotFound
	}
	return c, err
}

// ListPendingReview returns collections awaiting a decision, oldest first.
func (r *CollectionRepo) ListPendingReview(ctx context.Context, limit int) ([]model.CollectionEvent, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collection_events
		WHERE status IN ('PENDING', 'FLAGGED')
		ORDER BY captured_at
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending collections: %w", err)
	}
	defer rows.Close()

	var result []model.CollectionEvent
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// FlaggedOpenCount counts the agent's collections still in FLAGGED status.
func (r *CollectionRepo) FlaggedOpenCount(ctx context.Context, agentID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM collection_events WHERE agent_id = $1 AND status = 'FLAGGED'`
	var count int
	if err := r.pool.QueryRow(ctx, query, agentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count flagged collections: %w", err)
	}
	return count, nil
}

// LastCaptureAt returns the capture time of the agent's most recent
// collection.
func (r *CollectionRepo) LastCaptureAt(ctx context.Context, agentID uuid.UUID) (time.Time, bool, error) {
	query := `SELECT captured_at FROM collection_events WHERE agent_id = $1 ORDER BY captured_at DESC LIMIT 1`
	var at time.Time
	err := r.pool.QueryRow(ctx, query, agentID).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query last capture: %w", err)
	}
	return at, true, nil
}

var (
	_ port.CollectionRepository = (*CollectionRepo)(nil)
	_ port.CollectionHistory    = (*CollectionRepo)(nil)
)
