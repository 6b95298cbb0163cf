package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// AuditRepo implements port.AuditTrail.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepo creates a new PostgreSQL-backed audit trail.
func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// ListForLoan returns a loan's full history, oldest first. Writes go
// through the loan scope instead, so each record commits with the change
// it describes.
func (r *AuditRepo) ListForLoan(ctx context.Context, loanID uuid.UUID) ([]model.AuditRecord, error) {
	query := `
		SELECT id, loan_id, collection_id, actor_id, action, details, created_at
		FROM loan_audit_logs
		WHERE loan_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var result []model.AuditRecord
	for rows.Next() {
		var (
			rec          model.AuditRecord
			collectionID *uuid.UUID
			createdAt    time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.LoanID, &collectionID, &rec.ActorID,
			&rec.Action, &rec.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if collectionID != nil {
			rec.CollectionID = *collectionID
		}
		rec.CreatedAt = createdAt
		result = append(result, rec)
	}
	return result, rows.Err()
}

var _ port.AuditTrail = (*AuditRepo)(nil)
