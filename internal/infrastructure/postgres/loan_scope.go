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
	pkgpg "github.com/Madhuarvind/ak-finserv/pkg/postgres"
)

// ScopeRunner implements port.LoanScopeRunner over a transaction that holds
// a row lock on the loan for its entire duration. Concurrent scopes on the
// same loan serialize at the lock; scopes on different loans do not contend.
type ScopeRunner struct {
	pool *pgxpool.Pool
}

// NewScopeRunner creates a new transaction-backed scope runner.
func NewScopeRunner(pool *pgxpool.Pool) *ScopeRunner {
	return &ScopeRunner{pool: pool}
}

// InLoanScope opens a transaction, locks the loan row and runs fn. The work
// commits as one unit and rolls back on error.
func (r *ScopeRunner) InLoanScope(ctx context.Context, loanID uuid.UUID, fn func(scope port.LoanScope) error) error {
	return pkgpg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM loans WHERE id = $1 FOR UPDATE`, loanID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return port.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock loan: %w", err)
		}
		return fn(&loanScope{tx: tx})
	})
}

type loanScope struct {
	tx pgx.Tx
}

func (s *loanScope) Loan(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(s.tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, port.ErrNotFound
	}
	return loan, err
}

func (s *loanScope) UnpaidEntries(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM emi_entries
		WHERE loan_id = $1 AND status <> 'PAID'
		ORDER BY due_date, emi_no
	`
	rows, err := s.tx.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query unpaid entries: %w", err)
	}
	defer rows.Close()

	var entries []model.EMIEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *loanScope) HasCollectionOnDay(ctx context.Context, loanID uuid.UUID, day time.Time) (bool, error) {
	from := day
	to := day.Add(24 * time.Hour)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM collection_events
			WHERE loan_id = $1 AND captured_at >= $2 AND captured_at < $3
		)
	`
	var exists bool
	if err := s.tx.QueryRow(ctx, query, loanID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("check same-day collection: %w", err)
	}
	return exists, nil
}

func (s *loanScope) CollectionForUpdate(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error) {
	query := `SELECT ` + collectionColumns + ` FROM collection_events WHERE id = $1 FOR UPDATE`
	c, err := scanCollection(s.tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CollectionEvent{}, port.ErrNotFound
	}
	return c, err
}

func (s *loanScope) InsertCollection(ctx context.Context, c model.CollectionEvent) error {
	return insertCollection(ctx, s.tx, c)
}

func (s *loanScope) UpdateCollection(ctx context.Context, c model.CollectionEvent) error {
	var reviewerID *uuid.UUID
	if c.ReviewerID() != uuid.Nil {
		rid := c.ReviewerID()
		reviewerID = &rid
	}

	query := `
		UPDATE collection_events SET
			status       = $2,
			risk_score   = $3,
			reviewer_id  = $4,
			remarks      = $5,
			updated_at   = $6
		WHERE id = $1
	`
	tag, err := s.tx.Exec(ctx, query,
		c.ID(), c.Status().String(), c.RiskScore(), reviewerID, c.Remarks(), c.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update collection: no row updated")
	}
	return nil
}

func (s *loanScope) SaveLoan(ctx context.Context, loan model.Loan) error {
	return saveLoan(ctx, s.tx, loan)
}

func (s *loanScope) InsertEntries(ctx context.Context, entries []model.EMIEntry) error {
	query := `
		INSERT INTO emi_entries (id, loan_id, emi_no, due_date, amount, principal_part,
			interest_part, schedule_balance, outstanding, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, e := range entries {
		_, err := s.tx.Exec(ctx, query,
			e.ID, e.LoanID, e.EmiNo, e.DueDate, e.Amount, e.PrincipalPart,
			e.InterestPart, e.ScheduleBalance, e.Outstanding, e.Status.String(),
		)
		if err != nil {
			return fmt.Errorf("insert EMI entry %d: %w", e.EmiNo, err)
		}
	}
	return nil
}

func (s *loanScope) SaveEntries(ctx context.Context, entries []model.EMIEntry) error {
	query := `UPDATE emi_entries SET outstanding = $2, status = $3 WHERE id = $1`
	for _, e := range entries {
		tag, err := s.tx.Exec(ctx, query, e.ID, e.Outstanding, e.Status.String())
		if err != nil {
			return fmt.Errorf("save EMI entry %d: %w", e.EmiNo, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("save EMI entry %d: no row updated", e.EmiNo)
		}
	}
	return nil
}

func (s *loanScope) AppendAudit(ctx context.Context, rec model.AuditRecord) error {
	return appendAudit(ctx, s.tx, rec)
}

func (s *loanScope) DeleteLoanCascade(ctx context.Context, loanID uuid.UUID) error {
	// Children are removed explicitly so the deletion is visible in the
	// statement log. Audit rows stay; they outlive the loan.
	if _, err := s.tx.Exec(ctx, `DELETE FROM emi_entries WHERE loan_id = $1`, loanID); err != nil {
		return fmt.Errorf("delete EMI entries: %w", err)
	}
	if _, err := s.tx.Exec(ctx, `DELETE FROM collection_events WHERE loan_id = $1`, loanID); err != nil {
		return fmt.Errorf("delete collections: %w", err)
	}
	tag, err := s.tx.Exec(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

var (
	_ port.LoanScopeRunner = (*ScopeRunner)(nil)
	_ port.LoanScope       = (*loanScope)(nil)
)
