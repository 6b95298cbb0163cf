package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	pkgpg "github.com/Madhuarvind/ak-finserv/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Create persists a new loan draft and its creation audit line atomically.
func (r *LoanRepo) Create(ctx context.Context, loan model.Loan, audit model.AuditRecord) error {
	return pkgpg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO loans (id, loan_number, customer_id, agent_id, principal,
				annual_rate_pct, interest_model, tenure_unit, installments,
				total_payable, pending_amount, status, start_date, version,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL, $13, $14, $15)
		`
		_, err := tx.Exec(ctx, query,
			loan.ID(), loan.LoanNumber(), loan.CustomerID(), loan.AgentID(),
			loan.Principal(), loan.AnnualRatePct(),
			loan.InterestModel().String(), loan.TenureUnit().String(), loan.Installments(),
			loan.TotalPayable(), loan.PendingAmount(), loan.Status().String(),
			loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}
		return appendAudit(ctx, tx, audit)
	})
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, port.ErrNotFound
	}
	return loan, err
}

// Schedule retrieves the full EMI schedule for a loan, ordered by
// installment number.
func (r *LoanRepo) Schedule(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM emi_entries WHERE loan_id = $1 ORDER BY emi_no`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
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

// CountOpenedInYear counts loans created in the given calendar year.
func (r *LoanRepo) CountOpenedInYear(ctx context.Context, year int) (int, error) {
	query := `SELECT COUNT(*) FROM loans WHERE EXTRACT(YEAR FROM created_at) = $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("count loans in year: %w", err)
	}
	return count, nil
}

var _ port.LoanRepository = (*LoanRepo)(nil)
