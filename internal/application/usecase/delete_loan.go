package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// DeleteLoanUseCase removes a loan together with its schedule and
// collections. Only drafts and closed loans may be removed; the audit
// history is retained so the removal stays traceable.
type DeleteLoanUseCase struct {
	scopes port.LoanScopeRunner
	logger *slog.Logger
}

// NewDeleteLoanUseCase wires dependencies.
func NewDeleteLoanUseCase(scopes port.LoanScopeRunner, logger *slog.Logger) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{scopes: scopes, logger: logger}
}

// Execute deletes the loan inside its exclusive scope.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, req dto.DeleteLoanRequest) error {
	now := time.Now().UTC()

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return fmt.Errorf("%w: invalid actor ID", ErrBadRequest)
	}

	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		loan, err := scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}
		status := loan.Status()
		if !status.Equal(valueobject.LoanStatusCreated) && !status.Equal(valueobject.LoanStatusClosed) {
			return fmt.Errorf("%w: only draft or closed loans can be deleted", valueobject.ErrInvalidStatusTransition)
		}

		audit := model.NewAuditRecord(loanID, actorID, model.AuditLoanDeleted,
			fmt.Sprintf("loan %s deleted while %s", loan.LoanNumber(), status.String()), now)
		if err := scope.AppendAudit(ctx, audit); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}

		if err := scope.DeleteLoanCascade(ctx, loanID); err != nil {
			return fmt.Errorf("delete loan: %w", err)
		}
		uc.logger.Info("loan deleted",
			"loan_id", loanID, "loan_number", loan.LoanNumber(), "actor_id", actorID)
		return nil
	})
	return err
}
