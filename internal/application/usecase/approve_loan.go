package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// ApproveLoanUseCase transitions a draft to APPROVED, stamps the repayment
// start date and materializes the EMI schedule.
type ApproveLoanUseCase struct {
	scopes    port.LoanScopeRunner
	publisher port.EventPublisher
}

// NewApproveLoanUseCase wires dependencies.
func NewApproveLoanUseCase(scopes port.LoanScopeRunner, publisher port.EventPublisher) *ApproveLoanUseCase {
	return &ApproveLoanUseCase{scopes: scopes, publisher: publisher}
}

// Execute approves a loan inside its exclusive scope and publishes the
// resulting events after commit.
func (uc *ApproveLoanUseCase) Execute(ctx context.Context, req dto.ApproveLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid approver ID", ErrBadRequest)
	}
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	var (
		approved model.Loan
		entries  []model.EMIEntry
	)
	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		loan, err := scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		approved, entries, err = loan.Approve(startDate, now)
		if err != nil {
			return fmt.Errorf("approve loan: %w", err)
		}

		if err := scope.SaveLoan(ctx, approved); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if err := scope.InsertEntries(ctx, entries); err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}

		audit := model.NewAuditRecord(
			loanID, approverID, model.AuditLoanApproved,
			fmt.Sprintf("loan %s approved, %d installments from %s, total payable %s",
				approved.LoanNumber(), len(entries),
				startDate.Format(dateLayout), approved.TotalPayable().String()),
			now,
		)
		if err := scope.AppendAudit(ctx, audit); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, approved.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(approved, entries), nil
}
