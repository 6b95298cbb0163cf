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

// ActivateLoanUseCase opens an approved loan for field collections. The
// schedule and start date were fixed at approval.
type ActivateLoanUseCase struct {
	scopes    port.LoanScopeRunner
	publisher port.EventPublisher
}

// NewActivateLoanUseCase wires dependencies.
func NewActivateLoanUseCase(scopes port.LoanScopeRunner, publisher port.EventPublisher) *ActivateLoanUseCase {
	return &ActivateLoanUseCase{scopes: scopes, publisher: publisher}
}

// Execute activates a loan inside its exclusive scope.
func (uc *ActivateLoanUseCase) Execute(ctx context.Context, req dto.ActivateLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid actor ID", ErrBadRequest)
	}

	var activated model.Loan
	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		loan, err := scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		activated, err = loan.Activate(now)
		if err != nil {
			return fmt.Errorf("activate loan: %w", err)
		}

		if err := scope.SaveLoan(ctx, activated); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		audit := model.NewAuditRecord(
			loanID, actorID, model.AuditLoanActivated,
			fmt.Sprintf("loan %s activated, collections open from %s",
				activated.LoanNumber(), activated.StartDate().Format(dateLayout)),
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

	if err := uc.publisher.Publish(ctx, activated.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(activated, nil), nil
}
