package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// ForecloseLoanUseCase settles an active loan early against a negotiated
// amount. The schedule is left as recorded and the loan closes.
type ForecloseLoanUseCase struct {
	scopes    port.LoanScopeRunner
	publisher port.EventPublisher
}

// NewForecloseLoanUseCase wires dependencies.
func NewForecloseLoanUseCase(scopes port.LoanScopeRunner, publisher port.EventPublisher) *ForecloseLoanUseCase {
	return &ForecloseLoanUseCase{scopes: scopes, publisher: publisher}
}

// Execute forecloses the loan inside its exclusive scope. The settlement is
// recorded as an approved collection so the repayment ledger stays complete.
func (uc *ForecloseLoanUseCase) Execute(ctx context.Context, req dto.ForecloseLoanRequest) (dto.ForecloseLoanResponse, error) {
	now := time.Now().UTC()

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.ForecloseLoanResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return dto.ForecloseLoanResponse{}, fmt.Errorf("%w: invalid actor ID", ErrBadRequest)
	}
	if req.SettlementAmount.LessThanOrEqual(decimal.Zero) {
		return dto.ForecloseLoanResponse{}, fmt.Errorf("%w: settlement amount must be positive", ErrBadRequest)
	}

	var (
		closed     model.Loan
		settlement model.CollectionEvent
		pending    []event.DomainEvent
	)

	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		loan, err := scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		closed, err = loan.Foreclose(req.SettlementAmount, now)
		if err != nil {
			return fmt.Errorf("foreclose loan: %w", err)
		}

		// Unpaid installments keep their recorded state; the settlement
		// collection and the closed loan carry the foreclosure.
		settlement = model.NewSettlementEvent(loanID, actorID, req.SettlementAmount, req.Reason, now)
		if err := scope.InsertCollection(ctx, settlement); err != nil {
			return fmt.Errorf("insert settlement: %w", err)
		}

		if err := scope.SaveLoan(ctx, closed); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		audit := model.NewCollectionAuditRecord(
			loanID, settlement.ID(), actorID, model.AuditLoanForeclosed,
			fmt.Sprintf("loan %s foreclosed, settled for %s",
				closed.LoanNumber(), req.SettlementAmount.String()),
			now,
		)
		if err := scope.AppendAudit(ctx, audit); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}

		pending = append(pending, closed.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.ForecloseLoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, pending...); err != nil {
		return dto.ForecloseLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.ForecloseLoanResponse{
		Loan:       toLoanResponse(closed, nil),
		Settlement: toCollectionResponse(settlement),
	}, nil
}
