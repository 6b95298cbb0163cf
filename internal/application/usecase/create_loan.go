package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// CreateLoanUseCase opens a loan draft for a customer.
type CreateLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(loanRepo port.LoanRepository) *CreateLoanUseCase {
	return &CreateLoanUseCase{loanRepo: loanRepo}
}

// Execute validates the request, assigns the next loan number for the year
// and persists the draft with its creation audit line.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanDraftRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid customer ID", ErrBadRequest)
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid agent ID", ErrBadRequest)
	}
	interestModel, err := valueobject.NewInterestModel(req.InterestModel)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	tenureUnit, err := valueobject.NewTenureUnit(req.TenureUnit)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	opened, err := uc.loanRepo.CountOpenedInYear(ctx, now.Year())
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("count loans: %w", err)
	}
	loanNumber := fmt.Sprintf("LN-%d-%06d", now.Year(), opened+1)

	loan, err := model.NewLoanDraft(
		loanNumber, customerID, agentID,
		req.Principal, req.AnnualRatePct,
		interestModel, tenureUnit, req.Installments,
		now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	audit := model.NewAuditRecord(
		loan.ID(), agentID, model.AuditLoanCreated,
		fmt.Sprintf("loan %s drafted for customer %s", loanNumber, customerID),
		now,
	)

	if err := uc.loanRepo.Create(ctx, loan, audit); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	return toLoanResponse(loan, nil), nil
}
