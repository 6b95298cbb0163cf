package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its schedule.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute loads the loan and its EMI schedule.
func (uc *GetLoanUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.LoanResponse, error) {
	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}

	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	schedule, err := uc.loanRepo.Schedule(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("load schedule: %w", err)
	}

	return toLoanResponse(loan, schedule), nil
}
