package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

// GetLoanAuditUseCase lists the audit trail recorded for a loan. Records
// survive loan deletion, so the trail is served without loading the loan.
type GetLoanAuditUseCase struct {
	audits port.AuditTrail
}

// NewGetLoanAuditUseCase wires dependencies.
func NewGetLoanAuditUseCase(audits port.AuditTrail) *GetLoanAuditUseCase {
	return &GetLoanAuditUseCase{audits: audits}
}

// Execute returns the loan's audit records in insertion order.
func (uc *GetLoanAuditUseCase) Execute(ctx context.Context, req dto.GetLoanAuditRequest) (dto.LoanAuditResponse, error) {
	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.LoanAuditResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}

	records, err := uc.audits.ListForLoan(ctx, loanID)
	if err != nil {
		return dto.LoanAuditResponse{}, fmt.Errorf("list audit records: %w", err)
	}

	resp := dto.LoanAuditResponse{Records: make([]dto.AuditRecordResponse, 0, len(records))}
	for _, record := range records {
		resp.Records = append(resp.Records, toAuditRecordResponse(record))
	}
	return resp, nil
}
