package usecase

import (
	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
)

const dateLayout = "2006-01-02"

func toLoanResponse(loan model.Loan, schedule []model.EMIEntry) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:            loan.ID().String(),
		LoanNumber:    loan.LoanNumber(),
		CustomerID:    loan.CustomerID().String(),
		AgentID:       loan.AgentID().String(),
		Principal:     loan.Principal(),
		AnnualRatePct: loan.AnnualRatePct(),
		InterestModel: loan.InterestModel().String(),
		TenureUnit:    loan.TenureUnit().String(),
		Installments:  loan.Installments(),
		TotalPayable:  loan.TotalPayable(),
		PendingAmount: loan.PendingAmount(),
		Status:        loan.Status().String(),
		CreatedAt:     loan.CreatedAt(),
	}
	if !loan.StartDate().IsZero() {
		resp.StartDate = loan.StartDate().Format(dateLayout)
	}
	for _, e := range schedule {
		resp.Schedule = append(resp.Schedule, toEntryResponse(e))
	}
	return resp
}

func toEntryResponse(e model.EMIEntry) dto.EMIEntryResponse {
	return dto.EMIEntryResponse{
		ID:              e.ID.String(),
		EmiNo:           e.EmiNo,
		DueDate:         e.DueDate.Format(dateLayout),
		Amount:          e.Amount,
		PrincipalPart:   e.PrincipalPart,
		InterestPart:    e.InterestPart,
		ScheduleBalance: e.ScheduleBalance,
		Outstanding:     e.Outstanding,
		Status:          e.Status.String(),
	}
}

func toCollectionResponse(c model.CollectionEvent) dto.CollectionResponse {
	resp := dto.CollectionResponse{
		ID:           c.ID().String(),
		LoanID:       c.LoanID().String(),
		AgentID:      c.AgentID().String(),
		Amount:       c.Amount(),
		Channel:      c.Channel().String(),
		CapturedAt:   c.CapturedAt(),
		Status:       c.Status().String(),
		FlagReasons:  c.FlagReasons(),
		RiskScore:    c.RiskScore(),
		AutoApproved: c.AutoApproved(),
		Remarks:      c.Remarks(),
	}
	if c.LineID() != uuid.Nil {
		resp.LineID = c.LineID().String()
	}
	if point, ok := c.Location(); ok {
		lat, lng := point.Lat, point.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	if c.ReviewerID() != uuid.Nil {
		resp.ReviewerID = c.ReviewerID().String()
	}
	return resp
}

func toAuditRecordResponse(r model.AuditRecord) dto.AuditRecordResponse {
	resp := dto.AuditRecordResponse{
		ID:        r.ID.String(),
		LoanID:    r.LoanID.String(),
		ActorID:   r.ActorID.String(),
		Action:    r.Action,
		Details:   r.Details,
		CreatedAt: r.CreatedAt,
	}
	if r.CollectionID != uuid.Nil {
		resp.CollectionID = r.CollectionID.String()
	}
	return resp
}

func toAllocationLines(lines []model.AllocationLine) []dto.AllocationLineResponse {
	out := make([]dto.AllocationLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.AllocationLineResponse{
			EmiNo:       l.EmiNo,
			Applied:     l.Applied,
			Outstanding: l.Outstanding,
			Status:      l.Status.String(),
		})
	}
	return out
}
