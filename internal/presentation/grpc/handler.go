package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/application/usecase"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
	"github.com/Madhuarvind/ak-finserv/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// actorFromContext extracts the caller's user ID from JWT claims.
func actorFromContext(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID.String(), nil
}

// mapError converts application and domain errors to gRPC status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrBadRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrDuplicateSameDay),
		errors.Is(err, model.ErrOutsideWindow),
		errors.Is(err, model.ErrLoanNotActive),
		errors.Is(err, model.ErrCollectionResolved),
		errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that FieldLoanHandler implements FieldLoanServiceServer.
var _ FieldLoanServiceServer = (*FieldLoanHandler)(nil)

// FieldLoanHandler implements the gRPC FieldLoanServiceServer interface.
type FieldLoanHandler struct {
	UnimplementedFieldLoanServiceServer
	createLoan  *usecase.CreateLoanUseCase
	approveLoan *usecase.ApproveLoanUseCase
	activate    *usecase.ActivateLoanUseCase
	getLoan     *usecase.GetLoanUseCase
	submit      *usecase.SubmitCollectionUseCase
	review      *usecase.ReviewCollectionUseCase
	foreclose   *usecase.ForecloseLoanUseCase
	listPending *usecase.ListPendingCollectionsUseCase
	deleteLoan  *usecase.DeleteLoanUseCase
	loanAudit   *usecase.GetLoanAuditUseCase
	logger      *slog.Logger
}

// NewFieldLoanHandler creates a new gRPC handler.
func NewFieldLoanHandler(
	createLoan *usecase.CreateLoanUseCase,
	approveLoan *usecase.ApproveLoanUseCase,
	activate *usecase.ActivateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	submit *usecase.SubmitCollectionUseCase,
	review *usecase.ReviewCollectionUseCase,
	foreclose *usecase.ForecloseLoanUseCase,
	listPending *usecase.ListPendingCollectionsUseCase,
	deleteLoan *usecase.DeleteLoanUseCase,
	loanAudit *usecase.GetLoanAuditUseCase,
	logger *slog.Logger,
) *FieldLoanHandler {
	return &FieldLoanHandler{
		createLoan:  createLoan,
		approveLoan: approveLoan,
		activate:    activate,
		getLoan:     getLoan,
		submit:      submit,
		review:      review,
		foreclose:   foreclose,
		listPending: listPending,
		deleteLoan:  deleteLoan,
		loanAudit:   loanAudit,
		logger:      logger,
	}
}

// Proto-aligned request/response message types.

// EMIEntryMsg represents the proto EMIEntry message.
type EMIEntryMsg struct {
	ID              string `json:"id"`
	EmiNo           int32  `json:"emi_no"`
	DueDate         string `json:"due_date"`
	Amount          string `json:"amount"`
	PrincipalPart   string `json:"principal_part"`
	InterestPart    string `json:"interest_part"`
	ScheduleBalance string `json:"schedule_balance"`
	Outstanding     string `json:"outstanding"`
	Status          string `json:"status"`
}

// LoanMsg represents the proto Loan message.
type LoanMsg struct {
	ID            string         `json:"id"`
	LoanNumber    string         `json:"loan_number"`
	CustomerID    string         `json:"customer_id"`
	AgentID       string         `json:"agent_id"`
	Principal     string         `json:"principal"`
	AnnualRatePct string         `json:"annual_rate_pct"`
	InterestModel string         `json:"interest_model"`
	TenureUnit    string         `json:"tenure_unit"`
	Installments  int32          `json:"installments"`
	TotalPayable  string         `json:"total_payable"`
	PendingAmount string         `json:"pending_amount"`
	Status        string         `json:"status"`
	StartDate     string         `json:"start_date,omitempty"`
	Schedule      []*EMIEntryMsg `json:"schedule,omitempty"`
}

// CollectionMsg represents the proto CollectionEvent message.
type CollectionMsg struct {
	ID           string   `json:"id"`
	LoanID       string   `json:"loan_id"`
	AgentID      string   `json:"agent_id"`
	LineID       string   `json:"line_id,omitempty"`
	Amount       string   `json:"amount"`
	Channel      string   `json:"channel"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	CapturedAt   string   `json:"captured_at"`
	Status       string   `json:"status"`
	FlagReasons  []string `json:"flag_reasons,omitempty"`
	RiskScore    *float64 `json:"risk_score,omitempty"`
	AutoApproved bool     `json:"auto_approved"`
	ReviewerID   string   `json:"reviewer_id,omitempty"`
	Remarks      string   `json:"remarks,omitempty"`
}

// AllocationLineMsg represents the proto AllocationLine message.
type AllocationLineMsg struct {
	EmiNo       int32  `json:"emi_no"`
	Applied     string `json:"applied"`
	Outstanding string `json:"outstanding"`
	Status      string `json:"status"`
}

// CreateLoanDraftRequest represents the proto CreateLoanDraftRequest message.
type CreateLoanDraftRequest struct {
	CustomerID    string `json:"customer_id"`
	AgentID       string `json:"agent_id"`
	Principal     string `json:"principal"`
	AnnualRatePct string `json:"annual_rate_pct"`
	InterestModel string `json:"interest_model"`
	TenureUnit    string `json:"tenure_unit"`
	Installments  int32  `json:"installments"`
}

// CreateLoanDraftResponse represents the proto CreateLoanDraftResponse message.
type CreateLoanDraftResponse struct {
	Loan *LoanMsg `json:"loan"`
}

// ApproveLoanRequest represents the proto ApproveLoanRequest message.
type ApproveLoanRequest struct {
	LoanID    string `json:"loan_id"`
	StartDate string `json:"start_date,omitempty"`
}

// ApproveLoanResponse represents the proto ApproveLoanResponse message.
type ApproveLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

// ActivateLoanRequest represents the proto ActivateLoanRequest message.
type ActivateLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ActivateLoanResponse represents the proto ActivateLoanResponse message.
type ActivateLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

// GetLoanRequest represents the proto GetLoanRequest message.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// GetLoanResponse represents the proto GetLoanResponse message.
type GetLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

// SubmitCollectionRequest represents the proto SubmitCollectionRequest message.
type SubmitCollectionRequest struct {
	LoanID  string   `json:"loan_id"`
	LineID  string   `json:"line_id,omitempty"`
	Amount  string   `json:"amount"`
	Channel string   `json:"channel"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// SubmitCollectionResponse represents the proto SubmitCollectionResponse message.
type SubmitCollectionResponse struct {
	Collection  *CollectionMsg       `json:"collection"`
	Allocation  []*AllocationLineMsg `json:"allocation,omitempty"`
	LoanStatus  string               `json:"loan_status"`
	LoanPending string               `json:"loan_pending"`
}

// ReviewCollectionRequest represents the proto ReviewCollectionRequest message.
type ReviewCollectionRequest struct {
	CollectionID string `json:"collection_id"`
	Approve      bool   `json:"approve"`
	Remarks      string `json:"remarks"`
}

// ReviewCollectionResponse represents the proto ReviewCollectionResponse message.
type ReviewCollectionResponse struct {
	Collection  *CollectionMsg       `json:"collection"`
	Allocation  []*AllocationLineMsg `json:"allocation,omitempty"`
	LoanStatus  string               `json:"loan_status"`
	LoanPending string               `json:"loan_pending"`
	AlreadyDone bool                 `json:"already_done"`
}

// ForecloseLoanRequest represents the proto ForecloseLoanRequest message.
type ForecloseLoanRequest struct {
	LoanID           string `json:"loan_id"`
	SettlementAmount string `json:"settlement_amount"`
	Reason           string `json:"reason,omitempty"`
}

// ForecloseLoanResponse represents the proto ForecloseLoanResponse message.
type ForecloseLoanResponse struct {
	Loan       *LoanMsg       `json:"loan"`
	Settlement *CollectionMsg `json:"settlement"`
}

// ListPendingCollectionsRequest represents the proto ListPendingCollectionsRequest message.
type ListPendingCollectionsRequest struct {
	Limit int32 `json:"limit"`
}

// ListPendingCollectionsResponse represents the proto ListPendingCollectionsResponse message.
type ListPendingCollectionsResponse struct {
	Collections []*CollectionMsg `json:"collections"`
}

// DeleteLoanRequest represents the proto DeleteLoanRequest message.
type DeleteLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// DeleteLoanResponse represents the proto DeleteLoanResponse message.
type DeleteLoanResponse struct{}

// AuditRecordMsg represents the proto AuditRecord message.
type AuditRecordMsg struct {
	ID           string `json:"id"`
	LoanID       string `json:"loan_id"`
	CollectionID string `json:"collection_id,omitempty"`
	ActorID      string `json:"actor_id"`
	Action       string `json:"action"`
	Details      string `json:"details"`
	CreatedAt    string `json:"created_at"`
}

// GetLoanAuditRequest represents the proto GetLoanAuditRequest message.
type GetLoanAuditRequest struct {
	LoanID string `json:"loan_id"`
}

// GetLoanAuditResponse represents the proto GetLoanAuditResponse message.
type GetLoanAuditResponse struct {
	Records []*AuditRecordMsg `json:"records"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// CreateLoanDraft opens a new loan draft.
func (h *FieldLoanHandler) CreateLoanDraft(ctx context.Context, req *CreateLoanDraftRequest) (*CreateLoanDraftResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid principal: %v", err)
	}
	rate, err := decimal.NewFromString(req.AnnualRatePct)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid annual_rate_pct: %v", err)
	}

	result, err := h.createLoan.Execute(ctx, dto.CreateLoanDraftRequest{
		CustomerID:    req.CustomerID,
		AgentID:       req.AgentID,
		Principal:     principal,
		AnnualRatePct: rate,
		InterestModel: req.InterestModel,
		TenureUnit:    req.TenureUnit,
		Installments:  int(req.Installments),
	})
	if err != nil {
		h.logger.Error("failed to create loan draft", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &CreateLoanDraftResponse{Loan: toLoanMsg(result)}, nil
}

// ApproveLoan approves a loan draft.
func (h *FieldLoanHandler) ApproveLoan(ctx context.Context, req *ApproveLoanRequest) (*ApproveLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var startDate time.Time
	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid start_date: %v", err)
		}
	}

	result, err := h.approveLoan.Execute(ctx, dto.ApproveLoanRequest{
		LoanID:     req.LoanID,
		ApproverID: actor,
		StartDate:  startDate,
	})
	if err != nil {
		h.logger.Error("failed to approve loan",
			slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &ApproveLoanResponse{Loan: toLoanMsg(result)}, nil
}

// ActivateLoan starts repayment on an approved loan.
func (h *FieldLoanHandler) ActivateLoan(ctx context.Context, req *ActivateLoanRequest) (*ActivateLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.activate.Execute(ctx, dto.ActivateLoanRequest{
		LoanID:  req.LoanID,
		ActorID: actor,
	})
	if err != nil {
		h.logger.Error("failed to activate loan",
			slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &ActivateLoanResponse{Loan: toLoanMsg(result)}, nil
}

// GetLoan retrieves a loan with its schedule.
func (h *FieldLoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleFieldAgent); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, mapError(err)
	}

	return &GetLoanResponse{Loan: toLoanMsg(result)}, nil
}

// SubmitCollection captures a field payment. The submitting agent is the
// authenticated caller.
func (h *FieldLoanHandler) SubmitCollection(ctx context.Context, req *SubmitCollectionRequest) (*SubmitCollectionResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleFieldAgent); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	agent, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	h.logger.Info("collection submitted",
		slog.String("loan_id", req.LoanID),
		slog.String("agent_id", agent),
		slog.String("amount", amount.String()),
	)

	result, err := h.submit.Execute(ctx, dto.SubmitCollectionRequest{
		LoanID:  req.LoanID,
		AgentID: agent,
		LineID:  req.LineID,
		Amount:  amount,
		Channel: req.Channel,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		h.logger.Error("failed to submit collection",
			slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &SubmitCollectionResponse{
		Collection:  toCollectionMsg(result.Collection),
		Allocation:  toAllocationMsgs(result.Allocation),
		LoanStatus:  result.LoanStatus,
		LoanPending: result.LoanPending.String(),
	}, nil
}

// ReviewCollection resolves a pending or flagged collection.
func (h *FieldLoanHandler) ReviewCollection(ctx context.Context, req *ReviewCollectionRequest) (*ReviewCollectionResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	reviewer, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.review.Execute(ctx, dto.ReviewCollectionRequest{
		CollectionID: req.CollectionID,
		ReviewerID:   reviewer,
		Approve:      req.Approve,
		Remarks:      req.Remarks,
	})
	if err != nil {
		h.logger.Error("failed to review collection",
			slog.String("collection_id", req.CollectionID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &ReviewCollectionResponse{
		Collection:  toCollectionMsg(result.Collection),
		Allocation:  toAllocationMsgs(result.Allocation),
		LoanStatus:  result.LoanStatus,
		LoanPending: result.LoanPending.String(),
		AlreadyDone: result.AlreadyDone,
	}, nil
}

// ForecloseLoan settles an active loan early.
func (h *FieldLoanHandler) ForecloseLoan(ctx context.Context, req *ForecloseLoanRequest) (*ForecloseLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	settlement, err := decimal.NewFromString(req.SettlementAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid settlement_amount: %v", err)
	}

	result, err := h.foreclose.Execute(ctx, dto.ForecloseLoanRequest{
		LoanID:           req.LoanID,
		ActorID:          actor,
		SettlementAmount: settlement,
		Reason:           req.Reason,
	})
	if err != nil {
		h.logger.Error("failed to foreclose loan",
			slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &ForecloseLoanResponse{
		Loan:       toLoanMsg(result.Loan),
		Settlement: toCollectionMsg(result.Settlement),
	}, nil
}

// ListPendingCollections pages the review queue.
func (h *FieldLoanHandler) ListPendingCollections(ctx context.Context, req *ListPendingCollectionsRequest) (*ListPendingCollectionsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.listPending.Execute(ctx, dto.ListPendingCollectionsRequest{Limit: int(req.Limit)})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListPendingCollectionsResponse{
		Collections: make([]*CollectionMsg, 0, len(result.Collections)),
	}
	for _, c := range result.Collections {
		resp.Collections = append(resp.Collections, toCollectionMsg(c))
	}
	return resp, nil
}

// DeleteLoan removes a loan and its dependent records.
func (h *FieldLoanHandler) DeleteLoan(ctx context.Context, req *DeleteLoanRequest) (*DeleteLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.deleteLoan.Execute(ctx, dto.DeleteLoanRequest{
		LoanID:  req.LoanID,
		ActorID: actor,
	}); err != nil {
		h.logger.Error("failed to delete loan",
			slog.String("loan_id", req.LoanID), slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return &DeleteLoanResponse{}, nil
}

// GetLoanAudit lists the audit trail recorded for a loan.
func (h *FieldLoanHandler) GetLoanAudit(ctx context.Context, req *GetLoanAuditRequest) (*GetLoanAuditResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.loanAudit.Execute(ctx, dto.GetLoanAuditRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, mapError(err)
	}

	resp := &GetLoanAuditResponse{Records: make([]*AuditRecordMsg, 0, len(result.Records))}
	for _, r := range result.Records {
		resp.Records = append(resp.Records, &AuditRecordMsg{
			ID:           r.ID,
			LoanID:       r.LoanID,
			CollectionID: r.CollectionID,
			ActorID:      r.ActorID,
			Action:       r.Action,
			Details:      r.Details,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// ---------------------------------------------------------------------------
// DTO to message mapping
// ---------------------------------------------------------------------------

func toLoanMsg(loan dto.LoanResponse) *LoanMsg {
	msg := &LoanMsg{
		ID:            loan.ID,
		LoanNumber:    loan.LoanNumber,
		CustomerID:    loan.CustomerID,
		AgentID:       loan.AgentID,
		Principal:     loan.Principal.String(),
		AnnualRatePct: loan.AnnualRatePct.String(),
		InterestModel: loan.InterestModel,
		TenureUnit:    loan.TenureUnit,
		Installments:  int32(loan.Installments),
		TotalPayable:  loan.TotalPayable.String(),
		PendingAmount: loan.PendingAmount.String(),
		Status:        loan.Status,
		StartDate:     loan.StartDate,
	}
	for _, e := range loan.Schedule {
		msg.Schedule = append(msg.Schedule, &EMIEntryMsg{
			ID:              e.ID,
			EmiNo:           int32(e.EmiNo),
			DueDate:         e.DueDate,
			Amount:          e.Amount.String(),
			PrincipalPart:   e.PrincipalPart.String(),
			InterestPart:    e.InterestPart.String(),
			ScheduleBalance: e.ScheduleBalance.String(),
			Outstanding:     e.Outstanding.String(),
			Status:          e.Status,
		})
	}
	return msg
}

func toCollectionMsg(c dto.CollectionResponse) *CollectionMsg {
	return &CollectionMsg{
		ID:           c.ID,
		LoanID:       c.LoanID,
		AgentID:      c.AgentID,
		LineID:       c.LineID,
		Amount:       c.Amount.String(),
		Channel:      c.Channel,
		Lat:          c.Lat,
		Lng:          c.Lng,
		CapturedAt:   c.CapturedAt.Format(time.RFC3339),
		Status:       c.Status,
		FlagReasons:  c.FlagReasons,
		RiskScore:    c.RiskScore,
		AutoApproved: c.AutoApproved,
		ReviewerID:   c.ReviewerID,
		Remarks:      c.Remarks,
	}
}

func toAllocationMsgs(lines []dto.AllocationLineResponse) []*AllocationLineMsg {
	if len(lines) == 0 {
		return nil
	}
	out := make([]*AllocationLineMsg, 0, len(lines))
	for _, l := range lines {
		out = append(out, &AllocationLineMsg{
			EmiNo:       int32(l.EmiNo),
			Applied:     l.Applied.String(),
			Outstanding: l.Outstanding.String(),
			Status:      l.Status,
		})
	}
	return out
}
