package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanDraftRequest carries the data needed to open a loan draft.
type CreateLoanDraftRequest struct {
	CustomerID    string          `json:"customer_id"`
	AgentID       string          `json:"agent_id"`
	Principal     decimal.Decimal `json:"principal"`
	AnnualRatePct decimal.Decimal `json:"annual_rate_pct"`
	InterestModel string          `json:"interest_model"`
	TenureUnit    string          `json:"tenure_unit"`
	Installments  int             `json:"installments"`
}

// ApproveLoanRequest identifies a draft to approve. An omitted start date
// defaults to the approval time.
type ApproveLoanRequest struct {
	LoanID     string    `json:"loan_id"`
	ApproverID string    `json:"approver_id"`
	StartDate  time.Time `json:"start_date"`
}

// ActivateLoanRequest starts repayment on an approved loan.
type ActivateLoanRequest struct {
	LoanID  string `json:"loan_id"`
	ActorID string `json:"actor_id"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// SubmitCollectionRequest carries a field agent's payment capture. Lat and
// Lng are nil when the device had no GPS fix; LineID is empty when the
// capture is off-route.
type SubmitCollectionRequest struct {
	LoanID  string          `json:"loan_id"`
	AgentID string          `json:"agent_id"`
	LineID  string          `json:"line_id,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	Channel string          `json:"channel"`
	Lat     *float64        `json:"lat,omitempty"`
	Lng     *float64        `json:"lng,omitempty"`
}

// ReviewCollectionRequest resolves a pending or flagged collection.
type ReviewCollectionRequest struct {
	CollectionID string `json:"collection_id"`
	ReviewerID   string `json:"reviewer_id"`
	Approve      bool   `json:"approve"`
	Remarks      string `json:"remarks"`
}

// ForecloseLoanRequest settles an active loan early.
type ForecloseLoanRequest struct {
	LoanID           string          `json:"loan_id"`
	ActorID          string          `json:"actor_id"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	Reason           string          `json:"reason,omitempty"`
}

// ListPendingCollectionsRequest pages the review queue.
type ListPendingCollectionsRequest struct {
	Limit int `json:"limit"`
}

// DeleteLoanRequest removes a loan and its dependent records.
type DeleteLoanRequest struct {
	LoanID  string `json:"loan_id"`
	ActorID string `json:"actor_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// EMIEntryResponse is the external representation of one installment.
type EMIEntryResponse struct {
	ID              string          `json:"id"`
	EmiNo           int             `json:"emi_no"`
	DueDate         string          `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	PrincipalPart   decimal.Decimal `json:"principal_part"`
	InterestPart    decimal.Decimal `json:"interest_part"`
	ScheduleBalance decimal.Decimal `json:"schedule_balance"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	Status          string          `json:"status"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID            string             `json:"id"`
	LoanNumber    string             `json:"loan_number"`
	CustomerID    string             `json:"customer_id"`
	AgentID       string             `json:"agent_id"`
	Principal     decimal.Decimal    `json:"principal"`
	AnnualRatePct decimal.Decimal    `json:"annual_rate_pct"`
	InterestModel string             `json:"interest_model"`
	TenureUnit    string             `json:"tenure_unit"`
	Installments  int                `json:"installments"`
	TotalPayable  decimal.Decimal    `json:"total_payable"`
	PendingAmount decimal.Decimal    `json:"pending_amount"`
	Status        string             `json:"status"`
	StartDate     string             `json:"start_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Schedule      []EMIEntryResponse `json:"schedule,omitempty"`
}

// CollectionResponse is the external representation of a collection event.
type CollectionResponse struct {
	ID           string          `json:"id"`
	LoanID       string          `json:"loan_id"`
	AgentID      string          `json:"agent_id"`
	LineID       string          `json:"line_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Channel      string          `json:"channel"`
	Lat          *float64        `json:"lat,omitempty"`
	Lng          *float64        `json:"lng,omitempty"`
	CapturedAt   time.Time       `json:"captured_at"`
	Status       string          `json:"status"`
	FlagReasons  []string        `json:"flag_reasons,omitempty"`
	RiskScore    *float64        `json:"risk_score,omitempty"`
	AutoApproved bool            `json:"auto_approved"`
	ReviewerID   string          `json:"reviewer_id,omitempty"`
	Remarks      string          `json:"remarks,omitempty"`
}

// AllocationLineResponse reports how much of a payment landed on one
// installment.
type AllocationLineResponse struct {
	EmiNo       int             `json:"emi_no"`
	Applied     decimal.Decimal `json:"applied"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
}

// SubmitCollectionResponse reports the intake outcome of a capture.
type SubmitCollectionResponse struct {
	Collection  CollectionResponse       `json:"collection"`
	Allocation  []AllocationLineResponse `json:"allocation,omitempty"`
	LoanStatus  string                   `json:"loan_status"`
	LoanPending decimal.Decimal          `json:"loan_pending"`
}

// ReviewCollectionResponse reports the review outcome.
type ReviewCollectionResponse struct {
	Collection  CollectionResponse       `json:"collection"`
	Allocation  []AllocationLineResponse `json:"allocation,omitempty"`
	LoanStatus  string                   `json:"loan_status"`
	LoanPending decimal.Decimal          `json:"loan_pending"`
	AlreadyDone bool                     `json:"already_done"`
}

// ForecloseLoanResponse reports the settlement outcome.
type ForecloseLoanResponse struct {
	Loan       LoanResponse       `json:"loan"`
	Settlement CollectionResponse `json:"settlement"`
}

// PendingCollectionsResponse is the review queue.
type PendingCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections"`
}

// GetLoanAuditRequest identifies a loan whose history to read.
type GetLoanAuditRequest struct {
	LoanID string `json:"loan_id"`
}

// AuditRecordResponse is one line of a loan's history.
type AuditRecordResponse struct {
	ID           string    `json:"id"`
	LoanID       string    `json:"loan_id"`
	CollectionID string    `json:"collection_id,omitempty"`
	ActorID      string    `json:"actor_id"`
	Action       string    `json:"action"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoanAuditResponse is a loan's full history, oldest first.
type LoanAuditResponse struct {
	Records []AuditRecordResponse `json:"records"`
}
