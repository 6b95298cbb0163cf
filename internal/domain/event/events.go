package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/pkg/events"
)

// DomainEvent is re-exported so domain code does not import pkg/events
// directly.
type DomainEvent = events.DomainEvent

const (
	aggregateLoan       = "Loan"
	aggregateCollection = "CollectionEvent"
)

// ---------------------------------------------------------------------------
// Loan lifecycle events
// ---------------------------------------------------------------------------

type LoanApproved struct {
	events.BaseEvent
	LoanNumber   string          `json:"loan_number"`
	Principal    decimal.Decimal `json:"principal"`
	TotalPayable decimal.Decimal `json:"total_payable"`
	Installments int             `json:"installments"`
}

func NewLoanApproved(loanID, loanNumber string, principal, totalPayable decimal.Decimal, installments int) LoanApproved {
	return LoanApproved{
		BaseEvent:    events.NewBaseEvent("loan.approved", loanID, aggregateLoan),
		LoanNumber:   loanNumber,
		Principal:    principal,
		TotalPayable: totalPayable,
		Installments: installments,
	}
}

type LoanActivated struct {
	events.BaseEvent
	LoanNumber string    `json:"loan_number"`
	StartDate  time.Time `json:"start_date"`
}

func NewLoanActivated(loanID, loanNumber string, startDate time.Time) LoanActivated {
	return LoanActivated{
		BaseEvent:  events.NewBaseEvent("loan.activated", loanID, aggregateLoan),
		LoanNumber: loanNumber,
		StartDate:  startDate,
	}
}

type LoanClosed struct {
	events.BaseEvent
	LoanNumber string          `json:"loan_number"`
	Residual   decimal.Decimal `json:"residual"`
}

func NewLoanClosed(loanID, loanNumber string, residual decimal.Decimal) LoanClosed {
	return LoanClosed{
		BaseEvent:  events.NewBaseEvent("loan.closed", loanID, aggregateLoan),
		LoanNumber: loanNumber,
		Residual:   residual,
	}
}

type LoanForeclosed struct {
	events.BaseEvent
	LoanNumber   string          `json:"loan_number"`
	SettledTotal decimal.Decimal `json:"settled_total"`
}

func NewLoanForeclosed(loanID, loanNumber string, settledTotal decimal.Decimal) LoanForeclosed {
	return LoanForeclosed{
		BaseEvent:    events.NewBaseEvent("loan.foreclosed", loanID, aggregateLoan),
		LoanNumber:   loanNumber,
		SettledTotal: settledTotal,
	}
}

// ---------------------------------------------------------------------------
// Collection events
// ---------------------------------------------------------------------------

type CollectionSubmitted struct {
	events.BaseEvent
	LoanID  string          `json:"loan_id"`
	AgentID string          `json:"agent_id"`
	Amount  decimal.Decimal `json:"amount"`
	Channel string          `json:"channel"`
}

func NewCollectionSubmitted(collectionID, loanID, agentID string, amount decimal.Decimal, channel string) CollectionSubmitted {
	return CollectionSubmitted{
		BaseEvent: events.NewBaseEvent("collection.submitted", collectionID, aggregateCollection),
		LoanID:    loanID,
		AgentID:   agentID,
		Amount:    amount,
		Channel:   channel,
	}
}

type CollectionFlagged struct {
	events.BaseEvent
	LoanID  string   `json:"loan_id"`
	AgentID string   `json:"agent_id"`
	Reasons []string `json:"reasons"`
}

func NewCollectionFlagged(collectionID, loanID, agentID string, reasons []string) CollectionFlagged {
	return CollectionFlagged{
		BaseEvent: events.NewBaseEvent("collection.flagged", collectionID, aggregateCollection),
		LoanID:    loanID,
		AgentID:   agentID,
		Reasons:   reasons,
	}
}

type CollectionApproved struct {
	events.BaseEvent
	LoanID     string          `json:"loan_id"`
	Amount     decimal.Decimal `json:"amount"`
	Auto       bool            `json:"auto"`
	ReviewerID string          `json:"reviewer_id,omitempty"`
}

func NewCollectionApproved(collectionID, loanID string, amount decimal.Decimal, auto bool, reviewerID string) CollectionApproved {
	return CollectionApproved{
		BaseEvent:  events.NewBaseEvent("collection.approved", collectionID, aggregateCollection),
		LoanID:     loanID,
		Amount:     amount,
		Auto:       auto,
		ReviewerID: reviewerID,
	}
}

type CollectionRejected struct {
	events.BaseEvent
	LoanID     string `json:"loan_id"`
	ReviewerID string `json:"reviewer_id"`
	Remarks    string `json:"remarks,omitempty"`
}

func NewCollectionRejected(collectionID, loanID, reviewerID, remarks string) CollectionRejected {
	return CollectionRejected{
		BaseEvent:  events.NewBaseEvent("collection.rejected", collectionID, aggregateCollection),
		LoanID:     loanID,
		ReviewerID: reviewerID,
		Remarks:    remarks,
	}
}
