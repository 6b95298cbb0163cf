package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action tags. Records are append-only; nothing ever updates or
// deletes a row once written.
const (
	AuditLoanCreated         = "LOAN_CREATED"
	AuditLoanApproved        = "LOAN_APPROVED"
	AuditLoanActivated       = "LOAN_ACTIVATED"
	AuditLoanClosed          = "LOAN_CLOSED"
	AuditLoanForeclosed      = "LOAN_FORECLOSED"
	AuditLoanDeleted         = "LOAN_DELETED"
	AuditCollectionSubmitted = "COLLECTION_SUBMITTED"
	AuditCollectionApproved  = "COLLECTION_APPROVED"
	AuditCollectionRejected  = "COLLECTION_REJECTED"
	AuditFraudAlert          = "FRAUD_ALERT"
	AuditAutoApproval        = "AUTO_APPROVAL"
)

// AuditRecord is one line of a loan's tamper-evident history.
type AuditRecord struct {
	ID           uuid.UUID
	LoanID       uuid.UUID
	CollectionID uuid.UUID
	ActorID      uuid.UUID
	Action       string
	Details      string
	CreatedAt    time.Time
}

// NewAuditRecord creates a loan-scoped audit line.
func NewAuditRecord(loanID, actorID uuid.UUID, action, details string, now time.Time) AuditRecord {
	return AuditRecord{
		ID:        uuid.New(),
		LoanID:    loanID,
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: now,
	}
}

// NewCollectionAuditRecord creates an audit line tied to a specific
// collection event as well as its loan.
func NewCollectionAuditRecord(loanID, collectionID, actorID uuid.UUID, action, details string, now time.Time) AuditRecord {
	rec := NewAuditRecord(loanID, actorID, action, details, now)
	rec.CollectionID = collectionID
	return rec
}
