package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// ErrNotFound is returned by repositories when an entity does not exist.
var ErrNotFound = errors.New("entity not found")

// LoanRepository provides non-transactional loan reads and draft creation.
type LoanRepository interface {
	// Create persists a new loan draft together with its creation audit line.
	Create(ctx context.Context, loan model.Loan, audit model.AuditRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Loan, error)
	Schedule(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error)
	// CountOpenedInYear supports sequential loan number assignment.
	CountOpenedInYear(ctx context.Context, year int) (int, error)
}

// CollectionRepository provides non-transactional collection reads.
type CollectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error)
	ListPendingReview(ctx context.Context, limit int) ([]model.CollectionEvent, error)
}

// CollectionHistory answers the guard's questions about an agent's recent
// activity.
type CollectionHistory interface {
	// FlaggedOpenCount counts the agent's collections still sitting in
	// FLAGGED status.
	FlaggedOpenCount(ctx context.Context, agentID uuid.UUID) (int, error)
	// LastCaptureAt returns the capture time of the agent's most recent
	// collection, or ok=false when the agent has none.
	LastCaptureAt(ctx context.Context, agentID uuid.UUID) (time.Time, bool, error)
}

// AuditTrail is the read side of the append-only loan history. Writes go
// through LoanScope.AppendAudit so they commit with the change they record.
type AuditTrail interface {
	ListForLoan(ctx context.Context, loanID uuid.UUID) ([]model.AuditRecord, error)
}

// CustomerDirectory resolves customer profile data needed for gating.
type CustomerDirectory interface {
	// HomeLocation returns the customer's profile location, or ok=false when
	// the profile has no geo fix.
	HomeLocation(ctx context.Context, customerID uuid.UUID) (valueobject.GeoPoint, bool, error)
}

// RouteDirectory resolves the working window of a collection line. Lines
// without configured hours report ok=false and are not window-checked.
type RouteDirectory interface {
	WorkingWindow(ctx context.Context, lineID uuid.UUID) (valueobject.TimeWindow, bool, error)
}

// EventPublisher pushes domain events to the outbound broker. Publishing
// happens after the owning transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// RiskSignalProvider returns an advisory fraud risk score in [0,1]. The
// score is attached to the collection for the reviewer's benefit and never
// changes the gating outcome.
type RiskSignalProvider interface {
	Score(ctx context.Context, c model.CollectionEvent) (float64, error)
}

// LoanScope is the set of operations available inside one loan's exclusive
// scope. Every write that touches a loan's schedule or collections goes
// through a scope so concurrent payments against the same loan serialize.
type LoanScope interface {
	Loan(ctx context.Context, id uuid.UUID) (model.Loan, error)
	UnpaidEntries(ctx context.Context, loanID uuid.UUID) ([]model.EMIEntry, error)
	HasCollectionOnDay(ctx context.Context, loanID uuid.UUID, day time.Time) (bool, error)
	CollectionForUpdate(ctx context.Context, id uuid.UUID) (model.CollectionEvent, error)
	InsertCollection(ctx context.Context, c model.CollectionEvent) error
	UpdateCollection(ctx context.Context, c model.CollectionEvent) error
	SaveLoan(ctx context.Context, loan model.Loan) error
	InsertEntries(ctx context.Context, entries []model.EMIEntry) error
	SaveEntries(ctx context.Context, entries []model.EMIEntry) error
	AppendAudit(ctx context.Context, rec model.AuditRecord) error
	DeleteLoanCascade(ctx context.Context, loanID uuid.UUID) error
}

// LoanScopeRunner opens an exclusive scope on one loan and runs fn inside
// it. The scope holds a row lock on the loan for its whole duration; the
// work is atomic and rolls back on error.
type LoanScopeRunner interface {
	InLoanScope(ctx context.Context, loanID uuid.UUID, fn func(scope LoanScope) error) error
}
