package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
type Loan struct {
	id            uuid.UUID
	loanNumber    string
	customerID    uuid.UUID
	agentID       uuid.UUID
	principal     decimal.Decimal
	annualRatePct decimal.Decimal
	interestModel valueobject.InterestModel
	tenureUnit    valueobject.TenureUnit
	installments  int
	totalPayable  decimal.Decimal
	pendingAmount decimal.Decimal
	status        valueobject.LoanStatus
	startDate     time.Time
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanDraft creates a loan in CREATED status. No schedule exists yet; the
// pending amount tracks the principal until approval fixes the total payable.
func NewLoanDraft(
	loanNumber string,
	customerID, agentID uuid.UUID,
	principal, annualRatePct decimal.Decimal,
	interestModel valueobject.InterestModel,
	tenureUnit valueobject.TenureUnit,
	installments int,
	now time.Time,
) (Loan, error) {
	if loanNumber == "" {
		return Loan{}, errors.New("loan number is required")
	}
	if customerID == uuid.Nil {
		return Loan{}, errors.New("customer ID is required")
	}
	if agentID == uuid.Nil {
		return Loan{}, errors.New("agent ID is required")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("principal must be positive")
	}
	if annualRatePct.IsNegative() {
		return Loan{}, errors.New("interest rate cannot be negative")
	}
	if installments <= 0 {
		return Loan{}, errors.New("installment count must be positive")
	}

	return Loan{
		id:            uuid.New(),
		loanNumber:    loanNumber,
		customerID:    customerID,
		agentID:       agentID,
		principal:     principal,
		annualRatePct: annualRatePct,
		interestModel: interestModel,
		tenureUnit:    tenureUnit,
		installments:  installments,
		totalPayable:  decimal.Zero,
		pendingAmount: principal,
		status:        valueobject.LoanStatusCreated,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id uuid.UUID,
	loanNumber string,
	customerID, agentID uuid.UUID,
	principal, annualRatePct decimal.Decimal,
	interestModel valueobject.InterestModel,
	tenureUnit valueobject.TenureUnit,
	installments int,
	totalPayable, pendingAmount decimal.Decimal,
	status valueobject.LoanStatus,
	startDate time.Time,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:            id,
		loanNumber:    loanNumber,
		customerID:    customerID,
		agentID:       agentID,
		principal:     principal,
		annualRatePct: annualRatePct,
		interestModel: interestModel,
		tenureUnit:    tenureUnit,
		installments:  installments,
		totalPayable:  totalPayable,
		pendingAmount: pendingAmount,
		status:        status,
		startDate:     startDate,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Approve transitions CREATED -> APPROVED, stamps the start date and builds
// the full repayment schedule with due dates stepped from it. The pending
// amount resets to the total payable; a loan read after approval already
// carries its schedule. The generated entries are returned for persistence
// alongside the aggregate.
func (l Loan) Approve(startDate, now time.Time) (Loan, []EMIEntry, error) {
	status, err := l.status.Transition(valueobject.LoanStatusApproved)
	if err != nil {
		return l, nil, err
	}
	if startDate.IsZero() {
		return l, nil, errors.New("start date is required")
	}

	entries, total := BuildSchedule(
		l.interestModel, l.principal, l.annualRatePct,
		l.installments, l.tenureUnit, startDate,
	)
	for i := range entries {
		entries[i].ID = uuid.New()
		entries[i].LoanID = l.id
	}

	next := l
	next.status = status
	next.startDate = startDate
	next.totalPayable = total
	next.pendingAmount = total
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(
		l.id.String(), l.loanNumber, l.principal, total, l.installments,
	))
	return next, entries, nil
}

// Activate transitions APPROVED -> ACTIVE and opens the loan for field
// collections. The schedule and amounts were fixed at approval.
func (l Loan) Activate(now time.Time) (Loan, error) {
	status, err := l.status.Transition(valueobject.LoanStatusActive)
	if err != nil {
		return l, err
	}

	next := l
	next.status = status
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanActivated(
		l.id.String(), l.loanNumber, l.startDate,
	))
	return next, nil
}

// ApplyAllocation records the outcome of a payment allocation on the loan:
// the pending total moves to the allocator's figure and, when the allocation
// settled every installment, the loan closes.
func (l Loan) ApplyAllocation(result AllocationResult, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}

	next := l
	next.pendingAmount = result.PendingAmount
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	if result.Closed {
		status, err := l.status.Transition(valueobject.LoanStatusClosed)
		if err != nil {
			return l, err
		}
		next.status = status
		next.pendingAmount = decimal.Zero
		next.domainEvents = append(next.domainEvents, event.NewLoanClosed(
			l.id.String(), l.loanNumber, result.PendingAmount,
		))
	}
	return next, nil
}

// Foreclose settles an ACTIVE loan early against a negotiated amount and
// transitions it to CLOSED.
func (l Loan) Foreclose(settlement decimal.Decimal, now time.Time) (Loan, error) {
	status, err := l.status.Transition(valueobject.LoanStatusClosed)
	if err != nil {
		return l, err
	}
	if settlement.LessThanOrEqual(decimal.Zero) {
		return l, errors.New("settlement amount must be positive")
	}

	next := l
	next.status = status
	next.pendingAmount = decimal.Zero
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanForeclosed(
		l.id.String(), l.loanNumber, settlement,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() uuid.UUID                             { return l.id }
func (l Loan) LoanNumber() string                        { return l.loanNumber }
func (l Loan) CustomerID() uuid.UUID                     { return l.customerID }
func (l Loan) AgentID() uuid.UUID                        { return l.agentID }
func (l Loan) Principal() decimal.Decimal                { return l.principal }
func (l Loan) AnnualRatePct() decimal.Decimal            { return l.annualRatePct }
func (l Loan) InterestModel() valueobject.InterestModel  { return l.interestModel }
func (l Loan) TenureUnit() valueobject.TenureUnit        { return l.tenureUnit }
func (l Loan) Installments() int                         { return l.installments }
func (l Loan) TotalPayable() decimal.Decimal             { return l.totalPayable }
func (l Loan) PendingAmount() decimal.Decimal            { return l.pendingAmount }
func (l Loan) Status() valueobject.LoanStatus            { return l.status }
func (l Loan) StartDate() time.Time                      { return l.startDate }
func (l Loan) Version() int                              { return l.version }
func (l Loan) CreatedAt() time.Time                      { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                      { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent         { return l.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}
