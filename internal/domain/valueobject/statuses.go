package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusCreated   = "CREATED"
	loanStatusApproved  = "APPROVED"
	loanStatusActive    = "ACTIVE"
	loanStatusClosed    = "CLOSED"
	loanStatusDefaulted = "DEFAULTED"
)

var (
	LoanStatusCreated  = LoanStatus{value: loanStatusCreated}
	LoanStatusApproved = LoanStatus{value: loanStatusApproved}
	LoanStatusActive   = LoanStatus{value: loanStatusActive}
	LoanStatusClosed   = LoanStatus{value: loanStatusClosed}
	// LoanStatusDefaulted is reserved. No transition currently reaches it.
	LoanStatusDefaulted = LoanStatus{value: loanStatusDefaulted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusCreated:   LoanStatusCreated,
	loanStatusApproved:  LoanStatusApproved,
	loanStatusActive:    LoanStatusActive,
	loanStatusClosed:    LoanStatusClosed,
	loanStatusDefaulted: LoanStatusDefaulted,
}

// loanTransitions is the single source of truth for legal loan transitions.
// CLOSED is reachable from ACTIVE both by full repayment and by foreclosure.
var loanTransitions = map[string][]string{
	loanStatusCreated:  {loanStatusApproved},
	loanStatusApproved: {loanStatusActive},
	loanStatusActive:   {loanStatusClosed},
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// CanTransitionTo reports whether moving to next is legal.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

// Transition returns next if the move is legal, or ErrInvalidStatusTransition.
func (s LoanStatus) Transition(next LoanStatus) (LoanStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: loan %s -> %s", ErrInvalidStatusTransition, s.value, next.value)
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// EMIStatus – immutable value object
// ---------------------------------------------------------------------------

// EMIStatus represents the repayment stage of a single schedule entry.
// Progression is monotonic: PENDING -> PARTIAL -> PAID, and PAID is terminal.
type EMIStatus struct {
	value string
}

const (
	emiStatusPending = "PENDING"
	emiStatusPartial = "PARTIAL"
	emiStatusPaid    = "PAID"
)

var (
	EMIStatusPending = EMIStatus{value: emiStatusPending}
	EMIStatusPartial = EMIStatus{value: emiStatusPartial}
	EMIStatusPaid    = EMIStatus{value: emiStatusPaid}
)

var validEMIStatuses = map[string]EMIStatus{
	emiStatusPending: EMIStatusPending,
	emiStatusPartial: EMIStatusPartial,
	emiStatusPaid:    EMIStatusPaid,
}

var emiRank = map[string]int{
	emiStatusPending: 0,
	emiStatusPartial: 1,
	emiStatusPaid:    2,
}

// NewEMIStatus creates an EMIStatus from a raw string.
func NewEMIStatus(s string) (EMIStatus, error) {
	v, ok := validEMIStatuses[s]
	if !ok {
		return EMIStatus{}, fmt.Errorf("invalid EMI status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s EMIStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s EMIStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s EMIStatus) Equal(other EMIStatus) bool { return s.value == other.value }

// IsPaid reports whether the entry is fully settled.
func (s EMIStatus) IsPaid() bool { return s.value == emiStatusPaid }

// Transition returns next if the move does not regress, or
// ErrInvalidStatusTransition. Re-asserting the current status is legal.
func (s EMIStatus) Transition(next EMIStatus) (EMIStatus, error) {
	if emiRank[next.value] < emiRank[s.value] {
		return s, fmt.Errorf("%w: emi %s -> %s", ErrInvalidStatusTransition, s.value, next.value)
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// CollectionStatus – immutable value object
// ---------------------------------------------------------------------------

// CollectionStatus represents the review disposition of a collection event.
type CollectionStatus struct {
	value string
}

const (
	collectionStatusPending  = "PENDING"
	collectionStatusFlagged  = "FLAGGED"
	collectionStatusApproved = "APPROVED"
	collectionStatusRejected = "REJECTED"
)

var (
	CollectionStatusPending  = CollectionStatus{value: collectionStatusPending}
	CollectionStatusFlagged  = CollectionStatus{value: collectionStatusFlagged}
	CollectionStatusApproved = CollectionStatus{value: collectionStatusApproved}
	CollectionStatusRejected = CollectionStatus{value: collectionStatusRejected}
)

var validCollectionStatuses = map[string]CollectionStatus{
	collectionStatusPending:  CollectionStatusPending,
	collectionStatusFlagged:  CollectionStatusFlagged,
	collectionStatusApproved: CollectionStatusApproved,
	collectionStatusRejected: CollectionStatusRejected,
}

var collectionTransitions = map[string][]string{
	collectionStatusPending: {collectionStatusFlagged, collectionStatusApproved, collectionStatusRejected},
	collectionStatusFlagged: {collectionStatusApproved, collectionStatusRejected},
}

// NewCollectionStatus creates a CollectionStatus from a raw string.
func NewCollectionStatus(s string) (CollectionStatus, error) {
	v, ok := validCollectionStatuses[s]
	if !ok {
		return CollectionStatus{}, fmt.Errorf("invalid collection status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s CollectionStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s CollectionStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s CollectionStatus) Equal(other CollectionStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further transition is legal.
func (s CollectionStatus) IsTerminal() bool {
	return s.value == collectionStatusApproved || s.value == collectionStatusRejected
}

// Transition returns next if the move is legal, or ErrInvalidStatusTransition.
func (s CollectionStatus) Transition(next CollectionStatus) (CollectionStatus, error) {
	for _, allowed := range collectionTransitions[s.value] {
		if allowed == next.value {
			return next, nil
		}
	}
	return s, fmt.Errorf("%w: collection %s -> %s", ErrInvalidStatusTransition, s.value, next.value)
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
