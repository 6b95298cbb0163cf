package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CollectionEvent aggregate root
// ---------------------------------------------------------------------------

// CollectionEvent is a field agent's payment capture against a loan. It is
// an immutable aggregate; mutations return a new copy.
type CollectionEvent struct {
	id           uuid.UUID
	loanID       uuid.UUID
	agentID      uuid.UUID
	lineID       uuid.UUID
	amount       decimal.Decimal
	channel      valueobject.PaymentChannel
	location     valueobject.GeoPoint
	hasLocation  bool
	capturedAt   time.Time
	status       valueobject.CollectionStatus
	flagReasons  []string
	riskScore    *float64
	autoApproved bool
	reviewerID   uuid.UUID
	remarks      string
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewCollectionEvent captures a submitted payment in PENDING status. The
// capture location is optional; a device without a GPS fix submits none and
// the geo rules are skipped downstream. lineID points at the collection
// route the capture was made on, or uuid.Nil when the agent is off-route.
func NewCollectionEvent(
	loanID, agentID, lineID uuid.UUID,
	amount decimal.Decimal,
	channel valueobject.PaymentChannel,
	location valueobject.GeoPoint,
	hasLocation bool,
	now time.Time,
) (CollectionEvent, error) {
	if loanID == uuid.Nil {
		return CollectionEvent{}, errors.New("loan ID is required")
	}
	if agentID == uuid.Nil {
		return CollectionEvent{}, errors.New("agent ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return CollectionEvent{}, errors.New("amount must be positive")
	}

	c := CollectionEvent{
		id:          uuid.New(),
		loanID:      loanID,
		agentID:     agentID,
		lineID:      lineID,
		amount:      amount,
		channel:     channel,
		location:    location,
		hasLocation: hasLocation,
		capturedAt:  now,
		status:      valueobject.CollectionStatusPending,
		createdAt:   now,
		updatedAt:   now,
	}
	c.domainEvents = append(c.domainEvents, event.NewCollectionSubmitted(
		c.id.String(), loanID.String(), agentID.String(), amount, channel.String(),
	))
	return c, nil
}

// NewSettlementEvent records a foreclosure settlement as an already approved
// collection, so the repayment ledger carries the settling payment too.
func NewSettlementEvent(
	loanID, agentID uuid.UUID,
	amount decimal.Decimal,
	reason string,
	now time.Time,
) CollectionEvent {
	if reason == "" {
		reason = "Foreclosure"
	}
	return CollectionEvent{
		id:         uuid.New(),
		loanID:     loanID,
		agentID:    agentID,
		amount:     amount,
		channel:    valueobject.PaymentChannelCash,
		capturedAt: now,
		status:     valueobject.CollectionStatusApproved,
		remarks:    fmt.Sprintf("Foreclosure settlement. Reason: %s", reason),
		createdAt:  now,
		updatedAt:  now,
	}
}

// ReconstructCollectionEvent rebuilds the aggregate from persistence.
func ReconstructCollectionEvent(
	id, loanID, agentID, lineID uuid.UUID,
	amount decimal.Decimal,
	channel valueobject.PaymentChannel,
	location valueobject.GeoPoint,
	hasLocation bool,
	capturedAt time.Time,
	status valueobject.CollectionStatus,
	flagReasons []string,
	riskScore *float64,
	autoApproved bool,
	reviewerID uuid.UUID,
	remarks string,
	createdAt, updatedAt time.Time,
) CollectionEvent {
	return CollectionEvent{
		id:           id,
		loanID:       loanID,
		agentID:      agentID,
		lineID:       lineID,
		amount:       amount,
		channel:      channel,
		location:     location,
		hasLocation:  hasLocation,
		capturedAt:   capturedAt,
		status:       status,
		flagReasons:  flagReasons,
		riskScore:    riskScore,
		autoApproved: autoApproved,
		reviewerID:   reviewerID,
		remarks:      remarks,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Flag transitions PENDING -> FLAGGED and records the fraud reasons.
func (c CollectionEvent) Flag(reasons []string, now time.Time) (CollectionEvent, error) {
	status, err := c.status.Transition(valueobject.CollectionStatusFlagged)
	if err != nil {
		return c, err
	}
	if len(reasons) == 0 {
		return c, errors.New("at least one flag reason is required")
	}

	next := c
	next.status = status
	next.flagReasons = append([]string(nil), reasons...)
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCollectionFlagged(
		c.id.String(), c.loanID.String(), c.agentID.String(), reasons,
	))
	return next, nil
}

// AutoApprove transitions PENDING -> APPROVED without a human reviewer.
func (c CollectionEvent) AutoApprove(now time.Time) (CollectionEvent, error) {
	status, err := c.status.Transition(valueobject.CollectionStatusApproved)
	if err != nil {
		return c, err
	}

	next := c
	next.status = status
	next.autoApproved = true
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCollectionApproved(
		c.id.String(), c.loanID.String(), c.amount, true, "",
	))
	return next, nil
}

// Review resolves a PENDING or FLAGGED collection by a human decision.
func (c CollectionEvent) Review(approve bool, reviewerID uuid.UUID, remarks string, now time.Time) (CollectionEvent, error) {
	target := valueobject.CollectionStatusRejected
	if approve {
		target = valueobject.CollectionStatusApproved
	}
	status, err := c.status.Transition(target)
	if err != nil {
		return c, err
	}
	if reviewerID == uuid.Nil {
		return c, errors.New("reviewer ID is required")
	}

	next := c
	next.status = status
	next.reviewerID = reviewerID
	next.remarks = remarks
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	if approve {
		next.domainEvents = append(next.domainEvents, event.NewCollectionApproved(
			c.id.String(), c.loanID.String(), c.amount, false, reviewerID.String(),
		))
	} else {
		next.domainEvents = append(next.domainEvents, event.NewCollectionRejected(
			c.id.String(), c.loanID.String(), reviewerID.String(), remarks,
		))
	}
	return next, nil
}

// WithRiskScore attaches an advisory risk score. The score never changes the
// gating outcome on its own.
func (c CollectionEvent) WithRiskScore(score float64) CollectionEvent {
	next := c
	next.riskScore = &score
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c CollectionEvent) ID() uuid.UUID                        { return c.id }
func (c CollectionEvent) LoanID() uuid.UUID                    { return c.loanID }
func (c CollectionEvent) AgentID() uuid.UUID                   { return c.agentID }
func (c CollectionEvent) LineID() uuid.UUID                    { return c.lineID }
func (c CollectionEvent) Amount() decimal.Decimal              { return c.amount }
func (c CollectionEvent) Channel() valueobject.PaymentChannel  { return c.channel }
func (c CollectionEvent) CapturedAt() time.Time                { return c.capturedAt }
func (c CollectionEvent) Status() valueobject.CollectionStatus { return c.status }
func (c CollectionEvent) RiskScore() *float64                  { return c.riskScore }
func (c CollectionEvent) AutoApproved() bool                   { return c.autoApproved }
func (c CollectionEvent) ReviewerID() uuid.UUID                { return c.reviewerID }
func (c CollectionEvent) Remarks() string                      { return c.remarks }
func (c CollectionEvent) CreatedAt() time.Time                 { return c.createdAt }
func (c CollectionEvent) UpdatedAt() time.Time                 { return c.updatedAt }
func (c CollectionEvent) DomainEvents() []event.DomainEvent    { return c.domainEvents }

// Location returns the capture location and whether one was submitted.
func (c CollectionEvent) Location() (valueobject.GeoPoint, bool) {
	return c.location, c.hasLocation
}

// FlagReasons returns a defensive copy of the fraud flag reasons.
func (c CollectionEvent) FlagReasons() []string {
	if c.flagReasons == nil {
		return nil
	}
	out := make([]string, len(c.flagReasons))
	copy(out, c.flagReasons)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (c CollectionEvent) ClearEvents() CollectionEvent {
	next := c
	next.domainEvents = nil
	return next
}
