package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/service"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// SubmitCollectionUseCase runs the full intake pipeline for a field capture:
// lifecycle and duplicate checks, working-window check, fraud gating,
// advisory risk scoring, persistence and, for approved captures, payment
// allocation. Everything up to publishing runs inside the loan's exclusive
// scope.
type SubmitCollectionUseCase struct {
	scopes    port.LoanScopeRunner
	history   port.CollectionHistory
	customers port.CustomerDirectory
	routes    port.RouteDirectory
	guard     *service.FraudGuard
	risk      port.RiskSignalProvider
	publisher port.EventPublisher
	metrics   *IntakeMetrics
	localZone *time.Location
	logger    *slog.Logger
}

// NewSubmitCollectionUseCase wires dependencies.
func NewSubmitCollectionUseCase(
	scopes port.LoanScopeRunner,
	history port.CollectionHistory,
	customers port.CustomerDirectory,
	routes port.RouteDirectory,
	guard *service.FraudGuard,
	risk port.RiskSignalProvider,
	publisher port.EventPublisher,
	metrics *IntakeMetrics,
	localZone *time.Location,
	logger *slog.Logger,
) *SubmitCollectionUseCase {
	return &SubmitCollectionUseCase{
		scopes:    scopes,
		history:   history,
		customers: customers,
		routes:    routes,
		guard:     guard,
		risk:      risk,
		publisher: publisher,
		metrics:   metrics,
		localZone: localZone,
		logger:    logger,
	}
}

// Execute processes one capture. The gating decision is deterministic; the
// risk score is advisory only and a scoring failure never blocks intake.
func (uc *SubmitCollectionUseCase) Execute(ctx context.Context, req dto.SubmitCollectionRequest) (dto.SubmitCollectionResponse, error) {
	now := time.Now().UTC()

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		return dto.SubmitCollectionResponse{}, fmt.Errorf("%w: invalid loan ID", ErrBadRequest)
	}
	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		return dto.SubmitCollectionResponse{}, fmt.Errorf("%w: invalid agent ID", ErrBadRequest)
	}
	channel, err := valueobject.NewPaymentChannel(req.Channel)
	if err != nil {
		return dto.SubmitCollectionResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	var lineID uuid.UUID
	if req.LineID != "" {
		lineID, err = uuid.Parse(req.LineID)
		if err != nil {
			return dto.SubmitCollectionResponse{}, fmt.Errorf("%w: invalid line ID", ErrBadRequest)
		}
	}

	// Devices without a GPS fix submit no coordinates at all. The capture
	// is still accepted; only the geofence rule needs a location.
	var location valueobject.GeoPoint
	hasLocation := req.Lat != nil && req.Lng != nil
	if hasLocation {
		location, err = valueobject.NewGeoPoint(*req.Lat, *req.Lng)
		if err != nil {
			return dto.SubmitCollectionResponse{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}

	local := now.In(uc.localZone)
	localDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.localZone)

	var (
		collection model.CollectionEvent
		updated    model.Loan
		allocation model.AllocationResult
		allocated  bool
		pending    []event.DomainEvent
	)

	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		loan, err := scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}
		if !loan.Status().Equal(valueobject.LoanStatusActive) {
			return model.ErrLoanNotActive
		}

		dup, err := scope.HasCollectionOnDay(ctx, loanID, localDay)
		if err != nil {
			return fmt.Errorf("check same-day collection: %w", err)
		}
		if dup {
			return model.ErrDuplicateSameDay
		}

		// The window check applies only when the capture names a line and
		// that line has a configured window.
		if lineID != uuid.Nil {
			window, configured, err := uc.routes.WorkingWindow(ctx, lineID)
			if err != nil {
				return fmt.Errorf("load working window: %w", err)
			}
			if configured && !window.Contains(local.Format("15:04")) {
				return model.ErrOutsideWindow
			}
		}

		home, homeKnown, err := uc.customers.HomeLocation(ctx, loan.CustomerID())
		if err != nil {
			return fmt.Errorf("load customer location: %w", err)
		}
		lastAt, hasLast, err := uc.history.LastCaptureAt(ctx, agentID)
		if err != nil {
			return fmt.Errorf("load last capture: %w", err)
		}
		flaggedOpen, err := uc.history.FlaggedOpenCount(ctx, agentID)
		if err != nil {
			return fmt.Errorf("count open flags: %w", err)
		}

		verdict := uc.guard.Check(service.GuardInput{
			Location:         location,
			LocationKnown:    hasLocation,
			CustomerHome:     home,
			HomeKnown:        homeKnown,
			Channel:          channel,
			CapturedAt:       now,
			LastCaptureAt:    lastAt,
			HasLastCapture:   hasLast,
			AgentFlaggedOpen: flaggedOpen,
		})

		collection, err = model.NewCollectionEvent(loanID, agentID, lineID, req.Amount, channel, location, hasLocation, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}

		if score, scoreErr := uc.risk.Score(ctx, collection); scoreErr != nil {
			uc.logger.Warn("risk scoring failed, continuing without score",
				"collection_id", collection.ID(), "error", scoreErr)
		} else {
			collection = collection.WithRiskScore(score)
		}

		switch {
		case verdict.Flagged:
			collection, err = collection.Flag(verdict.Reasons, now)
			if err != nil {
				return fmt.Errorf("flag collection: %w", err)
			}
		case verdict.AutoApprove:
			collection, err = collection.AutoApprove(now)
			if err != nil {
				return fmt.Errorf("auto-approve collection: %w", err)
			}
		}

		if err := scope.InsertCollection(ctx, collection); err != nil {
			return fmt.Errorf("insert collection: %w", err)
		}

		capturedAt := "without location"
		if hasLocation {
			capturedAt = fmt.Sprintf("at (%f, %f)", location.Lat, location.Lng)
		}
		audits := []model.AuditRecord{
			model.NewCollectionAuditRecord(loanID, collection.ID(), agentID,
				model.AuditCollectionSubmitted,
				fmt.Sprintf("%s %s captured %s", req.Amount.String(), channel.String(), capturedAt),
				now),
		}
		if verdict.Flagged {
			for _, reason := range verdict.Reasons {
				audits = append(audits, model.NewCollectionAuditRecord(
					loanID, collection.ID(), agentID, model.AuditFraudAlert, reason, now))
			}
		}
		if collection.AutoApproved() {
			audits = append(audits, model.NewCollectionAuditRecord(
				loanID, collection.ID(), agentID, model.AuditAutoApproval,
				fmt.Sprintf("auto-approved, %dm from customer location", int(math.Round(verdict.DistanceMeters))),
				now))
		}
		for _, a := range audits {
			if err := scope.AppendAudit(ctx, a); err != nil {
				return fmt.Errorf("append audit: %w", err)
			}
		}

		updated = loan
		if collection.Status().Equal(valueobject.CollectionStatusApproved) {
			entries, err := scope.UnpaidEntries(ctx, loanID)
			if err != nil {
				return fmt.Errorf("load unpaid entries: %w", err)
			}
			allocation = model.Allocate(entries, collection.Amount())
			allocated = true

			if err := scope.SaveEntries(ctx, allocation.Entries); err != nil {
				return fmt.Errorf("save entries: %w", err)
			}
			updated, err = loan.ApplyAllocation(allocation, now)
			if err != nil {
				return fmt.Errorf("apply allocation: %w", err)
			}
			if err := scope.SaveLoan(ctx, updated); err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
			if allocation.Closed {
				if err := scope.AppendAudit(ctx, model.NewAuditRecord(
					loanID, agentID, model.AuditLoanClosed, allocation.Summary, now)); err != nil {
					return fmt.Errorf("append audit: %w", err)
				}
			}
		}

		pending = append(pending, collection.DomainEvents()...)
		pending = append(pending, updated.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.SubmitCollectionResponse{}, err
	}

	uc.metrics.submitted.Add(ctx, 1)
	if collection.Status().Equal(valueobject.CollectionStatusFlagged) {
		uc.metrics.flagged.Add(ctx, 1)
	}
	if collection.AutoApproved() {
		uc.metrics.autoApproved.Add(ctx, 1)
	}

	if err := uc.publisher.Publish(ctx, pending...); err != nil {
		return dto.SubmitCollectionResponse{}, fmt.Errorf("publish events: %w", err)
	}

	resp := dto.SubmitCollectionResponse{
		Collection:  toCollectionResponse(collection),
		LoanStatus:  updated.Status().String(),
		LoanPending: updated.PendingAmount(),
	}
	if allocated {
		resp.Allocation = toAllocationLines(allocation.Lines)
	}
	return resp, nil
}
