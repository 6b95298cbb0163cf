package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/event"
	"github.com/Madhuarvind/ak-finserv/internal/domain/model"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
	"github.com/Madhuarvind/ak-finserv/internal/domain/valueobject"
)

// ReviewCollectionUseCase resolves a pending or flagged collection by a
// human decision. Reviews are idempotent; resolving an already resolved
// collection reports the prior outcome instead of failing.
type ReviewCollectionUseCase struct {
	collections port.CollectionRepository
	scopes      port.LoanScopeRunner
	publisher   port.EventPublisher
}

// NewReviewCollectionUseCase wires dependencies.
func NewReviewCollectionUseCase(
	collections port.CollectionRepository,
	scopes port.LoanScopeRunner,
	publisher port.EventPublisher,
) *ReviewCollectionUseCase {
	return &ReviewCollectionUseCase{
		collections: collections,
		scopes:      scopes,
		publisher:   publisher,
	}
}

// Execute applies the reviewer's decision. On approval the payment is
// allocated across the loan's schedule inside the loan's exclusive scope.
func (uc *ReviewCollectionUseCase) Execute(ctx context.Context, req dto.ReviewCollectionRequest) (dto.ReviewCollectionResponse, error) {
	now := time.Now().UTC()

	collectionID, err := uuid.Parse(req.CollectionID)
	if err != nil {
		return dto.ReviewCollectionResponse{}, fmt.Errorf("%w: invalid collection ID", ErrBadRequest)
	}
	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		return dto.ReviewCollectionResponse{}, fmt.Errorf("%w: invalid reviewer ID", ErrBadRequest)
	}

	// The loan ID is needed to open the scope; the authoritative re-read
	// happens under the lock.
	peek, err := uc.collections.FindByID(ctx, collectionID)
	if err != nil {
		return dto.ReviewCollectionResponse{}, fmt.Errorf("find collection: %w", err)
	}
	loanID := peek.LoanID()

	var (
		collection  model.CollectionEvent
		loan        model.Loan
		allocation  model.AllocationResult
		allocated   bool
		alreadyDone bool
		pending     []event.DomainEvent
	)

	err = uc.scopes.InLoanScope(ctx, loanID, func(scope port.LoanScope) error {
		collection, err = scope.CollectionForUpdate(ctx, collectionID)
		if err != nil {
			return fmt.Errorf("lock collection: %w", err)
		}
		loan, err = scope.Loan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		if collection.Status().IsTerminal() {
			alreadyDone = true
			return nil
		}

		collection, err = collection.Review(req.Approve, reviewerID, req.Remarks, now)
		if err != nil {
			return fmt.Errorf("review collection: %w", err)
		}
		if err := scope.UpdateCollection(ctx, collection); err != nil {
			return fmt.Errorf("update collection: %w", err)
		}

		action := model.AuditCollectionRejected
		if req.Approve {
			action = model.AuditCollectionApproved
		}
		details := fmt.Sprintf("reviewed by %s", reviewerID)
		if req.Remarks != "" {
			details += ": " + req.Remarks
		}
		if err := scope.AppendAudit(ctx, model.NewCollectionAuditRecord(
			loanID, collectionID, reviewerID, action, details, now)); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}

		if req.Approve {
			if !loan.Status().Equal(valueobject.LoanStatusActive) {
				return model.ErrLoanNotActive
			}
			entries, err := scope.UnpaidEntries(ctx, loanID)
			if err != nil {
				return fmt.Errorf("load unpaid entries: %w", err)
			}
			allocation = model.Allocate(entries, collection.Amount())
			allocated = true

			if err := scope.SaveEntries(ctx, allocation.Entries); err != nil {
				return fmt.Errorf("save entries: %w", err)
			}
			loan, err = loan.ApplyAllocation(allocation, now)
			if err != nil {
				return fmt.Errorf("apply allocation: %w", err)
			}
			if err := scope.SaveLoan(ctx, loan); err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
			if allocation.Closed {
				if err := scope.AppendAudit(ctx, model.NewAuditRecord(
					loanID, reviewerID, model.AuditLoanClosed, allocation.Summary, now)); err != nil {
					return fmt.Errorf("append audit: %w", err)
				}
			}
		}

		pending = append(pending, collection.DomainEvents()...)
		pending = append(pending, loan.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.ReviewCollectionResponse{}, err
	}

	if !alreadyDone {
		if err := uc.publisher.Publish(ctx, pending...); err != nil {
			return dto.ReviewCollectionResponse{}, fmt.Errorf("publish events: %w", err)
		}
	}

	resp := dto.ReviewCollectionResponse{
		Collection:  toCollectionResponse(collection),
		LoanStatus:  loan.Status().String(),
		LoanPending: loan.PendingAmount(),
		AlreadyDone: alreadyDone,
	}
	if allocated {
		resp.Allocation = toAllocationLines(allocation.Lines)
	}
	return resp, nil
}
