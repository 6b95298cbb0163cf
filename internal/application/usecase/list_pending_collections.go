package usecase

import (
	"context"
	"fmt"

	"github.com/Madhuarvind/ak-finserv/internal/application/dto"
	"github.com/Madhuarvind/ak-finserv/internal/domain/port"
)

const defaultReviewQueueLimit = 50

// ListPendingCollectionsUseCase pages the manager's review queue: every
// collection sitting in PENDING or FLAGGED status, oldest first.
type ListPendingCollectionsUseCase struct {
	collections port.CollectionRepository
}

// NewListPendingCollectionsUseCase wires dependencies.
func NewListPendingCollectionsUseCase(collections port.CollectionRepository) *ListPendingCollectionsUseCase {
	return &ListPendingCollectionsUseCase{collections: collections}
}

// Execute returns the review queue.
func (uc *ListPendingCollectionsUseCase) Execute(ctx context.Context, req dto.ListPendingCollectionsRequest) (dto.PendingCollectionsResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = defaultReviewQueueLimit
	}

	items, err := uc.collections.ListPendingReview(ctx, limit)
	if err != nil {
		return dto.PendingCollectionsResponse{}, fmt.Errorf("list pending collections: %w", err)
	}

	resp := dto.PendingCollectionsResponse{
		Collections: make([]dto.CollectionResponse, 0, len(items)),
	}
	for _, c := range items {
		resp.Collections = append(resp.Collections, toCollectionResponse(c))
	}
	return resp, nil
}
