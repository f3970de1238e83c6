package services

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
)

// EarningIngestorSvc records single earnings and drives the settlement pipeline.
type EarningIngestorSvc interface {
	// IngestEarning validates and persists one earning. When req.RunAllocation is set the
	// waterfall and royalty distribution run in the same transaction, then the platform fee
	// is finalized. A fee hook failure returns the committed result together with an error
	// matching apperrors.ErrDependencyFailure.
	IngestEarning(ctx context.Context, tenantID, releaseID string, req dto.IngestEarningRequest, userID string) (*domain.IngestEarningResult, error)
}

// PlatformFeeRetrySvc finalizes a fee that was left pending.
type PlatformFeeRetrySvc interface {
	// RetryPlatformFee recomputes the fee from the ledger without re-running allocation.
	RetryPlatformFee(ctx context.Context, tenantID, earningID string) (*domain.IngestEarningResult, error)
}

// EarningSvcFacade combines all earning-related service interfaces.
type EarningSvcFacade interface {
	EarningIngestorSvc
	PlatformFeeRetrySvc
}
