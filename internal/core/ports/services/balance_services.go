package services

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
)

// ArtistBalanceSvc computes artist balances from the royalty and payment ledgers.
type ArtistBalanceSvc interface {
	ArtistBalance(ctx context.Context, tenantID, artistID string) (*domain.ArtistBalance, error)
	ListReadyArtists(ctx context.Context, tenantID string, q domain.PayoutQuery) (*domain.Page[domain.ArtistBalance], error)
}

// SubLabelBalanceSvc computes sub-label balances for a parent tenant.
type SubLabelBalanceSvc interface {
	SubLabelBalance(ctx context.Context, parentTenantID, subLabelID string) (*domain.SubLabelBalance, error)
	ListReadySubLabels(ctx context.Context, parentTenantID string, q domain.PayoutQuery) (*domain.Page[domain.SubLabelBalance], error)
}

// BalanceSvcFacade combines the read-only balance aggregations.
type BalanceSvcFacade interface {
	ArtistBalanceSvc
	SubLabelBalanceSvc
}
