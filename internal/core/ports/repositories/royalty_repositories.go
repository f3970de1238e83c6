package repositories

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoyaltyReader reads royalty sums.
type RoyaltyReader interface {
	SumRoyaltiesByEarning(ctx context.Context, earningID string) (decimal.Decimal, error)
}

// RoyaltyTxWriter appends royalty rows inside a settlement transaction.
type RoyaltyTxWriter interface {
	SaveRoyalty(ctx context.Context, royalty domain.Royalty) error
}

// RoyaltyRepositoryFacade combines royalty reads.
type RoyaltyRepositoryFacade interface {
	RoyaltyReader
}
