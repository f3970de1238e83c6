package services

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RecuperationWaterfall applies incoming revenue to a release's recoupable balance.
// Apply is not idempotent; callers invoke it at most once per earning, inside the release lock.
type RecuperationWaterfall interface {
	Apply(ctx context.Context, tx repositories.SettlementTx, releaseID, earningID string, category domain.EarningCategory, amount decimal.Decimal) (domain.WaterfallResult, error)
}

// RoyaltyAllocator splits a waterfall remainder across the release's artists.
type RoyaltyAllocator interface {
	Distribute(ctx context.Context, tx repositories.SettlementTx, earning domain.Earning, remaining decimal.Decimal) ([]domain.Royalty, error)
}

// RecuperableReaderSvc reports the recoupable balance.
type RecuperableReaderSvc interface {
	CurrentBalance(ctx context.Context, tenantID, releaseID string) (decimal.Decimal, error)
}

// RecuperableWriterSvc records new recoupable expenses.
type RecuperableWriterSvc interface {
	RecordExpense(ctx context.Context, tenantID, releaseID string, amount decimal.Decimal, description, userID string) (*domain.RecuperableExpense, error)
}

// RecuperableSvcFacade combines the recoupable ledger operations.
type RecuperableSvcFacade interface {
	RecuperableReaderSvc
	RecuperableWriterSvc
}
