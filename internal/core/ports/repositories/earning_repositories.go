package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EarningReader defines read operations for earnings.
type EarningReader interface {
	// FindEarningByID returns apperrors.ErrNotFound if the earning does not exist within brandID.
	FindEarningByID(ctx context.Context, brandID, earningID string) (*domain.Earning, error)
}

// EarningFeeWriter sets the platform fee. This is the only update an earning ever receives.
type EarningFeeWriter interface {
	// FinalizePlatformFee returns apperrors.ErrConflict if the fee was already finalized.
	FinalizePlatformFee(ctx context.Context, earningID string, fee decimal.Decimal, at time.Time) error
}

// EarningTxWriter writes earnings inside a settlement transaction.
type EarningTxWriter interface {
	SaveEarning(ctx context.Context, earning domain.Earning) error
	MarkAllocated(ctx context.Context, earningID string) error
}

// EarningRepositoryFacade combines earning operations available outside a settlement transaction.
type EarningRepositoryFacade interface {
	EarningReader
	EarningFeeWriter
}
