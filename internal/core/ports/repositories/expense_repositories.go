package repositories

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseReader reads the recoupable ledger without locking.
type ExpenseReader interface {
	// SumByRelease returns the raw (unclamped) sum of every entry for the release.
	SumByRelease(ctx context.Context, releaseID string) (decimal.Decimal, error)

	// SumRecoupedByEarning returns the positive amount an earning recouped, zero if none.
	SumRecoupedByEarning(ctx context.Context, earningID string) (decimal.Decimal, error)
}

// ExpenseLedger is the read-then-append view used under the release lock.
type ExpenseLedger interface {
	SumByRelease(ctx context.Context, releaseID string) (decimal.Decimal, error)
	SaveExpense(ctx context.Context, expense domain.RecuperableExpense) error
}

// ExpenseRepositoryFacade combines expense reads.
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
