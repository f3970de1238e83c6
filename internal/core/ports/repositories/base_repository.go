package repositories

import (
	"context"
)

// SettlementTx exposes the repositories that take part in one release-scoped write.
// Everything written through it commits or rolls back together.
type SettlementTx interface {
	Earnings() EarningTxWriter
	Expenses() ExpenseLedger
	Royalties() RoyaltyTxWriter
	Splits() SplitReader
}

// SettlementUnitOfWork serializes writes per release.
type SettlementUnitOfWork interface {
	// WithinReleaseLock runs fn in a single transaction holding an exclusive lock on releaseID.
	// If fn returns an error the transaction is rolled back and the error returned unchanged.
	WithinReleaseLock(ctx context.Context, releaseID string, fn func(ctx context.Context, tx SettlementTx) error) error
}
