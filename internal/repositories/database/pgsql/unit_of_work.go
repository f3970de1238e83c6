package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork serializes release writes with a transaction-scoped advisory lock.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.SettlementUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementUnitOfWork = (*PgxUnitOfWork)(nil)

// WithinReleaseLock begins a transaction, takes pg_advisory_xact_lock on the release and runs fn.
// The lock is released by Postgres when the transaction ends.
func (u *PgxUnitOfWork) WithinReleaseLock(ctx context.Context, releaseID string, fn func(ctx context.Context, tx portsrepo.SettlementTx) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer u.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, releaseID); err != nil {
		return fmt.Errorf("failed to lock release %s: %w", releaseID, err)
	}

	if err := fn(ctx, &pgxSettlementTx{tx: tx}); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}

// pgxSettlementTx hands out repositories bound to one pgx.Tx.
type pgxSettlementTx struct {
	tx pgx.Tx
}

var _ portsrepo.SettlementTx = (*pgxSettlementTx)(nil)

func (t *pgxSettlementTx) Earnings() portsrepo.EarningTxWriter {
	return &PgxEarningRepository{db: t.tx}
}

func (t *pgxSettlementTx) Expenses() portsrepo.ExpenseLedger {
	return &PgxExpenseRepository{db: t.tx}
}

func (t *pgxSettlementTx) Royalties() portsrepo.RoyaltyTxWriter {
	return &PgxRoyaltyRepository{db: t.tx}
}

func (t *pgxSettlementTx) Splits() portsrepo.SplitReader {
	return &PgxReleaseRepository{db: t.tx}
}
