package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/royalty_settlement_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	db querier
}

func newPgxExpenseRepository(db querier) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{db: db}
}

var (
	_ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)
	_ portsrepo.ExpenseLedger           = (*PgxExpenseRepository)(nil)
)

func (r *PgxExpenseRepository) SumByRelease(ctx context.Context, releaseID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM recuperable_expenses WHERE release_id = $1;`
	if err := r.db.QueryRow(ctx, query, releaseID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum recuperable expenses for release %s: %w", releaseID, err)
	}
	return sum, nil
}

// SumRecoupedByEarning returns the recoupment entries of one earning as a positive amount.
func (r *PgxExpenseRepository) SumRecoupedByEarning(ctx context.Context, earningID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(-SUM(amount), 0) FROM recuperable_expenses WHERE earning_id = $1 AND amount < 0;`
	if err := r.db.QueryRow(ctx, query, earningID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum recoupment for earning %s: %w", earningID, err)
	}
	return sum, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.RecuperableExpense) error {
	m := mapping.ToModelRecuperableExpense(expense)
	query := `
		INSERT INTO recuperable_expenses (expense_id, release_id, earning_id, amount, description, recorded_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.ReleaseID, m.EarningID, m.Amount, m.Description, m.RecordedDate, m.CreatedAt, m.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to save recuperable expense %s: %w", m.ExpenseID, err)
	}
	return nil
}
