package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recuperationWaterfall reduces a release's recoupable balance before any royalty is paid.
type recuperationWaterfall struct {
	BaseService
}

// NewRecuperationWaterfall creates the waterfall step used inside the settlement transaction.
func NewRecuperationWaterfall(options ...SettlementOption) portssvc.RecuperationWaterfall {
	w := &recuperationWaterfall{}
	for _, option := range options {
		option(&w.BaseService)
	}
	return w
}

var _ portssvc.RecuperationWaterfall = (*recuperationWaterfall)(nil)

// Apply recoups min(amount, balance) and returns what is left for royalties.
// A negative ledger sum is treated as a zero balance.
func (w *recuperationWaterfall) Apply(ctx context.Context, tx portsrepo.SettlementTx, releaseID, earningID string, category domain.EarningCategory, amount decimal.Decimal) (domain.WaterfallResult, error) {
	sum, err := tx.Expenses().SumByRelease(ctx, releaseID)
	if err != nil {
		return domain.WaterfallResult{}, fmt.Errorf("failed to read recoupable balance: %w", err)
	}

	current := domain.MaxZero(sum)
	if !current.IsPositive() {
		return domain.WaterfallResult{
			RecoupedAmount:         decimal.Zero,
			RemainingEarningAmount: amount,
			NewBalance:             decimal.Zero,
		}, nil
	}

	recouped := decimal.Min(amount, current)
	if recouped.IsPositive() {
		now := w.Now()
		entry := domain.RecuperableExpense{
			ExpenseID:    uuid.NewString(),
			ReleaseID:    releaseID,
			EarningID:    &earningID,
			Amount:       recouped.Neg(),
			Description:  fmt.Sprintf("Recouped from %s earning", category.Normalize()),
			RecordedDate: now,
			AuditFields:  domain.AuditFields{CreatedAt: now},
		}
		if err := tx.Expenses().SaveExpense(ctx, entry); err != nil {
			return domain.WaterfallResult{}, fmt.Errorf("failed to record recoupment: %w", err)
		}
		w.LogDebug(ctx, "Recoupment recorded",
			slog.String("release_id", releaseID),
			slog.String("earning_id", earningID),
			slog.String("recouped", recouped.StringFixed(2)))
	}

	return domain.WaterfallResult{
		RecoupedAmount:         recouped,
		RemainingEarningAmount: amount.Sub(recouped),
		NewBalance:             domain.MaxZero(current.Sub(recouped)),
	}, nil
}
