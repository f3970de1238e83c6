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

type royaltyAllocator struct {
	BaseService
}

// NewRoyaltyAllocator creates the distribution step used inside the settlement transaction.
func NewRoyaltyAllocator(options ...SettlementOption) portssvc.RoyaltyAllocator {
	a := &royaltyAllocator{}
	for _, option := range options {
		option(&a.BaseService)
	}
	return a
}

var _ portssvc.RoyaltyAllocator = (*royaltyAllocator)(nil)

// Distribute writes one royalty per artist with a positive percentage for the earning's category.
// Each share is rounded on its own; whatever the shares do not cover stays with the label,
// including rounding drift and any category outside the canonical set.
func (a *royaltyAllocator) Distribute(ctx context.Context, tx portsrepo.SettlementTx, earning domain.Earning, remaining decimal.Decimal) ([]domain.Royalty, error) {
	royalties := []domain.Royalty{}
	if !remaining.IsPositive() {
		return royalties, nil
	}

	if !earning.Category.IsRoyaltyBearing() {
		a.LogInfo(ctx, "Earning category carries no royalty percentages, label retains the remainder",
			slog.String("earning_id", earning.EarningID),
			slog.String("category", string(earning.Category)))
		return royalties, nil
	}

	splits, err := tx.Splits().ListSplitsByRelease(ctx, earning.ReleaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load artist splits: %w", err)
	}

	category := earning.Category.Normalize()
	now := a.Now()
	earningID := earning.EarningID
	for _, split := range splits {
		pct := split.PercentageFor(category)
		if !pct.IsPositive() {
			continue
		}

		royalty := domain.Royalty{
			RoyaltyID:    uuid.NewString(),
			ArtistID:     split.ArtistID,
			ReleaseID:    earning.ReleaseID,
			EarningID:    &earningID,
			Percentage:   pct,
			Amount:       domain.RoundMoney(remaining.Mul(pct)),
			Description:  fmt.Sprintf("%s royalty at %s%% of %s, after recoupment", category, pct.Shift(2).String(), remaining.StringFixed(2)),
			RecordedDate: earning.RecordedDate,
			AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: earning.CreatedBy},
		}
		if err := tx.Royalties().SaveRoyalty(ctx, royalty); err != nil {
			return nil, fmt.Errorf("failed to save royalty for artist %s: %w", split.ArtistID, err)
		}
		royalties = append(royalties, royalty)
	}

	return royalties, nil
}
