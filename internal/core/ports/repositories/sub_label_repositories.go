package repositories

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
)

// SubLabelLedgerReader aggregates a sub-label's music and event ledgers.
// Sub-labels are addressed through their parent tenant.
type SubLabelLedgerReader interface {
	// FindSubLabelLedgerTotals returns apperrors.ErrNotFound if subLabelID is not a child of parentBrandID.
	FindSubLabelLedgerTotals(ctx context.Context, parentBrandID, subLabelID string) (*domain.SubLabelLedgerTotals, error)

	ListSubLabelLedgerTotals(ctx context.Context, parentBrandID string) ([]domain.SubLabelLedgerTotals, error)
}

// SubLabelRepositoryFacade combines sub-label reads.
type SubLabelRepositoryFacade interface {
	SubLabelLedgerReader
}
