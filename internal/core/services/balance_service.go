package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService recomputes balances from the ledgers on every call. It never writes.
type balanceService struct {
	BaseService
	artistRepo   portsrepo.ArtistLedgerReader
	subLabelRepo portsrepo.SubLabelLedgerReader
}

// NewBalanceService creates the balance aggregator.
func NewBalanceService(artistRepo portsrepo.ArtistLedgerReader, subLabelRepo portsrepo.SubLabelLedgerReader) portssvc.BalanceSvcFacade {
	return &balanceService{
		artistRepo:   artistRepo,
		subLabelRepo: subLabelRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) ArtistBalance(ctx context.Context, tenantID, artistID string) (*domain.ArtistBalance, error) {
	totals, err := s.artistRepo.FindArtistLedgerTotals(ctx, tenantID, artistID)
	if err != nil {
		return nil, err
	}
	b := domain.NewArtistBalance(totals.Artist, totals.TotalRoyalties, totals.TotalPayments, totals.PaymentMethodCount)
	return &b, nil
}

// ListReadyArtists filters on computed readiness first, then on MinBalance, then sorts and pages.
func (s *balanceService) ListReadyArtists(ctx context.Context, tenantID string, q domain.PayoutQuery) (*domain.Page[domain.ArtistBalance], error) {
	q, err := normalizePayoutQuery(q)
	if err != nil {
		return nil, err
	}

	all, err := s.artistRepo.ListArtistLedgerTotals(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load artist ledger totals", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load artist balances: %w", err)
	}

	ready := make([]domain.ArtistBalance, 0, len(all))
	for _, t := range all {
		b := domain.NewArtistBalance(t.Artist, t.TotalRoyalties, t.TotalPayments, t.PaymentMethodCount)
		if !b.ReadyForPayout || !meetsMinBalance(b.Balance, q.MinBalance) {
			continue
		}
		ready = append(ready, b)
	}

	sortPayoutRows(ready, q, func(b domain.ArtistBalance) payoutSortKey {
		return payoutSortKey{id: b.ArtistID, name: b.Name, balance: b.Balance, createdAt: b.CreatedAt}
	})

	page := domain.Paginate(ready, q)
	s.LogDebug(ctx, "Ready artists computed",
		slog.Int("candidates", len(all)),
		slog.Int("ready", len(ready)))
	return &page, nil
}

func (s *balanceService) SubLabelBalance(ctx context.Context, parentTenantID, subLabelID string) (*domain.SubLabelBalance, error) {
	totals, err := s.subLabelRepo.FindSubLabelLedgerTotals(ctx, parentTenantID, subLabelID)
	if err != nil {
		return nil, err
	}
	b := domain.NewSubLabelBalance(totals.SubLabel, totals.Totals)
	return &b, nil
}

func (s *balanceService) ListReadySubLabels(ctx context.Context, parentTenantID string, q domain.PayoutQuery) (*domain.Page[domain.SubLabelBalance], error) {
	q, err := normalizePayoutQuery(q)
	if err != nil {
		return nil, err
	}

	all, err := s.subLabelRepo.ListSubLabelLedgerTotals(ctx, parentTenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sub-label ledger totals", slog.String("tenant_id", parentTenantID))
		return nil, fmt.Errorf("failed to load sub-label balances: %w", err)
	}

	ready := make([]domain.SubLabelBalance, 0, len(all))
	for _, t := range all {
		b := domain.NewSubLabelBalance(t.SubLabel, t.Totals)
		if !b.ReadyForPayout || !meetsMinBalance(b.Balance, q.MinBalance) {
			continue
		}
		ready = append(ready, b)
	}

	sortPayoutRows(ready, q, func(b domain.SubLabelBalance) payoutSortKey {
		return payoutSortKey{id: b.SubLabelID, name: b.Name, balance: b.Balance, createdAt: b.CreatedAt}
	})

	page := domain.Paginate(ready, q)
	return &page, nil
}

func normalizePayoutQuery(q domain.PayoutQuery) (domain.PayoutQuery, error) {
	field, err := domain.ParsePayoutSortField(string(q.SortBy))
	if err != nil {
		return q, apperrors.NewValidationError(err.Error())
	}
	q.SortBy = field
	return q.Normalize(), nil
}

// meetsMinBalance is inclusive: a balance equal to the minimum passes.
func meetsMinBalance(balance decimal.Decimal, minBalance *decimal.Decimal) bool {
	return minBalance == nil || balance.GreaterThanOrEqual(*minBalance)
}

type payoutSortKey struct {
	id        string
	name      string
	balance   decimal.Decimal
	createdAt time.Time
}

// sortPayoutRows orders by the requested field with the id as tie-breaker so pages are stable.
func sortPayoutRows[T any](rows []T, q domain.PayoutQuery, key func(T) payoutSortKey) {
	slices.SortStableFunc(rows, func(a, b T) int {
		ka, kb := key(a), key(b)
		var c int
		switch q.SortBy {
		case domain.SortByName:
			c = strings.Compare(strings.ToLower(ka.name), strings.ToLower(kb.name))
		case domain.SortByCreatedAt:
			c = ka.createdAt.Compare(kb.createdAt)
		default:
			c = ka.balance.Cmp(kb.balance)
		}
		if q.SortDesc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(ka.id, kb.id)
		}
		return c
	})
}
