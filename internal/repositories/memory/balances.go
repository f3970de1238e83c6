package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) FindArtistByID(_ context.Context, brandID, artistID string) (*domain.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.findArtist(brandID, artistID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("artist %s not found", artistID))
	}
	return &a, nil
}

func (s *Store) FindArtistLedgerTotals(_ context.Context, brandID, artistID string) (*domain.ArtistLedgerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.findArtist(brandID, artistID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("artist %s not found", artistID))
	}
	totals := s.artistTotals(a)
	return &totals, nil
}

func (s *Store) ListArtistLedgerTotals(_ context.Context, brandID string) ([]domain.ArtistLedgerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.ArtistLedgerTotals{}
	for _, a := range s.artists {
		if a.BrandID == brandID {
			out = append(out, s.artistTotals(a))
		}
	}
	return out, nil
}

func (s *Store) findArtist(brandID, artistID string) (domain.Artist, bool) {
	for _, a := range s.artists {
		if a.ArtistID == artistID && a.BrandID == brandID {
			return a, true
		}
	}
	return domain.Artist{}, false
}

// artistTotals must be called with the read lock held.
func (s *Store) artistTotals(a domain.Artist) domain.ArtistLedgerTotals {
	t := domain.ArtistLedgerTotals{Artist: a, TotalRoyalties: decimal.Zero, TotalPayments: decimal.Zero}
	for _, r := range s.royalties {
		if r.ArtistID == a.ArtistID {
			t.TotalRoyalties = t.TotalRoyalties.Add(r.Amount)
		}
	}
	for _, p := range s.payments {
		if p.ArtistID == a.ArtistID {
			t.TotalPayments = t.TotalPayments.Add(p.Amount)
		}
	}
	for _, m := range s.methods {
		if m.ArtistID == a.ArtistID {
			t.PaymentMethodCount++
		}
	}
	return t
}

func (s *Store) FindSubLabelLedgerTotals(_ context.Context, parentBrandID, subLabelID string) (*domain.SubLabelLedgerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.subLabels {
		if sl.SubLabelID == subLabelID && sl.ParentBrandID == parentBrandID {
			totals := s.subLabelTotals(sl)
			return &totals, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("sub-label %s not found", subLabelID))
}

func (s *Store) ListSubLabelLedgerTotals(_ context.Context, parentBrandID string) ([]domain.SubLabelLedgerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.SubLabelLedgerTotals{}
	for _, sl := range s.subLabels {
		if sl.ParentBrandID == parentBrandID {
			out = append(out, s.subLabelTotals(sl))
		}
	}
	return out, nil
}

// subLabelTotals aggregates every release the sub-label owns. Must be called with the read lock held.
func (s *Store) subLabelTotals(sl domain.SubLabel) domain.SubLabelLedgerTotals {
	owned := make(map[string]bool)
	for _, r := range s.releases {
		if r.BrandID == sl.SubLabelID {
			owned[r.ReleaseID] = true
		}
	}

	t := domain.SubLabelTotals{
		GrossMusicEarnings:     decimal.Zero,
		RoyaltiesPaid:          decimal.Zero,
		PlatformFees:           decimal.Zero,
		EventGrossSales:        s.eventSales[sl.SubLabelID].Gross,
		EventPlatformFees:      s.eventSales[sl.SubLabelID].PlatformFees,
		LabelPaymentsReceived:  s.labelPayouts[sl.SubLabelID],
		PayoutDestinationCount: s.destinations[sl.SubLabelID],
	}
	for _, e := range s.earnings {
		if owned[e.ReleaseID] {
			t.GrossMusicEarnings = t.GrossMusicEarnings.Add(e.Amount)
			t.PlatformFees = t.PlatformFees.Add(e.PlatformFee)
		}
	}
	for _, r := range s.royalties {
		if owned[r.ReleaseID] {
			t.RoyaltiesPaid = t.RoyaltiesPaid.Add(r.Amount)
		}
	}
	return domain.SubLabelLedgerTotals{SubLabel: sl, Totals: t}
}
