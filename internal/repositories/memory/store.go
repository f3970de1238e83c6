// Package memory keeps the settlement ledgers in process memory. It backs dev mode
// (no PGSQL_URL) and the end-to-end service tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// EventSales are a sub-label's ticketing figures, owned by the events subsystem.
type EventSales struct {
	Gross        decimal.Decimal
	PlatformFees decimal.Decimal
}

// Store holds every ledger. Reads take the read lock; committed writes take the write lock.
type Store struct {
	mu sync.RWMutex

	releases     []domain.Release
	splits       map[string][]domain.ReleaseArtistSplit
	earnings     []domain.Earning
	expenses     []domain.RecuperableExpense
	royalties    []domain.Royalty
	artists      []domain.Artist
	payments     []domain.Payment
	methods      []domain.PaymentMethod
	subLabels    []domain.SubLabel
	eventSales   map[string]EventSales
	labelPayouts map[string]decimal.Decimal
	destinations map[string]int

	releaseLocks keyedMutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		splits:       make(map[string][]domain.ReleaseArtistSplit),
		eventSales:   make(map[string]EventSales),
		labelPayouts: make(map[string]decimal.Decimal),
		destinations: make(map[string]int),
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReleaseRepo:  s,
		EarningRepo:  s,
		ExpenseRepo:  s,
		RoyaltyRepo:  s,
		ArtistRepo:   s,
		SubLabelRepo: s,
		UnitOfWork:   s,
	}
}

var (
	_ portsrepo.ReleaseRepositoryFacade  = (*Store)(nil)
	_ portsrepo.EarningRepositoryFacade  = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade  = (*Store)(nil)
	_ portsrepo.RoyaltyRepositoryFacade  = (*Store)(nil)
	_ portsrepo.ArtistRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SubLabelRepositoryFacade = (*Store)(nil)
	_ portsrepo.SettlementUnitOfWork     = (*Store)(nil)
)

// --- seeding: catalog and payout configuration are owned by other subsystems ---

func (s *Store) AddRelease(r domain.Release) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases = append(s.releases, r)
}

func (s *Store) AddSplit(split domain.ReleaseArtistSplit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits[split.ReleaseID] = append(s.splits[split.ReleaseID], split)
}

func (s *Store) AddArtist(a domain.Artist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artists = append(s.artists, a)
}

func (s *Store) AddPayment(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
}

func (s *Store) AddPaymentMethod(m domain.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, m)
}

// AddRoyalty records a manually entered royalty.
func (s *Store) AddRoyalty(r domain.Royalty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.royalties = append(s.royalties, r)
}

// AddExpense seeds a ledger entry outside the settlement flow.
func (s *Store) AddExpense(e domain.RecuperableExpense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

func (s *Store) AddSubLabel(sl domain.SubLabel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subLabels = append(s.subLabels, sl)
}

func (s *Store) SetEventSales(subLabelID string, sales EventSales) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventSales[subLabelID] = sales
}

func (s *Store) AddLabelPayment(subLabelID string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labelPayouts[subLabelID] = s.labelPayouts[subLabelID].Add(amount)
}

func (s *Store) AddPayoutDestination(subLabelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destinations[subLabelID]++
}

// Royalties returns a copy of every royalty row, in insertion order.
func (s *Store) Royalties() []domain.Royalty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.royalties)
}

// Expenses returns a copy of the recoupable ledger for a release, in insertion order.
func (s *Store) Expenses(releaseID string) []domain.RecuperableExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RecuperableExpense
	for _, e := range s.expenses {
		if e.ReleaseID == releaseID {
			out = append(out, e)
		}
	}
	return out
}

// --- releases ---

func (s *Store) FindReleaseByID(_ context.Context, brandID, releaseID string) (*domain.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.releases {
		if r.ReleaseID == releaseID && r.BrandID == brandID {
			out := r
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("release %s not found", releaseID))
}

func (s *Store) ListReleasesByBrand(_ context.Context, brandID string) ([]domain.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Release{}
	for _, r := range s.releases {
		if r.BrandID == brandID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListSplitsByRelease(_ context.Context, releaseID string) ([]domain.ReleaseArtistSplit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.splits[releaseID]), nil
}

// --- earnings ---

func (s *Store) FindEarningByID(_ context.Context, brandID, earningID string) (*domain.Earning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.earnings {
		if e.EarningID == earningID && e.BrandID == brandID {
			out := e
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found", earningID))
}

func (s *Store) FinalizePlatformFee(_ context.Context, earningID string, fee decimal.Decimal, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.earnings {
		if s.earnings[i].EarningID != earningID {
			continue
		}
		if s.earnings[i].FeeFinalized() {
			return apperrors.NewConflictError(fmt.Sprintf("platform fee for earning %s already finalized", earningID))
		}
		finalizedAt := at
		s.earnings[i].PlatformFee = fee
		s.earnings[i].FeeFinalizedAt = &finalizedAt
		return nil
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found", earningID))
}

// --- recoupable ledger ---

func (s *Store) SumByRelease(_ context.Context, releaseID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sumExpenses(s.expenses, releaseID), nil
}

func (s *Store) SumRecoupedByEarning(_ context.Context, earningID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, e := range s.expenses {
		if e.EarningID != nil && *e.EarningID == earningID && e.IsRecoupment() {
			total = total.Add(e.Amount.Neg())
		}
	}
	return total, nil
}

func sumExpenses(entries []domain.RecuperableExpense, releaseID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.ReleaseID == releaseID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// --- royalties ---

func (s *Store) SumRoyaltiesByEarning(_ context.Context, earningID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, r := range s.royalties {
		if r.EarningID != nil && *r.EarningID == earningID {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}
