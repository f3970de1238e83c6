package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// keyedMutex hands out one mutex per key. Entries are never removed; the key space is the release catalog.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// WithinReleaseLock stages fn's writes and applies them only if fn succeeds.
func (s *Store) WithinReleaseLock(ctx context.Context, releaseID string, fn func(ctx context.Context, tx portsrepo.SettlementTx) error) error {
	lock := s.releaseLocks.get(releaseID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

func (s *Store) commit(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range tx.earnings {
		if tx.allocated[e.EarningID] {
			e.Allocated = true
		}
		s.earnings = append(s.earnings, e)
	}
	s.expenses = append(s.expenses, tx.expenses...)
	s.royalties = append(s.royalties, tx.royalties...)
}

// memTx buffers writes until commit. Reads see committed data plus the buffer.
type memTx struct {
	store     *Store
	earnings  []domain.Earning
	allocated map[string]bool
	expenses  []domain.RecuperableExpense
	royalties []domain.Royalty
}

var (
	_ portsrepo.SettlementTx    = (*memTx)(nil)
	_ portsrepo.EarningTxWriter = (*memTx)(nil)
	_ portsrepo.ExpenseLedger   = (*memTx)(nil)
	_ portsrepo.RoyaltyTxWriter = (*memTx)(nil)
	_ portsrepo.SplitReader     = (*memTx)(nil)
)

func (t *memTx) Earnings() portsrepo.EarningTxWriter {
	return t
}

func (t *memTx) Expenses() portsrepo.ExpenseLedger {
	return t
}

func (t *memTx) Royalties() portsrepo.RoyaltyTxWriter {
	return t
}

func (t *memTx) Splits() portsrepo.SplitReader {
	return t
}

func (t *memTx) SaveEarning(_ context.Context, earning domain.Earning) error {
	t.earnings = append(t.earnings, earning)
	return nil
}

func (t *memTx) MarkAllocated(_ context.Context, earningID string) error {
	for _, e := range t.earnings {
		if e.EarningID == earningID {
			if t.allocated == nil {
				t.allocated = make(map[string]bool)
			}
			t.allocated[earningID] = true
			return nil
		}
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found in transaction", earningID))
}

func (t *memTx) SumByRelease(ctx context.Context, releaseID string) (decimal.Decimal, error) {
	committed, err := t.store.SumByRelease(ctx, releaseID)
	if err != nil {
		return decimal.Zero, err
	}
	return committed.Add(sumExpenses(t.expenses, releaseID)), nil
}

func (t *memTx) SaveExpense(_ context.Context, expense domain.RecuperableExpense) error {
	t.expenses = append(t.expenses, expense)
	return nil
}

func (t *memTx) SaveRoyalty(_ context.Context, royalty domain.Royalty) error {
	t.royalties = append(t.royalties, royalty)
	return nil
}

func (t *memTx) ListSplitsByRelease(ctx context.Context, releaseID string) ([]domain.ReleaseArtistSplit, error) {
	return t.store.ListSplitsByRelease(ctx, releaseID)
}
