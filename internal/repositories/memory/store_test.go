package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWithinReleaseLock_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.AddRelease(domain.Release{ReleaseID: "r1", BrandID: "b1"})
	s.AddExpense(domain.RecuperableExpense{ReleaseID: "r1", Amount: dec("200")})

	boom := errors.New("allocation failed")
	err := s.WithinReleaseLock(ctx, "r1", func(ctx context.Context, tx portsrepo.SettlementTx) error {
		require.NoError(t, tx.Earnings().SaveEarning(ctx, domain.Earning{EarningID: "e1", BrandID: "b1", ReleaseID: "r1"}))
		require.NoError(t, tx.Expenses().SaveExpense(ctx, domain.RecuperableExpense{ReleaseID: "r1", Amount: dec("-200")}))

		inTx, err := tx.Expenses().SumByRelease(ctx, "r1")
		require.NoError(t, err)
		assert.True(t, inTx.IsZero(), "transaction sees its own writes")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sum, err := s.SumByRelease(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(sum))

	_, err = s.FindEarningByID(ctx, "b1", "e1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFinalizePlatformFee_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	err := s.WithinReleaseLock(ctx, "r1", func(ctx context.Context, tx portsrepo.SettlementTx) error {
		return tx.Earnings().SaveEarning(ctx, domain.Earning{EarningID: "e1", BrandID: "b1", ReleaseID: "r1"})
	})
	require.NoError(t, err)

	require.NoError(t, s.FinalizePlatformFee(ctx, "e1", dec("1.50"), time.Now()))
	err = s.FinalizePlatformFee(ctx, "e1", dec("2.00"), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	e, err := s.FindEarningByID(ctx, "b1", "e1")
	require.NoError(t, err)
	assert.True(t, dec("1.50").Equal(e.PlatformFee))

	assert.ErrorIs(t, s.FinalizePlatformFee(ctx, "missing", dec("1"), time.Now()), apperrors.ErrNotFound)
}

func TestFindRelease_TenantScoped(t *testing.T) {
	s := memory.NewStore()
	s.AddRelease(domain.Release{ReleaseID: "r1", BrandID: "b1"})

	_, err := s.FindReleaseByID(context.Background(), "b2", "r1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubLabelTotals(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.AddSubLabel(domain.SubLabel{SubLabelID: "sl1", ParentBrandID: "parent"})
	s.AddRelease(domain.Release{ReleaseID: "r1", BrandID: "sl1"})
	s.AddRoyalty(domain.Royalty{ArtistID: "a1", ReleaseID: "r1", Amount: dec("60")})
	s.SetEventSales("sl1", memory.EventSales{Gross: dec("50"), PlatformFees: dec("5")})
	s.AddLabelPayment("sl1", dec("10"))
	s.AddPayoutDestination("sl1")
	require.NoError(t, s.WithinReleaseLock(ctx, "r1", func(ctx context.Context, tx portsrepo.SettlementTx) error {
		return tx.Earnings().SaveEarning(ctx, domain.Earning{EarningID: "e1", BrandID: "sl1", ReleaseID: "r1", Amount: dec("100")})
	}))

	got, err := s.FindSubLabelLedgerTotals(ctx, "parent", "sl1")
	require.NoError(t, err)
	assert.True(t, dec("75").Equal(got.Totals.Balance()), "got %s", got.Totals.Balance())
	assert.Equal(t, 1, got.Totals.PayoutDestinationCount)

	_, err = s.FindSubLabelLedgerTotals(ctx, "someone-else", "sl1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
