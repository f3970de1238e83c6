package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/core/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	brandID   = "brand-1"
	releaseID = "rel-R"
	artistA   = "art-A"
	artistZ   = "art-Z"
	userID    = "user-1"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// seedReleaseR builds release R: artist A at 50% streaming, artist Z at 30% streaming,
// with a recoupable balance of advance.
func seedReleaseR(s *memory.Store, advance string) {
	s.AddRelease(domain.Release{ReleaseID: releaseID, BrandID: brandID, CatalogNumber: "CAT-001", Title: "Night Drive"})
	s.AddArtist(domain.Artist{ArtistID: artistA, BrandID: brandID, Name: "Ada", Email: "ada@example.com"})
	s.AddArtist(domain.Artist{ArtistID: artistZ, BrandID: brandID, Name: "Zed"})
	s.AddSplit(domain.ReleaseArtistSplit{ReleaseID: releaseID, ArtistID: artistA, StreamingPercentage: dec("0.5"), SyncPercentage: dec("0.25"), StreamingType: domain.RoyaltyTypeRevenue})
	s.AddSplit(domain.ReleaseArtistSplit{ReleaseID: releaseID, ArtistID: artistZ, StreamingPercentage: dec("0.3")})
	if advance != "" {
		s.AddExpense(domain.RecuperableExpense{ExpenseID: "adv-1", ReleaseID: releaseID, Amount: dec(advance), Description: "Advance", RecordedDate: fixedNow})
	}
}

type EarningServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	feeHook    *MockFeeHook
	dispatcher *recordingDispatcher
	service    portssvc.EarningSvcFacade
}

func (suite *EarningServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.feeHook = new(MockFeeHook)
	suite.dispatcher = &recordingDispatcher{}

	clock := services.WithClock(func() time.Time { return fixedNow })
	suite.service = services.NewEarningService(
		memory.NewRepositoryProvider(suite.store),
		services.NewRecuperationWaterfall(clock),
		services.NewRoyaltyAllocator(clock),
		services.WithPlatformFeeHook(suite.feeHook),
		services.WithNotificationDispatcher(suite.dispatcher),
		services.WithEarningClock(func() time.Time { return fixedNow }),
	)
}

func (suite *EarningServiceTestSuite) ingest(amount, category string, allocate bool) (*domain.IngestEarningResult, error) {
	return suite.service.IngestEarning(suite.ctx, brandID, releaseID, dto.IngestEarningRequest{
		Category:      category,
		Amount:        decPtr(amount),
		RecordedDate:  "2024-03-01",
		RunAllocation: allocate,
	}, userID)
}

func (suite *EarningServiceTestSuite) royaltiesByArtist() map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, r := range suite.store.Royalties() {
		out[r.ArtistID] = out[r.ArtistID].Add(r.Amount)
	}
	return out
}

func (suite *EarningServiceTestSuite) recuperableBalance() decimal.Decimal {
	sum, err := suite.store.SumByRelease(suite.ctx, releaseID)
	suite.Require().NoError(err)
	return domain.MaxZero(sum)
}

// Earning larger than the balance: recoup everything, distribute the rest.
func (suite *EarningServiceTestSuite) TestEndToEnd_EarningExceedsAdvance() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.MatchedBy(dec("160.00").Equal)).
		Return(dec("16.00"), nil).Once()

	result, err := suite.ingest("1000.00", "Streaming", true)
	suite.Require().NoError(err)

	entries := suite.store.Expenses(releaseID)
	suite.Require().Len(entries, 2)
	recoup := entries[1]
	suite.True(dec("-200.00").Equal(recoup.Amount))
	suite.Require().NotNil(recoup.EarningID)
	suite.Equal(result.Earning.EarningID, *recoup.EarningID)

	suite.True(dec("200.00").Equal(result.Allocation.RecoupedAmount))
	suite.True(result.Allocation.RemainingRecuperableBalance.IsZero())
	suite.True(dec("640.00").Equal(result.Allocation.TotalRoyalties))

	byArtist := suite.royaltiesByArtist()
	suite.Len(byArtist, 2)
	suite.True(dec("400.00").Equal(byArtist[artistA]))
	suite.True(dec("240.00").Equal(byArtist[artistZ]))

	suite.Equal(domain.FeeStatusFinalized, result.FeeStatus)
	suite.True(dec("16.00").Equal(result.Earning.PlatformFee))
	stored, err := suite.store.FindEarningByID(suite.ctx, brandID, result.Earning.EarningID)
	suite.Require().NoError(err)
	suite.True(stored.Allocated)
	suite.True(stored.FeeFinalized())

	// Only Ada has an email on file.
	sent := suite.dispatcher.Sent()
	suite.Require().Len(sent, 1)
	suite.Equal([]string{"ada@example.com"}, sent[0].Recipients)
	suite.True(dec("400.00").Equal(sent[0].RoyaltyAmount))
	suite.feeHook.AssertExpectations(suite.T())
}

// Earning smaller than the balance: all of it recoups, no royalties.
func (suite *EarningServiceTestSuite) TestEndToEnd_EarningWithinAdvance() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.MatchedBy(decimal.Decimal.IsZero)).
		Return(decimal.Zero, nil).Once()

	result, err := suite.ingest("150.00", "Streaming", true)
	suite.Require().NoError(err)

	entries := suite.store.Expenses(releaseID)
	suite.Require().Len(entries, 2)
	suite.True(dec("-150.00").Equal(entries[1].Amount))
	suite.True(dec("50.00").Equal(suite.recuperableBalance()))
	suite.True(dec("50.00").Equal(result.Allocation.RemainingRecuperableBalance))
	suite.Empty(suite.store.Royalties())
	suite.Empty(result.Allocation.Royalties)
	suite.Empty(suite.dispatcher.Sent())
}

func (suite *EarningServiceTestSuite) TestWaterfall_BoundaryEqualToBalance() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	_, err := suite.ingest("200.00", "Streaming", true)
	suite.Require().NoError(err)
	suite.True(suite.recuperableBalance().IsZero())
	suite.Empty(suite.store.Royalties())

	// The next earning finds nothing left to recoup.
	result, err := suite.ingest("10.00", "Streaming", true)
	suite.Require().NoError(err)
	suite.True(result.Allocation.RecoupedAmount.IsZero())
	suite.Len(suite.store.Expenses(releaseID), 2)
	suite.True(dec("8.00").Equal(result.Allocation.TotalRoyalties))
}

func (suite *EarningServiceTestSuite) TestAllocation_UnrecognizedCategoryCreatesNoRoyalties() {
	seedReleaseR(suite.store, "")
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(dec("500.00").Equal)).Return(decimal.Zero, nil)

	result, err := suite.ingest("500.00", "Merchandise", true)
	suite.Require().NoError(err)
	suite.Empty(result.Allocation.Royalties)
	suite.Empty(suite.store.Royalties())
	suite.Equal(domain.FeeStatusFinalized, result.FeeStatus)
}

func (suite *EarningServiceTestSuite) TestAllocation_RoundsEachShareIndependently() {
	s := suite.store
	s.AddRelease(domain.Release{ReleaseID: releaseID, BrandID: brandID, Title: "Thirds"})
	for _, id := range []string{"a1", "a2", "a3"} {
		s.AddArtist(domain.Artist{ArtistID: id, BrandID: brandID, Name: id})
		s.AddSplit(domain.ReleaseArtistSplit{ReleaseID: releaseID, ArtistID: id, StreamingPercentage: dec("0.333333")})
	}
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	result, err := suite.ingest("100.00", "Streaming", true)
	suite.Require().NoError(err)
	suite.Require().Len(result.Allocation.Royalties, 3)
	for _, r := range result.Allocation.Royalties {
		suite.True(dec("33.33").Equal(r.Amount), r.Amount.String())
	}
	// The 0.01 drift stays with the label.
	suite.True(dec("99.99").Equal(result.Allocation.TotalRoyalties))
}

func (suite *EarningServiceTestSuite) TestIngest_WithoutAllocation() {
	seedReleaseR(suite.store, "200.00")

	result, err := suite.ingest("75.00", "Streaming", false)
	suite.Require().NoError(err)
	suite.Nil(result.Allocation)
	suite.Equal(domain.FeeStatusNotApplicable, result.FeeStatus)
	suite.True(dec("200.00").Equal(suite.recuperableBalance()))
	suite.Empty(suite.store.Royalties())
	suite.feeHook.AssertNotCalled(suite.T(), "ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EarningServiceTestSuite) TestIngest_ValidationHappensBeforeAnyWrite() {
	seedReleaseR(suite.store, "200.00")

	cases := []dto.IngestEarningRequest{
		{Category: "Streaming", Amount: decPtr("-1.00"), RecordedDate: "2024-03-01"},
		{Category: "Streaming", Amount: decPtr("1.005"), RecordedDate: "2024-03-01"},
		{Category: "Streaming", RecordedDate: "2024-03-01"},
		{Category: "  ", Amount: decPtr("1.00"), RecordedDate: "2024-03-01"},
		{Category: "Streaming", Amount: decPtr("1.00"), RecordedDate: "yesterday"},
	}
	for _, req := range cases {
		_, err := suite.service.IngestEarning(suite.ctx, brandID, releaseID, req, userID)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.Len(suite.store.Expenses(releaseID), 1)
}

func (suite *EarningServiceTestSuite) TestIngest_OtherTenantsReleaseIsNotFound() {
	seedReleaseR(suite.store, "200.00")

	_, err := suite.service.IngestEarning(suite.ctx, "brand-2", releaseID, dto.IngestEarningRequest{
		Category: "Streaming", Amount: decPtr("10.00"), RecordedDate: "2024-03-01", RunAllocation: true,
	}, userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Len(suite.store.Expenses(releaseID), 1)
}

func (suite *EarningServiceTestSuite) TestFeeHookFailure_LeavesFeePendingThenRetry() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.Anything).
		Return(decimal.Zero, errors.New("fee service timeout")).Once()

	result, err := suite.ingest("1000.00", "Streaming", true)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDependencyFailure)
	suite.Require().NotNil(result)
	suite.Equal(domain.FeeStatusPending, result.FeeStatus)
	suite.Len(suite.store.Royalties(), 2, "the ledger write is not rolled back")

	// Retry recomputes net from the ledger: 1000 - 200 - 640.
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.MatchedBy(dec("1000.00").Equal), mock.MatchedBy(dec("160.00").Equal)).
		Return(dec("16.004"), nil).Once()
	retried, err := suite.service.RetryPlatformFee(suite.ctx, brandID, result.Earning.EarningID)
	suite.Require().NoError(err)
	suite.Equal(domain.FeeStatusFinalized, retried.FeeStatus)
	suite.True(dec("16.00").Equal(retried.Earning.PlatformFee))
	suite.Len(suite.store.Royalties(), 2, "retry never re-runs distribution")
	suite.Len(suite.store.Expenses(releaseID), 2, "retry never re-runs recoupment")

	_, err = suite.service.RetryPlatformFee(suite.ctx, brandID, result.Earning.EarningID)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.feeHook.AssertExpectations(suite.T())
}

func (suite *EarningServiceTestSuite) TestRetryPlatformFee_RequiresAllocation() {
	seedReleaseR(suite.store, "")
	result, err := suite.ingest("10.00", "Streaming", false)
	suite.Require().NoError(err)

	_, err = suite.service.RetryPlatformFee(suite.ctx, brandID, result.Earning.EarningID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RetryPlatformFee(suite.ctx, "brand-2", result.Earning.EarningID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EarningServiceTestSuite) TestNegativeFeeIsRejected() {
	seedReleaseR(suite.store, "")
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(dec("-1.00"), nil).Once()

	result, err := suite.ingest("10.00", "Streaming", true)
	suite.ErrorIs(err, apperrors.ErrDependencyFailure)
	suite.ErrorIs(err, services.ErrNegativeFee)
	suite.Equal(domain.FeeStatusPending, result.FeeStatus)
}

// failingFeeStore fails FinalizePlatformFee while err is set.
type failingFeeStore struct {
	portsrepo.EarningRepositoryFacade
	mu  sync.Mutex
	err error
}

func (f *failingFeeStore) FinalizePlatformFee(ctx context.Context, earningID string, fee decimal.Decimal, at time.Time) error {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.EarningRepositoryFacade.FinalizePlatformFee(ctx, earningID, fee, at)
}

func (f *failingFeeStore) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = nil
}

// failingBalanceReader fails SumByRelease on the read path.
type failingBalanceReader struct {
	portsrepo.ExpenseRepositoryFacade
}

func (failingBalanceReader) SumByRelease(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("replica unavailable")
}

func (suite *EarningServiceTestSuite) TestFeeStoreFailure_IsReportedAsPendingThenRetry() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.Anything).Return(dec("16.00"), nil)

	storeErr := errors.New("connection reset by peer")
	repos := memory.NewRepositoryProvider(suite.store)
	feeStore := &failingFeeStore{EarningRepositoryFacade: repos.EarningRepo, err: storeErr}
	repos.EarningRepo = feeStore
	clock := services.WithClock(func() time.Time { return fixedNow })
	service := services.NewEarningService(repos,
		services.NewRecuperationWaterfall(clock),
		services.NewRoyaltyAllocator(clock),
		services.WithPlatformFeeHook(suite.feeHook),
		services.WithEarningClock(func() time.Time { return fixedNow }),
	)

	result, err := service.IngestEarning(suite.ctx, brandID, releaseID, dto.IngestEarningRequest{
		Category: "Streaming", Amount: decPtr("1000.00"), RecordedDate: "2024-03-01", RunAllocation: true,
	}, userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDependencyFailure)
	suite.ErrorIs(err, storeErr)
	suite.Require().NotNil(result)
	suite.NotEmpty(result.Earning.EarningID)
	suite.Equal(domain.FeeStatusPending, result.FeeStatus)
	suite.Len(suite.store.Royalties(), 2, "the ledger write is not rolled back")

	feeStore.heal()
	retried, err := service.RetryPlatformFee(suite.ctx, brandID, result.Earning.EarningID)
	suite.Require().NoError(err)
	suite.Equal(domain.FeeStatusFinalized, retried.FeeStatus)
	suite.True(dec("16.00").Equal(retried.Earning.PlatformFee))

	stored, err := suite.store.FindEarningByID(suite.ctx, brandID, result.Earning.EarningID)
	suite.Require().NoError(err)
	suite.True(stored.FeeFinalized())
}

func (suite *EarningServiceTestSuite) TestRetryPlatformFee_BalanceReadFailureStillFinalizes() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.Anything).
		Return(decimal.Zero, errors.New("fee service timeout")).Once()
	result, err := suite.ingest("1000.00", "Streaming", true)
	suite.Require().ErrorIs(err, apperrors.ErrDependencyFailure)

	repos := memory.NewRepositoryProvider(suite.store)
	repos.ExpenseRepo = failingBalanceReader{ExpenseRepositoryFacade: repos.ExpenseRepo}
	clock := services.WithClock(func() time.Time { return fixedNow })
	service := services.NewEarningService(repos,
		services.NewRecuperationWaterfall(clock),
		services.NewRoyaltyAllocator(clock),
		services.WithPlatformFeeHook(suite.feeHook),
		services.WithEarningClock(func() time.Time { return fixedNow }),
	)

	suite.feeHook.On("ComputeFee", mock.Anything, brandID, mock.Anything, mock.Anything).Return(dec("16.00"), nil).Once()
	retried, err := service.RetryPlatformFee(suite.ctx, brandID, result.Earning.EarningID)
	suite.Require().NoError(err)
	suite.Equal(domain.FeeStatusFinalized, retried.FeeStatus)
	suite.True(retried.Allocation.RemainingRecuperableBalance.IsZero())
	suite.True(dec("200.00").Equal(retried.Allocation.RecoupedAmount))
}

// A release already in surplus recoups nothing and pays royalties on the full earning.
func (suite *EarningServiceTestSuite) TestWaterfall_NegativeBalanceIsClampedToZero() {
	seedReleaseR(suite.store, "")
	prior := "earn-prior"
	suite.store.AddExpense(domain.RecuperableExpense{
		ExpenseID: "surplus-1", ReleaseID: releaseID, EarningID: &prior,
		Amount: dec("-50.00"), Description: "Recoupment", RecordedDate: fixedNow,
	})
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	result, err := suite.ingest("100.00", "Streaming", true)
	suite.Require().NoError(err)
	suite.True(result.Allocation.RecoupedAmount.IsZero())
	suite.True(result.Allocation.RemainingRecuperableBalance.IsZero())
	suite.Len(suite.store.Expenses(releaseID), 1, "no recoupment entry for a zero recoup")

	byArtist := suite.royaltiesByArtist()
	suite.True(dec("50.00").Equal(byArtist[artistA]), byArtist[artistA].String())
	suite.True(dec("30.00").Equal(byArtist[artistZ]), byArtist[artistZ].String())
	suite.True(dec("80.00").Equal(result.Allocation.TotalRoyalties))
}

// Parallel earnings on one release must never recoup more than the balance.
func (suite *EarningServiceTestSuite) TestConcurrentEarningsDoNotOverRecoup() {
	seedReleaseR(suite.store, "200.00")
	suite.feeHook.On("ComputeFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := suite.ingest("50.00", "Streaming", true); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.NoError(err)
	}

	recouped := decimal.Zero
	for _, e := range suite.store.Expenses(releaseID) {
		if e.IsRecoupment() {
			recouped = recouped.Add(e.Amount.Neg())
		}
	}
	suite.True(dec("200.00").Equal(recouped), recouped.String())
	suite.True(suite.recuperableBalance().IsZero())

	// 600 total earned, 200 recouped, 400 distributed at 50% and 30%.
	byArtist := suite.royaltiesByArtist()
	suite.True(dec("200.00").Equal(byArtist[artistA]), byArtist[artistA].String())
	suite.True(dec("120.00").Equal(byArtist[artistZ]), byArtist[artistZ].String())
}

func TestEarningServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EarningServiceTestSuite))
}

func TestRateFeeHook(t *testing.T) {
	hook, err := services.NewRateFeeHook(dec("0.15"))
	require.NoError(t, err)

	fee, err := hook.ComputeFee(context.Background(), brandID, dec("1000"), dec("160.00"))
	require.NoError(t, err)
	assert.True(t, dec("24.00").Equal(fee))

	fee, err = hook.ComputeFee(context.Background(), brandID, dec("10"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, fee.IsZero())

	_, err = services.NewRateFeeHook(dec("1.5"))
	assert.Error(t, err)
}
