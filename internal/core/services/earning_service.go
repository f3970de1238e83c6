package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/SscSPs/royalty_settlement_app/internal/observability/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReleaseIDMissing    = errors.New("release id is required")
	ErrCategoryMissing     = errors.New("category is required")
	ErrRecordedDateMissing = errors.New("recorded date is required")
	ErrRecordedDateInvalid = errors.New("recorded date must be RFC 3339 or YYYY-MM-DD")
	ErrNotAllocated        = errors.New("allocation has not run for this earning")
	ErrFeeAlreadySet       = errors.New("platform fee already finalized")
	ErrNegativeFee         = errors.New("fee hook returned a negative fee")
)

// earningService ingests earnings and finalizes their platform fee.
type earningService struct {
	BaseService
	releaseRepo portsrepo.ReleaseReader
	earningRepo portsrepo.EarningRepositoryFacade
	expenseRepo portsrepo.ExpenseReader
	royaltyRepo portsrepo.RoyaltyReader
	artistRepo  portsrepo.ArtistReader
	uow         portsrepo.SettlementUnitOfWork

	waterfall portssvc.RecuperationWaterfall
	allocator portssvc.RoyaltyAllocator
	feeHook   portssvc.PlatformFeeHook
	notifier  portssvc.NotificationDispatcher
	metrics   *metrics.SettlementMetrics
}

// EarningServiceOption is a functional option for configuring the earning service
type EarningServiceOption func(*earningService)

// WithPlatformFeeHook sets the fee collaborator. Without it no fee is charged.
func WithPlatformFeeHook(hook portssvc.PlatformFeeHook) EarningServiceOption {
	return func(s *earningService) {
		s.feeHook = hook
	}
}

// WithNotificationDispatcher sets where post-commit notifications go.
func WithNotificationDispatcher(d portssvc.NotificationDispatcher) EarningServiceOption {
	return func(s *earningService) {
		s.notifier = d
	}
}

// WithEarningMetrics records pipeline counters.
func WithEarningMetrics(m *metrics.SettlementMetrics) EarningServiceOption {
	return func(s *earningService) {
		s.metrics = m
	}
}

// WithEarningClock replaces time.Now.
func WithEarningClock(now func() time.Time) EarningServiceOption {
	return func(s *earningService) {
		s.now = now
	}
}

// NewEarningService creates the earning ingestor with the provided options
func NewEarningService(repos portsrepo.RepositoryProvider, waterfall portssvc.RecuperationWaterfall, allocator portssvc.RoyaltyAllocator, options ...EarningServiceOption) portssvc.EarningSvcFacade {
	svc := &earningService{
		releaseRepo: repos.ReleaseRepo,
		earningRepo: repos.EarningRepo,
		expenseRepo: repos.ExpenseRepo,
		royaltyRepo: repos.RoyaltyRepo,
		artistRepo:  repos.ArtistRepo,
		uow:         repos.UnitOfWork,
		waterfall:   waterfall,
		allocator:   allocator,
		feeHook:     NewNoPlatformFee(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.EarningSvcFacade = (*earningService)(nil)

// IngestEarning persists an earning and, when requested, settles it.
// Validation and tenant checks run before any write. The earning, its recoupment entry and
// its royalties are written under the release lock and commit together. The fee is set after
// commit; if the hook fails the committed result is returned with a dependency error.
func (s *earningService) IngestEarning(ctx context.Context, tenantID, releaseID string, req dto.IngestEarningRequest, userID string) (*domain.IngestEarningResult, error) {
	releaseID = strings.TrimSpace(releaseID)
	if releaseID == "" {
		return nil, apperrors.NewValidationError(ErrReleaseIDMissing.Error())
	}
	if req.Amount == nil {
		return nil, apperrors.NewValidationError(domain.ErrAmountRequired.Error())
	}
	if err := domain.ValidateMoney(*req.Amount); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	category := domain.EarningCategory(strings.TrimSpace(req.Category))
	if category == "" {
		return nil, apperrors.NewValidationError(ErrCategoryMissing.Error())
	}
	recordedDate, err := parseRecordedDate(req.RecordedDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	release, err := s.releaseRepo.FindReleaseByID(ctx, tenantID, releaseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load release for earning", slog.String("release_id", releaseID))
		}
		return nil, err
	}

	now := s.Now()
	earning := domain.Earning{
		EarningID:    uuid.NewString(),
		BrandID:      tenantID,
		ReleaseID:    release.ReleaseID,
		Category:     category,
		Amount:       *req.Amount,
		Description:  strings.TrimSpace(req.Description),
		RecordedDate: recordedDate,
		PlatformFee:  decimal.Zero,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: userID},
	}

	var summary *domain.AllocationSummary
	err = s.uow.WithinReleaseLock(ctx, release.ReleaseID, func(ctx context.Context, tx portsrepo.SettlementTx) error {
		if err := tx.Earnings().SaveEarning(ctx, earning); err != nil {
			return fmt.Errorf("failed to save earning: %w", err)
		}
		if !req.RunAllocation {
			return nil
		}

		wf, err := s.waterfall.Apply(ctx, tx, release.ReleaseID, earning.EarningID, earning.Category, earning.Amount)
		if err != nil {
			return err
		}
		royalties, err := s.allocator.Distribute(ctx, tx, earning, wf.RemainingEarningAmount)
		if err != nil {
			return err
		}
		if err := tx.Earnings().MarkAllocated(ctx, earning.EarningID); err != nil {
			return fmt.Errorf("failed to mark earning allocated: %w", err)
		}

		summary = &domain.AllocationSummary{
			RecoupedAmount:              wf.RecoupedAmount,
			RemainingRecuperableBalance: wf.NewBalance,
			TotalRoyalties:              sumRoyalties(royalties),
			Royalties:                   royalties,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Earning ingestion rolled back",
			slog.String("release_id", release.ReleaseID),
			slog.String("earning_id", earning.EarningID))
		return nil, err
	}

	s.metrics.EarningIngested(string(earning.Category), req.RunAllocation)

	result := &domain.IngestEarningResult{Earning: earning, FeeStatus: domain.FeeStatusNotApplicable}
	if !req.RunAllocation {
		s.LogInfo(ctx, "Earning recorded without allocation",
			slog.String("earning_id", earning.EarningID),
			slog.String("release_id", release.ReleaseID))
		return result, nil
	}

	earning.Allocated = true
	result.Earning = earning
	result.Allocation = summary
	s.metrics.Recouped(summary.RecoupedAmount)
	s.metrics.RoyaltiesCreated(len(summary.Royalties), summary.TotalRoyalties)

	s.notify(ctx, tenantID, release, earning, summary.Royalties)

	net := domain.NetAfterRecoupAndRoyalties(earning.Amount, summary.RecoupedAmount, summary.TotalRoyalties)
	if err := s.finalizeFee(ctx, tenantID, &result.Earning, net); err != nil {
		// The settlement is committed; whatever stopped the fee, the caller gets the earning back.
		result.FeeStatus = domain.FeeStatusPending
		if !errors.Is(err, apperrors.ErrDependencyFailure) {
			err = apperrors.NewDependencyError("platform fee left pending", err)
		}
		return result, err
	}
	result.FeeStatus = domain.FeeStatusFinalized

	s.LogInfo(ctx, "Earning settled",
		slog.String("earning_id", earning.EarningID),
		slog.String("release_id", release.ReleaseID),
		slog.String("recouped", summary.RecoupedAmount.StringFixed(2)),
		slog.String("royalties", summary.TotalRoyalties.StringFixed(2)),
		slog.Int("royalty_count", len(summary.Royalties)))
	return result, nil
}

// RetryPlatformFee finalizes a pending fee from what the ledger already holds for the earning.
func (s *earningService) RetryPlatformFee(ctx context.Context, tenantID, earningID string) (*domain.IngestEarningResult, error) {
	earning, err := s.earningRepo.FindEarningByID(ctx, tenantID, earningID)
	if err != nil {
		return nil, err
	}
	if !earning.Allocated {
		return nil, apperrors.NewValidationError(ErrNotAllocated.Error())
	}
	if earning.FeeFinalized() {
		return nil, apperrors.NewConflictError(ErrFeeAlreadySet.Error())
	}

	recouped, err := s.expenseRepo.SumRecoupedByEarning(ctx, earning.EarningID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read recoupment for fee retry", slog.String("earning_id", earningID))
		return nil, fmt.Errorf("failed to read recoupment: %w", err)
	}
	royalties, err := s.royaltyRepo.SumRoyaltiesByEarning(ctx, earning.EarningID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read royalties for fee retry", slog.String("earning_id", earningID))
		return nil, fmt.Errorf("failed to read royalties: %w", err)
	}

	result := &domain.IngestEarningResult{
		Earning: *earning,
		Allocation: &domain.AllocationSummary{
			RecoupedAmount: recouped,
			TotalRoyalties: royalties,
			Royalties:      []domain.Royalty{},
		},
		FeeStatus: domain.FeeStatusPending,
	}
	balance, err := s.expenseRepo.SumByRelease(ctx, earning.ReleaseID)
	if err != nil {
		s.LogWarn(ctx, "Failed to read recoupable balance for fee retry, reporting zero",
			slog.String("earning_id", earningID),
			slog.String("error", err.Error()))
		balance = decimal.Zero
	}
	result.Allocation.RemainingRecuperableBalance = domain.MaxZero(balance)

	net := domain.NetAfterRecoupAndRoyalties(earning.Amount, recouped, royalties)
	if err := s.finalizeFee(ctx, tenantID, &result.Earning, net); err != nil {
		return result, err
	}
	result.FeeStatus = domain.FeeStatusFinalized
	return result, nil
}

// finalizeFee asks the hook for the fee and stores it once.
func (s *earningService) finalizeFee(ctx context.Context, tenantID string, earning *domain.Earning, net decimal.Decimal) error {
	fee, err := s.feeHook.ComputeFee(ctx, tenantID, earning.Amount, net)
	if err == nil && fee.IsNegative() {
		err = ErrNegativeFee
	}
	if err != nil {
		s.metrics.FeeOutcome(metrics.FeeOutcomeFailed)
		s.LogError(ctx, err, "Platform fee hook failed, fee left pending",
			slog.String("earning_id", earning.EarningID),
			slog.String("net", net.StringFixed(2)))
		return apperrors.NewDependencyError("platform fee could not be computed", err)
	}

	fee = domain.RoundMoney(fee)
	at := s.Now()
	if err := s.earningRepo.FinalizePlatformFee(ctx, earning.EarningID, fee, at); err != nil {
		s.LogError(ctx, err, "Failed to store platform fee", slog.String("earning_id", earning.EarningID))
		if errors.Is(err, apperrors.ErrConflict) {
			s.metrics.FeeOutcome(metrics.FeeOutcomeConflict)
			return err
		}
		s.metrics.FeeOutcome(metrics.FeeOutcomeFailed)
		return apperrors.NewDependencyError("platform fee could not be stored", err)
	}

	s.metrics.FeeOutcome(metrics.FeeOutcomeFinalized)
	earning.PlatformFee = fee
	earning.FeeFinalizedAt = &at
	return nil
}

// notify hands one notification per paid artist to the dispatcher. Lookup failures are logged only.
func (s *earningService) notify(ctx context.Context, tenantID string, release *domain.Release, earning domain.Earning, royalties []domain.Royalty) {
	if s.notifier == nil || len(royalties) == 0 {
		return
	}

	notifications := make([]domain.EarningNotification, 0, len(royalties))
	for _, r := range royalties {
		artist, err := s.artistRepo.FindArtistByID(ctx, tenantID, r.ArtistID)
		if err != nil {
			s.metrics.NotificationFailed()
			s.LogWarn(ctx, "Skipping earning notification, artist lookup failed",
				slog.String("artist_id", r.ArtistID),
				slog.String("error", err.Error()))
			continue
		}
		if strings.TrimSpace(artist.Email) == "" {
			continue
		}
		notifications = append(notifications, domain.EarningNotification{
			EarningID:     earning.EarningID,
			ReleaseID:     release.ReleaseID,
			Recipients:    []string{artist.Email},
			ArtistName:    artist.Name,
			ReleaseTitle:  release.Title,
			Category:      earning.Category,
			GrossAmount:   earning.Amount,
			RoyaltyAmount: r.Amount,
			RecordedDate:  earning.RecordedDate,
		})
	}
	if len(notifications) > 0 {
		s.notifier.Dispatch(ctx, notifications)
	}
}

func sumRoyalties(royalties []domain.Royalty) decimal.Decimal {
	total := decimal.Zero
	for _, r := range royalties {
		total = total.Add(r.Amount)
	}
	return total
}

func parseRecordedDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrRecordedDateMissing
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrRecordedDateInvalid
}
