package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/observability/metrics"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// notifier and m may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotificationDispatcher, m *metrics.SettlementMetrics) (*portssvc.ServiceContainer, error) {
	feeHook, err := NewRateFeeHook(cfg.PlatformFeeRate)
	if err != nil {
		return nil, fmt.Errorf("failed to configure platform fee: %w", err)
	}

	container := &portssvc.ServiceContainer{}

	// The waterfall and allocator only run inside the earning service's settlement transaction.
	waterfall := NewRecuperationWaterfall()
	allocator := NewRoyaltyAllocator()

	earningOpts := []EarningServiceOption{
		WithPlatformFeeHook(feeHook),
		WithEarningMetrics(m),
	}
	if notifier != nil {
		earningOpts = append(earningOpts, WithNotificationDispatcher(notifier))
	}
	container.Earning = NewEarningService(repos, waterfall, allocator, earningOpts...)
	container.Recuperable = NewRecuperableService(repos.ReleaseRepo, repos.ExpenseRepo, repos.UnitOfWork)
	container.Balance = NewBalanceService(repos.ArtistRepo, repos.SubLabelRepo)
	container.CsvImport = NewCsvImportService(repos.ReleaseRepo, WithImportMetrics(m))

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.EarningSvcFacade     = (*earningService)(nil)
	_ portssvc.RecuperableSvcFacade = (*recuperableService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
	_ portssvc.CsvImportSvc         = (*csvImportService)(nil)
)
