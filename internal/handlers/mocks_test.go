package handlers_test

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EarningService ---
type MockEarningService struct {
	mock.Mock
}

func (m *MockEarningService) IngestEarning(ctx context.Context, tenantID, releaseID string, req dto.IngestEarningRequest, userID string) (*domain.IngestEarningResult, error) {
	args := m.Called(ctx, tenantID, releaseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestEarningResult), args.Error(1)
}
func (m *MockEarningService) RetryPlatformFee(ctx context.Context, tenantID, earningID string) (*domain.IngestEarningResult, error) {
	args := m.Called(ctx, tenantID, earningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestEarningResult), args.Error(1)
}

var _ portssvc.EarningSvcFacade = (*MockEarningService)(nil)

// --- Mock RecuperableService ---
type MockRecuperableService struct {
	mock.Mock
}

func (m *MockRecuperableService) CurrentBalance(ctx context.Context, tenantID, releaseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, releaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRecuperableService) RecordExpense(ctx context.Context, tenantID, releaseID string, amount decimal.Decimal, description, userID string) (*domain.RecuperableExpense, error) {
	args := m.Called(ctx, tenantID, releaseID, amount, description, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecuperableExpense), args.Error(1)
}

var _ portssvc.RecuperableSvcFacade = (*MockRecuperableService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ArtistBalance(ctx context.Context, tenantID, artistID string) (*domain.ArtistBalance, error) {
	args := m.Called(ctx, tenantID, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtistBalance), args.Error(1)
}
func (m *MockBalanceService) ListReadyArtists(ctx context.Context, tenantID string, q domain.PayoutQuery) (*domain.Page[domain.ArtistBalance], error) {
	args := m.Called(ctx, tenantID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.ArtistBalance]), args.Error(1)
}
func (m *MockBalanceService) SubLabelBalance(ctx context.Context, parentTenantID, subLabelID string) (*domain.SubLabelBalance, error) {
	args := m.Called(ctx, parentTenantID, subLabelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubLabelBalance), args.Error(1)
}
func (m *MockBalanceService) ListReadySubLabels(ctx context.Context, parentTenantID string, q domain.PayoutQuery) (*domain.Page[domain.SubLabelBalance], error) {
	args := m.Called(ctx, parentTenantID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.SubLabelBalance]), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock CsvImportService ---
type MockCsvImportService struct {
	mock.Mock
}

func (m *MockCsvImportService) PreviewEarningsFile(ctx context.Context, tenantID, fileName string, data []byte) (*domain.EarningsPreview, error) {
	args := m.Called(ctx, tenantID, fileName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsPreview), args.Error(1)
}

var _ portssvc.CsvImportSvc = (*MockCsvImportService)(nil)
