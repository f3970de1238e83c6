package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PlatformFeeHook ---
type MockFeeHook struct {
	mock.Mock
}

var _ portssvc.PlatformFeeHook = (*MockFeeHook)(nil)

func (m *MockFeeHook) ComputeFee(ctx context.Context, tenantID string, gross, net decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, gross, net)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Recording NotificationDispatcher ---
type recordingDispatcher struct {
	mu   sync.Mutex
	sent []domain.EarningNotification
}

var _ portssvc.NotificationDispatcher = (*recordingDispatcher)(nil)

func (d *recordingDispatcher) Dispatch(_ context.Context, notifications []domain.EarningNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, notifications...)
}

func (d *recordingDispatcher) Sent() []domain.EarningNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.EarningNotification(nil), d.sent...)
}
