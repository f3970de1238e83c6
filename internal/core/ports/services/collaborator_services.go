package services

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlatformFeeHook computes the platform's cut of an earning after allocation.
type PlatformFeeHook interface {
	ComputeFee(ctx context.Context, tenantID string, gross, net decimal.Decimal) (decimal.Decimal, error)
}

// NotificationSender delivers earning notifications. Failures are logged by the caller, never propagated.
type NotificationSender interface {
	NotifyEarning(ctx context.Context, n domain.EarningNotification) error
}

// NotificationDispatcher hands notifications off after the financial write has committed.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []domain.EarningNotification)
}
