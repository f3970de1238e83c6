package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type noPlatformFee struct{}

// NewNoPlatformFee returns a hook that always charges nothing.
func NewNoPlatformFee() portssvc.PlatformFeeHook {
	return noPlatformFee{}
}

func (noPlatformFee) ComputeFee(context.Context, string, decimal.Decimal, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// rateFeeHook charges a flat fraction of the net amount.
type rateFeeHook struct {
	rate decimal.Decimal
}

// NewRateFeeHook returns a hook charging round(net * rate, 2). rate must be within [0, 1].
func NewRateFeeHook(rate decimal.Decimal) (portssvc.PlatformFeeHook, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("platform fee rate %s outside [0, 1]", rate)
	}
	if rate.IsZero() {
		return noPlatformFee{}, nil
	}
	return &rateFeeHook{rate: rate}, nil
}

func (h *rateFeeHook) ComputeFee(_ context.Context, _ string, _ decimal.Decimal, net decimal.Decimal) (decimal.Decimal, error) {
	return domain.RoundMoney(domain.MaxZero(net).Mul(h.rate)), nil
}

var (
	_ portssvc.PlatformFeeHook = noPlatformFee{}
	_ portssvc.PlatformFeeHook = (*rateFeeHook)(nil)
)
