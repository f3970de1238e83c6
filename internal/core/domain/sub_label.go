package domain

import "github.com/shopspring/decimal"

// SubLabelTotals are the ledger sums a sub-label's balance is derived from.
// Event figures come from the ticketing side and are consumed read-only.
type SubLabelTotals struct {
	GrossMusicEarnings     decimal.Decimal
	RoyaltiesPaid          decimal.Decimal
	PlatformFees           decimal.Decimal
	EventGrossSales        decimal.Decimal
	EventPlatformFees      decimal.Decimal
	LabelPaymentsReceived  decimal.Decimal
	PayoutDestinationCount int
}

// Balance applies the sub-label settlement formula.
func (t SubLabelTotals) Balance() decimal.Decimal {
	music := t.GrossMusicEarnings.Sub(t.RoyaltiesPaid).Sub(t.PlatformFees)
	events := t.EventGrossSales.Sub(t.EventPlatformFees)
	return music.Add(events).Sub(t.LabelPaymentsReceived)
}
