package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterfallResult is what applying one earning to a release's recoupable balance produced.
type WaterfallResult struct {
	RecoupedAmount         decimal.Decimal `json:"recoupedAmount"`
	RemainingEarningAmount decimal.Decimal `json:"remainingEarningAmount"`
	NewBalance             decimal.Decimal `json:"newBalance"` // derived, clamped at zero
}

// AllocationSummary reports the waterfall and distribution for one earning.
type AllocationSummary struct {
	RecoupedAmount              decimal.Decimal `json:"recoupedAmount"`
	RemainingRecuperableBalance decimal.Decimal `json:"remainingRecuperableBalance"`
	TotalRoyalties              decimal.Decimal `json:"totalRoyalties"`
	Royalties                   []Royalty       `json:"royalties"`
}

// FeeStatus tells callers whether the platform fee has been finalized.
type FeeStatus string

const (
	FeeStatusNotApplicable FeeStatus = "not_applicable" // allocation did not run
	FeeStatusFinalized     FeeStatus = "finalized"
	FeeStatusPending       FeeStatus = "pending" // fee hook failed, retry needed
)

// IngestEarningResult is the outcome of ingesting one earning.
type IngestEarningResult struct {
	Earning    Earning            `json:"earning"`
	Allocation *AllocationSummary `json:"allocation,omitempty"`
	FeeStatus  FeeStatus          `json:"feeStatus"`
}

// NetAfterRecoupAndRoyalties is the amount the platform fee is computed on.
func NetAfterRecoupAndRoyalties(gross, recouped, royalties decimal.Decimal) decimal.Decimal {
	return MaxZero(gross.Sub(recouped).Sub(royalties))
}

// EarningNotification is the payload handed to the notification collaborator per artist.
type EarningNotification struct {
	EarningID     string          `json:"earningID"`
	ReleaseID     string          `json:"releaseID"`
	Recipients    []string        `json:"recipients"`
	ArtistName    string          `json:"artistName"`
	ReleaseTitle  string          `json:"releaseTitle"`
	Category      EarningCategory `json:"category"`
	GrossAmount   decimal.Decimal `json:"grossAmount"`
	RoyaltyAmount decimal.Decimal `json:"royaltyAmount"`
	RecordedDate  time.Time       `json:"recordedDate"`
}

// ArtistLedgerTotals are the raw sums behind an ArtistBalance.
type ArtistLedgerTotals struct {
	Artist             Artist
	TotalRoyalties     decimal.Decimal
	TotalPayments      decimal.Decimal
	PaymentMethodCount int
}

// SubLabelLedgerTotals pairs a sub-label with its ledger sums.
type SubLabelLedgerTotals struct {
	SubLabel SubLabel
	Totals   SubLabelTotals
}
