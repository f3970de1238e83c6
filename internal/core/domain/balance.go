package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ArtistBalance is the computed payout position of one artist. It is never stored.
type ArtistBalance struct {
	ArtistID           string          `json:"artistID"`
	Name               string          `json:"name"`
	TotalRoyalties     decimal.Decimal `json:"totalRoyalties"`
	TotalPayments      decimal.Decimal `json:"totalPayments"`
	Balance            decimal.Decimal `json:"balance"`
	PayoutPoint        decimal.Decimal `json:"payoutPoint"`
	PaymentMethodCount int             `json:"paymentMethodCount"`
	HoldPayouts        bool            `json:"holdPayouts"`
	ReadyForPayout     bool            `json:"readyForPayout"`
	CreatedAt          time.Time       `json:"-"`
}

// NewArtistBalance derives balance and readiness from ledger sums.
func NewArtistBalance(artist Artist, royalties, payments decimal.Decimal, methodCount int) ArtistBalance {
	b := ArtistBalance{
		ArtistID:           artist.ArtistID,
		Name:               artist.Name,
		TotalRoyalties:     royalties,
		TotalPayments:      payments,
		Balance:            royalties.Sub(payments),
		PayoutPoint:        artist.PayoutPoint,
		PaymentMethodCount: methodCount,
		HoldPayouts:        artist.HoldPayouts,
		CreatedAt:          artist.CreatedAt,
	}
	b.ReadyForPayout = ArtistReady(b.Balance, artist.PayoutPoint, methodCount, artist.HoldPayouts)
	return b
}

// ArtistReady is strict: a balance equal to the payout point is not yet ready.
func ArtistReady(balance, payoutPoint decimal.Decimal, methodCount int, hold bool) bool {
	return balance.GreaterThan(payoutPoint) && methodCount > 0 && !hold
}

// SubLabelBalance is the computed net position of a sub-label.
type SubLabelBalance struct {
	SubLabelID     string          `json:"subLabelID"`
	Name           string          `json:"name"`
	Totals         SubLabelTotals  `json:"-"`
	Balance        decimal.Decimal `json:"balance"`
	ReadyForPayout bool            `json:"readyForPayout"`
	CreatedAt      time.Time       `json:"-"`
}

// NewSubLabelBalance derives balance and readiness for a sub-label.
func NewSubLabelBalance(sl SubLabel, totals SubLabelTotals) SubLabelBalance {
	bal := totals.Balance()
	return SubLabelBalance{
		SubLabelID:     sl.SubLabelID,
		Name:           sl.Name,
		Totals:         totals,
		Balance:        bal,
		ReadyForPayout: bal.IsPositive() && totals.PayoutDestinationCount > 0,
		CreatedAt:      sl.CreatedAt,
	}
}

// PayoutSortField is the allowlist of sortable columns for payout listings.
type PayoutSortField string

const (
	SortByName      PayoutSortField = "name"
	SortByBalance   PayoutSortField = "balance"
	SortByCreatedAt PayoutSortField = "created_at"
)

// ParsePayoutSortField rejects anything outside the allowlist. Empty means balance.
func ParsePayoutSortField(s string) (PayoutSortField, error) {
	switch f := PayoutSortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByBalance, nil
	case SortByName, SortByBalance, SortByCreatedAt:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported sort field %q", s)
	}
}

const (
	DefaultPayoutPageLimit = 20
	MaxPayoutPageLimit     = 200
)

// PayoutQuery pages and filters the computed readiness results.
type PayoutQuery struct {
	Page       int
	Limit      int
	MinBalance *decimal.Decimal
	SortBy     PayoutSortField
	SortDesc   bool
}

// Normalize fills defaults and clamps the limit.
func (q PayoutQuery) Normalize() PayoutQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPayoutPageLimit
	}
	if q.Limit > MaxPayoutPageLimit {
		q.Limit = MaxPayoutPageLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortByBalance
	}
	return q
}

// Offset is the zero-based index of the first item on the page.
// Pages too large to address saturate at math.MaxInt instead of wrapping negative.
func (q PayoutQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Page is one slice of a computed listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Paginate cuts items according to q, which must already be normalized.
func Paginate[T any](items []T, q PayoutQuery) Page[T] {
	p := Page[T]{Total: len(items), Page: q.Page, Limit: q.Limit, Items: []T{}}
	if q.Page-1 > len(items)/max(q.Limit, 1) {
		return p
	}
	start := q.Offset()
	if start >= len(items) {
		return p
	}
	end := min(start+q.Limit, len(items))
	p.Items = items[start:end]
	return p
}
