package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListReadyPayoutsParams are the query parameters of the payout-readiness listings.
type ListReadyPayoutsParams struct {
	Page       int    `form:"page" binding:"omitempty,min=1,max=1000000"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=200"`
	MinBalance string `form:"minBalance"`
	Sort       string `form:"sort" binding:"omitempty,oneof=name balance created_at"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ArtistBalanceResponse is the per-artist balance view.
type ArtistBalanceResponse struct {
	ArtistID       string          `json:"artistID"`
	Name           string          `json:"name,omitempty"`
	TotalRoyalties decimal.Decimal `json:"totalRoyalties"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	Balance        decimal.Decimal `json:"balance"`
	PayoutPoint    decimal.Decimal `json:"payoutPoint"`
	ReadyForPayout bool            `json:"readyForPayout"`
}

// SubLabelBalanceResponse is the per-sub-label balance view.
type SubLabelBalanceResponse struct {
	SubLabelID         string          `json:"subLabelID"`
	Name               string          `json:"name,omitempty"`
	GrossMusicEarnings decimal.Decimal `json:"grossMusicEarnings"`
	RoyaltiesPaid      decimal.Decimal `json:"royaltiesPaid"`
	PlatformFees       decimal.Decimal `json:"platformFees"`
	EventGrossSales    decimal.Decimal `json:"eventGrossSales"`
	EventPlatformFees  decimal.Decimal `json:"eventPlatformFees"`
	PaymentsReceived   decimal.Decimal `json:"paymentsReceived"`
	Balance            decimal.Decimal `json:"balance"`
	ReadyForPayout     bool            `json:"readyForPayout"`
}

// ListArtistBalancesResponse is a page of ready artists.
type ListArtistBalancesResponse struct {
	Items []ArtistBalanceResponse `json:"items"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// ListSubLabelBalancesResponse is a page of ready sub-labels.
type ListSubLabelBalancesResponse struct {
	Items []SubLabelBalanceResponse `json:"items"`
	Total int                       `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

// ToArtistBalanceResponse converts a domain.ArtistBalance to its DTO.
func ToArtistBalanceResponse(b domain.ArtistBalance) ArtistBalanceResponse {
	return ArtistBalanceResponse{
		ArtistID:       b.ArtistID,
		Name:           b.Name,
		TotalRoyalties: b.TotalRoyalties,
		TotalPayments:  b.TotalPayments,
		Balance:        b.Balance,
		PayoutPoint:    b.PayoutPoint,
		ReadyForPayout: b.ReadyForPayout,
	}
}

// ToSubLabelBalanceResponse converts a domain.SubLabelBalance to its DTO.
func ToSubLabelBalanceResponse(b domain.SubLabelBalance) SubLabelBalanceResponse {
	return SubLabelBalanceResponse{
		SubLabelID:         b.SubLabelID,
		Name:               b.Name,
		GrossMusicEarnings: b.Totals.GrossMusicEarnings,
		RoyaltiesPaid:      b.Totals.RoyaltiesPaid,
		PlatformFees:       b.Totals.PlatformFees,
		EventGrossSales:    b.Totals.EventGrossSales,
		EventPlatformFees:  b.Totals.EventPlatformFees,
		PaymentsReceived:   b.Totals.LabelPaymentsReceived,
		Balance:            b.Balance,
		ReadyForPayout:     b.ReadyForPayout,
	}
}

// ToListArtistBalancesResponse converts a computed page to its DTO.
func ToListArtistBalancesResponse(p domain.Page[domain.ArtistBalance]) ListArtistBalancesResponse {
	items := make([]ArtistBalanceResponse, len(p.Items))
	for i, b := range p.Items {
		items[i] = ToArtistBalanceResponse(b)
	}
	return ListArtistBalancesResponse{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}

// ToListSubLabelBalancesResponse converts a computed page to its DTO.
func ToListSubLabelBalancesResponse(p domain.Page[domain.SubLabelBalance]) ListSubLabelBalancesResponse {
	items := make([]SubLabelBalanceResponse, len(p.Items))
	for i, b := range p.Items {
		items[i] = ToSubLabelBalanceResponse(b)
	}
	return ListSubLabelBalancesResponse{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}

// ToPayoutQuery converts listing parameters to a domain query. An empty order sorts balances
// descending and names or dates ascending.
func ToPayoutQuery(p ListReadyPayoutsParams) (domain.PayoutQuery, error) {
	sortBy, err := domain.ParsePayoutSortField(p.Sort)
	if err != nil {
		return domain.PayoutQuery{}, err
	}
	q := domain.PayoutQuery{Page: p.Page, Limit: p.Limit, SortBy: sortBy}
	switch strings.ToLower(p.Order) {
	case "asc":
	case "desc":
		q.SortDesc = true
	case "":
		q.SortDesc = sortBy == domain.SortByBalance
	default:
		return domain.PayoutQuery{}, fmt.Errorf("unsupported order %q", p.Order)
	}
	if raw := strings.TrimSpace(p.MinBalance); raw != "" {
		minBalance, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.PayoutQuery{}, fmt.Errorf("invalid minBalance %q", p.MinBalance)
		}
		q.MinBalance = &minBalance
	}
	return q.Normalize(), nil
}
