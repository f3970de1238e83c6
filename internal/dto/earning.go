package dto

import (
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngestEarningRequest is the body of POST /releases/:releaseID/earnings.
type IngestEarningRequest struct {
	Category      string           `json:"category" binding:"required,max=100"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	RecordedDate  string           `json:"recordedDate" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Description   string           `json:"description" binding:"max=500"`
	RunAllocation bool             `json:"runAllocation"`
}

// EarningResponse is the API view of an earning.
type EarningResponse struct {
	EarningID      string          `json:"earningID"`
	ReleaseID      string          `json:"releaseID"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	RecordedDate   time.Time       `json:"recordedDate"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	FeeFinalizedAt *time.Time      `json:"feeFinalizedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// RoyaltyResponse is one created royalty row.
type RoyaltyResponse struct {
	RoyaltyID  string          `json:"royaltyID"`
	ArtistID   string          `json:"artistID"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// AllocationResponse summarizes recoupment and distribution.
type AllocationResponse struct {
	RecoupedAmount              decimal.Decimal   `json:"recoupedAmount"`
	RemainingRecuperableBalance decimal.Decimal   `json:"remainingRecuperableBalance"`
	TotalRoyalties              decimal.Decimal   `json:"totalRoyalties"`
	Royalties                   []RoyaltyResponse `json:"royalties"`
}

// IngestEarningResponse is returned by the ingestion and fee retry endpoints.
type IngestEarningResponse struct {
	Earning    EarningResponse     `json:"earning"`
	Allocation *AllocationResponse `json:"allocation,omitempty"`
	FeeStatus  string              `json:"feeStatus"`
	Warning    string              `json:"warning,omitempty"`
}

// ToEarningResponse converts a domain.Earning to EarningResponse DTO.
func ToEarningResponse(e domain.Earning) EarningResponse {
	return EarningResponse{
		EarningID:      e.EarningID,
		ReleaseID:      e.ReleaseID,
		Category:       string(e.Category),
		Amount:         e.Amount,
		Description:    e.Description,
		RecordedDate:   e.RecordedDate,
		PlatformFee:    e.PlatformFee,
		FeeFinalizedAt: e.FeeFinalizedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToIngestEarningResponse converts the ingestion result to its API form.
func ToIngestEarningResponse(r *domain.IngestEarningResult) IngestEarningResponse {
	resp := IngestEarningResponse{
		Earning:   ToEarningResponse(r.Earning),
		FeeStatus: string(r.FeeStatus),
	}
	if r.Allocation != nil {
		royalties := make([]RoyaltyResponse, len(r.Allocation.Royalties))
		for i, roy := range r.Allocation.Royalties {
			royalties[i] = RoyaltyResponse{
				RoyaltyID:  roy.RoyaltyID,
				ArtistID:   roy.ArtistID,
				Percentage: roy.Percentage,
				Amount:     roy.Amount,
			}
		}
		resp.Allocation = &AllocationResponse{
			RecoupedAmount:              r.Allocation.RecoupedAmount,
			RemainingRecuperableBalance: r.Allocation.RemainingRecuperableBalance,
			TotalRoyalties:              r.Allocation.TotalRoyalties,
			Royalties:                   royalties,
		}
	}
	return resp
}
