package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Royalty is one artist's entitlement arising from one earning. Immutable once written.
type Royalty struct {
	RoyaltyID    string          `json:"royaltyID"`
	ArtistID     string          `json:"artistID"`
	ReleaseID    string          `json:"releaseID"`
	EarningID    *string         `json:"earningID,omitempty"` // nil for manually entered royalties
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	RecordedDate time.Time       `json:"recordedDate"`
	AuditFields
}
