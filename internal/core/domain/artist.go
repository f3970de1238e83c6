package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Artist is the payout-relevant view of an artist record.
type Artist struct {
	ArtistID    string          `json:"artistID"`
	BrandID     string          `json:"brandID"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PayoutPoint decimal.Decimal `json:"payoutPoint"`
	HoldPayouts bool            `json:"holdPayouts"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SubLabel is a brand nested under a parent brand; it is itself owed a net balance.
type SubLabel struct {
	SubLabelID    string    `json:"subLabelID"`
	ParentBrandID string    `json:"parentBrandID"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
}
