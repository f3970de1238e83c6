package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money actually sent to an artist by the transfer workflow.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	ArtistID      string          `json:"artistID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	ProcessingFee decimal.Decimal `json:"processingFee"`
	Reference     string          `json:"reference"`
}

// PaymentMethod is a payout destination configured for an artist.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	ArtistID        string `json:"artistID"`
	Kind            string `json:"kind"`
}
