package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Earning is a row of the earnings table.
type Earning struct {
	EarningID      string             `db:"earning_id"`
	BrandID        string             `db:"brand_id"`
	ReleaseID      string             `db:"release_id"`
	Category       string             `db:"category"`
	Amount         decimal.Decimal    `db:"amount"`
	Description    string             `db:"description"`
	RecordedDate   time.Time          `db:"recorded_date"`
	PlatformFee    decimal.Decimal    `db:"platform_fee"`
	FeeFinalizedAt pgtype.Timestamptz `db:"fee_finalized_at"` // NULL until the fee is set
	Allocated      bool               `db:"allocated"`
	AuditFields
}
