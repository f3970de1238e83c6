package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Royalty is a row of the royalties ledger.
type Royalty struct {
	RoyaltyID    string          `db:"royalty_id"`
	ArtistID     string          `db:"artist_id"`
	ReleaseID    string          `db:"release_id"`
	EarningID    pgtype.Text     `db:"earning_id"` // NULL for manual royalties
	Percentage   decimal.Decimal `db:"percentage"`
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"`
	RecordedDate time.Time       `db:"recorded_date"`
	AuditFields
}
