package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// RecuperableExpense is a row of the recuperable_expenses ledger.
type RecuperableExpense struct {
	ExpenseID    string          `db:"expense_id"`
	ReleaseID    string          `db:"release_id"`
	EarningID    pgtype.Text     `db:"earning_id"` // set on recoupment entries
	Amount       decimal.Decimal `db:"amount"`
	Description  string          `db:"description"`
	RecordedDate time.Time       `db:"recorded_date"`
	AuditFields
}
