package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecuperableExpense is a signed ledger entry against a release.
// Positive amounts are new recoupable expenses, negative amounts are recoupment taken from an earning.
// The recoupable balance is always the sum of the entries; no running total is stored.
type RecuperableExpense struct {
	ExpenseID    string          `json:"expenseID"`
	ReleaseID    string          `json:"releaseID"`
	EarningID    *string         `json:"earningID,omitempty"` // set on recoupment entries
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	RecordedDate time.Time       `json:"recordedDate"`
	AuditFields
}

// IsRecoupment reports whether the entry reduces the balance.
func (e RecuperableExpense) IsRecoupment() bool {
	return e.Amount.IsNegative()
}
