package dto

import (
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordExpenseRequest is the body of POST /releases/:releaseID/recuperable-expenses.
type RecordExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"required,max=500"`
}

// RecuperableBalanceResponse reports a release's outstanding recoupable balance.
type RecuperableBalanceResponse struct {
	ReleaseID string          `json:"releaseID"`
	Balance   decimal.Decimal `json:"balance"`
}

// RecuperableExpenseResponse is a recorded ledger entry.
type RecuperableExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	ReleaseID    string          `json:"releaseID"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	RecordedDate time.Time       `json:"recordedDate"`
	CreatedBy    string          `json:"createdBy"`
}

// ToRecuperableExpenseResponse converts a domain.RecuperableExpense to its DTO.
func ToRecuperableExpenseResponse(e domain.RecuperableExpense) RecuperableExpenseResponse {
	return RecuperableExpenseResponse{
		ExpenseID:    e.ExpenseID,
		ReleaseID:    e.ReleaseID,
		Amount:       e.Amount,
		Description:  e.Description,
		RecordedDate: e.RecordedDate,
		CreatedBy:    e.CreatedBy,
	}
}
