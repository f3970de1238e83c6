package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/SscSPs/royalty_settlement_app/internal/core/services"
	"github.com/SscSPs/royalty_settlement_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExpense_RaisesBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedReleaseR(store, "200.00")
	svc := services.NewRecuperableService(store, store, store, services.WithClock(func() time.Time { return fixedNow }))

	expense, err := svc.RecordExpense(ctx, brandID, releaseID, dec("75.50"), "  Music video  ", userID)
	require.NoError(t, err)
	assert.Equal(t, "Music video", expense.Description)
	assert.Equal(t, fixedNow, expense.RecordedDate)
	assert.Equal(t, userID, expense.CreatedBy)
	assert.Nil(t, expense.EarningID)

	balance, err := svc.CurrentBalance(ctx, brandID, releaseID)
	require.NoError(t, err)
	assert.Equal(t, "275.5", balance.String())
	assert.Len(t, store.Expenses(releaseID), 2)
}

func TestCurrentBalance_ClampedAtZero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedReleaseR(store, "10.00")
	earningID := "earn-1"
	store.AddExpense(domain.RecuperableExpense{ExpenseID: "rec-1", ReleaseID: releaseID, EarningID: &earningID, Amount: dec("-25.00"), Description: "Recouped", RecordedDate: fixedNow})
	svc := services.NewRecuperableService(store, store, store)

	balance, err := svc.CurrentBalance(ctx, brandID, releaseID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestRecordExpense_Validation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedReleaseR(store, "")
	svc := services.NewRecuperableService(store, store, store)

	tests := []struct {
		name        string
		amount      string
		description string
	}{
		{"zero", "0", "Mastering"},
		{"negative", "-10.00", "Mastering"},
		{"sub-cent", "10.005", "Mastering"},
		{"blank description", "10.00", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordExpense(ctx, brandID, releaseID, dec(tt.amount), tt.description, userID)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
	assert.Empty(t, store.Expenses(releaseID))
}

func TestRecordExpense_OtherTenant(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedReleaseR(store, "")
	svc := services.NewRecuperableService(store, store, store)

	_, err := svc.RecordExpense(ctx, "brand-2", releaseID, dec("10.00"), "Mastering", userID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.CurrentBalance(ctx, "brand-2", releaseID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, store.Expenses(releaseID))
}
