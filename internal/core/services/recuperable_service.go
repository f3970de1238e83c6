package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recuperableService manages the positive side of the recoupable ledger.
type recuperableService struct {
	BaseService
	releaseRepo portsrepo.ReleaseReader
	expenseRepo portsrepo.ExpenseReader
	uow         portsrepo.SettlementUnitOfWork
}

// NewRecuperableService creates the recoupable expense service.
func NewRecuperableService(releaseRepo portsrepo.ReleaseReader, expenseRepo portsrepo.ExpenseReader, uow portsrepo.SettlementUnitOfWork, options ...SettlementOption) portssvc.RecuperableSvcFacade {
	svc := &recuperableService{
		releaseRepo: releaseRepo,
		expenseRepo: expenseRepo,
		uow:         uow,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.RecuperableSvcFacade = (*recuperableService)(nil)

// CurrentBalance returns the release's recoupable balance clamped at zero.
func (s *recuperableService) CurrentBalance(ctx context.Context, tenantID, releaseID string) (decimal.Decimal, error) {
	if _, err := s.releaseRepo.FindReleaseByID(ctx, tenantID, releaseID); err != nil {
		return decimal.Zero, err
	}
	sum, err := s.expenseRepo.SumByRelease(ctx, releaseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum recoupable ledger", slog.String("release_id", releaseID))
		return decimal.Zero, fmt.Errorf("failed to read recoupable balance: %w", err)
	}
	return domain.MaxZero(sum), nil
}

// RecordExpense appends a positive recoupable expense. It takes the release lock so the
// entry is ordered against concurrent recoupments.
func (s *recuperableService) RecordExpense(ctx context.Context, tenantID, releaseID string, amount decimal.Decimal, description, userID string) (*domain.RecuperableExpense, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("expense amount must be greater than zero")
	}
	if err := domain.ValidateMoney(amount); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("description is required")
	}

	release, err := s.releaseRepo.FindReleaseByID(ctx, tenantID, releaseID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	expense := domain.RecuperableExpense{
		ExpenseID:    uuid.NewString(),
		ReleaseID:    release.ReleaseID,
		Amount:       amount,
		Description:  description,
		RecordedDate: now,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: userID},
	}
	err = s.uow.WithinReleaseLock(ctx, release.ReleaseID, func(ctx context.Context, tx portsrepo.SettlementTx) error {
		return tx.Expenses().SaveExpense(ctx, expense)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record recoupable expense", slog.String("release_id", release.ReleaseID))
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	s.LogInfo(ctx, "Recoupable expense recorded",
		slog.String("release_id", release.ReleaseID),
		slog.String("amount", amount.StringFixed(2)))
	return &expense, nil
}
