package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/royalty_settlement_app/internal/models"
	"github.com/SscSPs/royalty_settlement_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxEarningRepository struct {
	db querier
}

func newPgxEarningRepository(db querier) portsrepo.EarningRepositoryFacade {
	return &PgxEarningRepository{db: db}
}

var (
	_ portsrepo.EarningRepositoryFacade = (*PgxEarningRepository)(nil)
	_ portsrepo.EarningTxWriter         = (*PgxEarningRepository)(nil)
)

// SaveEarning inserts a new earning. Earnings are never updated afterwards except for
// the allocated flag and the one-time platform fee.
func (r *PgxEarningRepository) SaveEarning(ctx context.Context, earning domain.Earning) error {
	m := mapping.ToModelEarning(earning)
	query := `
		INSERT INTO earnings (earning_id, brand_id, release_id, category, amount, description, recorded_date,
		                      platform_fee, fee_finalized_at, allocated, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.EarningID, m.BrandID, m.ReleaseID, m.Category, m.Amount, m.Description, m.RecordedDate,
		m.PlatformFee, m.FeeFinalizedAt, m.Allocated, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("earning %s already exists", m.EarningID))
		}
		return fmt.Errorf("failed to save earning %s: %w", m.EarningID, err)
	}
	return nil
}

func (r *PgxEarningRepository) MarkAllocated(ctx context.Context, earningID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE earnings SET allocated = TRUE WHERE earning_id = $1;`, earningID)
	if err != nil {
		return fmt.Errorf("failed to mark earning %s allocated: %w", earningID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found", earningID))
	}
	return nil
}

// FindEarningByID retrieves an earning within one brand.
func (r *PgxEarningRepository) FindEarningByID(ctx context.Context, brandID, earningID string) (*domain.Earning, error) {
	query := `
		SELECT earning_id, brand_id, release_id, category, amount, description, recorded_date,
		       platform_fee, fee_finalized_at, allocated, created_at, created_by
		FROM earnings
		WHERE earning_id = $1 AND brand_id = $2;
	`
	var m models.Earning
	err := r.db.QueryRow(ctx, query, earningID, brandID).Scan(
		&m.EarningID, &m.BrandID, &m.ReleaseID, &m.Category, &m.Amount, &m.Description, &m.RecordedDate,
		&m.PlatformFee, &m.FeeFinalizedAt, &m.Allocated, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found", earningID))
		}
		return nil, fmt.Errorf("failed to find earning %s: %w", earningID, err)
	}
	earning := mapping.ToDomainEarning(m)
	return &earning, nil
}

// FinalizePlatformFee sets the fee only while fee_finalized_at is NULL.
func (r *PgxEarningRepository) FinalizePlatformFee(ctx context.Context, earningID string, fee decimal.Decimal, at time.Time) error {
	query := `
		UPDATE earnings SET platform_fee = $2, fee_finalized_at = $3
		WHERE earning_id = $1 AND fee_finalized_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, earningID, fee, at)
	if err != nil {
		return fmt.Errorf("failed to finalize platform fee for earning %s: %w", earningID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM earnings WHERE earning_id = $1);`, earningID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check earning %s: %w", earningID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("earning %s not found", earningID))
	}
	return apperrors.NewConflictError(fmt.Sprintf("platform fee for earning %s already finalized", earningID))
}
