package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/royalty_settlement_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxRoyaltyRepository struct {
	db querier
}

func newPgxRoyaltyRepository(db querier) portsrepo.RoyaltyRepositoryFacade {
	return &PgxRoyaltyRepository{db: db}
}

var (
	_ portsrepo.RoyaltyRepositoryFacade = (*PgxRoyaltyRepository)(nil)
	_ portsrepo.RoyaltyTxWriter         = (*PgxRoyaltyRepository)(nil)
)

func (r *PgxRoyaltyRepository) SaveRoyalty(ctx context.Context, royalty domain.Royalty) error {
	m := mapping.ToModelRoyalty(royalty)
	query := `
		INSERT INTO royalties (royalty_id, artist_id, release_id, earning_id, percentage, amount, description, recorded_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := r.db.Exec(ctx, query,
		m.RoyaltyID, m.ArtistID, m.ReleaseID, m.EarningID, m.Percentage, m.Amount,
		m.Description, m.RecordedDate, m.CreatedAt, m.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to save royalty %s: %w", m.RoyaltyID, err)
	}
	return nil
}

func (r *PgxRoyaltyRepository) SumRoyaltiesByEarning(ctx context.Context, earningID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM royalties WHERE earning_id = $1;`
	if err := r.db.QueryRow(ctx, query, earningID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum royalties for earning %s: %w", earningID, err)
	}
	return sum, nil
}
