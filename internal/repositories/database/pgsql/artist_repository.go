package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/royalty_settlement_app/internal/apperrors"
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxArtistRepository struct {
	db querier
}

func newPgxArtistRepository(db querier) portsrepo.ArtistRepositoryFacade {
	return &PgxArtistRepository{db: db}
}

var _ portsrepo.ArtistRepositoryFacade = (*PgxArtistRepository)(nil)

const artistColumns = `a.artist_id, a.brand_id, a.name, a.email, a.payout_point, a.hold_payouts, a.created_at`

// artistTotalsQuery aggregates every artist's royalties, payments and payout methods.
// Payments are summed gross; processing fees are the label's cost.
const artistTotalsQuery = `
	SELECT ` + artistColumns + `,
	       COALESCE((SELECT SUM(ro.amount) FROM royalties ro WHERE ro.artist_id = a.artist_id), 0),
	       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.artist_id = a.artist_id), 0),
	       (SELECT COUNT(*) FROM payment_methods pm WHERE pm.artist_id = a.artist_id)
	FROM artists a
	WHERE a.brand_id = $1`

func scanArtist(row pgx.Row, a *domain.Artist, extra ...any) error {
	dest := append([]any{&a.ArtistID, &a.BrandID, &a.Name, &a.Email, &a.PayoutPoint, &a.HoldPayouts, &a.CreatedAt}, extra...)
	return row.Scan(dest...)
}

func scanArtistTotals(row pgx.Row) (domain.ArtistLedgerTotals, error) {
	var t domain.ArtistLedgerTotals
	err := scanArtist(row, &t.Artist, &t.TotalRoyalties, &t.TotalPayments, &t.PaymentMethodCount)
	return t, err
}

func (r *PgxArtistRepository) FindArtistByID(ctx context.Context, brandID, artistID string) (*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists a WHERE a.artist_id = $1 AND a.brand_id = $2;`
	var a domain.Artist
	if err := scanArtist(r.db.QueryRow(ctx, query, artistID, brandID), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("artist %s not found", artistID))
		}
		return nil, fmt.Errorf("failed to find artist %s: %w", artistID, err)
	}
	return &a, nil
}

func (r *PgxArtistRepository) FindArtistLedgerTotals(ctx context.Context, brandID, artistID string) (*domain.ArtistLedgerTotals, error) {
	totals, err := scanArtistTotals(r.db.QueryRow(ctx, artistTotalsQuery+` AND a.artist_id = $2;`, brandID, artistID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("artist %s not found", artistID))
		}
		return nil, fmt.Errorf("failed to load ledger totals for artist %s: %w", artistID, err)
	}
	return &totals, nil
}

func (r *PgxArtistRepository) ListArtistLedgerTotals(ctx context.Context, brandID string) ([]domain.ArtistLedgerTotals, error) {
	rows, err := r.db.Query(ctx, artistTotalsQuery+` ORDER BY a.created_at, a.artist_id;`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artist ledger totals for brand %s: %w", brandID, err)
	}
	defer rows.Close()

	out := []domain.ArtistLedgerTotals{}
	for rows.Next() {
		t, err := scanArtistTotals(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist totals row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artist totals rows: %w", err)
	}
	return out, nil
}
