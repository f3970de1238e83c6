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

type PgxSubLabelRepository struct {
	db querier
}

func newPgxSubLabelRepository(db querier) portsrepo.SubLabelRepositoryFacade {
	return &PgxSubLabelRepository{db: db}
}

var _ portsrepo.SubLabelRepositoryFacade = (*PgxSubLabelRepository)(nil)

// subLabelTotalsQuery sums the music ledgers of releases owned by the sub-label
// together with the event and payout tables the ticketing side writes.
const subLabelTotalsQuery = `
	SELECT b.brand_id, b.parent_brand_id, b.name, b.created_at,
	       COALESCE((SELECT SUM(e.amount) FROM earnings e JOIN releases r ON r.release_id = e.release_id WHERE r.brand_id = b.brand_id), 0),
	       COALESCE((SELECT SUM(ro.amount) FROM royalties ro JOIN releases r ON r.release_id = ro.release_id WHERE r.brand_id = b.brand_id), 0),
	       COALESCE((SELECT SUM(e.platform_fee) FROM earnings e JOIN releases r ON r.release_id = e.release_id WHERE r.brand_id = b.brand_id), 0),
	       COALESCE((SELECT SUM(es.gross_amount) FROM event_sales es WHERE es.brand_id = b.brand_id), 0),
	       COALESCE((SELECT SUM(es.platform_fee) FROM event_sales es WHERE es.brand_id = b.brand_id), 0),
	       COALESCE((SELECT SUM(lp.amount) FROM label_payments lp WHERE lp.brand_id = b.brand_id), 0),
	       (SELECT COUNT(*) FROM label_payout_destinations d WHERE d.brand_id = b.brand_id)
	FROM brands b
	WHERE b.parent_brand_id = $1`

func scanSubLabelTotals(row pgx.Row) (domain.SubLabelLedgerTotals, error) {
	var out domain.SubLabelLedgerTotals
	sl, t := &out.SubLabel, &out.Totals
	err := row.Scan(
		&sl.SubLabelID, &sl.ParentBrandID, &sl.Name, &sl.CreatedAt,
		&t.GrossMusicEarnings, &t.RoyaltiesPaid, &t.PlatformFees,
		&t.EventGrossSales, &t.EventPlatformFees, &t.LabelPaymentsReceived, &t.PayoutDestinationCount,
	)
	return out, err
}

func (r *PgxSubLabelRepository) FindSubLabelLedgerTotals(ctx context.Context, parentBrandID, subLabelID string) (*domain.SubLabelLedgerTotals, error) {
	totals, err := scanSubLabelTotals(r.db.QueryRow(ctx, subLabelTotalsQuery+` AND b.brand_id = $2;`, parentBrandID, subLabelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("sub-label %s not found", subLabelID))
		}
		return nil, fmt.Errorf("failed to load ledger totals for sub-label %s: %w", subLabelID, err)
	}
	return &totals, nil
}

func (r *PgxSubLabelRepository) ListSubLabelLedgerTotals(ctx context.Context, parentBrandID string) ([]domain.SubLabelLedgerTotals, error) {
	rows, err := r.db.Query(ctx, subLabelTotalsQuery+` ORDER BY b.created_at, b.brand_id;`, parentBrandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-labels of brand %s: %w", parentBrandID, err)
	}
	defer rows.Close()

	out := []domain.SubLabelLedgerTotals{}
	for rows.Next() {
		t, err := scanSubLabelTotals(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-label totals row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-label totals rows: %w", err)
	}
	return out, nil
}
