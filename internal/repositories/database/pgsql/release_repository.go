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

type PgxReleaseRepository struct {
	db querier
}

func newPgxReleaseRepository(db querier) portsrepo.ReleaseRepositoryFacade {
	return &PgxReleaseRepository{db: db}
}

var _ portsrepo.ReleaseRepositoryFacade = (*PgxReleaseRepository)(nil)

const releaseColumns = `release_id, brand_id, catalog_number, title, created_at, created_by`

func scanRelease(row pgx.Row) (domain.Release, error) {
	var r domain.Release
	err := row.Scan(&r.ReleaseID, &r.BrandID, &r.CatalogNumber, &r.Title, &r.CreatedAt, &r.CreatedBy)
	return r, err
}

// FindReleaseByID retrieves a release within one brand.
func (r *PgxReleaseRepository) FindReleaseByID(ctx context.Context, brandID, releaseID string) (*domain.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE release_id = $1 AND brand_id = $2;`
	release, err := scanRelease(r.db.QueryRow(ctx, query, releaseID, brandID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("release %s not found", releaseID))
		}
		return nil, fmt.Errorf("failed to find release %s: %w", releaseID, err)
	}
	return &release, nil
}

func (r *PgxReleaseRepository) ListReleasesByBrand(ctx context.Context, brandID string) ([]domain.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE brand_id = $1 ORDER BY created_at, release_id;`
	rows, err := r.db.Query(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases for brand %s: %w", brandID, err)
	}
	defer rows.Close()

	releases := []domain.Release{}
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan release row: %w", err)
		}
		releases = append(releases, release)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating release rows: %w", err)
	}
	return releases, nil
}

// ListSplitsByRelease returns the artist roster in a stable order so allocation output is deterministic.
func (r *PgxReleaseRepository) ListSplitsByRelease(ctx context.Context, releaseID string) ([]domain.ReleaseArtistSplit, error) {
	query := `
		SELECT release_id, artist_id,
		       streaming_percentage, sync_percentage, download_percentage, physical_percentage,
		       streaming_type, sync_type, download_type, physical_type
		FROM release_artists
		WHERE release_id = $1
		ORDER BY artist_id;
	`
	rows, err := r.db.Query(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits for release %s: %w", releaseID, err)
	}
	defer rows.Close()

	splits := []domain.ReleaseArtistSplit{}
	for rows.Next() {
		var s domain.ReleaseArtistSplit
		if err := rows.Scan(
			&s.ReleaseID, &s.ArtistID,
			&s.StreamingPercentage, &s.SyncPercentage, &s.DownloadPercentage, &s.PhysicalPercentage,
			&s.StreamingType, &s.SyncType, &s.DownloadType, &s.PhysicalType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits = append(splits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", err)
	}
	return splits, nil
}
