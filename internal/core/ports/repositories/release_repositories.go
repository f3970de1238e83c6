package repositories

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
)

// ReleaseReader defines tenant-scoped release lookups.
type ReleaseReader interface {
	// FindReleaseByID returns apperrors.ErrNotFound if the release does not exist within brandID.
	FindReleaseByID(ctx context.Context, brandID, releaseID string) (*domain.Release, error)

	// ListReleasesByBrand returns every release of a tenant, ordered by creation time.
	ListReleasesByBrand(ctx context.Context, brandID string) ([]domain.Release, error)
}

// SplitReader reads the artist roster of a release.
type SplitReader interface {
	ListSplitsByRelease(ctx context.Context, releaseID string) ([]domain.ReleaseArtistSplit, error)
}

// ReleaseRepositoryFacade combines release reads.
type ReleaseRepositoryFacade interface {
	ReleaseReader
	SplitReader
}
