package repositories

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
)

// ArtistReader reads artist records.
type ArtistReader interface {
	// FindArtistByID returns apperrors.ErrNotFound if the artist does not exist within brandID.
	FindArtistByID(ctx context.Context, brandID, artistID string) (*domain.Artist, error)
}

// ArtistLedgerReader returns the royalty, payment and payment-method sums per artist.
type ArtistLedgerReader interface {
	FindArtistLedgerTotals(ctx context.Context, brandID, artistID string) (*domain.ArtistLedgerTotals, error)

	// ListArtistLedgerTotals returns totals for every artist of the tenant in one pass.
	ListArtistLedgerTotals(ctx context.Context, brandID string) ([]domain.ArtistLedgerTotals, error)
}

// ArtistRepositoryFacade combines artist reads.
type ArtistRepositoryFacade interface {
	ArtistReader
	ArtistLedgerReader
}
