package pgsql

import (
	portsrepo "github.com/SscSPs/royalty_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReleaseRepo:  newPgxReleaseRepository(dbPool),
		EarningRepo:  newPgxEarningRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
		RoyaltyRepo:  newPgxRoyaltyRepository(dbPool),
		ArtistRepo:   newPgxArtistRepository(dbPool),
		SubLabelRepo: newPgxSubLabelRepository(dbPool),
		UnitOfWork:   newPgxUnitOfWork(dbPool),
	}
}
