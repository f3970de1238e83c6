package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ReleaseRepo  ReleaseRepositoryFacade
	EarningRepo  EarningRepositoryFacade
	ExpenseRepo  ExpenseRepositoryFacade
	RoyaltyRepo  RoyaltyRepositoryFacade
	ArtistRepo   ArtistRepositoryFacade
	SubLabelRepo SubLabelRepositoryFacade
	UnitOfWork   SettlementUnitOfWork
}
