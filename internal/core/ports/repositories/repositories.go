package repositories

// RepositoryProvider holds instances of all repository facades. The database
// layer builds one and services consume it, keeping wiring in a single place.
type RepositoryProvider struct {
	CurrencyRepo  CurrencyRepositoryFacade
	FxRateRepo    FxRateRepositoryFacade
	PortfolioRepo PortfolioRepositoryFacade
}
