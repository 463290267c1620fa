package services

// ServiceContainer holds instances of all the application services. Handlers
// and the scheduler receive this one container instead of individual wiring.
type ServiceContainer struct {
	Currency  CurrencySvcFacade
	Rates     RateOrchestratorSvcFacade
	Portfolio PortfolioSvcFacade
	Valuation ValuationSvcFacade
}
