package services

import (
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/adapters/fxprovider"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, primary, fallback fxprovider.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency service first since portfolio and valuation depend on it
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Rates = NewRateOrchestratorService(
		primary,
		fallback,
		repos.FxRateRepo,
		cfg.CanonicalBase,
		cfg.RefreshThrottle,
	)

	container.Portfolio = NewPortfolioService(repos.PortfolioRepo, container.Currency)
	container.Valuation = NewValuationService(repos.PortfolioRepo, container.Rates, container.Currency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade         = (*CurrencyService)(nil)
	_ portssvc.RateOrchestratorSvcFacade = (*RateOrchestratorService)(nil)
	_ portssvc.PortfolioSvcFacade        = (*PortfolioService)(nil)
	_ portssvc.ValuationSvcFacade        = (*ValuationService)(nil)
)
