package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository to the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
		FxRateRepo:    newPgxFxRateRepository(dbPool),
		PortfolioRepo: newPgxPortfolioRepository(dbPool),
	}
}
