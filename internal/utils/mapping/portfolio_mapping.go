package mapping

import (
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/models"
)

// ToModelPortfolio converts a domain Portfolio to a model Portfolio.
func ToModelPortfolio(d domain.Portfolio) models.Portfolio {
	return models.Portfolio{
		PortfolioID:      d.PortfolioID,
		Name:             d.Name,
		BaseCurrencyCode: d.BaseCurrencyCode,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainPortfolio converts a model Portfolio to a domain Portfolio.
func ToDomainPortfolio(m models.Portfolio) domain.Portfolio {
	return domain.Portfolio{
		PortfolioID:      m.PortfolioID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelPosition converts a domain Position to a model Position.
func ToModelPosition(d domain.Position) models.Position {
	return models.Position{
		PositionID:   d.PositionID,
		PortfolioID:  d.PortfolioID,
		CurrencyCode: d.CurrencyCode,
		Amount:       d.Amount,
		Side:         string(d.Side),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainPosition converts a model Position to a domain Position.
func ToDomainPosition(m models.Position) domain.Position {
	return domain.Position{
		PositionID:   m.PositionID,
		PortfolioID:  m.PortfolioID,
		CurrencyCode: m.CurrencyCode,
		Amount:       m.Amount,
		Side:         domain.PositionSide(m.Side),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
