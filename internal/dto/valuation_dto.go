package dto

import (
	"time"

	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/utils/fxmath"
)

// PortfolioValueResponse is a portfolio valuation serialized for the API.
type PortfolioValueResponse struct {
	PortfolioID     string              `json:"portfolioID"`
	PortfolioBase   string              `json:"portfolioBase"`
	ViewBase        string              `json:"viewBase"`
	Value           string              `json:"value"`
	Priced          int                 `json:"priced"`
	Unpriced        int                 `json:"unpriced"`
	UnpricedReasons map[string][]string `json:"unpricedReasons"`
	AsOf            *time.Time          `json:"asOf"`
	Source          string              `json:"source,omitempty"`
}

// ToPortfolioValueResponse converts a domain.PortfolioValuation to its API shape.
func ToPortfolioValueResponse(v *domain.PortfolioValuation) PortfolioValueResponse {
	return PortfolioValueResponse{
		PortfolioID:     v.PortfolioID,
		PortfolioBase:   v.PortfolioBase,
		ViewBase:        v.ViewBase,
		Value:           fxmath.FormatAmount(v.Value),
		Priced:          v.Priced,
		Unpriced:        v.Unpriced,
		UnpricedReasons: v.UnpricedReasons,
		AsOf:            v.AsOf,
		Source:          v.Source,
	}
}

// ExposureEntryResponse is one currency's contribution to a portfolio.
type ExposureEntryResponse struct {
	CurrencyCode string `json:"currencyCode"`
	NativeAmount string `json:"nativeAmount"`
	BaseValue    string `json:"baseValue"`
}

// PortfolioExposureResponse is a per-currency breakdown in a view base.
type PortfolioExposureResponse struct {
	PortfolioID string                  `json:"portfolioID"`
	ViewBase    string                  `json:"viewBase"`
	AsOf        *time.Time              `json:"asOf"`
	Exposures   []ExposureEntryResponse `json:"exposures"`
	Unpriced    int                     `json:"unpriced"`
}

// ToPortfolioExposureResponse converts a domain.PortfolioExposure to its API shape.
func ToPortfolioExposureResponse(e *domain.PortfolioExposure) PortfolioExposureResponse {
	entries := make([]ExposureEntryResponse, len(e.Exposures))
	for i, entry := range e.Exposures {
		entries[i] = ExposureEntryResponse{
			CurrencyCode: entry.CurrencyCode,
			NativeAmount: fxmath.FormatAmount(entry.NativeAmount),
			BaseValue:    fxmath.FormatAmount(entry.BaseValue),
		}
	}
	return PortfolioExposureResponse{
		PortfolioID: e.PortfolioID,
		ViewBase:    e.ViewBase,
		AsOf:        e.AsOf,
		Exposures:   entries,
		Unpriced:    e.Unpriced,
	}
}
