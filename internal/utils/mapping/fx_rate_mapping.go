package mapping

import (
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/domain"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/models"
)

// ToModelFxRate converts a domain FxRate to a model FxRate.
func ToModelFxRate(d domain.FxRate) models.FxRate {
	return models.FxRate{
		BaseCurrencyCode:   d.BaseCurrencyCode,
		TargetCurrencyCode: d.TargetCurrencyCode,
		Timestamp:          d.Timestamp,
		Rate:               d.Rate,
		Source:             d.Source,
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate.
func ToDomainFxRate(m models.FxRate) domain.FxRate {
	return domain.FxRate{
		BaseCurrencyCode:   m.BaseCurrencyCode,
		TargetCurrencyCode: m.TargetCurrencyCode,
		Timestamp:          m.Timestamp,
		Rate:               m.Rate,
		Source:             m.Source,
	}
}

// SnapshotToFxRates flattens a snapshot into persistable rows, one per target
// currency including the reflexive base row.
func SnapshotToFxRates(snapshot *domain.RateSnapshot) []domain.FxRate {
	rows := make([]domain.FxRate, 0, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		rows = append(rows, domain.FxRate{
			BaseCurrencyCode:   snapshot.Base,
			TargetCurrencyCode: code,
			Timestamp:          snapshot.AsOf,
			Rate:               rate,
			Source:             snapshot.Source,
		})
	}
	return rows
}
