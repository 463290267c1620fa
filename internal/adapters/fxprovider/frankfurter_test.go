package fxprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrankfurter_GetLatest_RebasesFromEUR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		// The upstream is always queried in its native EUR base.
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		w.Write([]byte(`{"date":"2025-06-02","rates":{"USD":1.25,"GBP":0.8}}`))
	}))
	defer server.Close()

	provider := NewFrankfurterProvider(testClient(t, server.URL, 0))
	snapshot, err := provider.GetLatest(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, FrankfurterName, snapshot.Source)
	assert.Equal(t, "USD", snapshot.Base)

	usd, ok := snapshot.Rate("USD")
	require.True(t, ok)
	assert.True(t, usd.Equal(decimal.NewFromInt(1)))

	eur, ok := snapshot.Rate("EUR")
	require.True(t, ok)
	assert.True(t, eur.Equal(decimal.RequireFromString("0.8")), "EUR = 1/1.25, got %s", eur)

	gbp, ok := snapshot.Rate("GBP")
	require.True(t, ok)
	assert.True(t, gbp.Equal(decimal.RequireFromString("0.64")), "GBP = 0.8/1.25, got %s", gbp)
}

func TestFrankfurter_GetLatest_EURBaseServedDirectly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-06-02","rates":{"USD":1.25}}`))
	}))
	defer server.Close()

	provider := NewFrankfurterProvider(testClient(t, server.URL, 0))
	snapshot, err := provider.GetLatest(context.Background(), "EUR")

	require.NoError(t, err)
	assert.Equal(t, "EUR", snapshot.Base)
	usd, ok := snapshot.Rate("USD")
	require.True(t, ok)
	assert.True(t, usd.Equal(decimal.RequireFromString("1.25")))
}

func TestFrankfurter_GetLatest_MissingTargetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-06-02","rates":{"GBP":0.8}}`))
	}))
	defer server.Close()

	provider := NewFrankfurterProvider(testClient(t, server.URL, 0))
	_, err := provider.GetLatest(context.Background(), "USD")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrCodeRebase, provErr.Code)
}

func TestFrankfurter_GetHistory_DerivesCrossRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		w.Write([]byte(`{"rates":{
			"2025-06-02":{"USD":1.25,"GBP":0.8},
			"2025-05-30":{"USD":1.20,"GBP":0.9}
		}}`))
	}))
	defer server.Close()

	provider := NewFrankfurterProvider(testClient(t, server.URL, 0))
	series, err := provider.GetHistory(context.Background(), "USD", "GBP", 7)

	require.NoError(t, err)
	assert.Equal(t, "USD", series.Base)
	assert.Equal(t, "GBP", series.Symbol)
	require.Len(t, series.Points, 2)
	assert.True(t, series.Points[0].Rate.Equal(decimal.RequireFromString("0.75")), "0.9/1.2, got %s", series.Points[0].Rate)
	assert.True(t, series.Points[1].Rate.Equal(decimal.RequireFromString("0.64")), "0.8/1.25, got %s", series.Points[1].Rate)
}
