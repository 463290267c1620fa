package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/middleware"
)

// rateHandler handles HTTP requests for rate snapshots and refreshes.
type rateHandler struct {
	rateService portssvc.RateOrchestratorSvcFacade
}

func newRateHandler(rs portssvc.RateOrchestratorSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to FX rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateOrchestratorSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/latest", h.getLatestRates)
		rates.GET("/health", h.getRateHealth)
	}
}

// refreshRates triggers a manual refresh through the throttle gate. A call
// inside the cooldown window returns 429 with a Retry-After header.
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.rateService.RefreshManual(c.Request.Context())
	if err != nil {
		var throttled *apperrors.ThrottledError
		if errors.As(err, &throttled) {
			retryAfter := int(throttled.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Refresh throttled. Please try again later."})
			return
		}
		if errors.Is(err, apperrors.ErrRatesUnavailable) {
			logger.Error("Refresh failed with no snapshot available", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Rate providers are unavailable and no cached snapshot exists"})
			return
		}
		logger.Error("Failed to refresh rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRefreshResponse(result))
}

// getLatestRates returns the latest snapshot, rebased on demand to the
// base query parameter (canonical base when absent).
func (h *rateHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	viewBase := c.Query("base")

	snapshot, err := h.rateService.GetSnapshot(c.Request.Context(), viewBase)
	if err != nil {
		if errors.Is(err, apperrors.ErrRatesUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No rate snapshot available yet"})
			return
		}
		var missing *apperrors.MissingQuoteError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": missing.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// getRateHealth reports snapshot provenance without triggering a fetch.
func (h *rateHandler) getRateHealth(c *gin.Context) {
	status := h.rateService.Health(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToRateHealthResponse(status))
}
