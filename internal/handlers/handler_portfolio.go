package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/apperrors"
	portssvc "github.com/umutdinceryananer/FX-Risk-Calculator/internal/core/ports/services"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/dto"
	"github.com/umutdinceryananer/FX-Risk-Calculator/internal/middleware"
)

// portfolioHandler handles HTTP requests for portfolios, positions and
// derived valuations.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
	valuationService portssvc.ValuationSvcFacade
}

func newPortfolioHandler(ps portssvc.PortfolioSvcFacade, vs portssvc.ValuationSvcFacade) *portfolioHandler {
	return &portfolioHandler{
		portfolioService: ps,
		valuationService: vs,
	}
}

// registerPortfolioRoutes registers routes related to portfolios.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvcFacade, valuationService portssvc.ValuationSvcFacade) {
	h := newPortfolioHandler(portfolioService, valuationService)

	portfolios := rg.Group("/portfolios")
	{
		portfolios.POST("", h.createPortfolio)
		portfolios.GET("", h.listPortfolios)
		portfolios.GET("/:id", h.getPortfolio)
		portfolios.DELETE("/:id", h.deletePortfolio)

		portfolios.POST("/:id/positions", h.addPosition)
		portfolios.GET("/:id/positions", h.listPositions)
		portfolios.DELETE("/:id/positions/:positionID", h.removePosition)

		portfolios.GET("/:id/value", h.getPortfolioValue)
		portfolios.GET("/:id/exposure", h.getPortfolioExposure)
	}
}

func (h *portfolioHandler) createPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePortfolio", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A portfolio with this name already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create portfolio", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portfolio"})
		}
		return
	}

	logger.Info("Portfolio created successfully", slog.String("portfolio_id", portfolio.PortfolioID))
	c.JSON(http.StatusCreated, dto.ToPortfolioResponse(portfolio))
}

func (h *portfolioHandler) listPortfolios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	portfolios, err := h.portfolioService.ListPortfolios(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list portfolios", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list portfolios"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPortfolioResponse(portfolios))
}

func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		} else {
			logger.Error("Failed to get portfolio", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve portfolio"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioResponse(portfolio))
}

func (h *portfolioHandler) deletePortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		} else {
			logger.Error("Failed to delete portfolio", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete portfolio"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *portfolioHandler) addPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	var req dto.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddPosition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	position, err := h.portfolioService.AddPosition(c.Request.Context(), portfolioID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add position", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add position"})
		}
		return
	}

	logger.Info("Position added successfully",
		slog.String("portfolio_id", portfolioID),
		slog.String("position_id", position.PositionID))
	c.JSON(http.StatusCreated, dto.ToPositionResponse(position))
}

func (h *portfolioHandler) listPositions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")

	positions, err := h.portfolioService.ListPositions(c.Request.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		} else {
			logger.Error("Failed to list positions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list positions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListPositionResponse(positions))
}

func (h *portfolioHandler) removePosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")
	positionID := c.Param("positionID")

	if err := h.portfolioService.RemovePosition(c.Request.Context(), portfolioID, positionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		} else {
			logger.Error("Failed to remove position", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove position"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *portfolioHandler) getPortfolioValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")
	viewBase := c.Query("base")

	valuation, err := h.valuationService.PortfolioValue(c.Request.Context(), portfolioID, viewBase)
	if err != nil {
		h.handleValuationError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioValueResponse(valuation))
}

func (h *portfolioHandler) getPortfolioExposure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	portfolioID := c.Param("id")
	viewBase := c.Query("base")

	exposure, err := h.valuationService.PortfolioExposure(c.Request.Context(), portfolioID, viewBase)
	if err != nil {
		h.handleValuationError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortfolioExposureResponse(exposure))
}

func (h *portfolioHandler) handleValuationError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		return
	}
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
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Valuation request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute valuation"})
}
