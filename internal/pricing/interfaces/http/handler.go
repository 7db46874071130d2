// Package http exposes the pricing engine over a small gin API.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/white07S/OptionPricing/internal/pricing/application"
	"github.com/white07S/OptionPricing/internal/pricing/domain"
	"github.com/white07S/OptionPricing/pkg/logger"
)

// PricingHandler adapts application.PricingService to gin.
type PricingHandler struct {
	svc *application.PricingService
}

// NewPricingHandler builds a handler around svc.
func NewPricingHandler(svc *application.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// RegisterRoutes wires this handler's endpoints onto router.
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/price", h.Price)
	}
}

// Price prices a single option contract against the supplied market data.
func (h *PricingHandler) Price(c *gin.Context) {
	var req application.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Price(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func writeError(c *gin.Context, err error) {
	log := logger.FromContext(c.Request.Context())

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		status := statusForKind(domainErr.Kind)
		if status >= http.StatusInternalServerError {
			log.Error("pricing request failed", "kind", domainErr.Kind.String(), "error", err)
		} else {
			log.Warn("pricing request rejected", "kind", domainErr.Kind.String(), "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error(), "kind": domainErr.Kind.String()})
		return
	}

	log.Error("pricing request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func statusForKind(k domain.Kind) int {
	switch k {
	case domain.InvalidArgument, domain.NullInput, domain.UnsupportedExerciseFamily:
		return http.StatusBadRequest
	case domain.WorkerFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
