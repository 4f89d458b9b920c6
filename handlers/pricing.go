package handlers

import (
	"net/http"

	"rideconnect/models"
	"rideconnect/services/pricing"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	Estimator *pricing.FareEstimator
}

func NewPricingHandler(estimator *pricing.FareEstimator) *PricingHandler {
	return &PricingHandler{Estimator: estimator}
}

// QuoteHandler always answers with a usable price; status tells the client
// whether it came from live routing, a local estimate or the emergency fallback.
func (h *PricingHandler) QuoteHandler(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result := h.Estimator.Quote(c.Request.Context(), req)
	body := gin.H{
		"status": result.Status,
		"price":  result.Price(),
	}
	if result.Quote != nil {
		body["quote"] = result.Quote
		body["display"] = h.Estimator.Policy().FormatQuote(*result.Quote)
	}
	if len(result.Reasons) > 0 {
		body["reasons"] = result.Reasons
	}
	if result.Err != nil {
		body["error"] = result.Err.Message
		body["fallbackPrice"] = result.Err.FallbackPrice
	}
	c.JSON(http.StatusOK, body)
}
