package api

import (
	"errors"
	"net/http"

	"storefront-api/internal/services"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// Stripe signs the raw body; anything larger than this is rejected
// before processing.
const maxWebhookBodyBytes = 1 << 20 // 1 MB

// StripeWebhook receives signed Stripe events. The body is read raw and
// never pre-parsed, since the signature covers its exact bytes.
// POST /api/webhook/stripe
func (h *Handler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		logging.Errorf("Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.Webhooks.HandleEvent(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, services.ErrInvalidSignature) {
			logging.Errorf("Webhook signature verification failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid signature",
			})
			return
		}
		logging.Errorf("Webhook processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Webhook processing failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
	})
}
