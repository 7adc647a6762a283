package api

import (
	"errors"
	"net/http"

	"storefront-api/internal/services"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutSessionRequest is the body of POST /api/create-checkout-session.
type CreateCheckoutSessionRequest struct {
	PriceID        string  `json:"priceId"`
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	CustomerEmail  string  `json:"customerEmail"`
	SuccessURL     string  `json:"successUrl"`
	CancelURL      string  `json:"cancelUrl"`
	CouponID       string  `json:"couponId"`
	DiscountAmount float64 `json:"discountAmount"`
}

// CreateCheckoutSession opens a hosted checkout session for a catalog
// product.
// POST /api/create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.ProductID == "" || req.ProductName == "" || req.CustomerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: productId, productName, customerEmail",
		})
		return
	}

	sessionID, err := h.Checkout.CreateSession(services.CheckoutRequest{
		PriceID:        req.PriceID,
		ProductID:      req.ProductID,
		ProductName:    req.ProductName,
		CustomerEmail:  req.CustomerEmail,
		SuccessURL:     req.SuccessURL,
		CancelURL:      req.CancelURL,
		CouponID:       req.CouponID,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnknownProduct) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown product: " + req.ProductID,
			})
			return
		}
		logging.Errorf("Checkout session creation failed for %s: %v", req.CustomerEmail, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create checkout session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
	})
}
