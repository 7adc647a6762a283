package api

import (
	"net/http"

	"storefront-api/internal/response"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// ListPurchases returns the purchases for a customer email, newest
// first.
// GET /api/purchases?email=
func (h *Handler) ListPurchases(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ErrorJSON(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	purchases, err := h.Purchases.ListPurchasesByEmail(email)
	if err != nil {
		logging.Errorf("Purchase listing failed for %s: %v", email, err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to list purchases")
		return
	}

	response.SuccessJSON(c, purchases)
}

// GetPurchaseBySession returns the purchase recorded for a checkout
// session id. The success page polls this until the webhook lands.
// GET /api/purchases/session/:id
func (h *Handler) GetPurchaseBySession(c *gin.Context) {
	purchase, err := h.Purchases.FindPurchaseBySessionID(c.Param("id"))
	if err != nil {
		logging.Errorf("Purchase lookup failed for session %s: %v", c.Param("id"), err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to look up purchase")
		return
	}
	if purchase == nil {
		response.ErrorJSON(c, http.StatusNotFound, "Purchase not found")
		return
	}

	response.SuccessJSON(c, purchase)
}
