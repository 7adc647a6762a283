package api

import (
	"net/http"

	"storefront-api/internal/catalog"
	"storefront-api/internal/response"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the full catalog.
// GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	response.SuccessJSON(c, catalog.All())
}

// GetProduct returns a single catalog product.
// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := catalog.Get(c.Param("id"))
	if !ok {
		response.ErrorJSON(c, http.StatusNotFound, "Product not found")
		return
	}
	response.SuccessJSON(c, product)
}
