package api

import (
	"storefront-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/create-checkout-session", h.CreateCheckoutSession)
		api.POST("/webhook/stripe", h.StripeWebhook)

		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)

		api.POST("/coupons/validate", h.ValidateCoupon)

		api.GET("/purchases", h.ListPurchases)
		api.GET("/purchases/session/:id", h.GetPurchaseBySession)

		api.GET("/notifications", h.ListNotifications)

		calculators := api.Group("/calculators")
		{
			calculators.POST("/mortgage", h.MortgageCalculator)
			calculators.POST("/debt-payoff", h.DebtPayoffCalculator)
			calculators.POST("/savings-goal", h.SavingsGoalCalculator)
			calculators.POST("/compound-interest", h.CompoundInterestCalculator)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(h.Config.AdminAPIKey))
		{
			admin.POST("/coupons", h.CreateCoupon)
			admin.GET("/coupons", h.ListCoupons)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "storefront-api",
		})
	})
}
