package api

import (
	"net/http"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/response"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// CreateCouponRequest is the body of POST /api/admin/coupons.
type CreateCouponRequest struct {
	Code         string     `json:"code" binding:"required"`
	DiscountType string     `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value        float64    `json:"value" binding:"required,gt=0"`
	MaxDiscount  float64    `json:"max_discount" binding:"gte=0"`
	ExpiresAt    *time.Time `json:"expires_at"`
	UsageLimit   int        `json:"usage_limit" binding:"gte=0"`
}

// CreateCoupon creates a new coupon.
// POST /api/admin/coupons
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	coupon := &models.Coupon{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		MaxDiscount:  req.MaxDiscount,
		ExpiresAt:    req.ExpiresAt,
		UsageLimit:   req.UsageLimit,
		Active:       true,
	}

	if err := h.AdminDB.CreateCoupon(coupon); err != nil {
		logging.Errorf("Coupon creation failed for %s: %v", req.Code, err)
		response.ErrorJSON(c, http.StatusBadRequest, "Failed to create coupon: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Success: true,
		Message: "Coupon created successfully",
		Data:    coupon,
	})
}

// ListCoupons returns every coupon with its usage counter.
// GET /api/admin/coupons
func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.AdminDB.ListCoupons()
	if err != nil {
		logging.Errorf("Coupon listing failed: %v", err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to list coupons")
		return
	}
	response.SuccessJSON(c, coupons)
}
