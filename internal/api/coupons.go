package api

import (
	"errors"
	"net/http"

	"storefront-api/internal/response"
	"storefront-api/internal/services"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// ValidateCouponRequest is the body of POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code      string  `json:"code" binding:"required"`
	BasePrice float64 `json:"basePrice" binding:"required,gt=0"`
}

// ValidateCouponResponse carries the discount for a valid coupon.
type ValidateCouponResponse struct {
	CouponID       uint    `json:"coupon_id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// ValidateCoupon evaluates a coupon code against a base price. No usage
// is consumed here; the counter moves when the purchase completes.
// POST /api/coupons/validate
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, coupon, err := h.Coupons.Validate(c.Request.Context(), req.Code, req.BasePrice)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCoupon),
			errors.Is(err, services.ErrCouponExpired),
			errors.Is(err, services.ErrCouponLimitReached):
			response.ErrorJSON(c, http.StatusBadRequest, err.Error())
		default:
			logging.Errorf("Coupon validation failed for %s: %v", req.Code, err)
			response.ErrorJSON(c, http.StatusInternalServerError, "Failed to validate coupon")
		}
		return
	}

	response.SuccessJSON(c, ValidateCouponResponse{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountAmount: result.DiscountAmount,
		FinalPrice:     result.FinalPrice,
	})
}
