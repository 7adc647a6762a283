package models

import "time"

// Discount types supported by coupons
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon represents a discount rule applied to a base price before
// checkout. Codes are stored uppercase and matched case-insensitively.
// ExpiresAt, MaxDiscount and UsageLimit are optional; a zero UsageLimit
// means unlimited redemptions.
type Coupon struct {
	BaseModel

	Code         string     `json:"code" gorm:"uniqueIndex;not null;size:50"`
	DiscountType string     `json:"discount_type" gorm:"not null;size:20"` // percentage or fixed
	Value        float64    `json:"value" gorm:"not null"`
	MaxDiscount  float64    `json:"max_discount"`
	ExpiresAt    *time.Time `json:"expires_at"`
	UsageLimit   int        `json:"usage_limit"`
	UsageCount   int        `json:"usage_count" gorm:"default:0"`
	Active       bool       `json:"active" gorm:"default:true;index"`
}
