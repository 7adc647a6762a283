package models

// PurchaseStatus is the settled state of a payment for a purchase row.
type PurchaseStatus string

const (
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
)

// Purchase is the local record of a completed or failed payment for a
// specific product and user. The Stripe session id carries a unique index
// so webhook redelivery cannot create a second row for the same checkout.
type Purchase struct {
	BaseModel

	UserID          uint           `json:"user_id" gorm:"not null;index"`
	ProductID       string         `json:"product_id" gorm:"not null;size:100;index"`
	ProductName     string         `json:"product_name" gorm:"size:200"`
	Amount          float64        `json:"amount" gorm:"not null"`
	Currency        string         `json:"currency" gorm:"size:10;default:'usd'"`
	StripeSessionID string         `json:"stripe_session_id" gorm:"size:191;uniqueIndex"`
	PaymentIntentID string         `json:"payment_intent_id" gorm:"size:191;index"`
	Status          PurchaseStatus `json:"status" gorm:"not null;size:20;index"`
	CouponID        *uint          `json:"coupon_id"`
	DiscountAmount  float64        `json:"discount_amount"`
}
