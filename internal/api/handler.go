package api

import (
	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/models"
	"storefront-api/internal/services"

	"github.com/redis/go-redis/v9"
)

// PurchaseReader is the read surface the success-page polling endpoints
// need.
type PurchaseReader interface {
	ListPurchasesByEmail(email string) ([]models.Purchase, error)
	FindPurchaseBySessionID(sessionID string) (*models.Purchase, error)
}

// CouponAdminStore is the write surface for the admin coupon routes.
type CouponAdminStore interface {
	CreateCoupon(coupon *models.Coupon) error
	ListCoupons() ([]models.Coupon, error)
}

// Handler holds the wired services behind the HTTP routes.
type Handler struct {
	Config        *config.Config
	Coupons       *services.CouponService
	Checkout      *services.CheckoutService
	Webhooks      *services.WebhookService
	Purchases     PurchaseReader
	Notifications NotificationReader
	AdminDB       CouponAdminStore
}

// NewHandler wires the full service graph from configuration, the store
// and Redis.
func NewHandler(cfg *config.Config, store *database.Store, rdb *redis.Client) *Handler {
	analytics := services.NewAnalyticsService(store)
	receipts := services.NewReceiptService(cfg.BrevoAPIKey, cfg.BrevoFromEmail, cfg.BrevoFromName)
	notifier := services.NewPurchaseNotifier(cfg.PurchaseWebhookURL, cfg.PurchaseWebhookSecret)
	coupons := services.NewCouponService(store, rdb, cfg.CouponCacheTTL)

	return &Handler{
		Config:   cfg,
		Coupons:  coupons,
		Checkout: services.NewCheckoutService(cfg.StripeSecretKey, analytics),
		Webhooks: services.NewWebhookService(
			cfg.StripeWebhookSecret,
			store,
			services.NewReplayGuard(rdb),
			coupons,
			analytics,
			receipts,
			notifier,
		),
		Purchases:     store,
		Notifications: store,
		AdminDB:       store,
	}
}
