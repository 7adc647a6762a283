package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"storefront-api/internal/models"
	"storefront-api/pkg/logging"

	"github.com/redis/go-redis/v9"
)

// Coupon validation errors
var (
	ErrInvalidCoupon      = errors.New("invalid coupon code")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
)

// CouponStore is the persistence surface the coupon service needs.
// Defined here so tests can substitute a fake.
type CouponStore interface {
	FindActiveCouponByCode(code string) (*models.Coupon, error)
}

// DiscountResult is the outcome of evaluating a coupon against a base
// price. Amounts are rounded to cents.
type DiscountResult struct {
	DiscountAmount float64 `json:"discount_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// CouponService validates coupon codes against a base price. Lookups go
// through a short-lived Redis cache when one is configured. Validation
// has no side effects; the usage counter moves only when a purchase
// completes.
type CouponService struct {
	store    CouponStore
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewCouponService creates a coupon service. The Redis client may be nil,
// in which case every lookup hits the store.
func NewCouponService(store CouponStore, rdb *redis.Client, cacheTTL time.Duration) *CouponService {
	return &CouponService{
		store:    store,
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

// Validate looks up the coupon and evaluates it against basePrice. The
// returned coupon is the record that produced the result, so callers can
// carry its id into checkout metadata.
func (s *CouponService) Validate(ctx context.Context, code string, basePrice float64) (*DiscountResult, *models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil, ErrInvalidCoupon
	}

	coupon, err := s.lookup(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if coupon == nil {
		return nil, nil, ErrInvalidCoupon
	}

	result, err := Evaluate(coupon, basePrice)
	if err != nil {
		return nil, nil, err
	}
	return result, coupon, nil
}

func (s *CouponService) lookup(ctx context.Context, code string) (*models.Coupon, error) {
	cacheKey := "coupon:" + code

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var coupon models.Coupon
			if err := json.Unmarshal([]byte(cached), &coupon); err == nil {
				return &coupon, nil
			}
		} else if err != redis.Nil {
			logging.Warnf("Coupon cache read failed for %s: %v", code, err)
		}
	}

	coupon, err := s.store.FindActiveCouponByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, nil
	}

	if s.redis != nil {
		if data, err := json.Marshal(coupon); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				logging.Warnf("Coupon cache write failed for %s: %v", code, err)
			}
		}
	}

	return coupon, nil
}

// Invalidate drops the cached copy of a coupon code, so the next lookup
// sees the current usage count. Called when a purchase consumes a use.
func (s *CouponService) Invalidate(ctx context.Context, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s.redis == nil || code == "" {
		return
	}
	if err := s.redis.Del(ctx, "coupon:"+code).Err(); err != nil {
		logging.Warnf("Coupon cache invalidation failed for %s: %v", code, err)
	}
}

// Evaluate applies a coupon to a base price. Percentage coupons discount
// basePrice*value/100, fixed coupons discount the value itself; either is
// clamped to MaxDiscount when set. The final price never goes below zero.
func Evaluate(coupon *models.Coupon, basePrice float64) (*DiscountResult, error) {
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return nil, ErrCouponLimitReached
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = basePrice * coupon.Value / 100
	case models.DiscountFixed:
		discount = coupon.Value
	default:
		return nil, ErrInvalidCoupon
	}

	if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
		discount = coupon.MaxDiscount
	}
	discount = roundCents(discount)

	finalPrice := basePrice - discount
	if finalPrice < 0 {
		finalPrice = 0
	}

	return &DiscountResult{
		DiscountAmount: discount,
		FinalPrice:     roundCents(finalPrice),
	}, nil
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
