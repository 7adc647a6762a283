package database

import (
	"errors"
	"strings"

	"storefront-api/internal/models"

	"gorm.io/gorm"
)

// FindActiveCouponByCode looks up an active coupon by its uppercased
// code. Returns nil when no active coupon matches.
func (s *Store) FindActiveCouponByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.Where("code = ? AND active = ?", strings.ToUpper(code), true).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// CreateCoupon inserts a new coupon. Codes are normalized to uppercase.
func (s *Store) CreateCoupon(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return s.db.Create(coupon).Error
}

// ListCoupons returns every coupon, newest first.
func (s *Store) ListCoupons() ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := s.db.Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}
