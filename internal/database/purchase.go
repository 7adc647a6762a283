package database

import (
	"errors"

	"storefront-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyCompletedCheckout records a completed checkout atomically: the
// purchase insert, its success notification and the coupon usage
// increment commit or roll back together. The purchase insert is keyed on
// the unique Stripe session id; when the row already exists (webhook
// redelivery) nothing is written and inserted is false. When a coupon use
// was consumed, its code is returned so callers can drop cached copies.
func (s *Store) ApplyCompletedCheckout(purchase *models.Purchase, notification *models.Notification) (inserted bool, couponCode string, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).Create(purchase)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		inserted = true

		if err := tx.Create(notification).Error; err != nil {
			return err
		}

		if purchase.CouponID != nil {
			var coupon models.Coupon
			err := tx.Where("id = ?", *purchase.CouponID).First(&coupon).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Stale metadata; the purchase still stands
				return nil
			}
			if err != nil {
				return err
			}

			err = tx.Model(&coupon).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
			if err != nil {
				return err
			}
			couponCode = coupon.Code
		}

		return nil
	})
	return inserted, couponCode, err
}

// UpdatePurchaseStatusByPaymentIntent sets the status of every purchase
// matching the external payment id. Zero matching rows is not an error;
// repeated delivery re-applies the same update.
func (s *Store) UpdatePurchaseStatusByPaymentIntent(paymentIntentID string, status models.PurchaseStatus) (int64, error) {
	result := s.db.Model(&models.Purchase{}).
		Where("payment_intent_id = ?", paymentIntentID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// FindPurchaseByPaymentIntent returns the purchase matching the external
// payment id, or nil when none exists.
func (s *Store) FindPurchaseByPaymentIntent(paymentIntentID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Where("payment_intent_id = ?", paymentIntentID).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindPurchaseBySessionID returns the purchase for a checkout session id,
// or nil when none exists. Used by the success page poll.
func (s *Store) FindPurchaseBySessionID(sessionID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Where("stripe_session_id = ?", sessionID).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListPurchasesByEmail returns all purchases of the user with the given
// email, newest first. An unknown email yields an empty list.
func (s *Store) ListPurchasesByEmail(email string) ([]models.Purchase, error) {
	user, err := s.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.Purchase{}, nil
	}

	var purchases []models.Purchase
	err = s.db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
