package database

import (
	"errors"

	"storefront-api/internal/models"

	"gorm.io/gorm"
)

// FindUserByEmail returns the user with the given email via the indexed
// email column, or nil when no user exists.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateNotification inserts a user notification.
func (s *Store) CreateNotification(notification *models.Notification) error {
	return s.db.Create(notification).Error
}

// ListNotificationsByUser returns a user's notifications, newest first.
func (s *Store) ListNotificationsByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// CreateAnalyticsEvent appends a telemetry record.
func (s *Store) CreateAnalyticsEvent(event *models.AnalyticsEvent) error {
	return s.db.Create(event).Error
}
