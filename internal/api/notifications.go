package api

import (
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/response"
	"storefront-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// NotificationReader is the read surface for the notifications feed.
type NotificationReader interface {
	FindUserByEmail(email string) (*models.User, error)
	ListNotificationsByUser(userID uint) ([]models.Notification, error)
}

// ListNotifications returns a user's notifications, newest first. An
// unknown email yields an empty list.
// GET /api/notifications?email=
func (h *Handler) ListNotifications(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.ErrorJSON(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	user, err := h.Notifications.FindUserByEmail(email)
	if err != nil {
		logging.Errorf("User lookup failed for %s: %v", email, err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	if user == nil {
		response.SuccessJSON(c, []models.Notification{})
		return
	}

	notifications, err := h.Notifications.ListNotificationsByUser(user.ID)
	if err != nil {
		logging.Errorf("Notification listing failed for %s: %v", email, err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}

	response.SuccessJSON(c, notifications)
}
