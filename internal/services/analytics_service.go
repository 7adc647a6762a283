package services

import (
	"encoding/json"

	"storefront-api/internal/models"
	"storefront-api/pkg/logging"

	"github.com/google/uuid"
)

// AnalyticsStore is the persistence surface for telemetry writes.
type AnalyticsStore interface {
	CreateAnalyticsEvent(event *models.AnalyticsEvent) error
}

// AnalyticsService appends best-effort telemetry events. Failures are
// logged and swallowed so telemetry can never break a checkout or a
// webhook transaction.
type AnalyticsService struct {
	store AnalyticsStore
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Track records an event with an arbitrary payload. Never returns an
// error.
func (s *AnalyticsService) Track(eventType string, payload map[string]interface{}, userID *uint) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Warnf("Analytics payload marshal failed for %s: %v", eventType, err)
		data = []byte("{}")
	}

	event := &models.AnalyticsEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Payload:   string(data),
		UserID:    userID,
	}

	if err := s.store.CreateAnalyticsEvent(event); err != nil {
		logging.Warnf("Analytics event %s dropped: %v", eventType, err)
	}
}
