package models

// AnalyticsEvent is an append-only telemetry record. Writes are
// best-effort and never block the primary transaction.
type AnalyticsEvent struct {
	BaseModel

	EventID   string `json:"event_id" gorm:"size:64;uniqueIndex"`
	EventType string `json:"event_type" gorm:"not null;size:100;index"`
	Payload   string `json:"payload" gorm:"type:text"` // JSON string
	UserID    *uint  `json:"user_id" gorm:"index"`
}
