package models

// Notification types
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification is a user-facing message created as a side effect of a
// purchase completing or failing.
type Notification struct {
	BaseModel

	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Title   string `json:"title" gorm:"not null;size:200"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"size:20;default:'success'"`
}
