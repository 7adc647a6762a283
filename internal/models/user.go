package models

// User mirrors the externally owned auth table. This service only reads
// it, keyed by email; identity management happens in the auth provider.
type User struct {
	BaseModel

	Email string `json:"email" gorm:"uniqueIndex;not null;size:191"`
	Name  string `json:"name" gorm:"size:200"`
}
