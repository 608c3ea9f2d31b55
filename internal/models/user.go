package models

import "time"

// User is identified by its email, stored lower-cased. PasswordHash never
// leaves the persistence layer.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsActive     bool `gorm:"default:true"`
	IsStaff      bool `gorm:"default:false"`
	IsSuperuser  bool `gorm:"default:false"`

	// Relations
	AuthToken *AuthToken `gorm:"foreignKey:UserID"`
}

// AuthToken maps an opaque bearer key 1:1 to a user. Requesting a token again
// returns the existing row.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40"`
	UserID    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
