package models

// Tag is an owner-scoped label attached to recipes.
type Tag struct {
	BaseModel
	Name   string `gorm:"not null"`
	UserID string `gorm:"not null;index"`
	User   *User  `gorm:"foreignKey:UserID"`
}
