package models

// Ingredient has the same shape and ownership rules as Tag.
type Ingredient struct {
	BaseModel
	Name   string `gorm:"not null"`
	UserID string `gorm:"not null;index"`
	User   *User  `gorm:"foreignKey:UserID"`
}
