package models

// Recipe is the central owner-scoped entity. Tags and ingredients attach
// through join tables; ImagePath is relative to the storage base.
type Recipe struct {
	BaseModel
	Title       string  `gorm:"not null"`
	TimeMinutes int     `gorm:"not null"`
	Price       float64 `gorm:"type:decimal(5,2);not null"`
	Link        string
	ImagePath   string
	UserID      string `gorm:"not null;index"`
	User        *User  `gorm:"foreignKey:UserID"`

	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}
