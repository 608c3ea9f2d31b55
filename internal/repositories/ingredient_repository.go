package repositories

import (
	"errors"

	"recipebook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientRepository interface {
	FindAllByUser(userID string, assignedOnly bool) ([]models.Ingredient, error)
	FindByID(userID, id string) (*models.Ingredient, error)
	FindByIDs(userID string, ids []string) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}

type IngredientRepositoryImpl struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &IngredientRepositoryImpl{db: db}
}

func (r *IngredientRepositoryImpl) FindAllByUser(userID string, assignedOnly bool) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	query := r.db.Model(&models.Ingredient{}).
		Where("ingredients.user_id = ?", userID).
		Order("ingredients.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *IngredientRepositoryImpl) FindByID(userID, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *IngredientRepositoryImpl) FindByIDs(userID string, ids []string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepositoryImpl) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}
