package repositories

import (
	"errors"

	"recipebook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows a listing to recipes carrying any of the given tag or
// ingredient ids. Empty slices mean no filtering on that relation.
type RecipeFilter struct {
	TagIDs        []string
	IngredientIDs []string
}

type RecipeRepository interface {
	FindAllByUser(userID string, filter RecipeFilter) ([]models.Recipe, error)
	FindByID(userID, id string) (*models.Recipe, error)
	Create(recipe *models.Recipe, tags []models.Tag, ingredients []models.Ingredient) error
	// Update applies the column values and, when the tag/ingredient slices
	// are non-nil, replaces the corresponding association sets.
	Update(recipe *models.Recipe, values map[string]interface{}, tags *[]models.Tag, ingredients *[]models.Ingredient) error
	UpdateImagePath(userID, id, path string) error
	Delete(userID, id string) error
}

type RecipeRepositoryImpl struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &RecipeRepositoryImpl{db: db}
}

func (r *RecipeRepositoryImpl) FindAllByUser(userID string, filter RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe

	query := r.db.Model(&models.Recipe{}).
		Preload("Tags").
		Preload("Ingredients").
		Where("recipes.user_id = ?", userID)

	// Joins can multiply rows when a recipe matches several filter ids, so
	// both filtered paths collapse to distinct recipes.
	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs).
			Distinct("recipes.*")
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs).
			Distinct("recipes.*")
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepositoryImpl) FindByID(userID, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Tags").Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepositoryImpl) Create(recipe *models.Recipe, tags []models.Tag, ingredients []models.Ingredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Associations are replaced explicitly so GORM never tries to
		// upsert rows owned by the tag/ingredient repositories.
		if err := tx.Omit("Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(toTagPtrs(tags)...); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Replace(toIngredientPtrs(ingredients)...); err != nil {
			return err
		}
		return nil
	})
}

func (r *RecipeRepositoryImpl) Update(recipe *models.Recipe, values map[string]interface{}, tags *[]models.Tag, ingredients *[]models.Ingredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(values) > 0 {
			result := tx.Model(&models.Recipe{}).
				Where("id = ? AND user_id = ?", recipe.ID, recipe.UserID).
				Updates(values)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRecipeNotFound
			}
		}

		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(toTagPtrs(*tags)...); err != nil {
				return err
			}
		}
		if ingredients != nil {
			if err := tx.Model(recipe).Association("Ingredients").Replace(toIngredientPtrs(*ingredients)...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RecipeRepositoryImpl) UpdateImagePath(userID, id, path string) error {
	result := r.db.Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image_path", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepositoryImpl) Delete(userID, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		// Clear join rows first; the recipe row itself goes last.
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// Association.Replace wants variadic pointers.

func toTagPtrs(tags []models.Tag) []interface{} {
	out := make([]interface{}, 0, len(tags))
	for i := range tags {
		out = append(out, &tags[i])
	}
	return out
}

func toIngredientPtrs(ingredients []models.Ingredient) []interface{} {
	out := make([]interface{}, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, &ingredients[i])
	}
	return out
}
