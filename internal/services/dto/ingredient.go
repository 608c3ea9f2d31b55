package dto

type IngredientRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

// id is the only read-only field on Ingredient.
type IngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
