package services

import "recipebook_backend/internal/storage"

// ServiceContainer bundles every service for handler wiring.
type ServiceContainer struct {
	UserService       UserService
	AuthService       AuthService
	TagService        TagService
	IngredientService IngredientService
	RecipeService     RecipeService

	Storage storage.Storage
}
