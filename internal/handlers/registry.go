package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	UserHandler       *UserHandler
	TagHandler        *TagHandler
	IngredientHandler *IngredientHandler
	RecipeHandler     *RecipeHandler
	AdminHandler      *AdminHandler
}
