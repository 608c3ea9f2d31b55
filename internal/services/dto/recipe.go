package dto

// RecipeRequest is used for create and for full (PUT) updates. Relations
// absent from a full update clear the corresponding association sets.
// TimeMinutes and Price are pointers so an explicit 0 passes while an
// absent field fails "required".
type RecipeRequest struct {
	Title         string   `json:"title" validate:"required,notblank"`
	TimeMinutes   *int     `json:"time_minutes" validate:"required,gte=0"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Link          string   `json:"link"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
}

// PatchRecipeRequest is the partial (PATCH) payload. Nil means "leave
// untouched"; a present tags/ingredients field replaces that set only.
type PatchRecipeRequest struct {
	Title         *string   `json:"title" validate:"omitempty,notblank"`
	TimeMinutes   *int      `json:"time_minutes" validate:"omitempty,gte=0"`
	Price         *float64  `json:"price" validate:"omitempty,gte=0"`
	Link          *string   `json:"link"`
	TagIDs        *[]string `json:"tags"`
	IngredientIDs *[]string `json:"ingredients"`
}

// RecipeResponse is the list representation: relations as id sets.
type RecipeResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	TimeMinutes   int      `json:"time_minutes"`
	Price         float64  `json:"price"`
	Link          string   `json:"link,omitempty"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
	Image         string   `json:"image,omitempty"`
}

// RecipeDetailResponse expands tags and ingredients to nested objects.
type RecipeDetailResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link,omitempty"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Image       string               `json:"image,omitempty"`
}

// RecipeImageResponse is returned by the image upload endpoint.
type RecipeImageResponse struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}
