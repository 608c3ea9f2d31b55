package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"recipebook_backend/internal/models"
	"recipebook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeDetail struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
	Ingredients []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"ingredients"`
}

func TestRecipes_CreateWithRelations(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipeCreator")
	tag := helpers.CreateTag(t, ts.DB, user.ID, "Thai")
	ingredient := helpers.CreateIngredient(t, ts.DB, user.ID, "Ginger")

	body := map[string]interface{}{
		"title":        "Prawn Curry",
		"time_minutes": 25,
		"price":        12.50,
		"link":         "https://example.com/curry",
		"tags":         []string{tag.ID},
		"ingredients":  []string{ingredient.ID},
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/recipe/recipes", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var detail recipeDetail
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, "Prawn Curry", detail.Title)
	assert.Equal(t, 25, detail.TimeMinutes)
	assert.InDelta(t, 12.50, detail.Price, 0.001)
	require.Len(t, detail.Tags, 1)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Thai", detail.Tags[0].Name)
	assert.Equal(t, "Ginger", detail.Ingredients[0].Name)
}

func TestRecipes_CreateInvalidValues(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "RecipeInvalid")

	cases := []map[string]interface{}{
		{"title": "", "time_minutes": 5, "price": 1.0},
		{"title": "Negative Time", "time_minutes": -1, "price": 1.0},
		{"title": "Negative Price", "time_minutes": 5, "price": -1.0},
		// Absent numeric fields are rejected, not defaulted to zero.
		{"title": "Only Title"},
		{"title": "No Price", "time_minutes": 5},
		{"title": "No Time", "price": 1.0},
	}
	for _, body := range cases {
		res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/recipe/recipes", token, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Response: "+bodyStr)
	}
}

func TestRecipes_CreateZeroValuesAccepted(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "RecipeZero")

	// Explicit zeros are valid values; only absence is an error.
	body := map[string]interface{}{
		"title":        "Free And Instant",
		"time_minutes": 0,
		"price":        0,
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/recipe/recipes", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var detail recipeDetail
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, 0, detail.TimeMinutes)
	assert.InDelta(t, 0.0, detail.Price, 0.001)
}

func TestRecipes_CreateUnknownTagID(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "RecipeUnknownTag")
	_, other := helpers.LoginAs(t, ts, "RecipeTagVictim")
	foreign := helpers.CreateTag(t, ts.DB, other.ID, "NotYours")

	// A tag owned by someone else counts as unknown.
	body := map[string]interface{}{
		"title":        "Sneaky",
		"time_minutes": 5,
		"price":        1.0,
		"tags":         []string{foreign.ID},
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/recipe/recipes", token, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Response: "+bodyStr)
}

func TestRecipes_ListOwnOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipeLister")
	_, other := helpers.LoginAs(t, ts, "RecipeStranger")

	helpers.CreateRecipe(t, ts.DB, user.ID, "Mine One", nil, nil)
	helpers.CreateRecipe(t, ts.DB, user.ID, "Mine Two", nil, nil)
	helpers.CreateRecipe(t, ts.DB, other.ID, "Theirs", nil, nil)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/recipe/recipes", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var recipes []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &recipes))
	assert.Len(t, recipes, 2)
	assert.NotContains(t, bodyStr, "Theirs")
}

func TestRecipes_FilterByTagsAndIngredients(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipeFilter")

	vegan := helpers.CreateTag(t, ts.DB, user.ID, "FilterVegan")
	quick := helpers.CreateTag(t, ts.DB, user.ID, "FilterQuick")
	tofu := helpers.CreateIngredient(t, ts.DB, user.ID, "FilterTofu")

	helpers.CreateRecipe(t, ts.DB, user.ID, "Tofu Stir Fry", []models.Tag{vegan}, []models.Ingredient{tofu})
	helpers.CreateRecipe(t, ts.DB, user.ID, "Quick Toast", []models.Tag{quick}, nil)
	helpers.CreateRecipe(t, ts.DB, user.ID, "Plain Rice", nil, nil)

	res, bodyStr := ts.SendRequest(t, "GET",
		fmt.Sprintf("/api/v1/recipe/recipes?tags=%s", vegan.ID), token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Tofu Stir Fry")
	assert.NotContains(t, bodyStr, "Quick Toast")
	assert.NotContains(t, bodyStr, "Plain Rice")

	res, bodyStr = ts.SendRequest(t, "GET",
		fmt.Sprintf("/api/v1/recipe/recipes?tags=%s,%s", vegan.ID, quick.ID), token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Tofu Stir Fry")
	assert.Contains(t, bodyStr, "Quick Toast")
	assert.NotContains(t, bodyStr, "Plain Rice")

	res, bodyStr = ts.SendRequest(t, "GET",
		fmt.Sprintf("/api/v1/recipe/recipes?ingredients=%s", tofu.ID), token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Tofu Stir Fry")
	assert.NotContains(t, bodyStr, "Quick Toast")
}

func TestRecipes_DetailCrossUser(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "RecipePeeker")
	_, other := helpers.LoginAs(t, ts, "RecipeHolder")
	recipe := helpers.CreateRecipe(t, ts.DB, other.ID, "Secret Sauce", nil, nil)

	// Someone else's recipe is indistinguishable from a missing one.
	res, _ := ts.SendRequest(t, "GET", "/api/v1/recipe/recipes/"+recipe.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/recipe/recipes/"+recipe.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var still models.Recipe
	err := ts.DB.Where("id = ?", recipe.ID).First(&still).Error
	require.NoError(t, err, "Foreign delete must not remove the row")
}

func TestRecipes_PutClearsAbsentRelations(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipePutter")
	tag := helpers.CreateTag(t, ts.DB, user.ID, "PutTag")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Before Put", []models.Tag{tag}, nil)

	// PUT without "tags" wipes the association set.
	body := map[string]interface{}{
		"title":        "After Put",
		"time_minutes": 15,
		"price":        3.0,
	}
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/recipe/recipes/"+recipe.ID, token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)

	var detail recipeDetail
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, "After Put", detail.Title)
	assert.Empty(t, detail.Tags)
	assert.Empty(t, detail.Link)

	// The tag itself survives; only the link row is gone.
	var kept models.Tag
	require.NoError(t, ts.DB.Where("id = ?", tag.ID).First(&kept).Error)
}

func TestRecipes_PatchReplacesOnlyGivenFields(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipePatcher")
	oldTag := helpers.CreateTag(t, ts.DB, user.ID, "PatchOld")
	newTag := helpers.CreateTag(t, ts.DB, user.ID, "PatchNew")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Patch Target", []models.Tag{oldTag}, nil)

	body := map[string]interface{}{
		"tags": []string{newTag.ID},
	}
	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/recipe/recipes/"+recipe.ID, token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)

	var detail recipeDetail
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, "Patch Target", detail.Title, "Untouched fields keep their values")
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "PatchNew", detail.Tags[0].Name)
}

func TestRecipes_PatchSingleField(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipeTitler")
	tag := helpers.CreateTag(t, ts.DB, user.ID, "KeepMe")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Old Title", []models.Tag{tag}, nil)

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/recipe/recipes/"+recipe.ID, token,
		map[string]interface{}{"title": "Fresh Title"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var detail recipeDetail
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Equal(t, "Fresh Title", detail.Title)
	require.Len(t, detail.Tags, 1, "Relations untouched by a title-only patch")
}

func TestRecipes_Delete(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "RecipeDeleter")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Doomed", nil, nil)

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/recipe/recipes/"+recipe.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/recipe/recipes/"+recipe.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRecipes_Unauthenticated(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/recipe/recipes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
