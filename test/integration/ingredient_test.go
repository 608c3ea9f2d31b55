package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"recipebook_backend/internal/models"
	"recipebook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredients_ListOwnOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "IngOwner")
	_, other := helpers.LoginAs(t, ts, "IngOther")

	helpers.CreateIngredient(t, ts.DB, user.ID, "Salt")
	helpers.CreateIngredient(t, ts.DB, user.ID, "Vinegar")
	helpers.CreateIngredient(t, ts.DB, other.ID, "Pepper")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/recipe/ingredients", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var ingredients []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &ingredients))
	require.Len(t, ingredients, 2)

	// name DESC
	assert.Equal(t, "Vinegar", ingredients[0].Name)
	assert.Equal(t, "Salt", ingredients[1].Name)
	assert.NotContains(t, bodyStr, "Pepper")
}

func TestIngredients_Create(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "IngCreator")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/recipe/ingredients", token,
		map[string]interface{}{"name": "Cabbage"})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Response: "+bodyStr)

	var ingredient models.Ingredient
	err := ts.DB.Where("user_id = ? AND name = ?", user.ID, "Cabbage").First(&ingredient).Error
	require.NoError(t, err)
}

func TestIngredients_CreateBlankName(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "IngBlank")

	res, _ := ts.SendRequest(t, "POST", "/api/v1/recipe/ingredients", token,
		map[string]interface{}{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestIngredients_AssignedOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "IngAssigned")

	used := helpers.CreateIngredient(t, ts.DB, user.ID, "Turkey")
	helpers.CreateIngredient(t, ts.DB, user.ID, "Lentils")
	helpers.CreateRecipe(t, ts.DB, user.ID, "Roast", nil, []models.Ingredient{used})

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/recipe/ingredients?assigned_only=1", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var ingredients []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &ingredients))
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Turkey", ingredients[0].Name)
}

func TestIngredients_Unauthenticated(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/recipe/ingredients", "",
		map[string]interface{}{"name": "Nope"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
