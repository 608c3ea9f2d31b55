package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"recipebook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the password if it is still raw.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}
	user.IsActive = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("Failed to create user %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser creates a user row and exchanges the raw credentials for
// a token through the API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: password,
	}
	err := CreateUser(t, ts.DB, user)
	require.NoError(t, err, "Creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/user/token", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Login must succeed. Response: "+bodyStr)

	var tokenResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &tokenResponse)
	require.NoError(t, err, "Failed to parse token response")
	assert.NotEmpty(t, tokenResponse.Token, "Token must not be empty")

	return tokenResponse.Token, user
}

// LoginAs returns a fresh user with a unique email plus their token.
func LoginAs(t *testing.T, ts *TestServer, name string) (string, *models.User) {
	email := fmt.Sprintf("%s_%d@example.com", strings.ToLower(name), time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, name, email, "password123")
}

// LoginAsStaff returns a staff user plus their token.
func LoginAsStaff(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("staff_%d@example.com", time.Now().UnixNano())
	user := &models.User{
		Name:         "Staff User",
		Email:        email,
		PasswordHash: "password123",
		IsStaff:      true,
	}
	err := CreateUser(t, ts.DB, user)
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/user/token",
		"", map[string]interface{}{"email": email, "password": "password123"})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Staff login must succeed. Response: "+bodyStr)

	var tokenResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &tokenResponse))

	return tokenResponse.Token, user
}

// CreateTag inserts a tag owned by the given user.
func CreateTag(t *testing.T, db *gorm.DB, userID, name string) models.Tag {
	tag := models.Tag{Name: name, UserID: userID}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
}

// CreateIngredient inserts an ingredient owned by the given user.
func CreateIngredient(t *testing.T, db *gorm.DB, userID, name string) models.Ingredient {
	ingredient := models.Ingredient{Name: name, UserID: userID}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("Failed to create test ingredient: %v", err)
	}
	return ingredient
}

// CreateRecipe inserts a recipe with optional relations owned by the user.
func CreateRecipe(t *testing.T, db *gorm.DB, userID, title string, tags []models.Tag, ingredients []models.Ingredient) models.Recipe {
	recipe := models.Recipe{
		Title:       title,
		TimeMinutes: 10,
		Price:       5.50,
		UserID:      userID,
	}
	if err := db.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}
	if len(tags) > 0 {
		if err := db.Model(&recipe).Association("Tags").Append(toTagPtrs(tags)...); err != nil {
			t.Fatalf("Failed to attach tags: %v", err)
		}
	}
	if len(ingredients) > 0 {
		if err := db.Model(&recipe).Association("Ingredients").Append(toIngredientPtrs(ingredients)...); err != nil {
			t.Fatalf("Failed to attach ingredients: %v", err)
		}
	}
	return recipe
}

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
