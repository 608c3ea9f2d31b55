package integration_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"recipebook_backend/internal/models"
	"recipebook_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImage_Success(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "Uploader")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Photogenic", nil, nil)

	res, bodyStr := ts.SendMultipart(t, "POST",
		"/api/v1/recipe/recipes/"+recipe.ID+"/upload-image",
		token, "image", "dinner.png", pngBytes(t))
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)

	var resp struct {
		ID    string `json:"id"`
		Image string `json:"image"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, recipe.ID, resp.ID)
	assert.Contains(t, resp.Image, "recipe/")
	assert.True(t, strings.HasSuffix(resp.Image, ".png"))

	// The stored name is generated, never the client's.
	assert.NotContains(t, resp.Image, "dinner")

	var updated models.Recipe
	require.NoError(t, ts.DB.Where("id = ?", recipe.ID).First(&updated).Error)
	assert.NotEmpty(t, updated.ImagePath)
}

func TestUploadImage_NotAnImage(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "BadUploader")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "No Photo", nil, nil)

	res, bodyStr := ts.SendMultipart(t, "POST",
		"/api/v1/recipe/recipes/"+recipe.ID+"/upload-image",
		token, "image", "notimage.txt", []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "image")

	var updated models.Recipe
	require.NoError(t, ts.DB.Where("id = ?", recipe.ID).First(&updated).Error)
	assert.Empty(t, updated.ImagePath, "A rejected upload must not touch the recipe")
}

func TestUploadImage_MissingFile(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, user := helpers.LoginAs(t, ts, "EmptyUploader")
	recipe := helpers.CreateRecipe(t, ts.DB, user.ID, "Nothing Sent", nil, nil)

	res, _ := ts.SendRequest(t, "POST",
		"/api/v1/recipe/recipes/"+recipe.ID+"/upload-image", token,
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUploadImage_ForeignRecipe(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	token, _ := helpers.LoginAs(t, ts, "UploadIntruder")
	_, other := helpers.LoginAs(t, ts, "UploadVictim")
	recipe := helpers.CreateRecipe(t, ts.DB, other.ID, "Off Limits", nil, nil)

	res, _ := ts.SendMultipart(t, "POST",
		"/api/v1/recipe/recipes/"+recipe.ID+"/upload-image",
		token, "image", "sneaky.png", pngBytes(t))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
